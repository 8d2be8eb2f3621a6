/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/humaidq/sugarcheck/risk"
)

// ========== Tracking Profile Operations ==========

// ListTrackingProfiles returns all profiles with their latest assessment
func ListTrackingProfiles(ctx context.Context) ([]TrackingProfileSummary, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT id, name, gender, created_at, updated_at,
		       assessment_count, latest_category, latest_percentage, latest_assessed_at
		FROM tracking_profiles_summary
		ORDER BY name ASC
	`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracking profiles: %w", err)
	}
	defer rows.Close()

	var profiles []TrackingProfileSummary
	for rows.Next() {
		var p TrackingProfileSummary
		err := rows.Scan(
			&p.ID, &p.Name, &p.Gender, &p.CreatedAt, &p.UpdatedAt,
			&p.AssessmentCount, &p.LatestCategory, &p.LatestPercentage, &p.LatestAssessedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tracking profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tracking profiles: %w", err)
	}

	return profiles, nil
}

// GetTrackingProfile returns a single profile by ID
func GetTrackingProfile(ctx context.Context, id string) (*TrackingProfile, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrTrackingProfileNotFound
	}

	var p TrackingProfile
	query := `
		SELECT id, name, gender, created_at, updated_at
		FROM tracking_profiles
		WHERE id = $1
	`

	err := pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Gender, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTrackingProfileNotFound
		}
		return nil, fmt.Errorf("failed to get tracking profile: %w", err)
	}

	return &p, nil
}

// CreateTrackingProfile creates a new profile and returns its ID
func CreateTrackingProfile(ctx context.Context, name string, gender *risk.Gender) (string, error) {
	if pool == nil {
		return "", ErrDatabaseConnectionNotInitialized
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrProfileNameRequired
	}

	var id string
	query := `
		INSERT INTO tracking_profiles (name, gender)
		VALUES ($1, $2)
		RETURNING id
	`

	if err := pool.QueryRow(ctx, query, name, gender).Scan(&id); err != nil {
		return "", fmt.Errorf("failed to create tracking profile: %w", err)
	}

	logger.Info("Created tracking profile", "profile_id", id)

	return id, nil
}

// DeleteTrackingProfile deletes a profile (cascades to its assessments)
func DeleteTrackingProfile(ctx context.Context, id string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	if _, err := uuid.Parse(id); err != nil {
		return ErrTrackingProfileNotFound
	}

	tag, err := pool.Exec(ctx, `DELETE FROM tracking_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tracking profile: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrTrackingProfileNotFound
	}

	return nil
}

// ========== Assessment Operations ==========

const assessmentColumns = `
	id, profile_id, age, gender, hypertension, heart_disease, smoking_history,
	bmi, hba1c, hba1c_estimated, blood_glucose, insulin, blood_pressure,
	risk_category, risk_percentage, predictor, signals, created_at
`

func scanAssessment(row pgx.Row) (AssessmentRecord, error) {
	var r AssessmentRecord
	err := row.Scan(
		&r.ID, &r.ProfileID, &r.Age, &r.Gender, &r.Hypertension, &r.HeartDisease, &r.SmokingHistory,
		&r.BMI, &r.HbA1c, &r.HbA1cEstimated, &r.BloodGlucose, &r.Insulin, &r.BloodPressure,
		&r.RiskCategory, &r.RiskPercentage, &r.Predictor, &r.Signals, &r.CreatedAt,
	)

	return r, err
}

// RecordAssessment stores an assessment for its profile and returns the new ID
func RecordAssessment(ctx context.Context, r AssessmentRecord) (string, error) {
	if pool == nil {
		return "", ErrDatabaseConnectionNotInitialized
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Touch the profile so that a missing one is reported before the insert
	tag, err := tx.Exec(ctx, `UPDATE tracking_profiles SET updated_at = now() WHERE id = $1`, r.ProfileID)
	if err != nil {
		return "", fmt.Errorf("failed to update tracking profile: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return "", ErrTrackingProfileNotFound
	}

	signals := r.Signals
	if signals == nil {
		signals = []string{}
	}

	var id string
	query := `
		INSERT INTO assessments (
			profile_id, age, gender, hypertension, heart_disease, smoking_history,
			bmi, hba1c, hba1c_estimated, blood_glucose, insulin, blood_pressure,
			risk_category, risk_percentage, predictor, signals
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query,
		r.ProfileID, r.Age, r.Gender, r.Hypertension, r.HeartDisease, r.SmokingHistory,
		r.BMI, r.HbA1c, r.HbA1cEstimated, r.BloodGlucose, r.Insulin, r.BloodPressure,
		r.RiskCategory, r.RiskPercentage, r.Predictor, signals,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to record assessment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit assessment: %w", err)
	}

	return id, nil
}

// ListAssessments returns a profile's assessments, newest first
func ListAssessments(ctx context.Context, profileID string) ([]AssessmentRecord, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	if _, err := uuid.Parse(profileID); err != nil {
		return nil, ErrTrackingProfileNotFound
	}

	rows, err := pool.Query(ctx, `SELECT `+assessmentColumns+`
		FROM assessments
		WHERE profile_id = $1
		ORDER BY created_at DESC`, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var records []AssessmentRecord
	for rows.Next() {
		r, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assessments: %w", err)
	}

	return records, nil
}

// GetAssessment returns a single assessment by ID
func GetAssessment(ctx context.Context, id string) (*AssessmentRecord, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrAssessmentNotFound
	}

	r, err := scanAssessment(pool.QueryRow(ctx, `SELECT `+assessmentColumns+` FROM assessments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	return &r, nil
}

// DeleteAssessment deletes one assessment belonging to profileID
func DeleteAssessment(ctx context.Context, profileID, id string) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	if _, err := uuid.Parse(id); err != nil {
		return ErrAssessmentNotFound
	}

	if _, err := uuid.Parse(profileID); err != nil {
		return ErrAssessmentNotFound
	}

	tag, err := pool.Exec(ctx, `DELETE FROM assessments WHERE id = $1 AND profile_id = $2`, id, profileID)
	if err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrAssessmentNotFound
	}

	return nil
}

// GetAssessmentStats aggregates a profile's history
func GetAssessmentStats(ctx context.Context, profileID string) (AssessmentStats, error) {
	records, err := ListAssessments(ctx, profileID)
	if err != nil {
		return AssessmentStats{}, err
	}

	return ComputeAssessmentStats(records), nil
}
