/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/humaidq/sugarcheck/risk"
)

// TrackingProfile is a person keeping a history of assessments
type TrackingProfile struct {
	ID        uuid.UUID    `db:"id"`
	Name      string       `db:"name"`
	Gender    *risk.Gender `db:"gender"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
}

// TrackingProfileSummary is a profile with its latest assessment
type TrackingProfileSummary struct {
	TrackingProfile
	AssessmentCount  int            `db:"assessment_count"`
	LatestCategory   *risk.Category `db:"latest_category"`
	LatestPercentage *float64       `db:"latest_percentage"`
	LatestAssessedAt *time.Time     `db:"latest_assessed_at"`
}

// AssessmentRecord is one stored assessment
type AssessmentRecord struct {
	ID             uuid.UUID           `db:"id"`
	ProfileID      uuid.UUID           `db:"profile_id"`
	Age            int                 `db:"age"`
	Gender         risk.Gender         `db:"gender"`
	Hypertension   bool                `db:"hypertension"`
	HeartDisease   bool                `db:"heart_disease"`
	SmokingHistory risk.SmokingHistory `db:"smoking_history"`
	BMI            float64             `db:"bmi"`
	HbA1c          float64             `db:"hba1c"`
	HbA1cEstimated bool                `db:"hba1c_estimated"`
	BloodGlucose   float64             `db:"blood_glucose"`
	Insulin        *float64            `db:"insulin"`
	BloodPressure  *string             `db:"blood_pressure"`
	RiskCategory   risk.Category       `db:"risk_category"`
	RiskPercentage float64             `db:"risk_percentage"`
	Predictor      string              `db:"predictor"`
	Signals        []string            `db:"signals"`
	CreatedAt      time.Time           `db:"created_at"`
}

// NewAssessmentRecord builds a record from a completed assessment.
func NewAssessmentRecord(profileID uuid.UUID, in risk.Input, res risk.Result, bloodPressure *string) AssessmentRecord {
	signals := res.Signals
	if signals == nil {
		signals = []string{}
	}

	return AssessmentRecord{
		ProfileID:      profileID,
		Age:            in.Age,
		Gender:         in.Gender,
		Hypertension:   in.Hypertension == 1,
		HeartDisease:   in.HeartDisease == 1,
		SmokingHistory: in.SmokingHistory,
		BMI:            in.BMI,
		HbA1c:          in.HbA1c,
		HbA1cEstimated: in.HbA1cEstimated,
		BloodGlucose:   in.BloodGlucose,
		Insulin:        in.Insulin,
		BloodPressure:  bloodPressure,
		RiskCategory:   res.RiskCategory,
		RiskPercentage: res.RiskPercentage,
		Predictor:      res.Predictor,
		Signals:        signals,
	}
}

// Input converts the record back into assessment input.
func (r *AssessmentRecord) Input() risk.Input {
	return risk.Input{
		Age:            r.Age,
		Gender:         r.Gender,
		Hypertension:   boolToInt(r.Hypertension),
		HeartDisease:   boolToInt(r.HeartDisease),
		SmokingHistory: r.SmokingHistory,
		BMI:            r.BMI,
		HbA1c:          r.HbA1c,
		HbA1cEstimated: r.HbA1cEstimated,
		BloodGlucose:   r.BloodGlucose,
		Insulin:        r.Insulin,
	}
}

// AssessmentStats summarises a profile's history
type AssessmentStats struct {
	Count          int
	AverageGlucose float64
	AverageBMI     float64
	FirstAt        *time.Time
	LatestAt       *time.Time
	HighestPercent float64
}

// ComputeAssessmentStats aggregates records in memory.
func ComputeAssessmentStats(records []AssessmentRecord) AssessmentStats {
	var stats AssessmentStats
	if len(records) == 0 {
		return stats
	}

	var glucoseSum, bmiSum float64

	for i := range records {
		r := &records[i]
		glucoseSum += r.BloodGlucose
		bmiSum += r.BMI

		if r.RiskPercentage > stats.HighestPercent {
			stats.HighestPercent = r.RiskPercentage
		}

		createdAt := r.CreatedAt
		if stats.FirstAt == nil || createdAt.Before(*stats.FirstAt) {
			stats.FirstAt = &createdAt
		}

		if stats.LatestAt == nil || createdAt.After(*stats.LatestAt) {
			stats.LatestAt = &createdAt
		}
	}

	stats.Count = len(records)
	stats.AverageGlucose = risk.RoundTo(glucoseSum/float64(len(records)), 1)
	stats.AverageBMI = risk.RoundTo(bmiSum/float64(len(records)), 1)

	return stats
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
