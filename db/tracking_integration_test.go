// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/humaidq/sugarcheck/risk"
)

func TestTrackingProfileLifecycle(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	if _, err := CreateTrackingProfile(ctx, "   ", nil); !errors.Is(err, ErrProfileNameRequired) {
		t.Fatalf("expected ErrProfileNameRequired, got %v", err)
	}

	profileID := mustCreateTrackingProfile(t, "Alice")

	profile, err := GetTrackingProfile(ctx, profileID)
	if err != nil {
		t.Fatalf("GetTrackingProfile failed: %v", err)
	}
	if profile.Name != "Alice" {
		t.Fatalf("expected profile name Alice, got %q", profile.Name)
	}
	if profile.Gender == nil || *profile.Gender != risk.GenderFemale {
		t.Fatalf("expected gender female, got %v", profile.Gender)
	}

	profiles, err := ListTrackingProfiles(ctx)
	if err != nil {
		t.Fatalf("ListTrackingProfiles failed: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}
	if profiles[0].AssessmentCount != 0 || profiles[0].LatestCategory != nil {
		t.Fatalf("expected empty history, got %+v", profiles[0])
	}

	if err := DeleteTrackingProfile(ctx, profileID); err != nil {
		t.Fatalf("DeleteTrackingProfile failed: %v", err)
	}

	if _, err := GetTrackingProfile(ctx, profileID); !errors.Is(err, ErrTrackingProfileNotFound) {
		t.Fatalf("expected ErrTrackingProfileNotFound, got %v", err)
	}

	if err := DeleteTrackingProfile(ctx, profileID); !errors.Is(err, ErrTrackingProfileNotFound) {
		t.Fatalf("expected ErrTrackingProfileNotFound on second delete, got %v", err)
	}

	if _, err := GetTrackingProfile(ctx, "not-a-uuid"); !errors.Is(err, ErrTrackingProfileNotFound) {
		t.Fatalf("expected ErrTrackingProfileNotFound for malformed id, got %v", err)
	}
}

func TestAssessmentHistory(t *testing.T) {
	resetDatabase(t)
	ctx := testContext()

	profileID := mustCreateTrackingProfile(t, "History")

	first := sampleInput()
	firstID := mustRecordAssessment(t, profileID, first, risk.Result{
		Success: true, RiskPercentage: 50, RiskCategory: risk.CategoryHighRisk,
		Predictor: risk.KindRule, Signals: []string{risk.SignalGlucose, risk.SignalBMI},
	})

	second := sampleInput()
	second.BloodGlucose = 100
	second.BMI = 24
	second.Insulin = floatPtr(12)
	secondID := mustRecordAssessment(t, profileID, second, risk.Result{
		Success: true, RiskPercentage: 0, RiskCategory: risk.CategoryLowRisk, Predictor: risk.KindRule,
	})

	records, err := ListAssessments(ctx, profileID)
	if err != nil {
		t.Fatalf("ListAssessments failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 assessments, got %d", len(records))
	}
	if records[0].ID.String() != secondID {
		t.Fatalf("expected newest assessment first")
	}
	if records[0].Insulin == nil || *records[0].Insulin != 12 {
		t.Fatalf("expected insulin to round trip, got %v", records[0].Insulin)
	}
	if len(records[1].Signals) != 2 || records[1].Signals[0] != risk.SignalGlucose {
		t.Fatalf("unexpected signals: %v", records[1].Signals)
	}
	if !records[1].Hypertension {
		t.Fatalf("expected hypertension flag to be stored")
	}

	got, err := GetAssessment(ctx, firstID)
	if err != nil {
		t.Fatalf("GetAssessment failed: %v", err)
	}
	if got.RiskCategory != risk.CategoryHighRisk || got.Input().Hypertension != 1 {
		t.Fatalf("unexpected assessment: %+v", got)
	}

	profiles, err := ListTrackingProfiles(ctx)
	if err != nil {
		t.Fatalf("ListTrackingProfiles failed: %v", err)
	}
	if profiles[0].AssessmentCount != 2 {
		t.Fatalf("expected 2 assessments in summary, got %d", profiles[0].AssessmentCount)
	}
	if profiles[0].LatestCategory == nil || *profiles[0].LatestCategory != risk.CategoryLowRisk {
		t.Fatalf("expected latest category Low Risk, got %v", profiles[0].LatestCategory)
	}

	stats, err := GetAssessmentStats(ctx, profileID)
	if err != nil {
		t.Fatalf("GetAssessmentStats failed: %v", err)
	}
	if stats.Count != 2 || stats.AverageGlucose != 120 || stats.HighestPercent != 50 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	if err := DeleteAssessment(ctx, uuid.NewString(), firstID); !errors.Is(err, ErrAssessmentNotFound) {
		t.Fatalf("expected ErrAssessmentNotFound for foreign profile, got %v", err)
	}

	if err := DeleteAssessment(ctx, profileID, firstID); err != nil {
		t.Fatalf("DeleteAssessment failed: %v", err)
	}

	if _, err := GetAssessment(ctx, firstID); !errors.Is(err, ErrAssessmentNotFound) {
		t.Fatalf("expected ErrAssessmentNotFound, got %v", err)
	}

	if err := DeleteTrackingProfile(ctx, profileID); err != nil {
		t.Fatalf("DeleteTrackingProfile failed: %v", err)
	}

	if _, err := GetAssessment(ctx, secondID); !errors.Is(err, ErrAssessmentNotFound) {
		t.Fatalf("expected assessments to cascade, got %v", err)
	}
}

func TestRecordAssessmentUnknownProfile(t *testing.T) {
	resetDatabase(t)

	_, err := RecordAssessment(testContext(), NewAssessmentRecord(uuid.New(), sampleInput(), risk.Result{
		Success: true, RiskCategory: risk.CategoryLowRisk, Predictor: risk.KindStub,
	}, stringPtr("120/80")))
	if !errors.Is(err, ErrTrackingProfileNotFound) {
		t.Fatalf("expected ErrTrackingProfileNotFound, got %v", err)
	}
}
