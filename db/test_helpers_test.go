// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/humaidq/sugarcheck/risk"
)

func testContext() context.Context {
	return context.Background()
}

func stringPtr(value string) *string {
	return &value
}

func floatPtr(value float64) *float64 {
	return &value
}

func mustCreateTrackingProfile(t *testing.T, name string) string {
	t.Helper()

	gender := risk.GenderFemale

	id, err := CreateTrackingProfile(testContext(), name, &gender)
	if err != nil {
		t.Fatalf("CreateTrackingProfile failed: %v", err)
	}

	return id
}

func sampleInput() risk.Input {
	return risk.Input{
		Age:            45,
		Gender:         risk.GenderFemale,
		Hypertension:   1,
		SmokingHistory: risk.SmokingFormer,
		BMI:            31.2,
		HbA1c:          6.1,
		BloodGlucose:   140,
	}
}

func mustRecordAssessment(t *testing.T, profileID string, in risk.Input, res risk.Result) string {
	t.Helper()

	id, err := RecordAssessment(testContext(), NewAssessmentRecord(uuid.MustParse(profileID), in, res, nil))
	if err != nil {
		t.Fatalf("RecordAssessment failed: %v", err)
	}

	return id
}
