/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package risk implements the diabetes risk self-assessment: input
// validation, the threshold rule, the script-backed predictor and the
// category guidance shown with a result.
package risk

// Gender is the self-reported gender sent with an assessment.
type Gender string

// Gender values accepted by the assessment form.
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders returns the accepted gender values in display order.
func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale, GenderOther}
}

// Valid reports whether g is one of the accepted values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}

	return false
}

// SmokingHistory uses the labels of the training data set of the scoring
// model, which is why the values are not uniformly cased.
type SmokingHistory string

// SmokingHistory values.
const (
	SmokingNever      SmokingHistory = "never"
	SmokingFormer     SmokingHistory = "former"
	SmokingCurrent    SmokingHistory = "current"
	SmokingNotCurrent SmokingHistory = "not current"
	SmokingEver       SmokingHistory = "ever"
	SmokingNoInfo     SmokingHistory = "No Info"
)

// SmokingOption pairs a smoking history value with its form label.
type SmokingOption struct {
	Value SmokingHistory
	Label string
}

// SmokingOptions returns the smoking history choices in display order.
func SmokingOptions() []SmokingOption {
	return []SmokingOption{
		{Value: SmokingNever, Label: "Never"},
		{Value: SmokingFormer, Label: "Former"},
		{Value: SmokingCurrent, Label: "Current"},
		{Value: SmokingNotCurrent, Label: "Not Current"},
		{Value: SmokingEver, Label: "Ever"},
		{Value: SmokingNoInfo, Label: "No Info"},
	}
}

// Valid reports whether s is one of the accepted values.
func (s SmokingHistory) Valid() bool {
	for _, opt := range SmokingOptions() {
		if opt.Value == s {
			return true
		}
	}

	return false
}

// Category is the outcome bucket of an assessment.
type Category string

// Category values. High Risk is produced by the threshold rule; the other
// three come from percentage based predictors.
const (
	CategoryLowRisk     Category = "Low Risk"
	CategoryPreDiabetic Category = "Pre-Diabetic"
	CategoryDiabetic    Category = "Diabetic"
	CategoryHighRisk    Category = "High Risk"
)

// Slug returns a lowercase identifier suitable for CSS classes and URLs.
func (c Category) Slug() string {
	switch c {
	case CategoryLowRisk:
		return "low-risk"
	case CategoryPreDiabetic:
		return "pre-diabetic"
	case CategoryDiabetic:
		return "diabetic"
	case CategoryHighRisk:
		return "high-risk"
	default:
		return "unknown"
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryLowRisk, CategoryPreDiabetic, CategoryDiabetic, CategoryHighRisk:
		return true
	default:
		return false
	}
}

// IsLow reports whether the category needs no follow-up action.
func (c Category) IsLow() bool {
	return c == CategoryLowRisk
}

// Input holds the metrics submitted for one assessment. The JSON names match
// the payload the scoring script reads from stdin.
type Input struct {
	Name           string         `json:"name,omitempty" validate:"max=100"`
	Age            int            `json:"age" validate:"gte=1,lte=100"`
	Gender         Gender         `json:"gender" validate:"gender"`
	Hypertension   int            `json:"hypertension" validate:"oneof=0 1"`
	HeartDisease   int            `json:"heart_disease" validate:"oneof=0 1"`
	SmokingHistory SmokingHistory `json:"smoking_history" validate:"smoking"`
	BMI            float64        `json:"bmi" validate:"gt=0,lte=100"`
	HbA1c          float64        `json:"HbA1c_level" validate:"gt=0,lte=20"`
	BloodGlucose   float64        `json:"blood_glucose_level" validate:"gt=0,lte=1000"`
	Insulin        *float64       `json:"insulin,omitempty" validate:"omitempty,gte=0,lte=1000"`

	// HbA1cEstimated is set by Normalize when HbA1c was derived from glucose.
	HbA1cEstimated bool `json:"-"`
}

// Normalize fills in values that can be derived from other fields.
func (in *Input) Normalize() {
	if in.HbA1c == 0 && in.BloodGlucose > 0 {
		in.HbA1c = EstimateHbA1c(in.BloodGlucose)
		in.HbA1cEstimated = true
	}
}

// Result is the outcome of a prediction.
type Result struct {
	Success        bool     `json:"success"`
	RiskPercentage float64  `json:"risk_percentage"`
	RiskCategory   Category `json:"risk_category"`
	Signals        []string `json:"signals,omitempty"`
	Predictor      string   `json:"predictor"`
	Error          string   `json:"error,omitempty"`
}
