/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package risk

import (
	"fmt"
	"math"
)

// Percentage cut-offs between categories of percentage based predictors.
const (
	PreDiabeticFromPercent = 30.0
	DiabeticFromPercent    = 50.0
)

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// EstimateHbA1c approximates HbA1c (%) from blood glucose (mg/dL) using the
// linear relation HbA1c = (glucose + 46.7) / 28.7, rounded to one decimal.
func EstimateHbA1c(glucose float64) float64 {
	return RoundTo((glucose+46.7)/28.7, 1)
}

// BMI computes the body mass index from weight in kilograms and height in
// centimetres, rounded to one decimal.
func BMI(weightKg, heightCm float64) (float64, error) {
	if weightKg <= 0 || math.IsNaN(weightKg) || math.IsInf(weightKg, 0) {
		return 0, fmt.Errorf("%w: weight must be positive", ErrInvalidMeasurement)
	}

	if heightCm <= 0 || math.IsNaN(heightCm) || math.IsInf(heightCm, 0) {
		return 0, fmt.Errorf("%w: height must be positive", ErrInvalidMeasurement)
	}

	heightM := heightCm / 100

	bmi := RoundTo(weightKg/(heightM*heightM), 1)
	if bmi <= 0 || math.IsNaN(bmi) || math.IsInf(bmi, 0) {
		return 0, fmt.Errorf("%w: weight and height give no usable BMI", ErrInvalidMeasurement)
	}

	return bmi, nil
}

// ClampPercentage rounds p to two decimals and clamps it into [0, 100].
// NaN is treated as zero.
func ClampPercentage(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}

	p = RoundTo(p, 2)

	return math.Max(0, math.Min(100, p))
}

// CategoryForPercentage maps a risk percentage onto a category.
func CategoryForPercentage(p float64) Category {
	switch {
	case p < PreDiabeticFromPercent:
		return CategoryLowRisk
	case p < DiabeticFromPercent:
		return CategoryPreDiabetic
	default:
		return CategoryDiabetic
	}
}
