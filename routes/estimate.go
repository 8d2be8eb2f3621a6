/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"

	"github.com/humaidq/sugarcheck/risk"
)

// maxGlucose is the largest glucose reading accepted by the estimators.
const maxGlucose = 1000

// EstimateHbA1c answers GET /api/estimate/hba1c?glucose=
func EstimateHbA1c(c flamego.Context) {
	glucose, err := parseNumber(c.Query("glucose"))
	if err != nil {
		writeJSONError(c, http.StatusBadRequest, "glucose: "+err.Error(), nil)
		return
	}

	if glucose <= 0 || glucose > maxGlucose {
		writeJSONError(c, http.StatusBadRequest, "glucose: "+risk.ErrInvalidMeasurement.Error(), nil)
		return
	}

	writeJSON(c, http.StatusOK, map[string]float64{
		"glucose": glucose,
		"hba1c":   risk.EstimateHbA1c(glucose),
	})
}

// EstimateBMI answers GET /api/estimate/bmi?weight_kg=&height_cm=
func EstimateBMI(c flamego.Context) {
	weight, err := parseNumber(c.Query("weight_kg"))
	if err != nil {
		writeJSONError(c, http.StatusBadRequest, "weight_kg: "+err.Error(), nil)
		return
	}

	height, err := parseNumber(c.Query("height_cm"))
	if err != nil {
		writeJSONError(c, http.StatusBadRequest, "height_cm: "+err.Error(), nil)
		return
	}

	bmi, err := risk.BMI(weight, height)
	if err != nil {
		writeJSONError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	writeJSON(c, http.StatusOK, map[string]float64{"bmi": bmi})
}
