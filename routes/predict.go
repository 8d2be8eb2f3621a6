/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flamego/flamego"

	"github.com/humaidq/sugarcheck/risk"
)

// anonymousName is reported when a request carries no name.
const anonymousName = "Unknown"

// PredictResponse is the body returned by POST /predict.
type PredictResponse struct {
	Success        bool          `json:"success"`
	RiskPercentage float64       `json:"risk_percentage"`
	RiskCategory   risk.Category `json:"risk_category"`
	Prediction     string        `json:"prediction"`
	Name           string        `json:"name"`
	Signals        []string      `json:"signals"`
	Predictor      string        `json:"predictor"`
	HbA1c          float64       `json:"HbA1c_level"`
	HbA1cEstimated bool          `json:"hba1c_estimated"`
	Guidance       risk.Guidance `json:"guidance"`
}

// NewPredictResponse builds the API answer for a completed assessment.
func NewPredictResponse(in risk.Input, res risk.Result) PredictResponse {
	name := in.Name
	if name == "" {
		name = anonymousName
	}

	signals := res.Signals
	if signals == nil {
		signals = []string{}
	}

	return PredictResponse{
		Success:        true,
		RiskPercentage: res.RiskPercentage,
		RiskCategory:   res.RiskCategory,
		Prediction:     string(res.RiskCategory),
		Name:           name,
		Signals:        signals,
		Predictor:      res.Predictor,
		HbA1c:          in.HbA1c,
		HbA1cEstimated: in.HbA1cEstimated,
		Guidance:       risk.GuidanceFor(res.RiskCategory, in.Name),
	}
}

// Predict scores a JSON assessment with the configured predictor. The body
// uses the scoring keys (age, gender, hypertension, heart_disease,
// smoking_history, bmi, HbA1c_level, blood_glucose_level, optional insulin
// and name). Bodies keyed "Glucose level (mg/dl)" or "Insulin Level (μU/mL)"
// are rejected with 400; older clients must send blood_glucose_level and
// insulin instead.
func Predict(c flamego.Context, p risk.Predictor) {
	body := http.MaxBytesReader(c.ResponseWriter(), c.Request().Request.Body, maxJSONBody)

	var in risk.Input
	if err := json.NewDecoder(body).Decode(&in); err != nil {
		writeJSONError(c, http.StatusBadRequest, errInvalidJSONBody.Error(), nil)
		return
	}

	in, res, err := risk.Assess(c.Request().Context(), p, in)
	if err != nil {
		status, message, fields := assessFailure(err, res)
		if status >= http.StatusInternalServerError {
			logger.Error("Prediction failed", "predictor", p.Name(), "error", err)
		}

		writeJSONError(c, status, message, fields)
		return
	}

	writeJSON(c, http.StatusOK, NewPredictResponse(in, res))
}

// assessFailure maps an Assess error to a status, a user-facing message and
// optional per-field details.
func assessFailure(err error, res risk.Result) (int, string, []risk.FieldError) {
	var verr *risk.ValidationError

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, risk.ErrInvalidInput.Error(), verr.Fields
	case errors.Is(err, risk.ErrInvalidInput):
		return http.StatusBadRequest, risk.ErrInvalidInput.Error(), nil
	case errors.Is(err, risk.ErrPredictionRejected) && res.Error != "":
		return http.StatusBadGateway, res.Error, nil
	default:
		return http.StatusBadGateway, "prediction failed", nil
	}
}
