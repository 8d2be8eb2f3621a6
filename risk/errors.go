/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package risk

import "errors"

var (
	ErrInvalidMeasurement  = errors.New("invalid measurement")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidThresholds   = errors.New("invalid thresholds")
	ErrUnknownPredictor    = errors.New("unknown predictor")
	ErrScriptNotConfigured = errors.New("predictor command is not configured")
	ErrScriptFailed        = errors.New("predictor script failed")
	ErrScriptOutput        = errors.New("predictor script returned malformed output")
	ErrPredictionRejected  = errors.New("prediction rejected")
)
