/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/flamego/flamego"

	"github.com/humaidq/sugarcheck/risk"
)

// maxJSONBody bounds API request bodies.
const maxJSONBody = 64 << 10

type errorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Fields  []risk.FieldError `json:"fields,omitempty"`
}

func writeJSON(c flamego.Context, status int, v interface{}) {
	c.ResponseWriter().Header().Set("Content-Type", "application/json")
	c.ResponseWriter().WriteHeader(status)

	if err := json.NewEncoder(c.ResponseWriter()).Encode(v); err != nil {
		logger.Warn("Failed to encode JSON response", "path", c.Request().URL.Path, "error", err)
	}
}

func writeJSONError(c flamego.Context, status int, message string, fields []risk.FieldError) {
	writeJSON(c, status, errorResponse{Success: false, Error: message, Fields: fields})
}

// parseNumber reads a finite float from a form or query value.
func parseNumber(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errMissingNumber
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errInvalidNumber
	}

	return v, nil
}
