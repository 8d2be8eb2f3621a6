/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/template"

	"github.com/humaidq/sugarcheck/db"
	"github.com/humaidq/sugarcheck/risk"
)

var trackingEnabledFn = db.Enabled

// Home renders the landing page with the thresholds in use
func Home(thresholds risk.Thresholds) flamego.Handler {
	return func(t template.Template, data template.Data) {
		data["IsHome"] = true
		data["Signals"] = thresholds.Signals()
		t.HTML(http.StatusOK, "home")
	}
}

// Healthz reports liveness and the active predictor
func Healthz(c flamego.Context, p risk.Predictor) {
	writeJSON(c, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"predictor": p.Name(),
		"tracking":  trackingEnabledFn(),
	})
}
