/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/template"

	"github.com/humaidq/sugarcheck/risk"
)

// HealthTips renders the healthy-living tips page
func HealthTips(t template.Template, data template.Data) {
	data["Tips"] = risk.HealthTips()
	data["Notice"] = risk.TipsNotice
	t.HTML(http.StatusOK, "tips")
}
