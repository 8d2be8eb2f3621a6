/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"errors"
	htmltemplate "html/template"
	"net/http"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/humaidq/sugarcheck/db"
	"github.com/humaidq/sugarcheck/risk"
)

var (
	createTrackingProfileFn = db.CreateTrackingProfile
	getTrackingProfileFn    = db.GetTrackingProfile
	deleteTrackingProfileFn = db.DeleteTrackingProfile
	listAssessmentsFn       = db.ListAssessments
	deleteAssessmentFn      = db.DeleteAssessment
)

// ========== Tracking Breadcrumb Helpers ==========

// BreadcrumbItem represents a single breadcrumb navigation item
type BreadcrumbItem struct {
	Name      string
	URL       string
	IsCurrent bool
}

func trackingBreadcrumb(isCurrent bool) BreadcrumbItem {
	return BreadcrumbItem{Name: "Track Progress", URL: "/track", IsCurrent: isCurrent}
}

func profileBreadcrumb(profileID, profileName string, isCurrent bool) BreadcrumbItem {
	return BreadcrumbItem{Name: profileName, URL: "/track/" + profileID, IsCurrent: isCurrent}
}

// generateHistoryChart renders glucose, BMI and risk percentage over time.
// records are expected newest first, as returned by ListAssessments.
func generateHistoryChart(records []db.AssessmentRecord) (string, error) {
	if len(records) == 0 {
		return "", nil
	}

	xAxis := make([]string, 0, len(records))
	glucose := make([]opts.LineData, 0, len(records))
	bmi := make([]opts.LineData, 0, len(records))
	percent := make([]opts.LineData, 0, len(records))

	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		xAxis = append(xAxis, r.CreatedAt.Format("Jan 2, 2006 15:04"))
		glucose = append(glucose, opts.LineData{Value: r.BloodGlucose})
		bmi = append(bmi, opts.LineData{Value: r.BMI})
		percent = append(percent, opts.LineData{Value: r.RiskPercentage})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Assessment History",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "bottom",
		}),
	)

	line.SetXAxis(xAxis).
		AddSeries("Glucose (mg/dL)", glucose).
		AddSeries("BMI", bmi).
		AddSeries("Risk (%)", percent).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{
				Smooth:     opts.Bool(true),
				ShowSymbol: opts.Bool(true),
			}),
		)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// ========== Tracking Handlers ==========

// ListTracking displays all tracking profiles with the registration form
func ListTracking(c flamego.Context, t template.Template, data template.Data) {
	profiles, err := listTrackingProfilesFn(c.Request().Context())
	if err != nil {
		logger.Error("Error fetching tracking profiles", "error", err)
		data["Error"] = "Failed to load tracking profiles"
	} else {
		data["Profiles"] = profiles
	}

	data["Genders"] = risk.Genders()
	data["Breadcrumbs"] = []BreadcrumbItem{
		trackingBreadcrumb(true),
	}
	t.HTML(http.StatusOK, "track_list")
}

// CreateTracking registers a new tracking profile
func CreateTracking(c flamego.Context, s session.Session) {
	if err := c.Request().ParseForm(); err != nil {
		SetErrorFlash(s, "Failed to parse form")
		c.Redirect("/track", http.StatusSeeOther)
		return
	}

	name := strings.TrimSpace(c.Request().Form.Get("name"))
	if name == "" {
		SetErrorFlash(s, "Profile name is required")
		c.Redirect("/track", http.StatusSeeOther)
		return
	}

	var gender *risk.Gender
	if raw := strings.TrimSpace(c.Request().Form.Get("gender")); raw != "" {
		g := risk.Gender(raw)
		if !g.Valid() {
			SetErrorFlash(s, "Invalid gender")
			c.Redirect("/track", http.StatusSeeOther)
			return
		}
		gender = &g
	}

	profileID, err := createTrackingProfileFn(c.Request().Context(), name, gender)
	if err != nil {
		logger.Error("Error creating tracking profile", "error", err)
		SetErrorFlash(s, "Failed to create tracking profile")
		c.Redirect("/track", http.StatusSeeOther)
		return
	}

	SetSuccessFlash(s, "Tracking profile created")
	c.Redirect("/track/"+profileID, http.StatusSeeOther)
}

// ViewTracking displays a profile's assessment history
func ViewTracking(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	ctx := c.Request().Context()
	profileID := c.Param("id")

	profile, err := getTrackingProfileFn(ctx, profileID)
	if err != nil {
		if !errors.Is(err, db.ErrTrackingProfileNotFound) {
			logger.Error("Error fetching tracking profile", "profile_id", profileID, "error", err)
		}
		SetErrorFlash(s, "Profile not found")
		c.Redirect("/track", http.StatusSeeOther)
		return
	}

	records, err := listAssessmentsFn(ctx, profileID)
	if err != nil {
		logger.Error("Error fetching assessments", "profile_id", profileID, "error", err)
		data["Error"] = "Failed to load assessment history"
	}

	if chart, err := generateHistoryChart(records); err != nil {
		logger.Error("Error generating history chart", "profile_id", profileID, "error", err)
	} else if chart != "" {
		data["Chart"] = htmltemplate.HTML(chart)
	}

	data["Profile"] = profile
	data["Records"] = records
	data["Stats"] = db.ComputeAssessmentStats(records)
	data["Breadcrumbs"] = []BreadcrumbItem{
		trackingBreadcrumb(false),
		profileBreadcrumb(profileID, profile.Name, true),
	}
	t.HTML(http.StatusOK, "track_view")
}

// ResetTracking deletes a profile together with its history
func ResetTracking(c flamego.Context, s session.Session) {
	profileID := c.Param("id")

	if err := deleteTrackingProfileFn(c.Request().Context(), profileID); err != nil {
		if errors.Is(err, db.ErrTrackingProfileNotFound) {
			SetErrorFlash(s, "Profile not found")
		} else {
			logger.Error("Error deleting tracking profile", "profile_id", profileID, "error", err)
			SetErrorFlash(s, "Failed to reset tracking profile")
			c.Redirect("/track/"+profileID, http.StatusSeeOther)
			return
		}
	} else {
		SetSuccessFlash(s, "Tracking profile and its history were deleted")
	}

	c.Redirect("/track", http.StatusSeeOther)
}

// DeleteTrackingRecord removes one assessment from a profile's history
func DeleteTrackingRecord(c flamego.Context, s session.Session) {
	profileID := c.Param("id")
	recordID := c.Param("record_id")

	if err := deleteAssessmentFn(c.Request().Context(), profileID, recordID); err != nil {
		if errors.Is(err, db.ErrAssessmentNotFound) {
			SetErrorFlash(s, "Record not found")
		} else {
			logger.Error("Error deleting assessment", "profile_id", profileID, "record_id", recordID, "error", err)
			SetErrorFlash(s, "Failed to delete record")
		}
	} else {
		SetSuccessFlash(s, "Record deleted")
	}

	c.Redirect("/track/"+profileID, http.StatusSeeOther)
}
