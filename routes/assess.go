/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/google/uuid"

	"github.com/humaidq/sugarcheck/db"
	"github.com/humaidq/sugarcheck/risk"
)

var (
	listTrackingProfilesFn = db.ListTrackingProfiles
	recordAssessmentFn     = db.RecordAssessment
)

// maxBloodPressureLen bounds the free-text blood pressure reading.
const maxBloodPressureLen = 20

// assessmentForm is the parsed /assess form.
type assessmentForm struct {
	Input         risk.Input
	BloodPressure *string
	ProfileID     string
	Errors        map[string]string
}

func (f *assessmentForm) fail(field, message string) {
	if f.Errors == nil {
		f.Errors = make(map[string]string)
	}

	if _, exists := f.Errors[field]; !exists {
		f.Errors[field] = message
	}
}

// parseAssessmentForm reads an assessment from form values. BMI is taken
// from weight and height when both are given, otherwise from the bmi field.
// HbA1c and insulin are optional.
func parseAssessmentForm(form url.Values) assessmentForm {
	var f assessmentForm

	f.Input.Name = strings.TrimSpace(form.Get("name"))
	f.Input.Gender = risk.Gender(strings.TrimSpace(form.Get("gender")))
	f.Input.SmokingHistory = risk.SmokingHistory(strings.TrimSpace(form.Get("smoking_history")))
	f.Input.Hypertension = checkbox(form.Get("hypertension"))
	f.Input.HeartDisease = checkbox(form.Get("heart_disease"))
	f.ProfileID = strings.TrimSpace(form.Get("profile_id"))

	if raw := strings.TrimSpace(form.Get("age")); raw == "" {
		f.fail("age", "is required")
	} else if age, err := strconv.Atoi(raw); err != nil {
		f.fail("age", "must be a whole number")
	} else {
		f.Input.Age = age
	}

	weightRaw := strings.TrimSpace(form.Get("weight_kg"))
	heightRaw := strings.TrimSpace(form.Get("height_cm"))

	if weightRaw != "" || heightRaw != "" {
		weight, werr := parseNumber(weightRaw)
		height, herr := parseNumber(heightRaw)

		switch {
		case werr != nil:
			f.fail("weight_kg", "must be a number")
		case herr != nil:
			f.fail("height_cm", "must be a number")
		default:
			bmi, err := risk.BMI(weight, height)
			if err != nil {
				f.fail("bmi", "weight and height must be positive")
			} else {
				f.Input.BMI = bmi
			}
		}
	} else if bmi, err := parseNumber(form.Get("bmi")); err != nil {
		f.fail("bmi", "enter weight and height or a BMI value")
	} else {
		f.Input.BMI = bmi
	}

	if glucose, err := parseNumber(form.Get("blood_glucose_level")); err != nil {
		f.fail("blood_glucose_level", "must be a number")
	} else {
		f.Input.BloodGlucose = glucose
	}

	if raw := strings.TrimSpace(form.Get("HbA1c_level")); raw != "" {
		if hba1c, err := parseNumber(raw); err != nil {
			f.fail("HbA1c_level", "must be a number")
		} else {
			f.Input.HbA1c = hba1c
		}
	}

	if raw := strings.TrimSpace(form.Get("insulin")); raw != "" {
		if insulin, err := parseNumber(raw); err != nil {
			f.fail("insulin", "must be a number")
		} else {
			f.Input.Insulin = &insulin
		}
	}

	if bp := strings.TrimSpace(form.Get("blood_pressure")); bp != "" {
		if len(bp) > maxBloodPressureLen {
			f.fail("blood_pressure", "is too long")
		} else {
			f.BloodPressure = &bp
		}
	}

	if f.ProfileID != "" {
		if _, err := uuid.Parse(f.ProfileID); err != nil {
			f.fail("profile_id", errInvalidChoice.Error())
		}
	}

	return f
}

func checkbox(value string) int {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "on", "true", "yes":
		return 1
	default:
		return 0
	}
}

func populateAssessForm(c flamego.Context, data template.Data, values url.Values) {
	data["Genders"] = risk.Genders()
	data["SmokingOptions"] = risk.SmokingOptions()
	data["Form"] = values

	if !trackingEnabledFn() {
		return
	}

	profiles, err := listTrackingProfilesFn(c.Request().Context())
	if err != nil {
		logger.Error("Error fetching tracking profiles", "error", err)
		return
	}

	data["Profiles"] = profiles
}

// AssessForm renders the assessment form. ?profile= preselects a profile.
func AssessForm(c flamego.Context, t template.Template, data template.Data) {
	values := url.Values{}
	if profile := c.Query("profile"); profile != "" {
		values.Set("profile_id", profile)
	}

	populateAssessForm(c, data, values)
	t.HTML(http.StatusOK, "assess")
}

// SubmitAssessment scores the form and renders the result page. When a
// tracking profile is selected the assessment is also stored.
func SubmitAssessment(c flamego.Context, s session.Session, t template.Template, data template.Data, p risk.Predictor) {
	if err := c.Request().ParseForm(); err != nil {
		SetErrorFlash(s, "Failed to parse form")
		c.Redirect("/assess", http.StatusSeeOther)
		return
	}

	form := c.Request().Form
	parsed := parseAssessmentForm(form)

	if len(parsed.Errors) > 0 {
		populateAssessForm(c, data, form)
		data["FieldErrors"] = parsed.Errors
		t.HTML(http.StatusBadRequest, "assess")
		return
	}

	in, res, err := risk.Assess(c.Request().Context(), p, parsed.Input)
	if err != nil {
		status, message, fields := assessFailure(err, res)

		fieldErrors := make(map[string]string, len(fields))
		for _, fe := range fields {
			fieldErrors[fe.Field] = fe.Message
		}

		if status >= http.StatusInternalServerError {
			logger.Error("Prediction failed", "predictor", p.Name(), "error", err)
		}

		populateAssessForm(c, data, form)
		data["FieldErrors"] = fieldErrors
		data["Error"] = message
		t.HTML(status, "assess")
		return
	}

	if parsed.ProfileID != "" && trackingEnabledFn() {
		record := db.NewAssessmentRecord(uuid.MustParse(parsed.ProfileID), in, res, parsed.BloodPressure)

		if _, err := recordAssessmentFn(c.Request().Context(), record); err != nil {
			if errors.Is(err, db.ErrTrackingProfileNotFound) {
				data["RecordError"] = "The selected tracking profile no longer exists"
			} else {
				logger.Error("Error recording assessment", "profile_id", parsed.ProfileID, "error", err)
				data["RecordError"] = "Failed to save this result to your history"
			}
		} else {
			data["RecordedProfileID"] = parsed.ProfileID
		}
	}

	data["Input"] = in
	data["Result"] = res
	data["Guidance"] = risk.GuidanceFor(res.RiskCategory, in.Name)
	data["CategorySlug"] = res.RiskCategory.Slug()
	data["Disclaimer"] = risk.Disclaimer
	t.HTML(http.StatusOK, "result")
}
