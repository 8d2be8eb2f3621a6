// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/humaidq/sugarcheck/db"
	"github.com/humaidq/sugarcheck/risk"
)

var errDatabaseDown = errors.New("database down")

func newTrackApp() *testApp {
	app := newTestApp(risk.StubPredictor{})
	app.f.Get("/track", ListTracking)
	app.f.Post("/track", CreateTracking)
	app.f.Get("/track/{id}", ViewTracking)
	app.f.Post("/track/{id}/reset", ResetTracking)
	app.f.Post("/track/{id}/record/{record_id}/delete", DeleteTrackingRecord)

	return app
}

func swapFn[T any](t *testing.T, target *T, replacement T) {
	t.Helper()

	original := *target
	*target = replacement
	t.Cleanup(func() {
		*target = original
	})
}

func sampleRecords(profileID uuid.UUID) []db.AssessmentRecord {
	now := time.Date(2025, time.June, 10, 8, 30, 0, 0, time.UTC)

	return []db.AssessmentRecord{
		{ID: uuid.New(), ProfileID: profileID, BloodGlucose: 132, BMI: 29.1, RiskPercentage: 25, RiskCategory: risk.CategoryHighRisk, CreatedAt: now},
		{ID: uuid.New(), ProfileID: profileID, BloodGlucose: 110, BMI: 28.4, RiskPercentage: 0, RiskCategory: risk.CategoryLowRisk, CreatedAt: now.Add(-72 * time.Hour)},
	}
}

func TestGenerateHistoryChart(t *testing.T) {
	t.Parallel()

	chart, err := generateHistoryChart(nil)
	if err != nil || chart != "" {
		t.Fatalf("expected empty chart without records, got %q, %v", chart, err)
	}

	chart, err = generateHistoryChart(sampleRecords(uuid.New()))
	if err != nil {
		t.Fatalf("generateHistoryChart failed: %v", err)
	}

	for _, want := range []string{"Assessment History", "Glucose (mg/dL)", "Risk (%)"} {
		if !strings.Contains(chart, want) {
			t.Fatalf("expected chart to contain %q", want)
		}
	}

	if strings.Index(chart, "Jun 7, 2025") > strings.Index(chart, "Jun 10, 2025") {
		t.Fatalf("expected oldest assessment first on the x axis")
	}
}

func TestListTracking(t *testing.T) {
	swapFn(t, &listTrackingProfilesFn, func(context.Context) ([]db.TrackingProfileSummary, error) {
		return nil, errDatabaseDown
	})

	app := newTrackApp()
	app.get("/track")

	if app.tpl.name != "track_list" {
		t.Fatalf("expected track_list template, got %q", app.tpl.name)
	}

	if app.data["Error"] != "Failed to load tracking profiles" {
		t.Fatalf("expected load error, got %v", app.data["Error"])
	}
}

func TestCreateTracking(t *testing.T) {
	profileID := uuid.NewString()

	var gotName string
	var gotGender *risk.Gender
	swapFn(t, &createTrackingProfileFn, func(_ context.Context, name string, gender *risk.Gender) (string, error) {
		gotName = name
		gotGender = gender
		return profileID, nil
	})

	app := newTrackApp()
	rec := app.postForm("/track", url.Values{"name": {"  Sam  "}, "gender": {"other"}})

	assertRedirect(t, rec, "/track/"+profileID)
	assertFlash(t, app.s, FlashSuccess, "Tracking profile created")

	if gotName != "Sam" || gotGender == nil || *gotGender != risk.GenderOther {
		t.Fatalf("unexpected create arguments: %q %v", gotName, gotGender)
	}
}

func TestCreateTrackingRejectsInput(t *testing.T) {
	swapFn(t, &createTrackingProfileFn, func(context.Context, string, *risk.Gender) (string, error) {
		t.Fatalf("create should not be called")
		return "", nil
	})

	tests := []struct {
		name      string
		form      url.Values
		wantFlash string
	}{
		{name: "missing name", form: url.Values{"name": {" "}}, wantFlash: "Profile name is required"},
		{name: "bad gender", form: url.Values{"name": {"Sam"}, "gender": {"robot"}}, wantFlash: "Invalid gender"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTrackApp()
			rec := app.postForm("/track", tt.form)

			assertRedirect(t, rec, "/track")
			assertFlash(t, app.s, FlashError, tt.wantFlash)
		})
	}
}

func TestCreateTrackingDatabaseFailure(t *testing.T) {
	swapFn(t, &createTrackingProfileFn, func(context.Context, string, *risk.Gender) (string, error) {
		return "", errDatabaseDown
	})

	app := newTrackApp()
	rec := app.postForm("/track", url.Values{"name": {"Sam"}})

	assertRedirect(t, rec, "/track")
	assertFlash(t, app.s, FlashError, "Failed to create tracking profile")
}

func TestViewTracking(t *testing.T) {
	profileID := uuid.New()

	swapFn(t, &getTrackingProfileFn, func(_ context.Context, id string) (*db.TrackingProfile, error) {
		if id != profileID.String() {
			return nil, db.ErrTrackingProfileNotFound
		}
		return &db.TrackingProfile{ID: profileID, Name: "Sam"}, nil
	})
	swapFn(t, &listAssessmentsFn, func(context.Context, string) ([]db.AssessmentRecord, error) {
		return sampleRecords(profileID), nil
	})

	app := newTrackApp()
	app.get("/track/" + profileID.String())

	if app.tpl.name != "track_view" {
		t.Fatalf("expected track_view template, got %q", app.tpl.name)
	}

	stats, ok := app.data["Stats"].(db.AssessmentStats)
	if !ok || stats.Count != 2 || stats.AverageGlucose != 121 {
		t.Fatalf("unexpected stats: %#v", app.data["Stats"])
	}

	if _, ok := app.data["Chart"]; !ok {
		t.Fatalf("expected chart in template data")
	}

	breadcrumbs, ok := app.data["Breadcrumbs"].([]BreadcrumbItem)
	if !ok || len(breadcrumbs) != 2 || breadcrumbs[1].Name != "Sam" || !breadcrumbs[1].IsCurrent {
		t.Fatalf("unexpected breadcrumbs: %#v", app.data["Breadcrumbs"])
	}

	missing := newTrackApp()
	rec := missing.get("/track/" + uuid.NewString())

	assertRedirect(t, rec, "/track")
	assertFlash(t, missing.s, FlashError, "Profile not found")
}

func TestResetTracking(t *testing.T) {
	profileID := uuid.NewString()

	tests := []struct {
		name         string
		err          error
		wantLocation string
		wantType     FlashType
		wantFlash    string
	}{
		{name: "deleted", wantLocation: "/track", wantType: FlashSuccess, wantFlash: "Tracking profile and its history were deleted"},
		{name: "missing", err: db.ErrTrackingProfileNotFound, wantLocation: "/track", wantType: FlashError, wantFlash: "Profile not found"},
		{name: "failure", err: errDatabaseDown, wantLocation: "/track/" + profileID, wantType: FlashError, wantFlash: "Failed to reset tracking profile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			swapFn(t, &deleteTrackingProfileFn, func(_ context.Context, id string) error {
				if id != profileID {
					t.Fatalf("unexpected profile id %q", id)
				}
				return tt.err
			})

			app := newTrackApp()
			rec := app.postForm("/track/"+profileID+"/reset", url.Values{})

			assertRedirect(t, rec, tt.wantLocation)
			assertFlash(t, app.s, tt.wantType, tt.wantFlash)
		})
	}
}

func TestDeleteTrackingRecord(t *testing.T) {
	profileID := uuid.NewString()
	recordID := uuid.NewString()

	tests := []struct {
		name      string
		err       error
		wantType  FlashType
		wantFlash string
	}{
		{name: "deleted", wantType: FlashSuccess, wantFlash: "Record deleted"},
		{name: "missing", err: db.ErrAssessmentNotFound, wantType: FlashError, wantFlash: "Record not found"},
		{name: "failure", err: errDatabaseDown, wantType: FlashError, wantFlash: "Failed to delete record"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotProfile, gotRecord string
			swapFn(t, &deleteAssessmentFn, func(_ context.Context, profile, record string) error {
				gotProfile, gotRecord = profile, record
				return tt.err
			})

			app := newTrackApp()
			rec := app.postForm("/track/"+profileID+"/record/"+recordID+"/delete", url.Values{})

			assertRedirect(t, rec, "/track/"+profileID)
			assertFlash(t, app.s, tt.wantType, tt.wantFlash)

			if gotProfile != profileID || gotRecord != recordID {
				t.Fatalf("unexpected delete arguments: %q %q", gotProfile, gotRecord)
			}
		})
	}
}

func TestHomeAndTipsPages(t *testing.T) {
	t.Parallel()

	app := newTestApp(risk.StubPredictor{})
	app.f.Get("/", Home(risk.DefaultThresholds()))
	app.f.Get("/tips", HealthTips)

	app.get("/")
	if app.tpl.name != "home" {
		t.Fatalf("expected home template, got %q", app.tpl.name)
	}

	signals, ok := app.data["Signals"].([]risk.Signal)
	if !ok || len(signals) != 4 || signals[0].Limit != 125 {
		t.Fatalf("unexpected signals: %#v", app.data["Signals"])
	}

	app.get("/tips")
	if app.tpl.name != "tips" {
		t.Fatalf("expected tips template, got %q", app.tpl.name)
	}

	tips, ok := app.data["Tips"].(risk.Tips)
	if !ok || len(tips.Exercises) != 6 || len(tips.Remedies) != 3 || len(tips.Lifestyle) == 0 {
		t.Fatalf("unexpected tips: %#v", app.data["Tips"])
	}
}
