// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/sugarcheck/risk"
)

type testSession struct {
	id    string
	data  map[interface{}]interface{}
	flash interface{}
}

func newTestSession() *testSession {
	return &testSession{
		id:   "test-session",
		data: make(map[interface{}]interface{}),
	}
}

func (s *testSession) ID() string {
	return s.id
}

func (s *testSession) RegenerateID(http.ResponseWriter, *http.Request) error {
	return nil
}

func (s *testSession) Get(key interface{}) interface{} {
	return s.data[key]
}

func (s *testSession) Set(key, val interface{}) {
	s.data[key] = val
}

func (s *testSession) SetFlash(val interface{}) {
	s.flash = val
}

func (s *testSession) Delete(key interface{}) {
	delete(s.data, key)
}

func (s *testSession) Flush() {
	s.data = make(map[interface{}]interface{})
}

func (s *testSession) Encode() ([]byte, error) {
	return nil, nil
}

func (s *testSession) HasChanged() bool {
	return true
}

type testCSRF struct {
	token string
}

func (c testCSRF) Token() string {
	return c.token
}

func (c testCSRF) ValidToken(string) bool {
	return true
}

func (c testCSRF) Error(http.ResponseWriter) {}

func (c testCSRF) Validate(flamego.Context) {}

// templateStub records the rendered template name instead of rendering it.
type templateStub struct {
	rw   http.ResponseWriter
	name string
}

func (s *templateStub) HTML(status int, name string) {
	s.name = name
	s.rw.WriteHeader(status)
}

type fakePredictor struct {
	name string
	res  risk.Result
	err  error
}

func (p fakePredictor) Name() string {
	return p.name
}

func (p fakePredictor) Predict(context.Context, risk.Input) (risk.Result, error) {
	return p.res, p.err
}

type testApp struct {
	f    *flamego.Flame
	s    *testSession
	tpl  *templateStub
	data template.Data
}

func newTestApp(p risk.Predictor) *testApp {
	app := &testApp{
		f:    flamego.New(),
		s:    newTestSession(),
		tpl:  &templateStub{},
		data: template.Data{},
	}

	app.f.Use(func(c flamego.Context) {
		app.tpl.rw = c.ResponseWriter()
		c.MapTo(app.s, (*session.Session)(nil))
		c.MapTo(app.tpl, (*template.Template)(nil))
		c.MapTo(p, (*risk.Predictor)(nil))
		c.Map(app.data)
		c.Next()
	})

	return app
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	a.f.ServeHTTP(rec, req)

	return rec
}

func (a *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	a.f.ServeHTTP(rec, req)

	return rec
}

func (a *testApp) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	a.f.ServeHTTP(rec, req)

	return rec
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, wantLocation string) {
	t.Helper()

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	if got := rec.Header().Get("Location"); got != wantLocation {
		t.Fatalf("expected redirect %q, got %q", wantLocation, got)
	}
}

func assertFlash(t *testing.T, s *testSession, wantType FlashType, wantMessage string) {
	t.Helper()

	msg, ok := s.flash.(FlashMessage)
	if !ok {
		t.Fatalf("expected flash message, got %T", s.flash)
	}

	if msg.Type != wantType || msg.Message != wantMessage {
		t.Fatalf("unexpected flash message: %#v", msg)
	}
}

func stubTrackingEnabled(t *testing.T, enabled bool) {
	t.Helper()

	original := trackingEnabledFn
	trackingEnabledFn = func() bool { return enabled }
	t.Cleanup(func() {
		trackingEnabledFn = original
	})
}

func TestSetFlashHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		set     func(session.Session, string)
		wantTyp FlashType
	}{
		{name: "error", set: SetErrorFlash, wantTyp: FlashError},
		{name: "success", set: SetSuccessFlash, wantTyp: FlashSuccess},
		{name: "info", set: SetInfoFlash, wantTyp: FlashInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestSession()
			tt.set(s, "hello")

			assertFlash(t, s, tt.wantTyp, "hello")
		})
	}
}

func TestCSRFInjector(t *testing.T) {
	t.Parallel()

	handler, ok := CSRFInjector().(func(csrf.CSRF, template.Data))
	if !ok {
		t.Fatalf("unexpected CSRFInjector handler type")
	}

	data := template.Data{}
	handler(testCSRF{token: "token-123"}, data)

	if data["csrf_token"] != "token-123" {
		t.Fatalf("expected csrf token to be injected, got %#v", data["csrf_token"])
	}
}

func TestFlashInjector(t *testing.T) {
	t.Parallel()

	handler, ok := FlashInjector().(func(session.Flash, template.Data))
	if !ok {
		t.Fatalf("unexpected FlashInjector handler type")
	}

	data := template.Data{}
	handler(nil, data)

	if _, exists := data["Flash"]; exists {
		t.Fatalf("expected no flash without a pending message")
	}

	handler(FlashMessage{Type: FlashSuccess, Message: "saved"}, data)

	msg, ok := data["Flash"].(FlashMessage)
	if !ok || msg.Message != "saved" {
		t.Fatalf("expected flash to be injected, got %#v", data["Flash"])
	}
}

func TestNoCacheHeaders(t *testing.T) {
	t.Parallel()

	f := flamego.New()
	f.Use(NoCacheHeaders())
	f.Get("/", func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	if got := rec.Header().Get("Cache-Control"); got != "no-store, max-age=0" {
		t.Fatalf("unexpected Cache-Control: %q", got)
	}

	if got := rec.Header().Get("X-Robots-Tag"); !strings.Contains(got, "noindex") {
		t.Fatalf("unexpected X-Robots-Tag: %q", got)
	}
}

func TestAPICORS(t *testing.T) {
	t.Parallel()

	f := flamego.New()
	f.Group("", func() {
		f.Post("/predict", func(c flamego.Context) {
			c.ResponseWriter().WriteHeader(http.StatusTeapot)
		})
		f.Options("/predict", func(c flamego.Context) {})
	}, APICORS())

	req := httptest.NewRequest(http.MethodOptions, "/predict", nil)
	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected preflight status %d, got %d", http.StatusNoContent, rec.Code)
	}

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected open CORS origin, got %q", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/predict", nil)
	rec = httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected handler to run for POST, got %d", rec.Code)
	}

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected CORS header on POST, got %q", got)
	}
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    float64
		wantErr error
	}{
		{raw: "12.5", want: 12.5},
		{raw: " 80 ", want: 80},
		{raw: "", wantErr: errMissingNumber},
		{raw: "abc", wantErr: errInvalidNumber},
		{raw: "NaN", wantErr: errInvalidNumber},
		{raw: "Inf", wantErr: errInvalidNumber},
	}

	for _, tt := range tests {
		got, err := parseNumber(tt.raw)
		if err != tt.wantErr {
			t.Fatalf("parseNumber(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
		}

		if err == nil && got != tt.want {
			t.Fatalf("parseNumber(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	t.Parallel()

	var got string

	f := flamego.New()
	f.Get("/", func(c flamego.Context) {
		got = clientIP(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	f.ServeHTTP(httptest.NewRecorder(), req)

	if got != "203.0.113.7" {
		t.Fatalf("expected first forwarded address, got %q", got)
	}
}
