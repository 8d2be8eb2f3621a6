/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/humaidq/sugarcheck/db"
	"github.com/humaidq/sugarcheck/risk"
	"github.com/humaidq/sugarcheck/routes"
	"github.com/humaidq/sugarcheck/static"
	"github.com/humaidq/sugarcheck/templates"
)

const shutdownTimeout = 10 * time.Second

var CmdStart = &cli.Command{
	Name:    "start",
	Aliases: []string{"run"},
	Usage:   "Start the web server",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:  "port",
			Value: "8080",
			Usage: "the web server port",
		},
		&cli.StringFlag{
			Name:    "database-url",
			Sources: cli.EnvVars("DATABASE_URL"),
			Usage:   "PostgreSQL connection string; progress tracking is disabled without it",
		},
		&cli.StringFlag{
			Name:    "csrf-secret",
			Sources: cli.EnvVars("CSRF_SECRET"),
			Usage:   "secret used to sign CSRF tokens (random per start if empty)",
		},
		&cli.BoolFlag{
			Name:  "dev",
			Value: false,
			Usage: "enables development mode (templates and static files are read from disk)",
		},
	}, predictorFlags()...),
	Action: start,
}

// serverOptions is everything newRouter needs to build the handler tree.
type serverOptions struct {
	Predictor  risk.Predictor
	Thresholds risk.Thresholds
	CSRFSecret string
	Tracking   bool
	Dev        bool
}

func start(ctx context.Context, cmd *cli.Command) (err error) {
	predictor, thresholds, err := buildPredictor(cmd)
	if err != nil {
		return err
	}
	appLogger.Info("Predictor configured", "predictor", predictor.Name())

	tracking := false
	if databaseURL := cmd.String("database-url"); databaseURL != "" {
		// Set DATABASE_URL for db package
		os.Setenv("DATABASE_URL", databaseURL)

		appLogger.Info("Connecting to database")
		if err := db.Init(ctx); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		appLogger.Info("Syncing database schema")
		if err := db.SyncSchema(ctx); err != nil {
			return fmt.Errorf("failed to sync schema: %w", err)
		}

		tracking = true
	} else {
		appLogger.Warn("No database configured, progress tracking is disabled")
	}

	secret := cmd.String("csrf-secret")
	if secret == "" {
		secret, err = randomSecret()
		if err != nil {
			return err
		}
		appLogger.Warn("CSRF_SECRET not set, forms submitted before a restart will be rejected")
	}

	f, err := newRouter(serverOptions{
		Predictor:  predictor,
		Thresholds: thresholds,
		CSRFSecret: secret,
		Tracking:   tracking,
		Dev:        cmd.Bool("dev"),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", cmd.String("port")),
		Handler:      f,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cmd.Duration("predictor-timeout") + 10*time.Second,
		ErrorLog:     requestStdLogger,
	}

	return serve(ctx, srv)
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate CSRF secret: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// serve runs srv until ctx is cancelled or a termination signal arrives,
// then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info("Starting web server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down web server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// sessionOptions keeps page sessions in PostgreSQL when a database is
// configured and in memory otherwise.
func sessionOptions(persistent bool) session.Options {
	if !persistent {
		return session.Options{}
	}

	return session.Options{
		Initer: db.SessionIniter(),
		Config: db.SessionConfig{Lifetime: db.DefaultSessionLifetime},
	}
}

// newRouter wires middleware and routes. The JSON API is stateless and
// open to any origin; pages use sessions, CSRF protection and templates.
func newRouter(opts serverOptions) (*flamego.Flame, error) {
	templateOpts := template.Options{Directory: "templates"}
	staticOpts := flamego.StaticOptions{Directory: "static"}

	if !opts.Dev {
		fs, err := template.EmbedFS(templates.Templates, ".", []string{".html"})
		if err != nil {
			return nil, fmt.Errorf("failed to load templates: %w", err)
		}

		templateOpts = template.Options{FileSystem: fs}
		staticOpts = flamego.StaticOptions{FileSystem: http.FS(static.Static)}
	}

	f := flamego.New()
	f.Use(flamego.Recovery())
	f.Use(routes.RequestLogger)
	f.Use(flamego.Static(staticOpts))
	f.MapTo(opts.Predictor, (*risk.Predictor)(nil))

	f.Get("/healthz", routes.Healthz)
	f.Get("/metrics", routes.Metrics())

	f.Group("", func() {
		f.Post("/predict", routes.Predict)
		f.Options("/predict", func() {})
		f.Get("/api/estimate/hba1c", routes.EstimateHbA1c)
		f.Get("/api/estimate/bmi", routes.EstimateBMI)
	}, routes.APICORS())

	f.Group("", func() {
		f.Get("/", routes.Home(opts.Thresholds))
		f.Get("/assess", routes.AssessForm)
		f.Post("/assess", csrf.Validate, routes.SubmitAssessment)
		f.Get("/tips", routes.HealthTips)

		if opts.Tracking {
			f.Get("/track", routes.ListTracking)
			f.Post("/track", csrf.Validate, routes.CreateTracking)
			f.Get("/track/{id}", routes.ViewTracking)
			f.Post("/track/{id}/reset", csrf.Validate, routes.ResetTracking)
			f.Post("/track/{id}/record/{record_id}/delete", csrf.Validate, routes.DeleteTrackingRecord)
		}
	},
		session.Sessioner(sessionOptions(opts.Tracking)),
		csrf.Csrfer(csrf.Options{Secret: opts.CSRFSecret}),
		template.Templater(templateOpts),
		routes.NoCacheHeaders(),
		routes.CSRFInjector(),
		routes.FlashInjector(),
		routes.PageContext(opts.Tracking),
	)

	configureEmptyNotFoundHandler(f)

	return f, nil
}

// configureEmptyNotFoundHandler answers unknown paths with a bare 404.
func configureEmptyNotFoundHandler(f *flamego.Flame) {
	f.NotFound(func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNotFound)
	})
}
