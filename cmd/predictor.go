/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/sugarcheck/risk"
)

// predictorFlags configure the scoring backend for start and assess.
func predictorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "predictor",
			Value:   risk.KindRule,
			Sources: cli.EnvVars("PREDICTOR"),
			Usage:   "scoring backend: rule, script or stub",
		},
		&cli.StringFlag{
			Name:    "predictor-cmd",
			Sources: cli.EnvVars("PREDICTOR_CMD"),
			Usage:   "command line of the scoring script (e.g. \"python3 predict.py\")",
		},
		&cli.DurationFlag{
			Name:    "predictor-timeout",
			Value:   risk.DefaultScriptTimeout,
			Sources: cli.EnvVars("PREDICTOR_TIMEOUT"),
			Usage:   "maximum run time of one scoring script invocation",
		},
		&cli.StringFlag{
			Name:    "thresholds",
			Sources: cli.EnvVars("THRESHOLDS_FILE"),
			Usage:   "YAML file overriding the rule thresholds",
		},
	}
}

// buildPredictor loads thresholds and constructs the instrumented predictor
// selected by the flags.
func buildPredictor(cmd *cli.Command) (risk.Predictor, risk.Thresholds, error) {
	thresholds, err := risk.LoadThresholds(cmd.String("thresholds"))
	if err != nil {
		return nil, risk.Thresholds{}, fmt.Errorf("failed to load thresholds: %w", err)
	}

	p, err := risk.NewPredictor(cmd.String("predictor"), risk.Options{
		Thresholds: thresholds,
		Command:    strings.Fields(cmd.String("predictor-cmd")),
		Timeout:    cmd.Duration("predictor-timeout"),
	})
	if err != nil {
		return nil, risk.Thresholds{}, fmt.Errorf("failed to configure predictor: %w", err)
	}

	return risk.Instrument(p), thresholds, nil
}
