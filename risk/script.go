/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package risk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/humaidq/sugarcheck/logging"
)

// DefaultScriptTimeout bounds a single script invocation.
const DefaultScriptTimeout = 30 * time.Second

// maxScriptStderr caps how much stderr is kept for logging.
const maxScriptStderr = 4096

var logger = logging.Logger(logging.SourcePredictor)

// scriptRequest is written to the script's stdin.
type scriptRequest struct {
	Gender         string  `json:"gender"`
	Age            int     `json:"age"`
	Hypertension   int     `json:"hypertension"`
	HeartDisease   int     `json:"heart_disease"`
	SmokingHistory string  `json:"smoking_history"`
	BMI            float64 `json:"bmi"`
	HbA1c          float64 `json:"HbA1c_level"`
	BloodGlucose   float64 `json:"blood_glucose_level"`
}

// scriptResponse is read from the script's stdout.
type scriptResponse struct {
	Success        bool     `json:"success"`
	RiskPercentage *float64 `json:"risk_percentage"`
	RiskCategory   string   `json:"risk_category"`
	Error          string   `json:"error"`
	Details        string   `json:"details"`
}

// ScriptPredictor runs an external scoring program once per prediction.
type ScriptPredictor struct {
	command []string
	timeout time.Duration
}

// NewScriptPredictor returns a predictor running command. The first element
// is the program, the rest are its arguments.
func NewScriptPredictor(command []string, timeout time.Duration) (*ScriptPredictor, error) {
	if len(command) == 0 || strings.TrimSpace(command[0]) == "" {
		return nil, ErrScriptNotConfigured
	}

	if timeout <= 0 {
		timeout = DefaultScriptTimeout
	}

	return &ScriptPredictor{
		command: append([]string(nil), command...),
		timeout: timeout,
	}, nil
}

// Name implements Predictor.
func (p *ScriptPredictor) Name() string {
	return KindScript
}

// Predict writes in as JSON to the script and parses its answer.
func (p *ScriptPredictor) Predict(ctx context.Context, in Input) (Result, error) {
	payload, err := json.Marshal(scriptRequest{
		Gender:         string(in.Gender),
		Age:            in.Age,
		Hypertension:   in.Hypertension,
		HeartDisease:   in.HeartDisease,
		SmokingHistory: string(in.SmokingHistory),
		BMI:            in.BMI,
		HbA1c:          in.HbA1c,
		BloodGlucose:   in.BloodGlucose,
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode script input: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, p.command[0], p.command[1:]...)
	cmd.Stdin = bytes.NewReader(payload)
	// Children of the script may keep stdout open after it is killed.
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()

	if stderr.Len() > 0 {
		logger.Debug("predictor stderr", "command", p.command[0], "stderr", truncate(stderr.String(), maxScriptStderr))
	}

	if runErr != nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return Result{}, fmt.Errorf("%w: timed out after %s", ErrScriptFailed, p.timeout)
	}

	res, parseErr := parseScriptOutput(stdout.Bytes())

	switch {
	case parseErr == nil && runErr == nil:
		logger.Debug("predictor finished", "command", p.command[0], "duration_ms", time.Since(start).Milliseconds())
		return res, nil
	case errors.Is(parseErr, ErrPredictionRejected):
		return res, parseErr
	case runErr != nil:
		return Result{}, fmt.Errorf("%w: %w", ErrScriptFailed, runErr)
	default:
		return Result{}, parseErr
	}
}

// parseScriptOutput decodes the last non-empty stdout line, so that stray
// prints before the answer are tolerated.
func parseScriptOutput(out []byte) (Result, error) {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")

	line := strings.TrimSpace(lines[len(lines)-1])
	if line == "" {
		return Result{}, fmt.Errorf("%w: empty output", ErrScriptOutput)
	}

	var resp scriptResponse
	if err := json.Unmarshal([]byte(line), &resp); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrScriptOutput, err)
	}

	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "prediction failed"
		}

		return Result{Success: false, Predictor: KindScript, Error: msg}, fmt.Errorf("%w: %s", ErrPredictionRejected, msg)
	}

	if resp.RiskPercentage == nil {
		return Result{}, fmt.Errorf("%w: missing risk_percentage", ErrScriptOutput)
	}

	pct := ClampPercentage(*resp.RiskPercentage)

	category := Category(strings.TrimSpace(resp.RiskCategory))
	if !category.Valid() {
		if category != "" {
			logger.Warn("Ignoring unknown risk category from predictor", "category", category)
		}

		category = CategoryForPercentage(pct)
	}

	return Result{
		Success:        true,
		RiskPercentage: pct,
		RiskCategory:   category,
		Predictor:      KindScript,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n]
}
