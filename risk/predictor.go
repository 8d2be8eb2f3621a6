/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package risk

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Predictor kinds selectable from configuration.
const (
	KindRule   = "rule"
	KindScript = "script"
	KindStub   = "stub"
)

// Predictor turns validated input into a risk result.
type Predictor interface {
	Name() string
	Predict(ctx context.Context, in Input) (Result, error)
}

// Options configures NewPredictor.
type Options struct {
	Thresholds Thresholds
	Command    []string
	Timeout    time.Duration
}

// NewPredictor builds the predictor of the given kind.
func NewPredictor(kind string, opts Options) (Predictor, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindRule:
		if err := opts.Thresholds.Validate(); err != nil {
			return nil, err
		}

		return NewRulePredictor(opts.Thresholds), nil
	case KindScript:
		return NewScriptPredictor(opts.Command, opts.Timeout)
	case KindStub:
		return StubPredictor{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPredictor, kind)
	}
}

// RulePredictor applies the fixed threshold table.
type RulePredictor struct {
	thresholds Thresholds
}

// NewRulePredictor returns a rule predictor using t.
func NewRulePredictor(t Thresholds) *RulePredictor {
	return &RulePredictor{thresholds: t}
}

// Name implements Predictor.
func (p *RulePredictor) Name() string {
	return KindRule
}

// Predict reports High Risk when any signal fires. The percentage is the
// share of signals that fired.
func (p *RulePredictor) Predict(_ context.Context, in Input) (Result, error) {
	fired := p.thresholds.Evaluate(in)

	category := CategoryLowRisk
	if len(fired) > 0 {
		category = CategoryHighRisk
	}

	total := len(p.thresholds.Signals())

	return Result{
		Success:        true,
		RiskPercentage: ClampPercentage(float64(len(fired)) / float64(total) * 100),
		RiskCategory:   category,
		Signals:        fired,
		Predictor:      p.Name(),
	}, nil
}

// StubPredictor always answers Low Risk. It stands in while no model is
// available.
type StubPredictor struct{}

// Name implements Predictor.
func (StubPredictor) Name() string {
	return KindStub
}

// Predict implements Predictor.
func (StubPredictor) Predict(context.Context, Input) (Result, error) {
	return Result{
		Success:        true,
		RiskPercentage: 0,
		RiskCategory:   CategoryLowRisk,
		Predictor:      KindStub,
	}, nil
}

// Assess normalises and validates in before handing it to p.
func Assess(ctx context.Context, p Predictor, in Input) (Input, Result, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Normalize()

	if err := in.Validate(); err != nil {
		return in, Result{}, err
	}

	res, err := p.Predict(ctx, in)
	if err != nil {
		return in, res, err
	}

	if res.Predictor == "" {
		res.Predictor = p.Name()
	}

	return in, res, nil
}
