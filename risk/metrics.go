/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package risk

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	predictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sugarcheck_predictions_total",
		Help: "Completed predictions by predictor and risk category",
	}, []string{"predictor", "category"})

	predictionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sugarcheck_prediction_errors_total",
		Help: "Failed predictions by predictor",
	}, []string{"predictor"})

	predictionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sugarcheck_prediction_duration_seconds",
		Help:    "Prediction latency by predictor",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
	}, []string{"predictor"})
)

// instrumented records prometheus metrics around another predictor.
type instrumented struct {
	next Predictor
}

// Instrument wraps p so that every prediction is counted and timed.
func Instrument(p Predictor) Predictor {
	if _, ok := p.(*instrumented); ok {
		return p
	}

	return &instrumented{next: p}
}

func (i *instrumented) Name() string {
	return i.next.Name()
}

func (i *instrumented) Predict(ctx context.Context, in Input) (Result, error) {
	name := i.next.Name()
	start := time.Now()

	res, err := i.next.Predict(ctx, in)

	predictionDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		predictionErrors.WithLabelValues(name).Inc()
		return res, err
	}

	predictionsTotal.WithLabelValues(name, string(res.RiskCategory)).Inc()

	return res, nil
}
