/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"github.com/flamego/flamego"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics serves the Prometheus exposition of the default registry.
func Metrics() flamego.Handler {
	h := promhttp.Handler()

	return func(c flamego.Context) {
		h.ServeHTTP(c.ResponseWriter(), c.Request().Request)
	}
}
