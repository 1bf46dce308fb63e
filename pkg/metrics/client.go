/*
Copyright 2026 Altaira Labs.

SPDX-License-Identifier: Apache-2.0

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Code label values for requests that produced no HTTP status.
const (
	CodeTransportError = "transport_error"
	CodeBreakerOpen    = "breaker_open"
)

// DefaultRequestDurationBuckets are the histogram buckets for remote API calls.
// The client enforces a 30s ceiling, so the top bucket sits there.
var DefaultRequestDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// ClientMetrics holds Prometheus metrics for outbound API requests.
type ClientMetrics struct {
	// RequestsTotal counts requests by client operation and response code.
	RequestsTotal *prometheus.CounterVec
	// RequestDuration observes request latency by client operation.
	RequestDuration *prometheus.HistogramVec
	// FallbacksTotal counts mention lookups answered by the person search.
	FallbacksTotal *prometheus.CounterVec
	// BreakerState reports the circuit breaker state (0 closed, 1 half-open, 2 open).
	BreakerState *prometheus.GaugeVec
}

// ClientMetricsConfig configures the client metrics.
type ClientMetricsConfig struct {
	// DurationBuckets for the request duration histogram.
	// If nil, defaults to DefaultRequestDurationBuckets.
	DurationBuckets []float64
}

// NewClientMetrics creates and registers client metrics on the default registerer.
func NewClientMetrics(cfg ClientMetricsConfig) *ClientMetrics {
	return newClientMetrics(cfg, prometheus.DefaultRegisterer)
}

// NewClientMetricsWithRegisterer creates client metrics on the given registerer.
func NewClientMetricsWithRegisterer(cfg ClientMetricsConfig, reg prometheus.Registerer) *ClientMetrics {
	return newClientMetrics(cfg, reg)
}

func newClientMetrics(cfg ClientMetricsConfig, reg prometheus.Registerer) *ClientMetrics {
	buckets := cfg.DurationBuckets
	if buckets == nil {
		buckets = DefaultRequestDurationBuckets
	}
	factory := promauto.With(reg)

	return &ClientMetrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "api_requests_total",
			Help:      "Total number of requests sent to the remote API",
		}, []string{"operation", "code"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Remote API request duration in seconds",
			Buckets:   buckets,
		}, []string{"operation"}),

		FallbacksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "api_fallbacks_total",
			Help:      "Total number of lookups answered by a fallback operation",
		}, []string{"operation", "fallback"}),

		BreakerState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "api_breaker_state",
			Help:      "Circuit breaker state: 0 closed, 1 half-open, 2 open",
		}, []string{"breaker"}),
	}
}

// RequestMetrics describes one completed outbound request.
type RequestMetrics struct {
	Operation       string
	StatusCode      int    // zero when no HTTP response was received
	Code            string // overrides StatusCode when set
	DurationSeconds float64
}

// RecordRequest records a completed request.
func (m *ClientMetrics) RecordRequest(rm RequestMetrics) {
	code := rm.Code
	if code == "" {
		code = strconv.Itoa(rm.StatusCode)
	}
	m.RequestsTotal.WithLabelValues(rm.Operation, code).Inc()
	m.RequestDuration.WithLabelValues(rm.Operation).Observe(rm.DurationSeconds)
}

// RecordFallback records that operation was answered by fallback.
func (m *ClientMetrics) RecordFallback(operation, fallback string) {
	m.FallbacksTotal.WithLabelValues(operation, fallback).Inc()
}

// RecordBreakerState records the current state of the named breaker.
func (m *ClientMetrics) RecordBreakerState(name string, state int) {
	m.BreakerState.WithLabelValues(name).Set(float64(state))
}

// ClientRecorder is the interface for recording client metrics.
// This allows for no-op implementations when metrics are disabled.
type ClientRecorder interface {
	RecordRequest(rm RequestMetrics)
	RecordFallback(operation, fallback string)
	RecordBreakerState(name string, state int)
}

// NoOpClientMetrics is a no-op implementation for when metrics are disabled.
type NoOpClientMetrics struct{}

// RecordRequest is a no-op.
func (NoOpClientMetrics) RecordRequest(RequestMetrics) {}

// RecordFallback is a no-op.
func (NoOpClientMetrics) RecordFallback(string, string) {}

// RecordBreakerState is a no-op.
func (NoOpClientMetrics) RecordBreakerState(string, int) {}
