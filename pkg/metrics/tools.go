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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultToolDurationBuckets are the default histogram buckets for tool call durations.
// A tool call is at most two sequential API requests.
var DefaultToolDurationBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}

// ToolMetrics holds Prometheus metrics for MCP tool invocations.
type ToolMetrics struct {
	// ToolCallsTotal is the total number of tool calls by tool and status.
	ToolCallsTotal *prometheus.CounterVec
	// ToolCallDuration is the histogram of tool call durations.
	ToolCallDuration *prometheus.HistogramVec
	// ToolCallsActive is the number of tool calls in flight.
	ToolCallsActive *prometheus.GaugeVec
}

// ToolMetricsConfig configures the tool metrics.
type ToolMetricsConfig struct {
	// DurationBuckets for the tool call duration histogram.
	// If nil, defaults to DefaultToolDurationBuckets.
	DurationBuckets []float64
}

// NewToolMetrics creates and registers tool metrics on the default registerer.
func NewToolMetrics(cfg ToolMetricsConfig) *ToolMetrics {
	return newToolMetrics(cfg, prometheus.DefaultRegisterer)
}

// NewToolMetricsWithRegisterer creates tool metrics on the given registerer.
func NewToolMetricsWithRegisterer(cfg ToolMetricsConfig, reg prometheus.Registerer) *ToolMetrics {
	return newToolMetrics(cfg, reg)
}

func newToolMetrics(cfg ToolMetricsConfig, reg prometheus.Registerer) *ToolMetrics {
	buckets := cfg.DurationBuckets
	if buckets == nil {
		buckets = DefaultToolDurationBuckets
	}
	factory := promauto.With(reg)

	return &ToolMetrics{
		ToolCallsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "tool_calls_total",
			Help:      "Total number of tool calls",
		}, []string{"tool", "status"}),

		ToolCallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "tool_call_duration_seconds",
			Help:      "Tool call duration in seconds",
			Buckets:   buckets,
		}, []string{"tool"}),

		ToolCallsActive: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "tool_calls_active",
			Help:      "Number of tool calls currently executing",
		}, []string{"tool"}),
	}
}

// ToolCallMetrics contains the metrics for a single tool call.
type ToolCallMetrics struct {
	ToolName        string
	DurationSeconds float64
	Success         bool
}

// RecordToolStart records the start of a tool call.
func (m *ToolMetrics) RecordToolStart(toolName string) {
	m.ToolCallsActive.WithLabelValues(toolName).Inc()
}

// RecordToolCall records the end of a tool call.
func (m *ToolMetrics) RecordToolCall(tc ToolCallMetrics) {
	status := StatusSuccess
	if !tc.Success {
		status = StatusError
	}

	m.ToolCallsActive.WithLabelValues(tc.ToolName).Dec()
	m.ToolCallsTotal.WithLabelValues(tc.ToolName, status).Inc()
	m.ToolCallDuration.WithLabelValues(tc.ToolName).Observe(tc.DurationSeconds)
}

// ToolRecorder is the interface for recording tool metrics.
type ToolRecorder interface {
	RecordToolStart(toolName string)
	RecordToolCall(tc ToolCallMetrics)
}

// NoOpToolMetrics is a no-op implementation for when metrics are disabled.
type NoOpToolMetrics struct{}

// RecordToolStart is a no-op.
func (NoOpToolMetrics) RecordToolStart(string) {}

// RecordToolCall is a no-op.
func (NoOpToolMetrics) RecordToolCall(ToolCallMetrics) {}
