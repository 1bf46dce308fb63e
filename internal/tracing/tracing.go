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

// Package tracing provides OpenTelemetry tracing for tool invocations and
// the remote API requests they issue.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the name of the tracer used for server spans.
const TracerName = "epstein-mcp"

// Span attribute keys.
const (
	AttrToolName       = "tool.name"
	AttrToolDurationMs = "tool.duration_ms"
	AttrRequestID      = "request.id"
	AttrAPIOperation   = "api.operation"
	AttrAPIPath        = "api.path"
	AttrAPIFallback    = "api.fallback"
	AttrHTTPStatusCode = "http.response.status_code"
)

// Config holds tracing configuration.
type Config struct {
	// Enabled enables tracing.
	Enabled bool

	// Endpoint is the OTLP collector endpoint (e.g., "localhost:4317").
	Endpoint string

	// ServiceName is the service name for traces.
	ServiceName string

	// ServiceVersion is the service version.
	ServiceVersion string

	// Environment is the deployment environment (e.g., "production", "staging").
	Environment string

	// SampleRate is the sampling rate (0.0 to 1.0). Default 1.0 (all traces).
	SampleRate float64

	// Insecure disables TLS for the OTLP connection.
	Insecure bool
}

// Provider wraps the OpenTelemetry TracerProvider.
type Provider struct {
	tp     *sdktrace.TracerProvider
	tracer trace.Tracer
}

// NewProvider creates a new tracing provider with the given configuration.
// A disabled configuration yields a provider backed by the global no-op tracer.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{
			tracer: otel.Tracer(TracerName),
		}, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = TracerName
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}

	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(opts...))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironment(cfg.Environment),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(samplerFor(cfg.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Provider{
		tp:     tp,
		tracer: tp.Tracer(TracerName),
	}, nil
}

func samplerFor(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1.0:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(rate)
	}
}

// NewTestProvider creates a Provider from a pre-configured TracerProvider.
// This is intended for tests that supply an in-memory exporter.
func NewTestProvider(tp *sdktrace.TracerProvider) *Provider {
	return &Provider{
		tp:     tp,
		tracer: tp.Tracer(TracerName),
	}
}

// Tracer returns the tracer for creating spans.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// TracerProvider returns the configured provider if tracing is enabled, or
// the global provider otherwise.
func (p *Provider) TracerProvider() trace.TracerProvider {
	if p.tp != nil {
		return p.tp
	}
	return otel.GetTracerProvider()
}

// Shutdown flushes and shuts down the tracer provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.tp != nil {
		return p.tp.Shutdown(ctx)
	}
	return nil
}

// StartToolSpan starts a server span for one tool invocation.
func (p *Provider) StartToolSpan(ctx context.Context, toolName, requestID string) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, "tool."+toolName,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String(AttrToolName, toolName),
			attribute.String(AttrRequestID, requestID),
		),
	)
}

// StartAPISpan starts a client span for one remote API operation.
func (p *Provider) StartAPISpan(ctx context.Context, operation, path string) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, "api."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(AttrAPIOperation, operation),
			attribute.String(AttrAPIPath, path),
		),
	)
}

// RecordError records an error on the span.
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSuccess marks the span as successful.
func SetSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "success")
}

// AddToolResult adds tool execution result info to a span.
func AddToolResult(span trace.Span, isError bool, durationMs int64) {
	if isError {
		span.SetStatus(codes.Error, "tool execution failed")
	}
	span.SetAttributes(attribute.Int64(AttrToolDurationMs, durationMs))
}

// AddHTTPStatus records the response status code on a span.
func AddHTTPStatus(span trace.Span, statusCode int) {
	span.SetAttributes(attribute.Int(AttrHTTPStatusCode, statusCode))
}

// AddFallback marks a span as answered by the named fallback operation.
func AddFallback(span trace.Span, fallback string) {
	span.SetAttributes(attribute.String(AttrAPIFallback, fallback))
}
