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

// Package tools exposes the Epstein Exposed API client as MCP tools.
package tools

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/trace"

	"github.com/altairalabs/epstein-mcp/internal/exposed"
	"github.com/altairalabs/epstein-mcp/internal/tracing"
	"github.com/altairalabs/epstein-mcp/pkg/logctx"
	"github.com/altairalabs/epstein-mcp/pkg/metrics"
)

// API is the subset of *exposed.Client the tools call.
type API interface {
	SearchPersons(ctx context.Context, q exposed.PersonQuery) (*exposed.Envelope[exposed.Person], error)
	ListPersons(ctx context.Context, page, perPage int) (*exposed.Envelope[exposed.Person], error)
	GetPerson(ctx context.Context, id string) (*exposed.Person, error)
	SearchDocuments(ctx context.Context, q exposed.DocumentQuery) (*exposed.Envelope[exposed.Document], error)
	ListDocuments(ctx context.Context, page, perPage int, category string) (*exposed.Envelope[exposed.Document], error)
	GetDocument(ctx context.Context, id string) (*exposed.Document, error)
	SearchFlights(ctx context.Context, q exposed.FlightQuery) (*exposed.Envelope[exposed.Flight], error)
	Search(ctx context.Context, q exposed.CrossQuery) (*exposed.CrossSearchResult, error)
	GetPersonMentions(ctx context.Context, name string, page, perPage int) (*exposed.Mentions, error)
}

var _ API = (*exposed.Client)(nil)

// Option is a functional option for configuring a Toolset.
type Option func(*Toolset)

// WithMetrics sets the tool metrics recorder.
func WithMetrics(m metrics.ToolRecorder) Option {
	return func(ts *Toolset) {
		ts.metrics = m
	}
}

// WithTracing creates a server span for every tool call.
func WithTracing(p *tracing.Provider) Option {
	return func(ts *Toolset) {
		ts.tracing = p
	}
}

// Toolset holds the dependencies shared by every tool handler. A single
// Toolset, and the API client inside it, serves all sessions.
type Toolset struct {
	api     API
	log     logr.Logger
	metrics metrics.ToolRecorder
	tracing *tracing.Provider
}

// NewToolset creates a Toolset backed by api.
func NewToolset(api API, log logr.Logger, opts ...Option) *Toolset {
	ts := &Toolset{
		api:     api,
		log:     log.WithName("tools"),
		metrics: metrics.NoOpToolMetrics{},
	}
	for _, opt := range opts {
		opt(ts)
	}
	return ts
}

// invoke runs one tool call: it tags the context with a fresh request id,
// opens a span, calls the API, and serializes the result. API errors are
// returned unchanged so the SDK reports them as tool errors.
func (ts *Toolset) invoke(ctx context.Context, req *mcp.CallToolRequest, name string, call func(context.Context) (any, error)) (*mcp.CallToolResult, any, error) {
	requestID := uuid.NewString()
	fields := &logctx.LoggingFields{RequestID: requestID, Tool: name}
	if req != nil && req.Session != nil {
		fields.SessionID = req.Session.ID()
	}
	ctx = logctx.WithLoggingContext(ctx, fields)
	log := logctx.LoggerWithContext(ts.log, ctx)

	var span trace.Span
	if ts.tracing != nil {
		ctx, span = ts.tracing.StartToolSpan(ctx, name, requestID)
		defer span.End()
	}

	ts.metrics.RecordToolStart(name)
	start := time.Now()

	result, err := call(ctx)
	var text string
	if err == nil {
		text = ToText(result)
	}

	elapsed := time.Since(start)
	ts.metrics.RecordToolCall(metrics.ToolCallMetrics{
		ToolName:        name,
		DurationSeconds: elapsed.Seconds(),
		Success:         err == nil,
	})
	if span != nil {
		tracing.AddToolResult(span, err != nil, elapsed.Milliseconds())
		if err != nil {
			tracing.RecordError(span, err)
		} else {
			tracing.SetSuccess(span)
		}
	}

	if err != nil {
		log.Info("tool call failed", "duration", elapsed, "error", err.Error())
		return nil, nil, err
	}
	log.V(1).Info("tool call completed", "duration", elapsed, "bytes", len(text))
	return textResult(text), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
