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

// Package logctx carries structured logging fields in context.Context so that
// the tool layer and the API client log the same request and tool identifiers.
package logctx

import (
	"context"

	"github.com/go-logr/logr"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const (
	// ContextKeyRequestID identifies a single tool invocation.
	ContextKeyRequestID contextKey = "request_id"

	// ContextKeySessionID identifies the MCP client session.
	ContextKeySessionID contextKey = "session_id"

	// ContextKeyTool identifies the tool being called.
	ContextKeyTool contextKey = "tool"

	// ContextKeyOperation identifies the API client operation.
	ContextKeyOperation contextKey = "operation"
)

// allContextKeys lists the keys extracted for logging, in output order.
var allContextKeys = []contextKey{
	ContextKeyRequestID,
	ContextKeySessionID,
	ContextKeyTool,
	ContextKeyOperation,
}

// WithRequestID returns a new context with the request ID set.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// WithSessionID returns a new context with the session ID set.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ContextKeySessionID, sessionID)
}

// WithTool returns a new context with the tool name set.
func WithTool(ctx context.Context, tool string) context.Context {
	return context.WithValue(ctx, ContextKeyTool, tool)
}

// WithOperation returns a new context with the client operation set.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, ContextKeyOperation, operation)
}

// LoggingFields holds all standard logging context fields.
type LoggingFields struct {
	RequestID string
	SessionID string
	Tool      string
	Operation string
}

// WithLoggingContext returns a new context with multiple logging fields set at once.
// Only non-empty values are set.
func WithLoggingContext(ctx context.Context, fields *LoggingFields) context.Context {
	if fields == nil {
		return ctx
	}
	if fields.RequestID != "" {
		ctx = WithRequestID(ctx, fields.RequestID)
	}
	if fields.SessionID != "" {
		ctx = WithSessionID(ctx, fields.SessionID)
	}
	if fields.Tool != "" {
		ctx = WithTool(ctx, fields.Tool)
	}
	if fields.Operation != "" {
		ctx = WithOperation(ctx, fields.Operation)
	}
	return ctx
}

// ExtractLoggingFields extracts all logging fields from a context.
func ExtractLoggingFields(ctx context.Context) LoggingFields {
	return LoggingFields{
		RequestID: stringValue(ctx, ContextKeyRequestID),
		SessionID: stringValue(ctx, ContextKeySessionID),
		Tool:      stringValue(ctx, ContextKeyTool),
		Operation: stringValue(ctx, ContextKeyOperation),
	}
}

// LogrValues returns the non-empty context values as key-value pairs
// suitable for logr.Logger.WithValues().
func LogrValues(ctx context.Context) []any {
	var values []any
	for _, key := range allContextKeys {
		if s := stringValue(ctx, key); s != "" {
			values = append(values, string(key), s)
		}
	}
	return values
}

// LoggerWithContext returns a logger enriched with all context values.
func LoggerWithContext(log logr.Logger, ctx context.Context) logr.Logger {
	values := LogrValues(ctx)
	if len(values) == 0 {
		return log
	}
	return log.WithValues(values...)
}

// RequestID extracts the request ID from the context.
func RequestID(ctx context.Context) string {
	return stringValue(ctx, ContextKeyRequestID)
}

// Tool extracts the tool name from the context.
func Tool(ctx context.Context) string {
	return stringValue(ctx, ContextKeyTool)
}

func stringValue(ctx context.Context, key contextKey) string {
	if v := ctx.Value(key); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
