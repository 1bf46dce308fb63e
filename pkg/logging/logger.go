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

// Package logging provides logger construction for the epstein-mcp binary.
//
// All output goes to stderr. When the server runs over the stdio transport,
// stdout carries the MCP wire protocol and must stay clean.
package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// EnvLogLevel is the environment variable that selects the log level.
const EnvLogLevel = "LOG_LEVEL"

// ServiceName is attached to every log entry.
const ServiceName = "epstein-mcp"

// NewLogger creates a logr.Logger backed by Zap.
// Returns the logger and a sync function the caller should defer.
func NewLogger() (logr.Logger, func(), error) {
	zapLog, err := NewZapLogger()
	if err != nil {
		return logr.Logger{}, nil, err
	}
	sync := func() { _ = zapLog.Sync() }
	return zapr.NewLogger(zapLog), sync, nil
}

// NewZapLogger creates a *zap.Logger configured via the LOG_LEVEL env var.
// Use this when you need both a logr.Logger (via zapr.NewLogger) and an
// *slog.Logger (via SlogFromZap) backed by the same Zap core.
//
// "debug" or "trace" selects a development config with debug-level output.
// "warn" and "error" raise the production level. Anything else, including
// empty, selects the production config at info level.
func NewZapLogger() (*zap.Logger, error) {
	return newZapLogger(os.Getenv(EnvLogLevel))
}

// SlogFromZap creates an *slog.Logger that writes directly to the Zap core.
// The MCP SDK logs through slog; this keeps its output in the same JSON
// stream as the rest of the process.
func SlogFromZap(z *zap.Logger) *slog.Logger {
	return slog.New(zapslog.NewHandler(z.Core(), zapslog.WithCaller(true)))
}

func newZapLogger(level string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "trace":
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn", "warning":
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		cfg = zap.NewProductionConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.InitialFields = map[string]any{"service": ServiceName}
	return cfg.Build()
}
