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


package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/altairalabs/epstein-mcp/internal/config"
	"github.com/altairalabs/epstein-mcp/internal/transport"
)

func TestParseFlags_Defaults(t *testing.T) {
	f, err := parseFlags(nil)
	require.NoError(t, err)

	assert.Equal(t, transport.ModeStdio, f.transport)
	assert.Equal(t, transport.DefaultAddr, f.addr)
	assert.False(t, f.showVersion)
}

func TestParseFlags_WithArgs(t *testing.T) {
	f, err := parseFlags([]string{"--transport=sse", "--addr", "127.0.0.1:9000", "--version"})
	require.NoError(t, err)

	assert.Equal(t, transport.ModeSSE, f.transport)
	assert.Equal(t, "127.0.0.1:9000", f.addr)
	assert.True(t, f.showVersion)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown transport", []string{"--transport=websocket"}},
		{"unknown flag", []string{"--bogus"}},
		{"missing value", []string{"--addr"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestMetricsHandler(t *testing.T) {
	srv := httptest.NewServer(metricsHandler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + transport.HealthPath)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv(config.EnvConfigFile, "")
	t.Setenv(config.EnvBaseURL, "ftp://example.com")

	err := run(context.Background(), &flags{transport: transport.ModeHTTP}, zap.NewNop(), logr.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load configuration")
}

func TestRun_HTTPUntilCancelled(t *testing.T) {
	for _, key := range []string{
		config.EnvConfigFile, config.EnvBaseURL, config.EnvTimeout,
		config.EnvBreakerThreshold, config.EnvBreakerCooldown,
		config.EnvMetricsAddr, config.EnvTracingEnabled, config.EnvTracingSample,
	} {
		t.Setenv(key, "")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := run(ctx, &flags{transport: transport.ModeHTTP, addr: "127.0.0.1:0"}, zap.NewNop(), logr.Discard())
	assert.NoError(t, err)
}
