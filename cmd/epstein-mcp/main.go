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

// Command epstein-mcp serves the Epstein Exposed API as MCP tools.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/altairalabs/epstein-mcp/internal/config"
	"github.com/altairalabs/epstein-mcp/internal/exposed"
	"github.com/altairalabs/epstein-mcp/internal/httputil"
	"github.com/altairalabs/epstein-mcp/internal/tools"
	"github.com/altairalabs/epstein-mcp/internal/tracing"
	"github.com/altairalabs/epstein-mcp/internal/transport"
	"github.com/altairalabs/epstein-mcp/pkg/logging"
	"github.com/altairalabs/epstein-mcp/pkg/metrics"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const telemetryShutdownTimeout = 5 * time.Second

// flags groups the CLI flags.
type flags struct {
	transport   transport.Mode
	addr        string
	showVersion bool
}

func parseFlags(args []string) (*flags, error) {
	fs := pflag.NewFlagSet("epstein-mcp", pflag.ContinueOnError)
	mode := fs.String("transport", string(transport.ModeStdio), "MCP transport: stdio, sse, or http")
	f := &flags{}
	fs.StringVar(&f.addr, "addr", transport.DefaultAddr, "Listen address for the sse and http transports")
	fs.BoolVar(&f.showVersion, "version", false, "Print the version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	m, err := transport.ParseMode(*mode)
	if err != nil {
		return nil, err
	}
	f.transport = m
	return f, nil
}

func main() {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	if f.showVersion {
		fmt.Println(version)
		return
	}

	zapLog, err := logging.NewZapLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	log := zapr.NewLogger(zapLog)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, f, zapLog, log)
	stop()
	if err != nil {
		log.Error(err, "server exited with error")
		_ = zapLog.Sync()
		os.Exit(1)
	}
	_ = zapLog.Sync()
}

func run(ctx context.Context, f *flags, zapLog *zap.Logger, log logr.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log.Info("starting epstein-mcp",
		"version", version,
		"transport", f.transport,
		"baseURL", cfg.API.BaseURL,
		"timeout", cfg.API.Timeout,
		"breakerThreshold", cfg.API.BreakerThreshold,
		"metricsAddr", cfg.Metrics.Addr,
		"tracing", cfg.Tracing.Enabled)

	tp, err := tracing.NewProvider(ctx, tracing.Config{
		Enabled:        cfg.Tracing.Enabled,
		Endpoint:       cfg.Tracing.Endpoint,
		ServiceName:    logging.ServiceName,
		ServiceVersion: version,
		SampleRate:     cfg.Tracing.SampleRate,
		Insecure:       cfg.Tracing.Insecure,
	})
	if err != nil {
		return fmt.Errorf("create tracing provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error(err, "failed to flush traces")
		}
	}()

	var clientMetrics metrics.ClientRecorder = metrics.NoOpClientMetrics{}
	var toolMetrics metrics.ToolRecorder = metrics.NoOpToolMetrics{}
	if cfg.Metrics.Addr != "" {
		clientMetrics = metrics.NewClientMetrics(metrics.ClientMetricsConfig{})
		toolMetrics = metrics.NewToolMetrics(metrics.ToolMetricsConfig{})
		if err := startMetricsServer(ctx, cfg.Metrics.Addr, log); err != nil {
			return err
		}
	}

	client := exposed.NewClient(cfg.API.BaseURL, log,
		exposed.WithTimeout(cfg.API.Timeout),
		exposed.WithUserAgent(cfg.API.UserAgent),
		exposed.WithBreaker(cfg.API.BreakerThreshold, cfg.API.BreakerCooldown),
		exposed.WithMetrics(clientMetrics),
		exposed.WithTracing(tp),
	)
	defer func() { _ = client.Close() }()

	ts := tools.NewToolset(client, log,
		tools.WithMetrics(toolMetrics),
		tools.WithTracing(tp),
	)
	server := tools.NewServer(ts, version, logging.SlogFromZap(zapLog))

	err = transport.Serve(ctx, server, transport.Options{Mode: f.transport, Addr: f.addr}, log)
	log.Info("shutdown complete")
	return err
}

// metricsHandler serves Prometheus metrics and a liveness probe.
func metricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(nil))
	mux.Handle(transport.HealthPath, httputil.HealthHandler())
	return mux
}

func startMetricsServer(ctx context.Context, addr string, log logr.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on metrics address %s: %w", addr, err)
	}
	log.Info("metrics server starting", "addr", ln.Addr().String())
	go func() {
		if err := transport.ServeListener(ctx, ln, metricsHandler(), 0, log.WithName("metrics")); err != nil {
			log.Error(err, "metrics server error")
		}
	}()
	return nil
}
