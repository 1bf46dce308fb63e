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

// Package transport serves an MCP server over stdio, SSE, or streamable HTTP.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/altairalabs/epstein-mcp/internal/httputil"
)

// Mode selects how the MCP server is exposed.
type Mode string

const (
	// ModeStdio serves a single session over stdin/stdout.
	ModeStdio Mode = "stdio"
	// ModeSSE serves the legacy HTTP+SSE transport.
	ModeSSE Mode = "sse"
	// ModeHTTP serves the streamable HTTP transport.
	ModeHTTP Mode = "http"
)

// Defaults for the network transports.
const (
	DefaultAddr            = ":8080"
	DefaultShutdownTimeout = 30 * time.Second
	readHeaderTimeout      = 10 * time.Second
)

// HealthPath answers liveness probes on the network transports.
const HealthPath = "/healthz"

// ParseMode parses a transport name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeStdio, ModeSSE, ModeHTTP:
		return m, nil
	default:
		return "", fmt.Errorf("unknown transport %q (want stdio, sse, or http)", s)
	}
}

// Options configures Serve.
type Options struct {
	Mode            Mode
	Addr            string
	ShutdownTimeout time.Duration
}

// Serve runs server until ctx is cancelled or, for stdio, the client
// disconnects. Network transports shut down gracefully on cancellation.
func Serve(ctx context.Context, server *mcp.Server, opts Options, log logr.Logger) error {
	log = log.WithName("transport")

	switch opts.Mode {
	case ModeStdio, "":
		log.Info("serving MCP over stdio")
		err := server.Run(ctx, &mcp.StdioTransport{})
		if err != nil && ctx.Err() != nil {
			return nil
		}
		return err

	case ModeSSE, ModeHTTP:
		handler, err := Handler(server, opts.Mode)
		if err != nil {
			return err
		}
		addr := opts.Addr
		if addr == "" {
			addr = DefaultAddr
		}
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		log.Info("serving MCP over HTTP", "mode", opts.Mode, "addr", ln.Addr().String())
		return ServeListener(ctx, ln, handler, opts.ShutdownTimeout, log)

	default:
		return fmt.Errorf("unknown transport %q", opts.Mode)
	}
}

// Handler returns an HTTP handler exposing server at "/" with the given
// network mode, plus HealthPath.
func Handler(server *mcp.Server, mode Mode) (http.Handler, error) {
	getServer := func(*http.Request) *mcp.Server { return server }

	var mcpHandler http.Handler
	switch mode {
	case ModeSSE:
		mcpHandler = mcp.NewSSEHandler(getServer, nil)
	case ModeHTTP:
		mcpHandler = mcp.NewStreamableHTTPHandler(getServer, nil)
	default:
		return nil, fmt.Errorf("transport %q is not served over HTTP", mode)
	}

	mux := http.NewServeMux()
	mux.Handle(HealthPath, httputil.HealthHandler())
	mux.Handle("/", mcpHandler)
	return mux, nil
}

// ServeListener serves handler on ln until ctx is cancelled, then shuts the
// server down, waiting up to shutdownTimeout for open requests.
func ServeListener(ctx context.Context, ln net.Listener, handler http.Handler, shutdownTimeout time.Duration, log logr.Logger) error {
	if shutdownTimeout <= 0 {
		shutdownTimeout = DefaultShutdownTimeout
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down HTTP server", "addr", ln.Addr().String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		// streaming sessions outlived the timeout
		_ = srv.Close()
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
