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

// Package exposed is an HTTP client for the Epstein Exposed REST API.
//
// Every operation issues a single GET request, except GetPersonMentions which
// falls back to a person search when the mentions endpoint answers with a
// non-2xx status.
package exposed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/altairalabs/epstein-mcp/internal/httputil"
	"github.com/altairalabs/epstein-mcp/internal/tracing"
	"github.com/altairalabs/epstein-mcp/pkg/logctx"
	"github.com/altairalabs/epstein-mcp/pkg/metrics"
)

// DefaultHTTPTimeout is the per-request ceiling.
const DefaultHTTPTimeout = 30 * time.Second

// DefaultUserAgent is sent when no other user agent is configured.
const DefaultUserAgent = "epstein-mcp"

// breakerName labels the circuit breaker in logs and metrics.
const breakerName = "epstein-api"

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. When set, WithTimeout is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout. Defaults to 30s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m metrics.ClientRecorder) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTracing creates a client span for every request.
func WithTracing(p *tracing.Provider) Option {
	return func(c *Client) {
		c.tracing = p
	}
}

// WithBreaker enables a circuit breaker that opens after threshold consecutive
// transport or 5xx failures and probes again after cooldown. A zero threshold
// leaves the breaker disabled.
func WithBreaker(threshold uint32, cooldown time.Duration) Option {
	return func(c *Client) {
		c.breakerThreshold = threshold
		c.breakerCooldown = cooldown
	}
}

// Client calls the remote API. It holds no per-request state and is safe for
// concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	transport  *http.Transport
	timeout    time.Duration
	userAgent  string
	log        logr.Logger
	metrics    metrics.ClientRecorder
	tracing    *tracing.Provider

	breakerThreshold uint32
	breakerCooldown  time.Duration
	breaker          *gobreaker.CircuitBreaker[*response]
}

// response is a successful (2xx) reply.
type response struct {
	statusCode int
	body       []byte
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, log logr.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		timeout:   DefaultHTTPTimeout,
		userAgent: DefaultUserAgent,
		log:       log.WithName("exposed-client"),
		metrics:   metrics.NoOpClientMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.transport = http.DefaultTransport.(*http.Transport).Clone()
		var otelOpts []otelhttp.Option
		if c.tracing != nil {
			otelOpts = append(otelOpts, otelhttp.WithTracerProvider(c.tracing.TracerProvider()))
		}
		c.httpClient = &http.Client{
			Timeout:   c.timeout,
			Transport: otelhttp.NewTransport(c.transport, otelOpts...),
		}
	}

	if c.breakerThreshold > 0 {
		c.breaker = gobreaker.NewCircuitBreaker[*response](c.breakerSettings())
		c.metrics.RecordBreakerState(breakerName, int(gobreaker.StateClosed))
	}
	return c
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases idle connections held by the client.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	if c.transport != nil {
		c.transport.CloseIdleConnections()
	}
	return nil
}

func (c *Client) breakerSettings() gobreaker.Settings {
	threshold := c.breakerThreshold
	return gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     c.breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			// 4xx is the server answering correctly about a bad request.
			code := StatusCode(err)
			return err == nil || (code > 0 && code < http.StatusInternalServerError)
		},
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Info("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			c.metrics.RecordBreakerState(name, int(to))
		},
	}
}

// get performs one GET request and returns the body of a 2xx response. When
// single is true a 404 maps to *NotFoundError.
func (c *Client) get(ctx context.Context, op, path string, query url.Values, single bool) (*response, error) {
	var span trace.Span
	if c.tracing != nil {
		ctx, span = c.tracing.StartAPISpan(ctx, op, path)
		defer span.End()
	}
	log := logctx.LoggerWithContext(c.log, logctx.WithOperation(ctx, op))

	start := time.Now()
	resp, err := c.execute(ctx, op, path, query, single)
	elapsed := time.Since(start)

	rm := metrics.RequestMetrics{Operation: op, DurationSeconds: elapsed.Seconds()}
	switch {
	case err == nil:
		rm.StatusCode = resp.statusCode
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		rm.Code = metrics.CodeBreakerOpen
	case IsStatusError(err):
		rm.StatusCode = StatusCode(err)
	default:
		rm.Code = metrics.CodeTransportError
	}
	c.metrics.RecordRequest(rm)

	if span != nil {
		if code := rm.StatusCode; code > 0 {
			tracing.AddHTTPStatus(span, code)
		}
		if err != nil {
			tracing.RecordError(span, err)
		} else {
			tracing.SetSuccess(span)
		}
	}

	if err != nil {
		log.V(1).Info("api request failed", "path", path, "duration", elapsed, "error", err.Error())
		return nil, err
	}
	log.V(1).Info("api request", "path", path, "status", resp.statusCode, "duration", elapsed)
	return resp, nil
}

func (c *Client) execute(ctx context.Context, op, path string, query url.Values, single bool) (*response, error) {
	if c.breaker == nil {
		return c.do(ctx, op, path, query, single)
	}
	resp, err := c.breaker.Execute(func() (*response, error) {
		return c.do(ctx, op, path, query, single)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &TransportError{Operation: op, Err: err}
	}
	return resp, err
}

func (c *Client) do(ctx context.Context, op, path string, query url.Values, single bool) (*response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set(httputil.HeaderAccept, httputil.ContentTypeJSON)
	req.Header.Set(httputil.HeaderUserAgent, c.userAgent)
	if id := logctx.RequestID(ctx); id != "" {
		req.Header.Set(httputil.HeaderRequestID, id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Operation: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound && single {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &NotFoundError{Operation: op, Path: path}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.readError(op, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Operation: op, Err: err}
	}
	return &response{statusCode: resp.StatusCode, body: body}, nil
}

func (c *Client) readError(op string, resp *http.Response) error {
	body, _ := httputil.ReadLimited(resp.Body, httputil.MaxErrorBodyBytes)
	return &RequestFailedError{
		Operation:  op,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

func decode[T any](op string, body []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, &DecodeError{Operation: op, Err: err}
	}
	return &v, nil
}

// decodeSingle decodes a single-record body. A {"data": {...}} wrapper is
// unwrapped; any other object is taken as the record itself.
func decodeSingle[T any](op string, body []byte) (*T, error) {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, &DecodeError{Operation: op, Err: err}
	}
	if data, ok := wrapper["data"]; ok && isObject(data) {
		body = data
	}
	return decode[T](op, body)
}
