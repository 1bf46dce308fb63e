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
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientMetrics_RecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewClientMetricsWithRegisterer(ClientMetricsConfig{}, reg)

	m.RecordRequest(RequestMetrics{Operation: "SearchPersons", StatusCode: 200, DurationSeconds: 0.1})
	m.RecordRequest(RequestMetrics{Operation: "SearchPersons", StatusCode: 200, DurationSeconds: 0.2})
	m.RecordRequest(RequestMetrics{Operation: "GetPerson", StatusCode: 404, DurationSeconds: 0.05})
	m.RecordRequest(RequestMetrics{Operation: "GetPerson", Code: CodeTransportError, DurationSeconds: 1})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("SearchPersons", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GetPerson", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GetPerson", CodeTransportError)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestDuration))
}

func TestClientMetrics_RecordFallbackAndBreaker(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewClientMetricsWithRegisterer(ClientMetricsConfig{}, reg)

	m.RecordFallback("GetPersonMentions", "SearchPersons")
	m.RecordBreakerState("exposed-api", 2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("GetPersonMentions", "SearchPersons")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BreakerState.WithLabelValues("exposed-api")))

	m.RecordBreakerState("exposed-api", 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BreakerState.WithLabelValues("exposed-api")))
}

func TestClientMetrics_CustomBuckets(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewClientMetricsWithRegisterer(ClientMetricsConfig{DurationBuckets: []float64{1, 2}}, reg)
	m.RecordRequest(RequestMetrics{Operation: "Search", StatusCode: 200, DurationSeconds: 1.5})

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "epstein_mcp_api_request_duration_seconds" {
			h := mf.GetMetric()[0].GetHistogram()
			assert.Len(t, h.GetBucket(), 2)
			return
		}
	}
	t.Fatal("duration histogram not gathered")
}

func TestToolMetrics_RecordToolCall(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewToolMetricsWithRegisterer(ToolMetricsConfig{}, reg)

	m.RecordToolStart("search_persons")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolCallsActive.WithLabelValues("search_persons")))

	m.RecordToolCall(ToolCallMetrics{ToolName: "search_persons", DurationSeconds: 0.3, Success: true})
	m.RecordToolStart("search_persons")
	m.RecordToolCall(ToolCallMetrics{ToolName: "search_persons", DurationSeconds: 0.3, Success: false})

	assert.Equal(t, 0.0, testutil.ToFloat64(m.ToolCallsActive.WithLabelValues("search_persons")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolCallsTotal.WithLabelValues("search_persons", StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolCallsTotal.WithLabelValues("search_persons", StatusError)))
}

func TestNoOpRecorders(t *testing.T) {
	var c ClientRecorder = NoOpClientMetrics{}
	c.RecordRequest(RequestMetrics{Operation: "x"})
	c.RecordFallback("a", "b")
	c.RecordBreakerState("n", 1)

	var r ToolRecorder = NoOpToolMetrics{}
	r.RecordToolStart("t")
	r.RecordToolCall(ToolCallMetrics{ToolName: "t"})
}

func TestRecorderInterfaces(t *testing.T) {
	var _ ClientRecorder = (*ClientMetrics)(nil)
	var _ ToolRecorder = (*ToolMetrics)(nil)
}

func TestHandler_ServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewToolMetricsWithRegisterer(ToolMetricsConfig{}, reg)
	m.RecordToolStart("get_person")
	m.RecordToolCall(ToolCallMetrics{ToolName: "get_person", Success: true})

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `epstein_mcp_tool_calls_total{status="success",tool="get_person"} 1`)
}

func TestHandler_DefaultRegistry(t *testing.T) {
	assert.NotNil(t, Handler(nil))
}
