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

// Package httputil provides shared HTTP constants and helpers.
package httputil

import (
	"encoding/json"
	"io"
	"net/http"
)

// Common HTTP header names and content types.
const (
	HeaderAccept      = "Accept"
	HeaderContentType = "Content-Type"
	HeaderRequestID   = "X-Request-ID"
	HeaderUserAgent   = "User-Agent"
	ContentTypeJSON   = "application/json"
)

// MaxErrorBodyBytes bounds how much of a failed response body is kept.
const MaxErrorBodyBytes = 4096

// WriteJSON serialises v as JSON and writes it to w with the given status code.
// The Content-Type header is set to application/json.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) error {
	w.Header().Set(HeaderContentType, ContentTypeJSON)
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(v)
}

// ReadLimited reads at most limit bytes from r. The remainder is drained so
// the underlying connection can be reused.
func ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return data, err
	}
	_, _ = io.Copy(io.Discard, r)
	return data, nil
}

// HealthHandler answers liveness probes with {"status":"ok"}.
func HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
