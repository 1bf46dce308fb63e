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

package exposed

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by errors.Is for every *NotFoundError.
var ErrNotFound = errors.New("not found")

// NotFoundError is returned when a single-entity lookup receives HTTP 404.
type NotFoundError struct {
	Operation string
	Path      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s not found (status 404)", e.Operation, e.Path)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// RequestFailedError is returned for any other non-2xx response.
type RequestFailedError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *RequestFailedError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: request failed with status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s: request failed with status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// TransportError wraps failures where no HTTP response was received:
// connection errors, timeouts, cancellation, and an open circuit breaker.
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a 2xx response body is not the expected JSON.
type DecodeError struct {
	Operation string
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Operation, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsStatusError reports whether err was caused by a non-2xx HTTP response.
func IsStatusError(err error) bool {
	var nf *NotFoundError
	var rf *RequestFailedError
	return errors.As(err, &nf) || errors.As(err, &rf)
}

// StatusCode returns the HTTP status carried by err, or zero when err did not
// come from an HTTP response.
func StatusCode(err error) int {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return 404
	}
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf.StatusCode
	}
	return 0
}
