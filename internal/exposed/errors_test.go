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
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "get_person: /persons/x not found (status 404)",
		(&NotFoundError{Operation: OpGetPerson, Path: "/persons/x"}).Error())
	assert.Equal(t, "list_documents: request failed with status 502",
		(&RequestFailedError{Operation: OpListDocuments, StatusCode: 502}).Error())
	assert.Equal(t, "list_documents: request failed with status 500: oops",
		(&RequestFailedError{Operation: OpListDocuments, StatusCode: 500, Body: "oops"}).Error())
	assert.Equal(t, "search_flights: transport error: dial tcp: refused",
		(&TransportError{Operation: OpSearchFlights, Err: errors.New("dial tcp: refused")}).Error())
	assert.Equal(t, "cross_search: decode response: bad",
		(&DecodeError{Operation: OpCrossSearch, Err: errors.New("bad")}).Error())
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus bool
		wantCode   int
	}{
		{"not found", &NotFoundError{Operation: OpGetPerson}, true, 404},
		{"request failed", &RequestFailedError{StatusCode: 503}, true, 503},
		{"wrapped request failed", fmt.Errorf("tool: %w", &RequestFailedError{StatusCode: 400}), true, 400},
		{"transport", &TransportError{Err: context.DeadlineExceeded}, false, 0},
		{"decode", &DecodeError{Err: errors.New("x")}, false, 0},
		{"plain", errors.New("x"), false, 0},
		{"nil", nil, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, IsStatusError(tt.err))
			assert.Equal(t, tt.wantCode, StatusCode(tt.err))
		})
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	err := &TransportError{Operation: OpListPersons, Err: context.DeadlineExceeded}
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
