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
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/altairalabs/epstein-mcp/internal/tracing"
	"github.com/altairalabs/epstein-mcp/pkg/logctx"
)

// GetPersonMentions looks up document mentions of a person via GET /mentions.
//
// If the mentions endpoint answers with a non-2xx status, the result of
// SearchPersons with the same name and paging is returned instead. Transport
// and decode failures are returned as-is. At most two requests are sent, one
// after the other. A blank name is rejected before any request is sent.
func (c *Client) GetPersonMentions(ctx context.Context, name string, page, perPage int) (*Mentions, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%s: name: %w", OpGetPersonMentions, ErrMissingArgument)
	}
	page, perPage = clampPaging(page, perPage, DefaultPerPage)
	query := newQuery().
		str(paramName, name).
		paging(page, perPage).
		values()

	resp, err := c.get(ctx, OpGetPersonMentions, "/mentions", query, false)
	if err == nil {
		if !json.Valid(resp.body) {
			return nil, &DecodeError{Operation: OpGetPersonMentions, Err: errors.New("response is not valid JSON")}
		}
		return &Mentions{Query: name, Raw: resp.body}, nil
	}
	if !IsStatusError(err) {
		return nil, err
	}

	logctx.LoggerWithContext(c.log, ctx).V(1).Info("mentions endpoint unavailable, falling back to person search",
		"name", name, "status", StatusCode(err))
	c.metrics.RecordFallback(OpGetPersonMentions, OpSearchPersons)
	tracing.AddFallback(trace.SpanFromContext(ctx), OpSearchPersons)

	persons, err := c.SearchPersons(ctx, PersonQuery{Query: name, Page: page, PerPage: perPage})
	if err != nil {
		return nil, err
	}
	return &Mentions{Query: name, Fallback: persons}, nil
}
