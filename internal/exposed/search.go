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
	"fmt"
	"strings"
)

// Record kinds accepted by the cross-type search.
const (
	SearchTypeDocuments = "documents"
	SearchTypeEmails    = "emails"
)

// CrossQuery is a full-text query run against several record kinds.
type CrossQuery struct {
	Query string
	// Type restricts the search to one kind. Empty searches all kinds.
	Type  string
	Limit int
}

// Search runs a cross-type full-text search via GET /search.
func (c *Client) Search(ctx context.Context, q CrossQuery) (*CrossSearchResult, error) {
	if strings.TrimSpace(q.Query) == "" {
		return nil, fmt.Errorf("%s: query: %w", OpCrossSearch, ErrMissingArgument)
	}
	limit := q.Limit
	if limit < 1 {
		limit = DefaultSearchLimit
	}
	if limit > MaxPerPage {
		limit = MaxPerPage
	}
	query := newQuery().
		str(paramQuery, q.Query).
		str(paramType, q.Type).
		num(paramLimit, limit).
		values()

	resp, err := c.get(ctx, OpCrossSearch, "/search", query, false)
	if err != nil {
		return nil, err
	}
	return decode[CrossSearchResult](OpCrossSearch, resp.body)
}
