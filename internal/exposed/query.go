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
	"net/url"
	"strconv"
)

// Operation names. They double as metric and span labels.
const (
	OpSearchPersons     = "search_persons"
	OpListPersons       = "list_persons"
	OpGetPerson         = "get_person"
	OpSearchDocuments   = "search_documents"
	OpListDocuments     = "list_documents"
	OpGetDocument       = "get_document"
	OpSearchFlights     = "search_flights"
	OpCrossSearch       = "cross_search"
	OpGetPersonMentions = "get_person_mentions"
)

// Paging limits.
const (
	MaxPerPage            = 100
	DefaultPerPage        = 50
	DefaultPersonsPerPage = 100
	DefaultSearchLimit    = 20
)

// Query parameter names.
const (
	paramQuery       = "q"
	paramName        = "name"
	paramCategory    = "category"
	paramSource      = "source"
	paramPassenger   = "passenger"
	paramYear        = "year"
	paramOrigin      = "origin"
	paramDestination = "destination"
	paramType        = "type"
	paramLimit       = "limit"
	paramPage        = "page"
	paramPerPage     = "per_page"
)

// ErrMissingArgument is returned before any request is sent when a required
// argument is empty.
var ErrMissingArgument = errors.New("missing required argument")

// clampPaging bounds page to at least 1 and perPage to [1, MaxPerPage],
// substituting def for a non-positive perPage.
func clampPaging(page, perPage, def int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = def
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

// queryBuilder assembles url.Values, skipping empty optional filters.
type queryBuilder struct {
	v url.Values
}

func newQuery() *queryBuilder {
	return &queryBuilder{v: url.Values{}}
}

func (q *queryBuilder) str(key, value string) *queryBuilder {
	if value != "" {
		q.v.Set(key, value)
	}
	return q
}

func (q *queryBuilder) num(key string, value int) *queryBuilder {
	if value != 0 {
		q.v.Set(key, strconv.Itoa(value))
	}
	return q
}

func (q *queryBuilder) paging(page, perPage int) *queryBuilder {
	q.v.Set(paramPage, strconv.Itoa(page))
	q.v.Set(paramPerPage, strconv.Itoa(perPage))
	return q
}

func (q *queryBuilder) values() url.Values {
	return q.v
}
