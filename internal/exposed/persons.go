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
	"net/url"
	"strings"
)

// PersonQuery filters a person search.
type PersonQuery struct {
	// Query is a full or partial name.
	Query    string
	Category string
	Page     int
	PerPage  int
}

// SearchPersons searches persons by name and category via GET /persons. A
// blank name is rejected; ListPersons pages through everyone.
func (c *Client) SearchPersons(ctx context.Context, q PersonQuery) (*Envelope[Person], error) {
	if strings.TrimSpace(q.Query) == "" {
		return nil, fmt.Errorf("%s: name: %w", OpSearchPersons, ErrMissingArgument)
	}
	page, perPage := clampPaging(q.Page, q.PerPage, DefaultPerPage)
	query := newQuery().
		str(paramQuery, q.Query).
		str(paramCategory, q.Category).
		paging(page, perPage).
		values()

	resp, err := c.get(ctx, OpSearchPersons, "/persons", query, false)
	if err != nil {
		return nil, err
	}
	return decode[Envelope[Person]](OpSearchPersons, resp.body)
}

// ListPersons pages through all persons via GET /persons.
func (c *Client) ListPersons(ctx context.Context, page, perPage int) (*Envelope[Person], error) {
	page, perPage = clampPaging(page, perPage, DefaultPersonsPerPage)
	query := newQuery().paging(page, perPage).values()

	resp, err := c.get(ctx, OpListPersons, "/persons", query, false)
	if err != nil {
		return nil, err
	}
	return decode[Envelope[Person]](OpListPersons, resp.body)
}

// GetPerson fetches one person by slug or id via GET /persons/{id}.
func (c *Client) GetPerson(ctx context.Context, id string) (*Person, error) {
	path, err := entityPath(OpGetPerson, "/persons/", id)
	if err != nil {
		return nil, err
	}
	resp, err := c.get(ctx, OpGetPerson, path, nil, true)
	if err != nil {
		return nil, err
	}
	return decodeSingle[Person](OpGetPerson, resp.body)
}

func entityPath(op, prefix, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%s: id: %w", op, ErrMissingArgument)
	}
	return prefix + url.PathEscape(id), nil
}
