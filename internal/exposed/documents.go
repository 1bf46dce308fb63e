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
)

// DocumentQuery filters a document search.
type DocumentQuery struct {
	Query    string
	Source   string
	Category string
	Page     int
	PerPage  int
}

// SearchDocuments searches documents via GET /documents.
func (c *Client) SearchDocuments(ctx context.Context, q DocumentQuery) (*Envelope[Document], error) {
	page, perPage := clampPaging(q.Page, q.PerPage, DefaultPerPage)
	query := newQuery().
		str(paramQuery, q.Query).
		str(paramSource, q.Source).
		str(paramCategory, q.Category).
		paging(page, perPage).
		values()

	resp, err := c.get(ctx, OpSearchDocuments, "/documents", query, false)
	if err != nil {
		return nil, err
	}
	return decode[Envelope[Document]](OpSearchDocuments, resp.body)
}

// ListDocuments pages through documents, optionally restricted to one
// category, via GET /documents.
func (c *Client) ListDocuments(ctx context.Context, page, perPage int, category string) (*Envelope[Document], error) {
	page, perPage = clampPaging(page, perPage, DefaultPerPage)
	query := newQuery().
		paging(page, perPage).
		str(paramCategory, category).
		values()

	resp, err := c.get(ctx, OpListDocuments, "/documents", query, false)
	if err != nil {
		return nil, err
	}
	return decode[Envelope[Document]](OpListDocuments, resp.body)
}

// GetDocument fetches one document via GET /documents/{id}.
func (c *Client) GetDocument(ctx context.Context, id string) (*Document, error) {
	path, err := entityPath(OpGetDocument, "/documents/", id)
	if err != nil {
		return nil, err
	}
	resp, err := c.get(ctx, OpGetDocument, path, nil, true)
	if err != nil {
		return nil, err
	}
	return decodeSingle[Document](OpGetDocument, resp.body)
}
