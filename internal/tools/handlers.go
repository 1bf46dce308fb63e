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

package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/altairalabs/epstein-mcp/internal/exposed"
)

// SearchPersons handles search_persons.
func (ts *Toolset) SearchPersons(ctx context.Context, req *mcp.CallToolRequest, args SearchPersonsArgs) (*mcp.CallToolResult, any, error) {
	return ts.invoke(ctx, req, ToolSearchPersons, func(ctx context.Context) (any, error) {
		return ts.api.SearchPersons(ctx, exposed.PersonQuery{
			Query:    args.Name,
			Category: args.Category,
			Page:     args.Page,
			PerPage:  args.PerPage,
		})
	})
}

// ListPersons handles list_persons.
func (ts *Toolset) ListPersons(ctx context.Context, req *mcp.CallToolRequest, args ListPersonsArgs) (*mcp.CallToolResult, any, error) {
	return ts.invoke(ctx, req, ToolListPersons, func(ctx context.Context) (any, error) {
		return ts.api.ListPersons(ctx, args.Page, args.PerPage)
	})
}

// GetPerson handles get_person.
func (ts *Toolset) GetPerson(ctx context.Context, req *mcp.CallToolRequest, args GetPersonArgs) (*mcp.CallToolResult, any, error) {
	return ts.invoke(ctx, req, ToolGetPerson, func(ctx context.Context) (any, error) {
		return ts.api.GetPerson(ctx, args.PersonID)
	})
}

// SearchDocuments handles search_documents.
func (ts *Toolset) SearchDocuments(ctx context.Context, req *mcp.CallToolRequest, args SearchDocumentsArgs) (*mcp.CallToolResult, any, error) {
	return ts.invoke(ctx, req, ToolSearchDocuments, func(ctx context.Context) (any, error) {
		return ts.api.SearchDocuments(ctx, exposed.DocumentQuery{
			Query:    args.Query,
			Source:   args.Source,
			Category: args.Category,
			Page:     args.Page,
			PerPage:  args.PerPage,
		})
	})
}

// ListDocuments handles list_documents.
func (ts *Toolset) ListDocuments(ctx context.Context, req *mcp.CallToolRequest, args ListDocumentsArgs) (*mcp.CallToolResult, any, error) {
	return ts.invoke(ctx, req, ToolListDocuments, func(ctx context.Context) (any, error) {
		return ts.api.ListDocuments(ctx, args.Page, args.PerPage, args.Category)
	})
}

// GetDocument handles get_document.
func (ts *Toolset) GetDocument(ctx context.Context, req *mcp.CallToolRequest, args GetDocumentArgs) (*mcp.CallToolResult, any, error) {
	return ts.invoke(ctx, req, ToolGetDocument, func(ctx context.Context) (any, error) {
		return ts.api.GetDocument(ctx, args.DocID)
	})
}

// SearchFlights handles search_flights.
func (ts *Toolset) SearchFlights(ctx context.Context, req *mcp.CallToolRequest, args SearchFlightsArgs) (*mcp.CallToolResult, any, error) {
	return ts.invoke(ctx, req, ToolSearchFlights, func(ctx context.Context) (any, error) {
		return ts.api.SearchFlights(ctx, exposed.FlightQuery{
			Passenger:   args.Passenger,
			Year:        args.Year,
			Origin:      args.Origin,
			Destination: args.Destination,
			Page:        args.Page,
			PerPage:     args.PerPage,
		})
	})
}

// CrossSearch handles cross_search.
func (ts *Toolset) CrossSearch(ctx context.Context, req *mcp.CallToolRequest, args CrossSearchArgs) (*mcp.CallToolResult, any, error) {
	return ts.invoke(ctx, req, ToolCrossSearch, func(ctx context.Context) (any, error) {
		return ts.api.Search(ctx, exposed.CrossQuery{
			Query: args.Query,
			Type:  args.Type,
			Limit: args.Limit,
		})
	})
}

// GetPersonMentions handles get_person_mentions. The fallback to a person
// search happens inside the client.
func (ts *Toolset) GetPersonMentions(ctx context.Context, req *mcp.CallToolRequest, args PersonMentionsArgs) (*mcp.CallToolResult, any, error) {
	return ts.invoke(ctx, req, ToolGetPersonMentions, func(ctx context.Context) (any, error) {
		return ts.api.GetPersonMentions(ctx, args.Name, args.Page, args.PerPage)
	})
}
