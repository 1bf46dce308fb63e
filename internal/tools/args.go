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
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/altairalabs/epstein-mcp/internal/exposed"
)

// Tool names.
const (
	ToolSearchPersons     = "search_persons"
	ToolListPersons       = "list_persons"
	ToolGetPerson         = "get_person"
	ToolSearchDocuments   = "search_documents"
	ToolListDocuments     = "list_documents"
	ToolGetDocument       = "get_document"
	ToolSearchFlights     = "search_flights"
	ToolCrossSearch       = "cross_search"
	ToolGetPersonMentions = "get_person_mentions"
)

// SearchPersonsArgs are the arguments of search_persons.
type SearchPersonsArgs struct {
	Name     string `json:"name" jsonschema:"The full or partial name to search for"`
	Category string `json:"category,omitempty" jsonschema:"Optional person category filter"`
	Page     int    `json:"page,omitempty" jsonschema:"Page number"`
	PerPage  int    `json:"per_page,omitempty" jsonschema:"Results per page (at most 100)"`
}

// ListPersonsArgs are the arguments of list_persons.
type ListPersonsArgs struct {
	Page    int `json:"page,omitempty" jsonschema:"Page number"`
	PerPage int `json:"per_page,omitempty" jsonschema:"Results per page (at most 100)"`
}

// GetPersonArgs are the arguments of get_person.
type GetPersonArgs struct {
	PersonID string `json:"person_id" jsonschema:"The person's slug or numeric identifier"`
}

// SearchDocumentsArgs are the arguments of search_documents.
type SearchDocumentsArgs struct {
	Query    string `json:"query,omitempty" jsonschema:"Full-text search terms"`
	Source   string `json:"source,omitempty" jsonschema:"Optional source filter"`
	Category string `json:"category,omitempty" jsonschema:"Optional category filter"`
	Page     int    `json:"page,omitempty" jsonschema:"Page number"`
	PerPage  int    `json:"per_page,omitempty" jsonschema:"Results per page (at most 100)"`
}

// ListDocumentsArgs are the arguments of list_documents.
type ListDocumentsArgs struct {
	Page     int    `json:"page,omitempty" jsonschema:"Page number"`
	PerPage  int    `json:"per_page,omitempty" jsonschema:"Results per page (at most 100)"`
	Category string `json:"category,omitempty" jsonschema:"Optional category filter"`
}

// GetDocumentArgs are the arguments of get_document.
type GetDocumentArgs struct {
	DocID string `json:"doc_id" jsonschema:"The unique identifier of the document"`
}

// SearchFlightsArgs are the arguments of search_flights.
type SearchFlightsArgs struct {
	Passenger   string `json:"passenger,omitempty" jsonschema:"Passenger name"`
	Year        int    `json:"year,omitempty" jsonschema:"Four-digit flight year"`
	Origin      string `json:"origin,omitempty" jsonschema:"Origin airport code or city"`
	Destination string `json:"destination,omitempty" jsonschema:"Destination airport code or city"`
	Page        int    `json:"page,omitempty" jsonschema:"Page number"`
	PerPage     int    `json:"per_page,omitempty" jsonschema:"Results per page (at most 100)"`
}

// CrossSearchArgs are the arguments of cross_search.
type CrossSearchArgs struct {
	Query string `json:"query" jsonschema:"Full-text search terms"`
	Type  string `json:"type,omitempty" jsonschema:"Restrict results to one record kind; omit to search all kinds"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum results per record kind (at most 100)"`
}

// PersonMentionsArgs are the arguments of get_person_mentions.
type PersonMentionsArgs struct {
	Name    string `json:"name" jsonschema:"The full or partial name to look up"`
	Page    int    `json:"page,omitempty" jsonschema:"Page number"`
	PerPage int    `json:"per_page,omitempty" jsonschema:"Results per page (at most 100)"`
}

// paging returns the default page and per_page properties.
func paging(perPage int) map[string]any {
	return map[string]any{"page": 1, "per_page": perPage}
}

// inputSchema infers the input schema of T and attaches defaults and enums.
// It panics on a mismatch between T and the property names, like
// mcp.AddTool does for invalid schemas.
func inputSchema[T any](defaults map[string]any, enums map[string][]any) *jsonschema.Schema {
	s, err := jsonschema.For[T](nil)
	if err != nil {
		panic(fmt.Sprintf("tools: infer schema: %v", err))
	}
	for name, v := range defaults {
		prop := property(s, name)
		b, err := json.Marshal(v)
		if err != nil {
			panic(fmt.Sprintf("tools: default for %q: %v", name, err))
		}
		prop.Default = b
	}
	for name, values := range enums {
		property(s, name).Enum = values
	}
	return s
}

func property(s *jsonschema.Schema, name string) *jsonschema.Schema {
	prop, ok := s.Properties[name]
	if !ok {
		panic(fmt.Sprintf("tools: schema has no property %q", name))
	}
	return prop
}

var (
	searchPersonsSchema   = inputSchema[SearchPersonsArgs](paging(exposed.DefaultPerPage), nil)
	listPersonsSchema     = inputSchema[ListPersonsArgs](paging(exposed.DefaultPersonsPerPage), nil)
	getPersonSchema       = inputSchema[GetPersonArgs](nil, nil)
	searchDocumentsSchema = inputSchema[SearchDocumentsArgs](paging(exposed.DefaultPerPage), nil)
	listDocumentsSchema   = inputSchema[ListDocumentsArgs](paging(exposed.DefaultPerPage), nil)
	getDocumentSchema     = inputSchema[GetDocumentArgs](nil, nil)
	searchFlightsSchema   = inputSchema[SearchFlightsArgs](paging(exposed.DefaultPerPage), nil)
	personMentionsSchema  = inputSchema[PersonMentionsArgs](paging(exposed.DefaultPerPage), nil)
)

var crossSearchSchema = inputSchema[CrossSearchArgs](
	map[string]any{"limit": exposed.DefaultSearchLimit},
	map[string][]any{"type": {exposed.SearchTypeDocuments, exposed.SearchTypeEmails}},
)
