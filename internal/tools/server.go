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
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerName is the MCP implementation name reported to clients.
const ServerName = "Epstein Files"

// Instructions is the server description sent during initialization.
const Instructions = "MCP server providing access to the Epstein Exposed public API. " +
	"Search persons, documents, and flight logs, run cross-type full-text searches, " +
	"and get mention context for a person."

// NewServer creates an MCP server with every tool registered.
func NewServer(ts *Toolset, version string, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Title:   ServerName,
		Version: version,
	}, &mcp.ServerOptions{
		Instructions: Instructions,
		Logger:       logger,
	})
	ts.Register(server)
	return server
}

func annotations(title string) *mcp.ToolAnnotations {
	openWorld := true
	return &mcp.ToolAnnotations{
		Title:          title,
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  &openWorld,
	}
}

// Register adds every tool to server.
func (ts *Toolset) Register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolSearchPersons,
		Description: "Search the Epstein files for a person by name, optionally filtered by category. Returns matching person records with pagination info.",
		InputSchema: searchPersonsSchema,
		Annotations: annotations("Search persons"),
	}, ts.SearchPersons)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolListPersons,
		Description: "List all persons in the Epstein files, one page at a time.",
		InputSchema: listPersonsSchema,
		Annotations: annotations("List persons"),
	}, ts.ListPersons)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolGetPerson,
		Description: "Fetch a single person by slug or identifier. Fails with a not-found error if the person does not exist.",
		InputSchema: getPersonSchema,
		Annotations: annotations("Get person"),
	}, ts.GetPerson)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolSearchDocuments,
		Description: "Search Epstein documents by text, source, and category. Returns document records with pagination info.",
		InputSchema: searchDocumentsSchema,
		Annotations: annotations("Search documents"),
	}, ts.SearchDocuments)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolListDocuments,
		Description: "List available Epstein documents, optionally filtered by category.",
		InputSchema: listDocumentsSchema,
		Annotations: annotations("List documents"),
	}, ts.ListDocuments)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolGetDocument,
		Description: "Retrieve a specific Epstein document and its metadata by identifier.",
		InputSchema: getDocumentSchema,
		Annotations: annotations("Get document"),
	}, ts.GetDocument)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolSearchFlights,
		Description: "Search the flight logs by passenger, year, origin, and destination.",
		InputSchema: searchFlightsSchema,
		Annotations: annotations("Search flights"),
	}, ts.SearchFlights)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolCrossSearch,
		Description: "Full-text search across documents and emails. Results are grouped by record kind.",
		InputSchema: crossSearchSchema,
		Annotations: annotations("Cross search"),
	}, ts.CrossSearch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolGetPersonMentions,
		Description: "Get mentions and contextual snippets for a person across Epstein documents. If the mentions service is unavailable, returns person search results for the name instead.",
		InputSchema: personMentionsSchema,
		Annotations: annotations("Get person mentions"),
	}, ts.GetPersonMentions)
}
