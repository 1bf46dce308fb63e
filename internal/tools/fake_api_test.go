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
	"sync"

	"github.com/altairalabs/epstein-mcp/internal/exposed"
)

// fakeAPI records the arguments of each call and returns canned results.
type fakeAPI struct {
	mu    sync.Mutex
	calls []fakeCall
	err   error

	persons   *exposed.Envelope[exposed.Person]
	person    *exposed.Person
	documents *exposed.Envelope[exposed.Document]
	document  *exposed.Document
	flights   *exposed.Envelope[exposed.Flight]
	cross     *exposed.CrossSearchResult
	mentions  *exposed.Mentions
}

type fakeCall struct {
	Method string
	Args   any
}

type pagingArgs struct {
	Page, PerPage int
	Category      string
}

type mentionArgs struct {
	Name          string
	Page, PerPage int
}

func (f *fakeAPI) record(method string, args any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fakeCall{Method: method, Args: args})
}

func (f *fakeAPI) lastCall() fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return fakeCall{}
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeAPI) SearchPersons(_ context.Context, q exposed.PersonQuery) (*exposed.Envelope[exposed.Person], error) {
	f.record("SearchPersons", q)
	return f.persons, f.err
}

func (f *fakeAPI) ListPersons(_ context.Context, page, perPage int) (*exposed.Envelope[exposed.Person], error) {
	f.record("ListPersons", pagingArgs{Page: page, PerPage: perPage})
	return f.persons, f.err
}

func (f *fakeAPI) GetPerson(_ context.Context, id string) (*exposed.Person, error) {
	f.record("GetPerson", id)
	return f.person, f.err
}

func (f *fakeAPI) SearchDocuments(_ context.Context, q exposed.DocumentQuery) (*exposed.Envelope[exposed.Document], error) {
	f.record("SearchDocuments", q)
	return f.documents, f.err
}

func (f *fakeAPI) ListDocuments(_ context.Context, page, perPage int, category string) (*exposed.Envelope[exposed.Document], error) {
	f.record("ListDocuments", pagingArgs{Page: page, PerPage: perPage, Category: category})
	return f.documents, f.err
}

func (f *fakeAPI) GetDocument(_ context.Context, id string) (*exposed.Document, error) {
	f.record("GetDocument", id)
	return f.document, f.err
}

func (f *fakeAPI) SearchFlights(_ context.Context, q exposed.FlightQuery) (*exposed.Envelope[exposed.Flight], error) {
	f.record("SearchFlights", q)
	return f.flights, f.err
}

func (f *fakeAPI) Search(_ context.Context, q exposed.CrossQuery) (*exposed.CrossSearchResult, error) {
	f.record("Search", q)
	return f.cross, f.err
}

func (f *fakeAPI) GetPersonMentions(_ context.Context, name string, page, perPage int) (*exposed.Mentions, error) {
	f.record("GetPersonMentions", mentionArgs{Name: name, Page: page, PerPage: perPage})
	return f.mentions, f.err
}
