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
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// ID identifies a record. The API emits identifiers as either JSON numbers or
// strings; both decode to the same textual form and always encode as a string.
type ID string

// UnmarshalJSON accepts a JSON string, number, or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON encodes the identifier as a JSON string.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

func (id ID) String() string {
	return string(id)
}

// Records decoded from a response body keep a copy of that body and encode
// back to it unchanged. Their typed fields and Extra are a read view: a key
// fills a typed field only when it matches the field's JSON name exactly and
// its value fits the field's type. Every other key lands in Extra. Records
// built in code encode from their typed fields merged with Extra.

// Meta is the pagination block of a list response.
type Meta struct {
	Total     int    `json:"total,omitempty"`
	Page      int    `json:"page,omitempty"`
	PerPage   int    `json:"per_page,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
	raw   json.RawMessage
}

type metaFields Meta

func (m *Meta) UnmarshalJSON(b []byte) error {
	return decodeRecord(b, (*metaFields)(m), &m.Extra, &m.raw)
}

func (m Meta) MarshalJSON() ([]byte, error) {
	return encodeRecord(metaFields(m), m.Extra, m.raw)
}

// Envelope is the list response wrapper. A bare JSON array body decodes into
// Data with no status or meta.
type Envelope[T any] struct {
	Status string `json:"status,omitempty"`
	Data   []T    `json:"data"`
	Meta   *Meta  `json:"meta,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
	raw   json.RawMessage
}

type envelopeFields[T any] Envelope[T]

func (e *Envelope[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var data []T
		if err := json.Unmarshal(b, &data); err == nil {
			e.Data = data
		}
		e.raw = copyRaw(b)
	} else if err := decodeRecord(b, (*envelopeFields[T])(e), &e.Extra, &e.raw); err != nil {
		return err
	}
	if e.Data == nil {
		e.Data = []T{}
	}
	return nil
}

func (e Envelope[T]) MarshalJSON() ([]byte, error) {
	if e.Data == nil {
		e.Data = []T{}
	}
	return encodeRecord(envelopeFields[T](e), e.Extra, e.raw)
}

// Person is a named individual appearing in the files.
type Person struct {
	ID          ID     `json:"id,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Name        string `json:"name,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
	raw   json.RawMessage
}

type personFields Person

func (p *Person) UnmarshalJSON(b []byte) error {
	return decodeRecord(b, (*personFields)(p), &p.Extra, &p.raw)
}

func (p Person) MarshalJSON() ([]byte, error) {
	return encodeRecord(personFields(p), p.Extra, p.raw)
}

// Document is a court filing, deposition, email, or other source document.
type Document struct {
	ID       ID     `json:"id,omitempty"`
	Title    string `json:"title,omitempty"`
	Source   string `json:"source,omitempty"`
	Category string `json:"category,omitempty"`
	Date     string `json:"date,omitempty"`
	Summary  string `json:"summary,omitempty"`
	URL      string `json:"url,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
	raw   json.RawMessage
}

type documentFields Document

func (d *Document) UnmarshalJSON(b []byte) error {
	return decodeRecord(b, (*documentFields)(d), &d.Extra, &d.raw)
}

func (d Document) MarshalJSON() ([]byte, error) {
	return encodeRecord(documentFields(d), d.Extra, d.raw)
}

// Flight is one flight log entry.
type Flight struct {
	ID          ID     `json:"id,omitempty"`
	Date        string `json:"date,omitempty"`
	Origin      string `json:"origin,omitempty"`
	Destination string `json:"destination,omitempty"`
	Aircraft    string `json:"aircraft,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
	raw   json.RawMessage
}

type flightFields Flight

func (f *Flight) UnmarshalJSON(b []byte) error {
	return decodeRecord(b, (*flightFields)(f), &f.Extra, &f.raw)
}

func (f Flight) MarshalJSON() ([]byte, error) {
	return encodeRecord(flightFields(f), f.Extra, f.raw)
}

// SearchResult is one hit from the cross-type search endpoint.
type SearchResult struct {
	ID      ID       `json:"id,omitempty"`
	Type    string   `json:"type,omitempty"`
	Title   string   `json:"title,omitempty"`
	Snippet string   `json:"snippet,omitempty"`
	Date    string   `json:"date,omitempty"`
	URL     string   `json:"url,omitempty"`
	Score   *float64 `json:"score,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
	raw   json.RawMessage
}

type searchResultFields SearchResult

func (r *SearchResult) UnmarshalJSON(b []byte) error {
	return decodeRecord(b, (*searchResultFields)(r), &r.Extra, &r.raw)
}

func (r SearchResult) MarshalJSON() ([]byte, error) {
	return encodeRecord(searchResultFields(r), r.Extra, r.raw)
}

// ResultGroup holds the hits for one record kind. A bare JSON array decodes
// into Results with Total set to its length.
type ResultGroup struct {
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`

	Extra map[string]json.RawMessage `json:"-"`
	raw   json.RawMessage
}

type resultGroupFields ResultGroup

func (g *ResultGroup) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var results []SearchResult
		if err := json.Unmarshal(b, &results); err == nil {
			g.Results = results
			g.Total = len(results)
		}
		g.raw = copyRaw(b)
		return nil
	}
	return decodeRecord(b, (*resultGroupFields)(g), &g.Extra, &g.raw)
}

func (g ResultGroup) MarshalJSON() ([]byte, error) {
	if g.Results == nil {
		g.Results = []SearchResult{}
	}
	return encodeRecord(resultGroupFields(g), g.Extra, g.raw)
}

// CrossSearchResult is the response of the cross-type search endpoint. The
// groups may appear at the top level or nested under "data"; missing groups
// decode as empty.
type CrossSearchResult struct {
	Status    string      `json:"status,omitempty"`
	Documents ResultGroup `json:"documents"`
	Emails    ResultGroup `json:"emails"`

	Extra map[string]json.RawMessage `json:"-"`
	raw   json.RawMessage
}

type crossSearchFields CrossSearchResult

type crossSearchGroups struct {
	Documents ResultGroup `json:"documents"`
	Emails    ResultGroup `json:"emails"`
}

func (r *CrossSearchResult) UnmarshalJSON(b []byte) error {
	if err := decodeRecord(b, (*crossSearchFields)(r), &r.Extra, &r.raw); err != nil {
		return err
	}
	if val, ok := r.Extra["data"]; ok && isObject(val) {
		var nested crossSearchGroups
		var nestedExtra map[string]json.RawMessage
		var nestedRaw json.RawMessage
		if err := decodeRecord(val, &nested, &nestedExtra, &nestedRaw); err != nil {
			return err
		}
		r.Documents = nested.Documents
		r.Emails = nested.Emails
		delete(r.Extra, "data")
		if len(r.Extra) == 0 {
			r.Extra = nil
		}
	}
	return nil
}

func (r CrossSearchResult) MarshalJSON() ([]byte, error) {
	return encodeRecord(crossSearchFields(r), r.Extra, r.raw)
}

// Mentions is the result of a person-mentions lookup. When the dedicated
// endpoint answered, Raw holds its body verbatim. When it failed with an HTTP
// status and the person search answered instead, Fallback holds that result.
type Mentions struct {
	Query    string
	Raw      json.RawMessage
	Fallback *Envelope[Person]
}

// FromFallback reports whether the person search supplied the result.
func (m Mentions) FromFallback() bool {
	return m.Fallback != nil
}

// MarshalJSON emits the primary body unchanged, or {"query", "results"} for a
// fallback result.
func (m Mentions) MarshalJSON() ([]byte, error) {
	if m.Fallback != nil {
		return marshalNoEscape(struct {
			Query   string            `json:"query"`
			Results *Envelope[Person] `json:"results"`
		}{m.Query, m.Fallback})
	}
	if len(m.Raw) == 0 {
		return []byte("null"), nil
	}
	return m.Raw, nil
}

// decodeRecord fills the exported fields of typed, a pointer to struct, from
// the JSON object b. A value that does not fit its field leaves the field
// untouched and stays in extra. raw receives a copy of b.
func decodeRecord(b []byte, typed any, extra *map[string]json.RawMessage, raw *json.RawMessage) error {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	*raw = copyRaw(b)

	v := reflect.ValueOf(typed).Elem()
	for _, f := range recordFields(v.Type()) {
		val, ok := all[f.name]
		if !ok {
			continue
		}
		dst := reflect.New(f.typ)
		if err := json.Unmarshal(val, dst.Interface()); err != nil {
			continue
		}
		v.Field(f.index).Set(dst.Elem())
		delete(all, f.name)
	}
	if len(all) == 0 {
		*extra = nil
		return nil
	}
	*extra = all
	return nil
}

// encodeRecord returns raw when the value was decoded. Otherwise it marshals
// typed and merges the extra keys it does not already emit.
func encodeRecord(typed any, extra map[string]json.RawMessage, raw json.RawMessage) ([]byte, error) {
	if len(raw) > 0 {
		return raw, nil
	}
	b, err := marshalNoEscape(typed)
	if err != nil || len(extra) == 0 {
		return b, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return marshalNoEscape(merged)
}

// copyRaw copies b; the decoder reuses its buffer after UnmarshalJSON returns.
func copyRaw(b []byte) json.RawMessage {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	return append(json.RawMessage(nil), b...)
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

type recordField struct {
	name  string
	index int
	typ   reflect.Type
}

var recordFieldCache sync.Map // reflect.Type -> []recordField

// recordFields returns the JSON-named exported fields of the struct type t.
func recordFields(t reflect.Type) []recordField {
	if cached, ok := recordFieldCache.Load(t); ok {
		return cached.([]recordField)
	}
	fields := make([]recordField, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		fields = append(fields, recordField{name: name, index: i, typ: f.Type})
	}
	recordFieldCache.Store(t, fields)
	return fields
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}
