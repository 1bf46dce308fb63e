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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ID
		wantErr bool
	}{
		{"string", `"ghislaine-maxwell"`, "ghislaine-maxwell", false},
		{"integer", `42`, "42", false},
		{"large integer", `9007199254740993`, "9007199254740993", false},
		{"float", `1.5`, "1.5", false},
		{"null", `null`, "", false},
		{"bool", `true`, "", true},
		{"object", `{}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			err := json.Unmarshal([]byte(tt.input), &id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestID_MarshalsAsString(t *testing.T) {
	out, err := json.Marshal(struct {
		ID ID `json:"id"`
	}{ID: "17"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"17"}`, string(out))
}

func TestPerson_PreservesUnknownFields(t *testing.T) {
	input := `{
		"id": 12,
		"name": "Jean-Luc Brunel",
		"aliases": ["JLB"],
		"links": {"wiki": "https://example.org/jlb"},
		"flight_count": 3
	}`

	var p Person
	require.NoError(t, json.Unmarshal([]byte(input), &p))
	assert.Equal(t, ID("12"), p.ID)
	assert.Equal(t, "Jean-Luc Brunel", p.Name)
	assert.Len(t, p.Extra, 3)
	assert.NotContains(t, p.Extra, "name")

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
}

func TestRecord_PassesValuesThroughUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, p Person)
	}{
		{
			name:  "empty string",
			input: `{"id":1,"name":"","bio":"x"}`,
			check: func(t *testing.T, p Person) {
				assert.Equal(t, ID("1"), p.ID)
				assert.Empty(t, p.Name)
				assert.NotContains(t, p.Extra, "name")
			},
		},
		{
			name:  "null values",
			input: `{"id":null,"name":"A","score":null,"category":null}`,
			check: func(t *testing.T, p Person) {
				assert.Empty(t, p.ID)
				assert.Equal(t, "A", p.Name)
				assert.JSONEq(t, `null`, string(p.Extra["score"]))
			},
		},
		{
			name:  "array where a string is declared",
			input: `{"id":1,"name":"A","category":["pilot","associate"]}`,
			check: func(t *testing.T, p Person) {
				assert.Equal(t, "A", p.Name)
				assert.Empty(t, p.Category)
				assert.JSONEq(t, `["pilot","associate"]`, string(p.Extra["category"]))
			},
		},
		{
			name:  "object where a string is declared",
			input: `{"id":1,"description":{"short":"s"}}`,
			check: func(t *testing.T, p Person) {
				assert.Empty(t, p.Description)
				assert.JSONEq(t, `{"short":"s"}`, string(p.Extra["description"]))
			},
		},
		{
			name:  "boolean identifier",
			input: `{"id":true,"name":"A"}`,
			check: func(t *testing.T, p Person) {
				assert.Empty(t, p.ID)
				assert.JSONEq(t, `true`, string(p.Extra["id"]))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Person
			require.NoError(t, json.Unmarshal([]byte(tt.input), &p))
			tt.check(t, p)

			out, err := json.Marshal(p)
			require.NoError(t, err)
			assert.JSONEq(t, tt.input, string(out))
		})
	}
}

func TestRecord_KnownKeysMatchExactly(t *testing.T) {
	input := `{"ID":"d1","Title":"Memo","title":"memo"}`

	var d Document
	require.NoError(t, json.Unmarshal([]byte(input), &d))
	assert.Empty(t, d.ID)
	assert.Equal(t, "memo", d.Title)
	assert.JSONEq(t, `"d1"`, string(d.Extra["ID"]))
	assert.JSONEq(t, `"Memo"`, string(d.Extra["Title"]))
	assert.NotContains(t, d.Extra, "title")

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
}

func TestRecord_DecodedRecordKeepsNumericID(t *testing.T) {
	var f Flight
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1234}`), &f))
	assert.Equal(t, "1234", f.ID.String())

	out, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1234}`, string(out))
}

func TestRecord_DoesNotEscapeHTML(t *testing.T) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	require.NoError(t, enc.Encode(Document{ID: "1", Title: "<b>Q&A</b>"}))
	assert.Contains(t, buf.String(), "<b>Q&A</b>")
}

func TestRecord_ExtraNeverOverridesTypedField(t *testing.T) {
	p := Person{
		ID:    "1",
		Name:  "typed",
		Extra: map[string]json.RawMessage{"name": json.RawMessage(`"extra"`), "x": json.RawMessage(`1`)},
	}
	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","name":"typed","x":1}`, string(out))
}

func TestEnvelope_UnmarshalJSON(t *testing.T) {
	t.Run("typed envelope", func(t *testing.T) {
		var env Envelope[Flight]
		require.NoError(t, json.Unmarshal([]byte(`{
			"status": "ok",
			"data": [{"id": 1, "origin": "TEB"}, {"id": 2, "origin": "PBI"}],
			"meta": {"total": 40, "page": 1, "per_page": 2, "pages": 20},
			"took_ms": 4
		}`), &env))

		assert.Equal(t, "ok", env.Status)
		require.Len(t, env.Data, 2)
		assert.Equal(t, "PBI", env.Data[1].Origin)
		require.NotNil(t, env.Meta)
		assert.Equal(t, 40, env.Meta.Total)
		assert.Contains(t, env.Meta.Extra, "pages")
		assert.Contains(t, env.Extra, "took_ms")
	})

	t.Run("bare array", func(t *testing.T) {
		var env Envelope[Person]
		require.NoError(t, json.Unmarshal([]byte(`[{"id":"a"},{"id":"b"}]`), &env))
		assert.Len(t, env.Data, 2)
		assert.Nil(t, env.Meta)
		assert.Empty(t, env.Status)
	})

	t.Run("missing data", func(t *testing.T) {
		var env Envelope[Person]
		require.NoError(t, json.Unmarshal([]byte(`{"status":"ok"}`), &env))
		assert.NotNil(t, env.Data)
		assert.Empty(t, env.Data)

		out, err := json.Marshal(env)
		require.NoError(t, err)
		assert.JSONEq(t, `{"status":"ok"}`, string(out))
	})

	t.Run("data is not an array", func(t *testing.T) {
		var env Envelope[Person]
		require.NoError(t, json.Unmarshal([]byte(`{"data":"oops"}`), &env))
		assert.Empty(t, env.Data)
		assert.JSONEq(t, `"oops"`, string(env.Extra["data"]))

		out, err := json.Marshal(env)
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":"oops"}`, string(out))
	})

	t.Run("meta without counts", func(t *testing.T) {
		input := `{"data":[{"id":1,"name":"","score":null,"bio":"x"}],"meta":{"page":1}}`

		var env Envelope[Person]
		require.NoError(t, json.Unmarshal([]byte(input), &env))
		require.NotNil(t, env.Meta)
		assert.Equal(t, 1, env.Meta.Page)
		assert.Zero(t, env.Meta.Total)

		out, err := json.Marshal(env)
		require.NoError(t, err)
		assert.JSONEq(t, input, string(out))
	})

	t.Run("meta counts of the wrong type", func(t *testing.T) {
		var env Envelope[Person]
		require.NoError(t, json.Unmarshal([]byte(`{"data":[],"meta":{"total":"12","page":1}}`), &env))
		require.NotNil(t, env.Meta)
		assert.Zero(t, env.Meta.Total)
		assert.JSONEq(t, `"12"`, string(env.Meta.Extra["total"]))
	})
}

func TestMeta_OmitsUnsetCounts(t *testing.T) {
	out, err := json.Marshal(Meta{Page: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"page":2}`, string(out))
}

func TestEnvelope_RoundTrip(t *testing.T) {
	input := `{"status":"ok","data":[{"id":"1","name":"A","extra":true}],"meta":{"total":1,"page":1,"per_page":50,"timestamp":"2026-02-21T12:00:00Z"},"version":"v1"}`

	var env Envelope[Person]
	require.NoError(t, json.Unmarshal([]byte(input), &env))
	out, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
}

func TestResultGroup(t *testing.T) {
	var g ResultGroup
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1},{"id":2},{"id":3}]`), &g))
	assert.Len(t, g.Results, 3)
	assert.Equal(t, 3, g.Total)

	out, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1},{"id":2},{"id":3}]`, string(out))

	out, err = json.Marshal(ResultGroup{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"results":[],"total":0}`, string(out))
}

func TestCrossSearchResult_MissingGroupsAreEmpty(t *testing.T) {
	var r CrossSearchResult
	require.NoError(t, json.Unmarshal([]byte(`{"status":"ok"}`), &r))

	assert.Empty(t, r.Documents.Results)
	assert.Empty(t, r.Emails.Results)

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(out))

	out, err = json.Marshal(CrossSearchResult{Status: "ok"})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"status": "ok",
		"documents": {"results": [], "total": 0},
		"emails": {"results": [], "total": 0}
	}`, string(out))
}

func TestCrossSearchResult_NestedGroupsPassThrough(t *testing.T) {
	input := `{"status":"ok","data":{"documents":{"results":[{"id":3,"title":["a","b"]}],"total":"many"}}}`

	var r CrossSearchResult
	require.NoError(t, json.Unmarshal([]byte(input), &r))
	require.Len(t, r.Documents.Results, 1)
	assert.Equal(t, ID("3"), r.Documents.Results[0].ID)
	assert.Empty(t, r.Documents.Results[0].Title)
	assert.Zero(t, r.Documents.Total)
	assert.NotContains(t, r.Extra, "data")

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
}

func TestMentions_MarshalJSON(t *testing.T) {
	t.Run("primary body verbatim", func(t *testing.T) {
		m := Mentions{Query: "x", Raw: json.RawMessage(`{"mentions":[1,2]}`)}
		out, err := json.Marshal(m)
		require.NoError(t, err)
		assert.JSONEq(t, `{"mentions":[1,2]}`, string(out))
	})

	t.Run("fallback wraps query", func(t *testing.T) {
		m := Mentions{
			Query:    "Les Wexner",
			Fallback: &Envelope[Person]{Status: "ok", Data: []Person{{ID: "9", Name: "Leslie Wexner"}}},
		}
		out, err := json.Marshal(m)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"query": "Les Wexner",
			"results": {"status": "ok", "data": [{"id": "9", "name": "Leslie Wexner"}]}
		}`, string(out))
	})

	t.Run("empty", func(t *testing.T) {
		out, err := json.Marshal(Mentions{})
		require.NoError(t, err)
		assert.Equal(t, "null", string(out))
	})
}
