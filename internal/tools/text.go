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
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// maxTextDepth bounds the walk over values the JSON encoder rejects.
const maxTextDepth = 32

var (
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// ToText renders v as two-space indented JSON without HTML escaping. Values
// the JSON encoder rejects, such as channels, funcs, complex numbers, and
// non-finite floats, are rendered as their fmt string form.
func ToText(v any) string {
	if text, err := encodeIndented(v); err == nil {
		return text
	}
	text, err := encodeIndented(toEncodable(reflect.ValueOf(v), 0))
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return text
}

func encodeIndented(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// toEncodable rebuilds v from maps, slices, and scalars the JSON encoder
// accepts.
func toEncodable(v reflect.Value, depth int) any {
	if !v.IsValid() {
		return nil
	}
	if depth > maxTextDepth {
		return fmt.Sprintf("%v", v.Interface())
	}

	if v.Type().Implements(jsonMarshalerType) || v.Type().Implements(textMarshalerType) {
		if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
			return nil
		}
		if b, err := json.Marshal(v.Interface()); err == nil {
			return json.RawMessage(b)
		}
		return fmt.Sprintf("%v", v.Interface())
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return toEncodable(v.Elem(), depth+1)

	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = toEncodable(iter.Value(), depth+1)
		}
		return out

	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return v.Bytes()
		}
		fallthrough
	case reflect.Array:
		out := make([]any, v.Len())
		for i := range out {
			out[i] = toEncodable(v.Index(i), depth+1)
		}
		return out

	case reflect.Struct:
		return structToMap(v, depth)

	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
		return f

	case reflect.Complex64, reflect.Complex128, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return fmt.Sprintf("%v", v.Interface())

	default:
		return v.Interface()
	}
}

// structToMap follows the encoding/json field naming rules for exported
// fields, including embedded structs, and the "-" and omitempty options.
func structToMap(v reflect.Value, depth int) map[string]any {
	out := make(map[string]any)
	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() && !f.Anonymous {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		fv := v.Field(i)

		if f.Anonymous && name == "" {
			ev := fv
			if ev.Kind() == reflect.Pointer {
				if ev.IsNil() {
					continue
				}
				ev = ev.Elem()
			}
			if ev.Kind() == reflect.Struct {
				for k, val := range structToMap(ev, depth+1) {
					if _, exists := out[k]; !exists {
						out[k] = val
					}
				}
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		if strings.Contains(opts, "omitempty") && fv.IsZero() {
			continue
		}
		out[name] = toEncodable(fv, depth+1)
	}
	return out
}
