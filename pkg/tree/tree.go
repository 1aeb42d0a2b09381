// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Kind identifies the JSON type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBool
)

var kindNames = map[Kind]string{
	KindNull:   "null",
	KindObject: "object",
	KindArray:  "array",
	KindString: "string",
	KindNumber: "number",
	KindBool:   "bool",
}

// String returns the JSON name of the kind.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value is a node of a decoded JSON document. A nil Value stands for JSON
// null as well as for a field that is not present.
type Value interface {
	kind() Kind
}

// Object is a JSON object.
type Object map[string]Value

// Array is a JSON array.
type Array []Value

// String is a JSON string.
type String string

// Number is a JSON number kept in its literal form.
type Number string

// Bool is a JSON boolean.
type Bool bool

func (Object) kind() Kind { return KindObject }
func (Array) kind() Kind  { return KindArray }
func (String) kind() Kind { return KindString }
func (Number) kind() Kind { return KindNumber }
func (Bool) kind() Kind   { return KindBool }

// Float64 parses the number as a float64.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// MarshalJSON writes the number literal unquoted.
func (n Number) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("0"), nil
	}
	return []byte(n), nil
}

// KindOf reports the kind of v; nil is KindNull.
func KindOf(v Value) Kind {
	if v == nil {
		return KindNull
	}
	return v.kind()
}

// ErrTrailingData is returned by Parse when the input holds more than one
// JSON document.
var ErrTrailingData = errors.New("unexpected data after top-level JSON value")

// Parse decodes a single JSON document into a Value tree.
func Parse(data []byte) (Value, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a single JSON document from r into a Value tree.
func Decode(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}

	return FromAny(raw), nil
}

// FromAny converts the generic output of encoding/json (or a hand built
// literal) into a Value tree. Unsupported Go types become nil.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return nil
	case Value:
		return t
	case map[string]any:
		obj := make(Object, len(t))
		for k, item := range t {
			obj[k] = FromAny(item)
		}
		return obj
	case []any:
		arr := make(Array, len(t))
		for i, item := range t {
			arr[i] = FromAny(item)
		}
		return arr
	case string:
		return String(t)
	case json.Number:
		return Number(t.String())
	case bool:
		return Bool(t)
	case float64:
		return Number(strconv.FormatFloat(t, 'f', -1, 64))
	case float32:
		return Number(strconv.FormatFloat(float64(t), 'f', -1, 32))
	case int:
		return Number(strconv.Itoa(t))
	case int64:
		return Number(strconv.FormatInt(t, 10))
	case int32:
		return Number(strconv.FormatInt(int64(t), 10))
	case uint64:
		return Number(strconv.FormatUint(t, 10))
	default:
		return nil
	}
}
