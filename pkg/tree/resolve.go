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
	"encoding/json"
	"strconv"
	"strings"
)

// PathSeparator delimits segments in a textual path.
const PathSeparator = "."

// Path is an ordered list of object keys.
type Path []string

// ParsePath splits a dot-delimited path into segments. An empty string yields
// an empty Path.
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}
	return Path(strings.Split(s, PathSeparator))
}

// String joins the segments back into dotted form.
func (p Path) String() string {
	return strings.Join(p, PathSeparator)
}

// Resolve walks path from v and returns the value found at its end.
//
// It returns nil when v is nil, when a segment is not a key of the current
// node, or when an intermediate node is not an object. An empty path returns
// v unchanged.
func Resolve(v Value, path Path) Value {
	cur := v
	for _, seg := range path {
		obj, ok := cur.(Object)
		if !ok {
			return nil
		}
		next, found := obj[seg]
		if !found {
			return nil
		}
		cur = next
	}
	return cur
}

// Lookup is Resolve with a dot-delimited path.
func Lookup(v Value, path string) Value {
	return Resolve(v, ParsePath(path))
}

// AsString returns the string held by v.
func AsString(v Value) (string, bool) {
	s, ok := v.(String)
	return string(s), ok
}

// AsBool returns the boolean held by v.
func AsBool(v Value) (bool, bool) {
	b, ok := v.(Bool)
	return bool(b), ok
}

// AsNumber returns the number held by v as a float64.
func AsNumber(v Value) (float64, bool) {
	n, ok := v.(Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

// IsZeroNumber reports whether v is a number equal to zero.
func IsZeroNumber(v Value) bool {
	f, ok := AsNumber(v)
	return ok && f == 0
}

// Items returns the elements of an array, or nil when v is not an array.
func Items(v Value) []Value {
	arr, ok := v.(Array)
	if !ok {
		return nil
	}
	return arr
}

// Text renders v for a single text cell. nil renders as the empty string,
// containers render as compact JSON.
func Text(v Value) string {
	switch t := v.(type) {
	case nil:
		return ""
	case String:
		return string(t)
	case Number:
		return string(t)
	case Bool:
		return strconv.FormatBool(bool(t))
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
