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

// Package tree provides a typed representation of decoded JSON documents and a
// null-tolerant lookup over them.
//
// # Overview
//
// Monitoring agents report documents whose shape varies between deployments
// and agent versions: fields go missing, sub-objects are sometimes empty, and
// a value that is a number on one host can be absent on the next. Rather than
// binding these payloads to Go structs, the crawler decodes them into a Value
// tree and reads every nested field through Resolve, which returns nil instead
// of failing when any segment of the path is absent.
//
// # Values
//
// A Value is one of:
//   - Object: map[string]Value
//   - Array: []Value
//   - String
//   - Number: the literal JSON text, so "4" stays "4" and "0.25" stays "0.25"
//   - Bool
//
// JSON null and an absent field are both represented by a nil Value.
//
// # Usage
//
//	doc, err := tree.Parse(body)
//	if err != nil {
//	    return err
//	}
//	cores := tree.Lookup(doc, "state.hostInfo.Cores")
//	fmt.Println(tree.Text(cores)) // "" when absent
//
// Paths are dot-delimited; segments may contain spaces, e.g.
// "state.hostInfo.RAM (MB)".
package tree
