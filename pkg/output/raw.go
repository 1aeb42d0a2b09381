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

package output

import (
	"github.com/NVIDIA/fleetcrawl/pkg/errors"
	"github.com/NVIDIA/fleetcrawl/pkg/serializer"
)

// WriteRaw persists a response payload verbatim, truncating any previous
// content at path.
func WriteRaw(path string, data []byte) error {
	if err := serializer.WriteToFile(path, data); err != nil {
		return errors.WrapWithContext(errors.ErrCodeIO, "failed to write payload", err,
			map[string]any{"path": path, "bytes": len(data)})
	}
	return nil
}
