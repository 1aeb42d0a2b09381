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

// Package errors provides structured error types for the crawler.
//
// Every fetch stage returns a *StructuredError on failure and passes it up
// unchanged; only the command entry point turns it into an exit status.
//
// Example usage:
//
//	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
//	    return nil, errors.NewStatusError(resp.StatusCode, url)
//	}
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeIO,
//	    "failed to write metrics",
//	    cause,
//	    map[string]any{"path": path},
//	)
package errors
