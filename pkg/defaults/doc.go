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

// Package defaults provides centralized configuration constants for the crawler.
//
// It holds the control plane endpoint and cookie names, retention windows,
// extraction paths, and the HTTP client timeouts. Centralizing these values
// keeps the CLI defaults, the client, and the crawler in agreement.
//
// # Usage
//
//	import "github.com/NVIDIA/fleetcrawl/pkg/defaults"
//
//	windows := []int64{defaults.RetentionTwoDays, defaults.RetentionOneWeek}
//
// # Timeout Guidelines
//
//   - Requests: 2m total by default; metrics for long windows are slow
//   - Connect and TLS handshake: 5s
//   - Response headers: 60s
package defaults
