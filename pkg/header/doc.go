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

// Package header provides the Kubernetes-style header shared by documents
// fleetcrawl writes, such as the crawl summary.
//
//	kind: CrawlSummary
//	apiVersion: fleetcrawl.nvidia.com/v1alpha1
//	metadata:
//	  timestamp: "2025-01-15T10:30:00Z"
//	  version: v1.2.0
//	  runId: 0b6b3c1e-...
//
// Embed Header inline and initialize it once the document is complete:
//
//	type Summary struct {
//	    header.Header `json:",inline" yaml:",inline"`
//	    Hosts int `json:"hosts" yaml:"hosts"`
//	}
//
//	s.Init(header.KindCrawlSummary, version, runID)
package header
