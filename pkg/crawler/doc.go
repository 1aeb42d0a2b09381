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

// Package crawler implements the fetch, extract, and filter pipeline over a
// MongoDB Cloud or Ops Manager control plane.
//
// The crawl is linear and sequential:
//
//	ListOrgs
//	  └─ for each org: EnsureDir(<org>), ListProjects
//	       └─ for each accepted project: EnsureDir(<org>/<project>), FetchServers
//	            └─ ExtractHosts → inventory rows
//	                 └─ for each host × retention window: DownloadMetrics
//
// Every stage takes the immutable Context and a client.Fetcher explicitly.
// Stages return the first error they meet; only the caller of Crawler.Run
// decides what to do with it. Nothing is retried and partial output is left
// on disk.
//
// Nested fields of API documents are read only through tree.Resolve, so an
// absent field becomes an empty inventory cell rather than an error.
//
// Host selection keeps processes that are mongod, not config servers, and
// have pinged at least once. The cluster prefix filter then applies to the
// display name, which is the user alias on the SaaS control plane and the
// process name elsewhere.
//
// Files written, relative to the output directory:
//
//	clusters.csv
//	<org>/servers-<project>.json
//	<org>/<project>/<host>-metrics-<retention>.json
//	<org>/<project>/<host>-configdb.json
//
// Usage:
//
//	cc, err := crawler.NewContext(baseURL, token, crawler.WithOrgs(org))
//	if err != nil {
//	    return err
//	}
//	c := &crawler.Crawler{Version: version, Context: cc, Fetcher: httpClient}
//	summary, err := c.Run(ctx)
package crawler
