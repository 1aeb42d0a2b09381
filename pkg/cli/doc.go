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

// Package cli implements the fleetcrawl command line.
//
// fleetcrawl downloads the cluster inventory and per-host metrics of every
// organization and project a session cookie can see in MongoDB Cloud or
// Ops Manager.
//
// # Usage
//
//	fleetcrawl [flags] AUTHCOOKIE
//
// Crawl a self-hosted Ops Manager:
//
//	fleetcrawl -u https://opsmanager.example.com:8443 -n $COOKIE
//
// Crawl selected SaaS orgs, production clusters only:
//
//	fleetcrawl -o $ORG -c prod- --retention 172800000 --retention 604800000 $COOKIE
//
// # Flags
//
//	--url, -u            Base URL (default https://cloud.mongodb.com)
//	--org, -o            Org id, repeatable; required for the SaaS endpoint
//	--noverify, -n       Skip TLS certificate verification
//	--project, -p        Project id filter, repeatable
//	--cluster, -c        Cluster name prefix filter, repeatable
//	--retention          Metrics window in ms, repeatable (default 172800000)
//	--cluster-id-field   Process path of the cluster id (default state.parentClusterId)
//	--config-db-metrics  Also download config database storage metrics
//	--output-dir, -d     Output root (default .)
//	--config             YAML or JSON config file, overridden by flags
//	--summary            Crawl summary path (yaml, json, txt; - for stdout)
//	--metrics-file       Prometheus text dump of crawl metrics
//	--timeout            Per request timeout (default 2m, 0 disables)
//	--rate-limit         Requests per second (default unlimited)
//	--log-level          debug, info, warn, error
//
// Every flag can also be set through FLEETCRAWL_<FLAG>, e.g.
// FLEETCRAWL_AUTH_COOKIE or FLEETCRAWL_OUTPUT_DIR. LOG_LEVEL is honored too.
//
// # Exit Codes
//
//	0  Success
//	1  Error (invalid configuration, failed request, file system failure)
//	2  Canceled
package cli
