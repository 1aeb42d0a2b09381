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

package crawler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	fileKindServers    = "servers"
	fileKindReplicaSet = "replicaset"
	fileKindConfigDB   = "configdb"

	processSelected = "selected"
	processExcluded = "excluded"
	processFiltered = "filtered"

	projectCrawled  = "crawled"
	projectFiltered = "filtered"
	projectSkipped  = "skipped"
)

var (
	crawlDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fleetcrawl_crawl_duration_seconds",
			Help:    "Time taken by a complete crawl",
			Buckets: []float64{1, 10, 60, 300, 900, 1800, 3600},
		},
	)

	crawlTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleetcrawl_crawl_total",
			Help: "Total number of crawls by outcome",
		},
		[]string{"status"}, // success or error
	)

	projectsSeen = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleetcrawl_projects_total",
			Help: "Projects listed, by what the crawl did with them",
		},
		[]string{"result"}, // crawled, filtered, skipped
	)

	processesSeen = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleetcrawl_processes_total",
			Help: "Processes inspected during host extraction",
		},
		[]string{"result"}, // selected, excluded, filtered
	)

	filesWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleetcrawl_files_written_total",
			Help: "Raw payload files written",
		},
		[]string{"kind"}, // servers, replicaset, configdb
	)
)
