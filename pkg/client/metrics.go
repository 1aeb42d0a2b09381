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

package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleetcrawl_http_requests_total",
			Help: "Total number of control plane requests by response status",
		},
		[]string{"status"}, // HTTP status code, or "error" for transport failures
	)

	requestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fleetcrawl_http_request_duration_seconds",
			Help:    "Time to first response byte for control plane requests",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
	)

	responseBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fleetcrawl_http_response_bytes_total",
			Help: "Total bytes of successful response bodies",
		},
	)
)
