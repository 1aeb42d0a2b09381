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

package defaults

// Control plane endpoint and authentication.
const (
	// BaseURL is the hosted SaaS control plane. Any other base URL is treated
	// as a self-hosted deployment.
	BaseURL = "https://cloud.mongodb.com"

	// SaaSCookieName is the session cookie used by the SaaS control plane.
	SaaSCookieName = "mmsa-prod"

	// HostedCookieName is the session cookie used by self-hosted deployments.
	HostedCookieName = "mmsa-hosted"
)

// Metrics retention windows, in milliseconds.
const (
	// RetentionTwoDays is the default replica set metrics window.
	RetentionTwoDays int64 = 172800000

	// RetentionOneWeek is the long replica set metrics window.
	RetentionOneWeek int64 = 604800000

	// RetentionConfigDB is the fixed window for config database storage metrics.
	RetentionConfigDB int64 = 3600000
)

// Extraction and output.
const (
	// ClusterIDField is the process-relative path of the cluster identifier.
	// Some deployments report it as state.clusterId instead.
	ClusterIDField = "state.parentClusterId"

	// InventoryFileName is the inventory CSV written at the output root.
	InventoryFileName = "clusters.csv"

	// MaxResponseBytes caps a single response body.
	MaxResponseBytes = 256 * 1024 * 1024
)
