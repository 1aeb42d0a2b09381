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
	"github.com/NVIDIA/fleetcrawl/pkg/errors"
	"github.com/NVIDIA/fleetcrawl/pkg/header"
	"github.com/NVIDIA/fleetcrawl/pkg/serializer"
)

// FileConfig is the on-disk form of a crawl configuration. Every field
// mirrors a command line flag; zero values mean "not set".
//
//	kind: CrawlConfig
//	apiVersion: fleetcrawl.nvidia.com/v1alpha1
//	url: https://opsmanager.example.com:8443
//	orgs: [5f1a...]
//	clusters: [prod-]
//	retention: [172800000, 604800000]
type FileConfig struct {
	header.Header `json:",inline" yaml:",inline"`

	URL             string   `json:"url,omitempty" yaml:"url,omitempty"`
	AuthCookie      string   `json:"authCookie,omitempty" yaml:"authCookie,omitempty"`
	Orgs            []string `json:"orgs,omitempty" yaml:"orgs,omitempty"`
	Projects        []string `json:"projects,omitempty" yaml:"projects,omitempty"`
	Clusters        []string `json:"clusters,omitempty" yaml:"clusters,omitempty"`
	NoVerify        bool     `json:"noVerify,omitempty" yaml:"noVerify,omitempty"`
	Retention       []int64  `json:"retention,omitempty" yaml:"retention,omitempty"`
	ClusterIDField  string   `json:"clusterIdField,omitempty" yaml:"clusterIdField,omitempty"`
	ConfigDBMetrics bool     `json:"configDbMetrics,omitempty" yaml:"configDbMetrics,omitempty"`
	OutputDir       string   `json:"outputDir,omitempty" yaml:"outputDir,omitempty"`
	Timeout         string   `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	RateLimit       float64  `json:"rateLimit,omitempty" yaml:"rateLimit,omitempty"`
}

// LoadFileConfig reads a YAML or JSON crawl configuration. Unknown keys are
// rejected, and so is a kind other than CrawlConfig.
func LoadFileConfig(path string) (*FileConfig, error) {
	fc, err := serializer.FromFile[FileConfig](path, serializer.WithStrict())
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to load crawl config", err,
			map[string]any{"path": path})
	}
	if fc.Kind != "" && fc.Kind != header.KindCrawlConfig {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "unexpected config kind",
			map[string]any{"path": path, "kind": fc.Kind.String()})
	}
	return fc, nil
}
