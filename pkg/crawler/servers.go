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
	"context"
	"path/filepath"

	"github.com/NVIDIA/fleetcrawl/pkg/client"
	"github.com/NVIDIA/fleetcrawl/pkg/output"
	"github.com/NVIDIA/fleetcrawl/pkg/tree"
)

// ServersFile returns where the server inventory of a project is stored.
func ServersFile(cc Context, orgID, projectID string) (string, error) {
	dir, err := orgDir(cc, orgID)
	if err != nil {
		return "", err
	}
	project, err := segment("project", projectID)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "servers-"+project+".json"), nil
}

// FetchServers downloads the server and process inventory of a project,
// stores the body verbatim under the org directory, and returns the
// decoded server documents.
func FetchServers(ctx context.Context, f client.Fetcher, cc Context, orgID, projectID string) ([]tree.Value, error) {
	file, err := ServersFile(cc, orgID, projectID)
	if err != nil {
		return nil, err
	}

	path := serversPath(projectID)
	body, err := f.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := output.WriteRaw(file, body); err != nil {
		return nil, err
	}
	filesWritten.WithLabelValues(fileKindServers).Inc()

	doc, err := decode(body, path)
	if err != nil {
		return nil, err
	}
	return listOf(doc), nil
}
