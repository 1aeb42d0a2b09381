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
	"encoding/json"
	"log/slog"
	"path/filepath"

	"github.com/NVIDIA/fleetcrawl/pkg/client"
	"github.com/NVIDIA/fleetcrawl/pkg/errors"
	"github.com/NVIDIA/fleetcrawl/pkg/output"
)

// MetricsFile returns where a host metrics payload with the given suffix is
// stored.
func MetricsFile(cc Context, orgID, projectID, hostID, suffix string) (string, error) {
	dir, err := projectDir(cc, orgID, projectID)
	if err != nil {
		return "", err
	}
	host, err := segment("host", hostID)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, host+suffix+".json"), nil
}

// DownloadMetrics fetches the replica set metrics of a host for one
// retention window and stores them verbatim. It returns the file written.
func DownloadMetrics(ctx context.Context, f client.Fetcher, cc Context,
	orgID, projectID, clusterID, hostID string, retentionMs int64, suffix string) (string, error) {
	return download(ctx, f, cc, replicaSetMetricsPath(projectID, hostID, retentionMs),
		orgID, projectID, clusterID, hostID, suffix, fileKindReplicaSet)
}

// DownloadConfigDBMetrics fetches the one hour storage metrics of the config
// database of a host and stores them verbatim. It returns the file written.
func DownloadConfigDBMetrics(ctx context.Context, f client.Fetcher, cc Context,
	orgID, projectID, clusterID, hostID string) (string, error) {
	return download(ctx, f, cc, configDBMetricsPath(projectID, hostID),
		orgID, projectID, clusterID, hostID, configDBSuffix, fileKindConfigDB)
}

func download(ctx context.Context, f client.Fetcher, cc Context, path,
	orgID, projectID, clusterID, hostID, suffix, kind string) (string, error) {
	file, err := MetricsFile(cc, orgID, projectID, hostID, suffix)
	if err != nil {
		return "", err
	}

	body, err := f.Get(ctx, path)
	if err != nil {
		return "", err
	}
	if !json.Valid(body) {
		return "", errors.NewWithContext(errors.ErrCodeInternal, "metrics response is not valid JSON",
			map[string]any{"path": path, "bytes": len(body)})
	}
	if err := output.WriteRaw(file, body); err != nil {
		return "", err
	}
	filesWritten.WithLabelValues(kind).Inc()

	slog.Debug("stored metrics",
		"cluster", clusterID,
		"host", hostID,
		"file", file)
	return file, nil
}
