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
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/NVIDIA/fleetcrawl/pkg/defaults"
	"github.com/NVIDIA/fleetcrawl/pkg/errors"
)

const (
	serversQuery   = "mapAutomationAgents=true&mapBackupAgents=true&mapMonitoringAgents=true&mapProcesses=true"
	configDBSuffix = "-configdb"
)

func orgsPath() string {
	return "/settings/orgs"
}

func groupsPath(orgID string) string {
	return "/orgs/" + url.PathEscape(orgID) + "/groups"
}

func serversPath(projectID string) string {
	return "/servers/list/" + url.PathEscape(projectID) + "?" + serversQuery
}

func replicaSetMetricsPath(projectID, hostID string, retentionMs int64) string {
	return fmt.Sprintf("/metrics/v1/groups/%s/hosts/%s/replicaset?retention=%d",
		url.PathEscape(projectID), url.PathEscape(hostID), retentionMs)
}

func configDBMetricsPath(projectID, hostID string) string {
	return fmt.Sprintf("/metrics/v1/groups/%s/hosts/%s/databases/storage?retention=%d&bucketed=false&databaseName=config",
		url.PathEscape(projectID), url.PathEscape(hostID), defaults.RetentionConfigDB)
}

// MetricsSuffix returns the file name suffix of a replica set metrics file.
func MetricsSuffix(retentionMs int64) string {
	return "-metrics-" + strconv.FormatInt(retentionMs, 10)
}

// segment checks that an identifier from the API is usable as a single path
// element.
func segment(kind, id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`+"\x00") {
		return "", errors.NewWithContext(errors.ErrCodeInternal,
			fmt.Sprintf("%s id cannot be used as a file name", kind), map[string]any{kind: id})
	}
	return id, nil
}

func orgDir(cc Context, orgID string) (string, error) {
	org, err := segment("org", orgID)
	if err != nil {
		return "", err
	}
	return filepath.Join(cc.OutputDir(), org), nil
}

func projectDir(cc Context, orgID, projectID string) (string, error) {
	dir, err := orgDir(cc, orgID)
	if err != nil {
		return "", err
	}
	project, err := segment("project", projectID)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, project), nil
}
