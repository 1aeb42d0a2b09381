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
	"log/slog"

	"github.com/NVIDIA/fleetcrawl/pkg/output"
	"github.com/NVIDIA/fleetcrawl/pkg/tree"
)

// Process-relative fields read during extraction.
var (
	fieldProcesses    = tree.ParsePath("processes")
	fieldProcessType  = tree.ParsePath("processType")
	fieldName         = tree.ParsePath("name")
	fieldIsConf       = tree.ParsePath("state.isConf")
	fieldLastPing     = tree.ParsePath("state.lastPing")
	fieldUserAlias    = tree.ParsePath("state.userAlias")
	fieldReplicaSetID = tree.ParsePath("state.replicaSetId")
	fieldHostID       = tree.ParsePath("state.hostId")
	fieldReplicaState = tree.ParsePath("state.replicaState")
	fieldCores        = tree.ParsePath("state.hostInfo.Cores")
	fieldRAM          = tree.ParsePath("state.hostInfo.RAM (MB)")
	fieldWTCache      = tree.ParsePath("args2_6.storage.wiredTiger.engineConfig.cacheSizeGB")
	fieldVersion      = tree.ParsePath("state.version")
)

const processTypeMongod = "mongod"

// HostRef identifies a host whose metrics are downloaded.
type HostRef struct {
	ClusterID string
	HostID    string
}

// IsMonitoredMongod reports whether a process is a data-bearing mongod that
// has reported at least once: processType is "mongod", state.isConf is
// false, and state.lastPing is neither zero nor false. A missing lastPing
// does not exclude the process; a missing isConf does.
func IsMonitoredMongod(process tree.Value) bool {
	if t, _ := tree.AsString(tree.Resolve(process, fieldProcessType)); t != processTypeMongod {
		return false
	}
	if isConf, ok := tree.AsBool(tree.Resolve(process, fieldIsConf)); !ok || isConf {
		return false
	}
	lastPing := tree.Resolve(process, fieldLastPing)
	if pinged, ok := tree.AsBool(lastPing); ok && !pinged {
		return false
	}
	return !tree.IsZeroNumber(lastPing)
}

// DisplayName returns the name used for cluster prefix filtering and the
// inventory: the user alias on the SaaS control plane, the process name on
// self-hosted deployments.
func DisplayName(cc Context, process tree.Value) tree.Value {
	if cc.IsSaaS() {
		return tree.Resolve(process, fieldUserAlias)
	}
	return tree.Resolve(process, fieldName)
}

// Record builds the inventory row of a process.
func Record(cc Context, process tree.Value) output.HostRecord {
	return output.HostRecord{
		ClusterID:     tree.Resolve(process, cc.ClusterIDField()),
		ReplicaSetID:  tree.Resolve(process, fieldReplicaSetID),
		Name:          DisplayName(cc, process),
		HostID:        tree.Resolve(process, fieldHostID),
		ReplicaState:  tree.Resolve(process, fieldReplicaState),
		CPU:           tree.Resolve(process, fieldCores),
		RAMMB:         tree.Resolve(process, fieldRAM),
		WTCacheSizeGB: tree.Resolve(process, fieldWTCache),
		Version:       tree.Resolve(process, fieldVersion),
	}
}

// ExtractHosts writes one inventory row for every monitored mongod process
// whose name passes the cluster filter, and returns the hosts of those rows
// in encounter order. Hosts and rows are not one to one: a row whose host
// id is missing or not a string is still written, but yields no HostRef and
// so no metrics download.
func ExtractHosts(servers []tree.Value, cc Context, w output.RowWriter) ([]HostRef, error) {
	var hosts []HostRef
	for _, server := range servers {
		for _, process := range tree.Items(tree.Resolve(server, fieldProcesses)) {
			if !IsMonitoredMongod(process) {
				processesSeen.WithLabelValues(processExcluded).Inc()
				continue
			}
			if !cc.AcceptsClusterName(DisplayName(cc, process)) {
				processesSeen.WithLabelValues(processFiltered).Inc()
				continue
			}

			rec := Record(cc, process)
			if err := w.WriteRow(rec); err != nil {
				return hosts, err
			}
			processesSeen.WithLabelValues(processSelected).Inc()

			hostID, ok := tree.AsString(rec.HostID)
			if !ok || hostID == "" {
				slog.Warn("process has no host id, skipping metrics",
					"name", tree.Text(rec.Name),
					"cluster", tree.Text(rec.ClusterID))
				continue
			}
			hosts = append(hosts, HostRef{ClusterID: tree.Text(rec.ClusterID), HostID: hostID})
		}
	}
	return hosts, nil
}
