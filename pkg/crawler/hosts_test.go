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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/fleetcrawl/pkg/defaults"
	"github.com/NVIDIA/fleetcrawl/pkg/errors"
	"github.com/NVIDIA/fleetcrawl/pkg/output"
	"github.com/NVIDIA/fleetcrawl/pkg/tree"
)

// recordingWriter collects rows in memory.
type recordingWriter struct {
	rows []output.HostRecord
	err  error
}

func (w *recordingWriter) WriteRow(r output.HostRecord) error {
	if w.err != nil {
		return w.err
	}
	w.rows = append(w.rows, r)
	return nil
}

// mongod returns a process that passes host selection; mutate adjusts it.
func mongod(hostID, name string, mutate ...func(p, state map[string]any)) map[string]any {
	state := map[string]any{
		"isConf":          false,
		"lastPing":        1700000000000,
		"hostId":          hostID,
		"userAlias":       "alias-" + name,
		"replicaSetId":    "rs0",
		"replicaState":    "PRIMARY",
		"parentClusterId": "cluster-" + name,
		"version":         "6.0.5",
		"hostInfo": map[string]any{
			"Cores":    8,
			"RAM (MB)": 32768,
		},
	}
	p := map[string]any{
		"processType": "mongod",
		"name":        name,
		"state":       state,
		"args2_6": map[string]any{
			"storage": map[string]any{
				"wiredTiger": map[string]any{
					"engineConfig": map[string]any{"cacheSizeGB": 15.5},
				},
			},
		},
	}
	for _, m := range mutate {
		m(p, state)
	}
	return p
}

func serversJSON(t *testing.T, processes ...map[string]any) string {
	t.Helper()
	b, err := json.Marshal([]any{map[string]any{"processes": processes}})
	require.NoError(t, err)
	return string(b)
}

func parseServers(t *testing.T, processes ...map[string]any) []tree.Value {
	t.Helper()
	doc, err := tree.Parse([]byte(serversJSON(t, processes...)))
	require.NoError(t, err)
	return tree.Items(doc)
}

func TestIsMonitoredMongod(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p, state map[string]any)
		want   bool
	}{
		{"qualifying", func(map[string]any, map[string]any) {}, true},
		{"mongos", func(p, _ map[string]any) { p["processType"] = "mongos" }, false},
		{"missing process type", func(p, _ map[string]any) { delete(p, "processType") }, false},
		{"config server", func(_, s map[string]any) { s["isConf"] = true }, false},
		{"missing isConf", func(_, s map[string]any) { delete(s, "isConf") }, false},
		{"isConf not a bool", func(_, s map[string]any) { s["isConf"] = "false" }, false},
		{"never pinged", func(_, s map[string]any) { s["lastPing"] = 0 }, false},
		{"never pinged float", func(_, s map[string]any) { s["lastPing"] = 0.0 }, false},
		{"lastPing false", func(_, s map[string]any) { s["lastPing"] = false }, false},
		{"lastPing true", func(_, s map[string]any) { s["lastPing"] = true }, true},
		{"lastPing empty string", func(_, s map[string]any) { s["lastPing"] = "" }, true},
		{"missing lastPing", func(_, s map[string]any) { delete(s, "lastPing") }, true},
		{"null lastPing", func(_, s map[string]any) { s["lastPing"] = nil }, true},
		{"missing state", func(p, _ map[string]any) { delete(p, "state") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			servers := parseServers(t, mongod("h1", "prod", tt.mutate))
			process := tree.Items(tree.Lookup(servers[0], "processes"))[0]
			assert.Equal(t, tt.want, IsMonitoredMongod(process))
		})
	}
}

func TestExtractHosts_Hosted(t *testing.T) {
	cc := hostedContext(t)
	servers := parseServers(t,
		mongod("h1", "prod-a"),
		mongod("h2", "cfg", func(_, s map[string]any) { s["isConf"] = true }),
		mongod("h3", "prod-b", func(_, s map[string]any) { delete(s, "hostInfo") }),
	)

	w := &recordingWriter{}
	hosts, err := ExtractHosts(servers, cc, w)
	require.NoError(t, err)

	assert.Equal(t, []HostRef{
		{ClusterID: "cluster-prod-a", HostID: "h1"},
		{ClusterID: "cluster-prod-b", HostID: "h3"},
	}, hosts)

	require.Len(t, w.rows, 2)
	assert.Equal(t, []string{"cluster-prod-a", "rs0", "prod-a", "h1", "PRIMARY", "8", "32768", "15.5", "6.0.5"}, w.rows[0].Cells())
	// missing hostInfo becomes empty cells, the row is still written
	assert.Equal(t, []string{"cluster-prod-b", "rs0", "prod-b", "h3", "PRIMARY", "", "", "15.5", "6.0.5"}, w.rows[1].Cells())
}

func TestExtractHosts_SaaSUsesUserAlias(t *testing.T) {
	cc, err := NewContext(defaults.BaseURL, "token", WithOrgs("o1"), WithClusterPrefixes("alias-prod"))
	require.NoError(t, err)

	servers := parseServers(t, mongod("h1", "prod"), mongod("h2", "dev"))

	w := &recordingWriter{}
	hosts, err := ExtractHosts(servers, cc, w)
	require.NoError(t, err)

	require.Len(t, hosts, 1)
	assert.Equal(t, "h1", hosts[0].HostID)
	assert.Equal(t, tree.String("alias-prod"), w.rows[0].Name)
}

func TestExtractHosts_ClusterPrefixFilter(t *testing.T) {
	servers := parseServers(t, mongod("h1", "abc"), mongod("h2", "xyz"), mongod("h3", "abd"))

	tests := []struct {
		name     string
		prefixes []string
		want     []string
	}{
		{"no filter", nil, []string{"h1", "h2", "h3"}},
		{"single prefix", []string{"ab"}, []string{"h1", "h3"}},
		{"or of prefixes", []string{"abc", "x"}, []string{"h1", "h2"}},
		{"no match", []string{"q"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := hostedContext(t, WithClusterPrefixes(tt.prefixes...))
			w := &recordingWriter{}
			hosts, err := ExtractHosts(servers, cc, w)
			require.NoError(t, err)

			var got []string
			for _, h := range hosts {
				got = append(got, h.HostID)
			}
			assert.Equal(t, tt.want, got)
			assert.Len(t, w.rows, len(tt.want))
		})
	}
}

func TestExtractHosts_ClusterIDField(t *testing.T) {
	cc := hostedContext(t, WithClusterIDField("state.clusterId"))
	servers := parseServers(t, mongod("h1", "prod", func(_, s map[string]any) {
		s["clusterId"] = "cid-1"
	}))

	hosts, err := ExtractHosts(servers, cc, &recordingWriter{})
	require.NoError(t, err)
	require.Len(t, hosts, 1)
	assert.Equal(t, "cid-1", hosts[0].ClusterID)
}

func TestExtractHosts_MissingHostID(t *testing.T) {
	cc := hostedContext(t)
	servers := parseServers(t, mongod("h1", "prod", func(_, s map[string]any) { delete(s, "hostId") }))

	w := &recordingWriter{}
	hosts, err := ExtractHosts(servers, cc, w)
	require.NoError(t, err)
	assert.Empty(t, hosts)
	require.Len(t, w.rows, 1)
	assert.Nil(t, w.rows[0].HostID)
}

func TestExtractHosts_RowsWithoutHostRef(t *testing.T) {
	cc := hostedContext(t)
	servers := parseServers(t,
		mongod("h1", "prod-a"),
		mongod("h2", "prod-b", func(_, s map[string]any) { s["hostId"] = 42 }),
		mongod("h3", "prod-c", func(_, s map[string]any) { s["hostId"] = "" }),
	)

	w := &recordingWriter{}
	hosts, err := ExtractHosts(servers, cc, w)
	require.NoError(t, err)
	assert.Len(t, w.rows, 3)
	assert.Equal(t, []HostRef{{ClusterID: "cluster-prod-a", HostID: "h1"}}, hosts)
	assert.Equal(t, "42", tree.Text(w.rows[1].HostID))
}

func TestExtractHosts_ToleratesOddShapes(t *testing.T) {
	cc := hostedContext(t)
	doc, err := tree.Parse([]byte(`[
		null,
		{},
		{"processes": null},
		{"processes": "nope"},
		{"processes": [null, 1, "x", {"state": null}]}
	]`))
	require.NoError(t, err)

	w := &recordingWriter{}
	hosts, err := ExtractHosts(tree.Items(doc), cc, w)
	require.NoError(t, err)
	assert.Empty(t, hosts)
	assert.Empty(t, w.rows)
}

func TestExtractHosts_WriterError(t *testing.T) {
	cc := hostedContext(t)
	servers := parseServers(t, mongod("h1", "prod"))

	w := &recordingWriter{err: errors.New(errors.ErrCodeIO, "disk full")}
	_, err := ExtractHosts(servers, cc, w)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeIO))
}
