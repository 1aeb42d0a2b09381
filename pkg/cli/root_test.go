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

package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/fleetcrawl/pkg/crawler"
	"github.com/NVIDIA/fleetcrawl/pkg/errors"
	"github.com/NVIDIA/fleetcrawl/pkg/serializer"
)

const testServers = `[{"processes":[
	{"processType":"mongod","name":"prod-a","state":{"isConf":false,"lastPing":1,"hostId":"h1","parentClusterId":"c1"}},
	{"processType":"mongod","name":"cfg","state":{"isConf":true,"lastPing":1,"hostId":"h2"}}
]}]`

type fakeOpsManager struct {
	mu      sync.Mutex
	paths   []string
	cookies []string
}

func (f *fakeOpsManager) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	f.cookies = append(f.cookies, r.Header.Get("Cookie"))
	f.mu.Unlock()

	switch {
	case r.URL.Path == "/settings/orgs":
		fmt.Fprint(w, `{"orgs":[{"id":"o1"}]}`)
	case strings.HasSuffix(r.URL.Path, "/groups"):
		fmt.Fprint(w, `[{"id":"p1"},{"id":"p2"}]`)
	case strings.HasPrefix(r.URL.Path, "/servers/list/"):
		fmt.Fprint(w, testServers)
	case strings.HasPrefix(r.URL.Path, "/metrics/"):
		fmt.Fprint(w, `{"measurements":[]}`)
	default:
		http.NotFound(w, r)
	}
}

func newFakeOpsManager(t *testing.T) (*fakeOpsManager, *httptest.Server) {
	t.Helper()
	f := &fakeOpsManager{}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Run(context.Background(), append([]string{name}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_Hosted(t *testing.T) {
	fake, srv := newFakeOpsManager(t)
	dir := t.TempDir()

	stdout, _, err := run(t, "-u", srv.URL, "-d", dir, "-p", "p2",
		"--retention", "1000", "--retention", "2000", "secret")
	require.NoError(t, err)
	assert.Contains(t, stdout, successMessage)

	assert.FileExists(t, filepath.Join(dir, "clusters.csv"))
	assert.FileExists(t, filepath.Join(dir, "o1", "servers-p2.json"))
	assert.NoFileExists(t, filepath.Join(dir, "o1", "servers-p1.json"))
	assert.FileExists(t, filepath.Join(dir, "o1", "p2", "h1-metrics-1000.json"))
	assert.FileExists(t, filepath.Join(dir, "o1", "p2", "h1-metrics-2000.json"))
	assert.NoFileExists(t, filepath.Join(dir, "o1", "p2", "h2-metrics-1000.json"))

	for _, c := range fake.cookies {
		assert.Equal(t, "mmsa-hosted=secret", c)
	}
}

func TestRun_SaaSRequiresOrg(t *testing.T) {
	_, stderr, err := run(t, "-d", t.TempDir(), "secret")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest), "got %v", err)
	assert.Contains(t, stderr, "Error!")
	assert.Equal(t, ExitError, ExitCode(err))
}

func TestRun_RequiresCookie(t *testing.T) {
	_, srv := newFakeOpsManager(t)
	_, _, err := run(t, "-u", srv.URL, "-d", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestRun_CookieFromEnv(t *testing.T) {
	fake, srv := newFakeOpsManager(t)
	t.Setenv("FLEETCRAWL_AUTH_COOKIE", "from-env")
	t.Setenv("FLEETCRAWL_URL", srv.URL)

	_, _, err := run(t, "-d", t.TempDir())
	require.NoError(t, err)
	require.NotEmpty(t, fake.cookies)
	assert.Equal(t, "mmsa-hosted=from-env", fake.cookies[0])
}

func TestRun_TooManyArgs(t *testing.T) {
	_, srv := newFakeOpsManager(t)
	_, _, err := run(t, "-u", srv.URL, "a", "b")
	require.Error(t, err)
}

func TestRun_InvalidRetention(t *testing.T) {
	_, srv := newFakeOpsManager(t)
	_, _, err := run(t, "-u", srv.URL, "-d", t.TempDir(), "--retention", "two-days", "secret")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestRun_ConfigFileAndOverrides(t *testing.T) {
	fake, srv := newFakeOpsManager(t)
	fileDir := t.TempDir()
	flagDir := t.TempDir()

	cfg := filepath.Join(t.TempDir(), "crawl.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(fmt.Sprintf(`kind: CrawlConfig
url: %s
authCookie: file-cookie
orgs: [o9]
projects: [p1]
retention: [5000]
outputDir: %s
`, srv.URL, fileDir)), 0o600))

	_, _, err := run(t, "--config", cfg, "-d", flagDir)
	require.NoError(t, err)

	// output dir from the flag, everything else from the file
	assert.NoFileExists(t, filepath.Join(fileDir, "clusters.csv"))
	assert.FileExists(t, filepath.Join(flagDir, "o9", "servers-p1.json"))
	assert.FileExists(t, filepath.Join(flagDir, "o9", "p1", "h1-metrics-5000.json"))
	assert.NotContains(t, fake.paths, "/settings/orgs")
	assert.Equal(t, "mmsa-hosted=file-cookie", fake.cookies[0])
}

func TestRun_BadConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "crawl.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("unknown: true\n"), 0o600))

	_, _, err := run(t, "--config", cfg, "secret")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestRun_SummaryAndMetricsFile(t *testing.T) {
	_, srv := newFakeOpsManager(t)
	dir := t.TempDir()
	summary := filepath.Join(dir, "summary.yaml")
	metrics := filepath.Join(dir, "crawl.prom")

	_, _, err := run(t, "-u", srv.URL, "-d", dir, "--summary", summary, "--metrics-file", metrics, "secret")
	require.NoError(t, err)

	sum, err := serializer.FromFile[crawler.Summary](summary)
	require.NoError(t, err)
	assert.Equal(t, crawler.StatusSucceeded, sum.Status)
	assert.Equal(t, 2, sum.Totals.Projects)
	assert.Equal(t, 2, sum.Rows)

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "fleetcrawl_http_requests_total")
	assert.Contains(t, string(prom), "fleetcrawl_crawl_total")
}

func TestRun_FailureExitCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "denied", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, stderr, err := run(t, "-u", srv.URL, "-d", t.TempDir(), "secret")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnauthorized))
	assert.Contains(t, stderr, "got 401 when requesting: "+srv.URL+"/settings/orgs")
	assert.Equal(t, ExitError, ExitCode(err))
}

func TestRun_Canceled(t *testing.T) {
	_, srv := newFakeOpsManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	err := Run(ctx, []string{name, "-u", srv.URL, "-d", t.TempDir(), "secret"}, &stdout, &stderr)
	require.Error(t, err)
	assert.Equal(t, ExitCanceled, ExitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitError, ExitCode(errors.New(errors.ErrCodeInternal, "boom")))
	assert.Equal(t, ExitCanceled, ExitCode(fmt.Errorf("crawl: %w", context.Canceled)))
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := rootCmd()
	assert.Equal(t, name, cmd.Name)
	assert.NotEmpty(t, cmd.Usage)
	assert.NotNil(t, cmd.Action)

	want := []string{flagURL, flagOrg, flagNoVerify, flagProject, flagCluster, flagRetention,
		flagClusterIDField, flagConfigDBMetrics, flagOutputDir, flagConfig, flagSummary,
		flagMetricsFile, flagTimeout, flagRateLimit, flagLogLevel, flagAuthCookie}
	for _, flagName := range want {
		found := false
		for _, flag := range cmd.Flags {
			for _, n := range flag.Names() {
				if n == flagName {
					found = true
				}
			}
		}
		assert.True(t, found, "flag %q not found", flagName)
	}
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "FLEETCRAWL_CLUSTER_ID_FIELD", envVar(flagClusterIDField))
	assert.Equal(t, "FLEETCRAWL_AUTH_COOKIE", envVar(flagAuthCookie))
}
