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
	"net/url"
	"slices"
	"strings"

	"github.com/NVIDIA/fleetcrawl/pkg/defaults"
	"github.com/NVIDIA/fleetcrawl/pkg/errors"
	"github.com/NVIDIA/fleetcrawl/pkg/tree"
)

// Context is the crawl configuration. It is built once by NewContext and
// passed by value to every stage; none of its methods mutate it and slices
// it returns are copies.
type Context struct {
	baseURL          string
	authToken        string
	verifyTLS        bool
	orgs             []string
	projects         map[string]struct{}
	clusterPrefixes  []string
	clusterIDField   tree.Path
	retentionWindows []int64
	configDBMetrics  bool
	outputDir        string
}

// ContextOption configures a Context under construction.
type ContextOption func(*Context)

// WithVerifyTLS toggles TLS certificate verification. Enabled by default.
func WithVerifyTLS(verify bool) ContextOption {
	return func(c *Context) {
		c.verifyTLS = verify
	}
}

// WithOrgs sets the organizations to crawl instead of discovering them.
func WithOrgs(ids ...string) ContextOption {
	return func(c *Context) {
		c.orgs = nonBlank(ids)
	}
}

// WithProjects restricts the crawl to the given project ids.
func WithProjects(ids ...string) ContextOption {
	return func(c *Context) {
		c.projects = make(map[string]struct{}, len(ids))
		for _, id := range nonBlank(ids) {
			c.projects[id] = struct{}{}
		}
	}
}

// WithClusterPrefixes keeps only processes whose display name starts with
// one of prefixes.
func WithClusterPrefixes(prefixes ...string) ContextOption {
	return func(c *Context) {
		c.clusterPrefixes = nonBlank(prefixes)
	}
}

// WithClusterIDField sets the dotted, process-relative path of the cluster id.
func WithClusterIDField(path string) ContextOption {
	return func(c *Context) {
		c.clusterIDField = tree.ParsePath(strings.TrimSpace(path))
	}
}

// WithRetentionWindows sets the metrics retention windows, in milliseconds.
func WithRetentionWindows(ms ...int64) ContextOption {
	return func(c *Context) {
		c.retentionWindows = slices.Clone(ms)
	}
}

// WithConfigDBMetrics enables the per-host config database storage metrics.
func WithConfigDBMetrics(enabled bool) ContextOption {
	return func(c *Context) {
		c.configDBMetrics = enabled
	}
}

// WithOutputDir sets the root of everything the crawl writes.
func WithOutputDir(dir string) ContextOption {
	return func(c *Context) {
		c.outputDir = dir
	}
}

// NewContext builds and validates a Context. An empty baseURL selects the
// SaaS control plane, which requires at least one explicit organization.
func NewContext(baseURL, authToken string, opts ...ContextOption) (Context, error) {
	c := Context{
		baseURL:          strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		authToken:        authToken,
		verifyTLS:        true,
		clusterIDField:   tree.ParsePath(defaults.ClusterIDField),
		retentionWindows: []int64{defaults.RetentionTwoDays},
		outputDir:        ".",
	}
	if c.baseURL == "" {
		c.baseURL = defaults.BaseURL
	}
	for _, opt := range opts {
		opt(&c)
	}
	if strings.TrimSpace(c.outputDir) == "" {
		c.outputDir = "."
	}

	if err := c.validate(); err != nil {
		return Context{}, err
	}
	return c, nil
}

func (c Context) validate() error {
	u, err := url.Parse(c.baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"base URL must be an absolute http(s) URL", map[string]any{"url": c.baseURL})
	}
	if strings.TrimSpace(c.authToken) == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "auth cookie is required")
	}
	if c.IsSaaS() && len(c.orgs) == 0 {
		return errors.New(errors.ErrCodeInvalidRequest,
			"at least one org must be specified when querying "+defaults.BaseURL)
	}
	if len(c.clusterIDField) == 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "cluster id field must not be empty")
	}
	if len(c.retentionWindows) == 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "at least one retention window is required")
	}
	for _, ms := range c.retentionWindows {
		if ms <= 0 {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"retention window must be positive", map[string]any{"retention": ms})
		}
	}
	return nil
}

// BaseURL returns the control plane root without a trailing slash.
func (c Context) BaseURL() string { return c.baseURL }

// AuthToken returns the session token.
func (c Context) AuthToken() string { return c.authToken }

// VerifyTLS reports whether server certificates are verified.
func (c Context) VerifyTLS() bool { return c.verifyTLS }

// IsSaaS reports whether the crawl targets the hosted SaaS control plane.
func (c Context) IsSaaS() bool { return c.baseURL == defaults.BaseURL }

// CookieName returns the session cookie name for the deployment mode.
func (c Context) CookieName() string {
	if c.IsSaaS() {
		return defaults.SaaSCookieName
	}
	return defaults.HostedCookieName
}

// Cookie returns the full Cookie header value.
func (c Context) Cookie() string { return c.CookieName() + "=" + c.authToken }

// Orgs returns the explicit organization ids, or nil when they are to be
// discovered.
func (c Context) Orgs() []string { return slices.Clone(c.orgs) }

// AcceptsProject reports whether projectID passes the project filter. An
// empty filter accepts every project.
func (c Context) AcceptsProject(projectID string) bool {
	if len(c.projects) == 0 {
		return true
	}
	_, ok := c.projects[projectID]
	return ok
}

// AcceptsClusterName reports whether name passes the cluster prefix filter.
// An empty filter accepts everything, including a missing name; otherwise
// name must be a string starting with at least one prefix.
func (c Context) AcceptsClusterName(name tree.Value) bool {
	if len(c.clusterPrefixes) == 0 {
		return true
	}
	s, ok := tree.AsString(name)
	if !ok {
		return false
	}
	for _, prefix := range c.clusterPrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// ClusterIDField returns the process-relative path of the cluster id.
func (c Context) ClusterIDField() tree.Path { return slices.Clone(c.clusterIDField) }

// RetentionWindows returns the metrics windows in milliseconds.
func (c Context) RetentionWindows() []int64 { return slices.Clone(c.retentionWindows) }

// ConfigDBMetrics reports whether config database metrics are downloaded.
func (c Context) ConfigDBMetrics() bool { return c.configDBMetrics }

// OutputDir returns the output root.
func (c Context) OutputDir() string { return c.outputDir }

// LogValue implements slog.LogValuer. The auth token is never logged.
func (c Context) LogValue() slog.Value {
	projects := make([]string, 0, len(c.projects))
	for id := range c.projects {
		projects = append(projects, id)
	}
	slices.Sort(projects)

	return slog.GroupValue(
		slog.String("url", c.baseURL),
		slog.Bool("verifyTLS", c.verifyTLS),
		slog.Any("orgs", c.orgs),
		slog.Any("projects", projects),
		slog.Any("clusters", c.clusterPrefixes),
		slog.String("clusterIdField", c.clusterIDField.String()),
		slog.Any("retention", c.retentionWindows),
		slog.Bool("configDb", c.configDBMetrics),
		slog.String("outputDir", c.outputDir),
	)
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
