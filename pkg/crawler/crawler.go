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
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/fleetcrawl/pkg/client"
	"github.com/NVIDIA/fleetcrawl/pkg/defaults"
	"github.com/NVIDIA/fleetcrawl/pkg/errors"
	"github.com/NVIDIA/fleetcrawl/pkg/header"
	"github.com/NVIDIA/fleetcrawl/pkg/output"
	"github.com/NVIDIA/fleetcrawl/pkg/serializer"
)

// Crawler walks organizations, projects, and hosts of a control plane and
// writes the inventory and metrics under Context.OutputDir.
type Crawler struct {
	// Version is the tool version recorded in the summary.
	Version string

	// Context is the crawl configuration.
	Context Context

	// Fetcher performs the requests. Required.
	Fetcher client.Fetcher

	// Summary, when set, receives the crawl summary after the crawl ends,
	// whether or not it succeeded.
	Summary serializer.Serializer
}

// Run crawls everything the Context selects. Requests are issued one at a
// time and the first failure aborts the crawl; files already written stay on
// disk. The returned Summary is never nil.
func (c *Crawler) Run(ctx context.Context) (*Summary, error) {
	cc := c.Context
	runID := uuid.NewString()
	start := time.Now()

	sum := &Summary{
		BaseURL:   cc.BaseURL(),
		StartedAt: start.UTC(),
		Inventory: filepath.Join(cc.OutputDir(), defaults.InventoryFileName),
	}
	sum.Init(header.KindCrawlSummary, c.Version, runID)

	log := slog.With("runId", runID)
	log.Info("starting crawl", "config", cc)

	rows, err := c.run(ctx, log, sum)
	sum.finish(start, rows, err)

	status := "success"
	if err != nil {
		status = "error"
	}
	crawlTotal.WithLabelValues(status).Inc()
	crawlDuration.Observe(time.Since(start).Seconds())

	if c.Summary != nil {
		// the summary is written even if ctx was canceled
		if serr := c.Summary.Serialize(context.WithoutCancel(ctx), sum); serr != nil {
			log.Error("failed to write crawl summary", "error", serr)
			if err == nil {
				err = errors.Wrap(errors.ErrCodeIO, "failed to write crawl summary", serr)
			}
		}
	}

	if err != nil {
		return sum, err
	}
	log.Info("crawl complete",
		"orgs", sum.Totals.Orgs,
		"projects", sum.Totals.Projects,
		"hosts", sum.Totals.Hosts,
		"rows", sum.Rows,
		"duration", sum.Duration)
	return sum, nil
}

func (c *Crawler) run(ctx context.Context, log *slog.Logger, sum *Summary) (rows int, err error) {
	if c.Fetcher == nil {
		return 0, errors.New(errors.ErrCodeInvalidRequest, "crawler has no fetcher")
	}
	cc := c.Context

	if err := output.EnsureDir(cc.OutputDir()); err != nil {
		return 0, err
	}
	inv, err := output.OpenInventory(sum.Inventory)
	if err != nil {
		return 0, err
	}
	defer func() {
		rows = inv.Rows()
		if cerr := inv.Close(); cerr != nil && err == nil {
			err = errors.Wrap(errors.ErrCodeIO, "failed to close inventory", cerr)
		}
	}()

	orgs, err := ListOrgs(ctx, c.Fetcher, cc)
	if err != nil {
		return 0, fmt.Errorf("failed to list orgs: %w", err)
	}

	for _, orgID := range orgs {
		if err := c.crawlOrg(ctx, log, inv, sum.addOrg(orgID)); err != nil {
			return 0, err
		}
		log.Info("processed org", "org", orgID)
	}
	return 0, nil
}

func (c *Crawler) crawlOrg(ctx context.Context, log *slog.Logger, inv *output.Inventory, org *OrgSummary) error {
	cc := c.Context

	dir, err := orgDir(cc, org.ID)
	if err != nil {
		return err
	}
	if err := output.EnsureDir(dir); err != nil {
		return err
	}

	projects, err := ListProjects(ctx, c.Fetcher, org.ID)
	if err != nil {
		return fmt.Errorf("failed to list projects of org %s: %w", org.ID, err)
	}

	for _, p := range projects {
		if !cc.AcceptsProject(p.ID) {
			projectsSeen.WithLabelValues(projectFiltered).Inc()
			org.FilteredProjects++
			log.Debug("project filtered out", "org", org.ID, "project", p.ID)
			continue
		}
		if p.ID == "" {
			projectsSeen.WithLabelValues(projectSkipped).Inc()
			log.Warn("skipping project without id", "org", org.ID, "name", p.Name)
			continue
		}
		if err := c.crawlProject(ctx, log, inv, org, p); err != nil {
			return err
		}
		projectsSeen.WithLabelValues(projectCrawled).Inc()
	}
	return nil
}

func (c *Crawler) crawlProject(ctx context.Context, log *slog.Logger, inv *output.Inventory, org *OrgSummary, p Project) error {
	cc := c.Context
	log = log.With("org", org.ID, "project", p.ID)

	dir, err := projectDir(cc, org.ID, p.ID)
	if err != nil {
		return err
	}
	if err := output.EnsureDir(dir); err != nil {
		return err
	}

	servers, err := FetchServers(ctx, c.Fetcher, cc, org.ID, p.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch servers of project %s: %w", p.ID, err)
	}
	serversFile, _ := ServersFile(cc, org.ID, p.ID)
	ps := org.addProject(p, serversFile)

	before := inv.Rows()
	hosts, err := ExtractHosts(servers, cc, inv)
	ps.Rows = inv.Rows() - before
	if err != nil {
		return err
	}
	log.Debug("extracted hosts", "servers", len(servers), "rows", ps.Rows, "hosts", len(hosts))

	for _, h := range hosts {
		ps.Hosts = append(ps.Hosts, h.HostID)
		for _, retention := range cc.RetentionWindows() {
			file, err := DownloadMetrics(ctx, c.Fetcher, cc, org.ID, p.ID, h.ClusterID, h.HostID,
				retention, MetricsSuffix(retention))
			if err != nil {
				return fmt.Errorf("failed to download metrics of host %s: %w", h.HostID, err)
			}
			ps.Files = append(ps.Files, file)
		}
		if cc.ConfigDBMetrics() {
			file, err := DownloadConfigDBMetrics(ctx, c.Fetcher, cc, org.ID, p.ID, h.ClusterID, h.HostID)
			if err != nil {
				return fmt.Errorf("failed to download config db metrics of host %s: %w", h.HostID, err)
			}
			ps.Files = append(ps.Files, file)
		}
	}

	log.Info("processed project", "rows", ps.Rows, "hosts", len(hosts))
	return nil
}
