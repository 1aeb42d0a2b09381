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
	"time"

	"github.com/NVIDIA/fleetcrawl/pkg/header"
)

// Crawl outcomes recorded in a Summary.
const (
	StatusSucceeded = "Succeeded"
	StatusFailed    = "Failed"
)

// Summary describes one crawl: what was visited and which files were
// written. It is produced even when the crawl fails part way.
type Summary struct {
	header.Header `json:",inline" yaml:",inline"`

	BaseURL   string        `json:"baseUrl" yaml:"baseUrl"`
	Status    string        `json:"status" yaml:"status"`
	Error     string        `json:"error,omitempty" yaml:"error,omitempty"`
	StartedAt time.Time     `json:"startedAt" yaml:"startedAt"`
	Duration  string        `json:"duration" yaml:"duration"`
	Inventory string        `json:"inventory" yaml:"inventory"`
	Rows      int           `json:"rows" yaml:"rows"`
	Orgs      []OrgSummary  `json:"orgs" yaml:"orgs"`
	Totals    SummaryTotals `json:"totals" yaml:"totals"`
}

// OrgSummary lists the crawled projects of one organization.
type OrgSummary struct {
	ID               string           `json:"id" yaml:"id"`
	FilteredProjects int              `json:"filteredProjects,omitempty" yaml:"filteredProjects,omitempty"`
	Projects         []ProjectSummary `json:"projects,omitempty" yaml:"projects,omitempty"`
}

// ProjectSummary records the output of one crawled project.
type ProjectSummary struct {
	Project `json:",inline" yaml:",inline"`

	ServersFile string   `json:"serversFile" yaml:"serversFile"`
	Rows        int      `json:"rows" yaml:"rows"`
	Hosts       []string `json:"hosts,omitempty" yaml:"hosts,omitempty"`
	Files       []string `json:"files,omitempty" yaml:"files,omitempty"`
}

// SummaryTotals aggregates a Summary.
type SummaryTotals struct {
	Orgs             int `json:"orgs" yaml:"orgs"`
	Projects         int `json:"projects" yaml:"projects"`
	FilteredProjects int `json:"filteredProjects" yaml:"filteredProjects"`
	Hosts            int `json:"hosts" yaml:"hosts"`
	Files            int `json:"files" yaml:"files"`
}

func (s *Summary) addOrg(id string) *OrgSummary {
	s.Orgs = append(s.Orgs, OrgSummary{ID: id})
	s.Totals.Orgs++
	return &s.Orgs[len(s.Orgs)-1]
}

func (o *OrgSummary) addProject(p Project, serversFile string) *ProjectSummary {
	o.Projects = append(o.Projects, ProjectSummary{Project: p, ServersFile: serversFile})
	return &o.Projects[len(o.Projects)-1]
}

func (s *Summary) finish(start time.Time, rows int, err error) {
	s.Duration = time.Since(start).Round(time.Millisecond).String()
	s.Rows = rows
	s.Status = StatusSucceeded
	if err != nil {
		s.Status = StatusFailed
		s.Error = err.Error()
	}

	s.Totals.Projects, s.Totals.FilteredProjects, s.Totals.Hosts, s.Totals.Files = 0, 0, 0, 0
	for _, org := range s.Orgs {
		s.Totals.Projects += len(org.Projects)
		s.Totals.FilteredProjects += org.FilteredProjects
		for _, p := range org.Projects {
			s.Totals.Hosts += len(p.Hosts)
			s.Totals.Files += len(p.Files) + 1
		}
	}
}
