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

	"github.com/NVIDIA/fleetcrawl/pkg/client"
	"github.com/NVIDIA/fleetcrawl/pkg/tree"
)

// Project is a project (group) of an organization.
type Project struct {
	ID    string `json:"id" yaml:"id"`
	OrgID string `json:"orgId" yaml:"orgId"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
}

// ListProjects returns every project of orgID, unfiltered. Entries without a
// string id are kept with an empty ID.
func ListProjects(ctx context.Context, f client.Fetcher, orgID string) ([]Project, error) {
	doc, err := getJSON(ctx, f, groupsPath(orgID))
	if err != nil {
		return nil, err
	}

	items := listOf(doc)
	projects := make([]Project, 0, len(items))
	for _, item := range items {
		id, _ := tree.AsString(tree.Lookup(item, "id"))
		name, _ := tree.AsString(tree.Lookup(item, "name"))
		projects = append(projects, Project{ID: id, OrgID: orgID, Name: name})
	}
	return projects, nil
}
