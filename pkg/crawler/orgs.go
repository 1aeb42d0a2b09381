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
	"log/slog"

	"github.com/NVIDIA/fleetcrawl/pkg/client"
	"github.com/NVIDIA/fleetcrawl/pkg/errors"
	"github.com/NVIDIA/fleetcrawl/pkg/tree"
)

// ListOrgs returns the organizations to crawl. Explicit orgs in cc are
// returned as-is without a request; otherwise they are discovered from the
// organizations endpoint. A response without an orgs list yields none.
func ListOrgs(ctx context.Context, f client.Fetcher, cc Context) ([]string, error) {
	if orgs := cc.Orgs(); len(orgs) > 0 {
		return orgs, nil
	}

	doc, err := getJSON(ctx, f, orgsPath())
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, org := range tree.Items(tree.Lookup(doc, "orgs")) {
		id, ok := tree.AsString(tree.Lookup(org, "id"))
		if !ok {
			slog.Debug("skipping org without id")
			continue
		}
		ids = append(ids, id)
	}
	slog.Debug("discovered orgs", "count", len(ids))
	return ids, nil
}

// getJSON fetches path and parses the body.
func getJSON(ctx context.Context, f client.Fetcher, path string) (tree.Value, error) {
	body, err := f.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decode(body, path)
}

func decode(body []byte, path string) (tree.Value, error) {
	doc, err := tree.Parse(body)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to decode response", err,
			map[string]any{"path": path, "bytes": len(body)})
	}
	return doc, nil
}

// listOf returns the elements of a list response, which is either a bare
// array or an object carrying a results array.
func listOf(doc tree.Value) []tree.Value {
	if items := tree.Items(doc); items != nil {
		return items
	}
	return tree.Items(tree.Lookup(doc, "results"))
}
