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
	"sync"

	"github.com/NVIDIA/fleetcrawl/pkg/errors"
)

// fakeFetcher answers from a fixed path → body table and records every
// request in order. Unknown paths answer 404.
type fakeFetcher struct {
	mu        sync.Mutex
	responses map[string]string
	failures  map[string]int
	requests  []string
}

func newFakeFetcher(responses map[string]string) *fakeFetcher {
	return &fakeFetcher{responses: responses, failures: map[string]int{}}
}

func (f *fakeFetcher) fail(path string, status int) *fakeFetcher {
	f.failures[path] = status
	return f
}

func (f *fakeFetcher) Get(ctx context.Context, path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, path)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if status, ok := f.failures[path]; ok {
		return nil, errors.NewStatusError(status, "http://test"+path)
	}
	body, ok := f.responses[path]
	if !ok {
		return nil, errors.NewStatusError(404, "http://test"+path)
	}
	return []byte(body), nil
}

func (f *fakeFetcher) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}
