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

package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_IsValid(t *testing.T) {
	assert.True(t, KindCrawlSummary.IsValid())
	assert.True(t, KindCrawlConfig.IsValid())
	assert.False(t, Kind("Snapshot").IsValid())
	assert.Equal(t, "CrawlSummary", KindCrawlSummary.String())
}

func TestNew(t *testing.T) {
	h := New(WithKind(KindCrawlSummary), WithMetadata("org", "o1"))
	assert.Equal(t, KindCrawlSummary, h.Kind)
	assert.Equal(t, APIVersion, h.APIVersion)
	assert.Equal(t, "o1", h.Metadata["org"])

	h = New(WithAPIVersion("v2"))
	assert.Equal(t, "v2", h.APIVersion)
	assert.NotNil(t, h.Metadata)
}

func TestInit(t *testing.T) {
	var h Header
	h.Init(KindCrawlSummary, "v1.0.0", "run-1")

	assert.Equal(t, KindCrawlSummary, h.Kind)
	assert.Equal(t, "v1.0.0", h.Metadata[MetadataVersion])
	assert.Equal(t, "run-1", h.Metadata[MetadataRunID])

	ts, err := time.Parse(time.RFC3339, h.Metadata[MetadataTimestamp])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)

	h.Init(KindCrawlSummary, "", "")
	assert.NotContains(t, h.Metadata, MetadataVersion)
	assert.NotContains(t, h.Metadata, MetadataRunID)
}
