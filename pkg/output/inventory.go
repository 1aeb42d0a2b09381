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

package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/NVIDIA/fleetcrawl/pkg/errors"
	"github.com/NVIDIA/fleetcrawl/pkg/tree"
)

// InventoryHeader is the fixed column set of the inventory CSV.
var InventoryHeader = []string{
	"cluster_id",
	"replica_set_id",
	"name",
	"host_id",
	"replica_state",
	"cpu",
	"ram_mb",
	"wt_cache_size_gb",
	"version",
}

// HostRecord is one inventory row. Any field may be nil when the agent did
// not report it; nil fields are written as empty cells.
type HostRecord struct {
	ClusterID     tree.Value
	ReplicaSetID  tree.Value
	Name          tree.Value
	HostID        tree.Value
	ReplicaState  tree.Value
	CPU           tree.Value
	RAMMB         tree.Value
	WTCacheSizeGB tree.Value
	Version       tree.Value
}

// Cells renders the record in InventoryHeader order.
func (r HostRecord) Cells() []string {
	return []string{
		tree.Text(r.ClusterID),
		tree.Text(r.ReplicaSetID),
		tree.Text(r.Name),
		tree.Text(r.HostID),
		tree.Text(r.ReplicaState),
		tree.Text(r.CPU),
		tree.Text(r.RAMMB),
		tree.Text(r.WTCacheSizeGB),
		tree.Text(r.Version),
	}
}

// RowWriter receives inventory rows.
type RowWriter interface {
	WriteRow(r HostRecord) error
}

// Inventory is the single inventory CSV of a crawl. The header is written
// once when the inventory is opened; every WriteRow appends one row and
// flushes it so partial output survives a fatal error. An Inventory is used
// from a single goroutine.
type Inventory struct {
	path   string
	w      *csv.Writer
	closer io.Closer
	rows   int
}

// OpenInventory creates (or truncates) the CSV at path and writes the header.
func OpenInventory(path string) (*Inventory, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeIO, "failed to create inventory", err,
			map[string]any{"path": path})
	}

	inv, err := NewInventory(f)
	if err != nil {
		_ = f.Close()
		return nil, errors.WrapWithContext(errors.ErrCodeIO, "failed to write inventory header", err,
			map[string]any{"path": path})
	}
	inv.path = path
	inv.closer = f
	return inv, nil
}

// NewInventory writes the header to w and returns an Inventory appending to it.
// If w implements io.Closer it is closed by Close.
func NewInventory(w io.Writer) (*Inventory, error) {
	inv := &Inventory{w: csv.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		inv.closer = c
	}
	if err := inv.write(InventoryHeader); err != nil {
		return nil, err
	}
	return inv, nil
}

// WriteRow appends one record.
func (inv *Inventory) WriteRow(r HostRecord) error {
	if inv.w == nil {
		return errors.New(errors.ErrCodeIO, "inventory is closed")
	}
	if err := inv.write(r.Cells()); err != nil {
		return errors.WrapWithContext(errors.ErrCodeIO, "failed to write inventory row", err,
			map[string]any{"path": inv.path})
	}
	inv.rows++
	return nil
}

func (inv *Inventory) write(cells []string) error {
	if err := inv.w.Write(cells); err != nil {
		return err
	}
	inv.w.Flush()
	if err := inv.w.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Rows returns the number of data rows written so far.
func (inv *Inventory) Rows() int {
	return inv.rows
}

// Path returns the file path, or "" for an Inventory built on a plain writer.
func (inv *Inventory) Path() string {
	return inv.path
}

// Close flushes and releases the underlying file. Safe to call more than once.
func (inv *Inventory) Close() error {
	if inv.w == nil {
		return nil
	}
	inv.w.Flush()
	err := inv.w.Error()
	inv.w = nil

	if inv.closer != nil {
		if cerr := inv.closer.Close(); err == nil {
			err = cerr
		}
		inv.closer = nil
	}
	return err
}
