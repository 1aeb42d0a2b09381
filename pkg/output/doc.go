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

// Package output owns everything the crawler puts on disk: the directory
// tree keyed by organization and project, the raw JSON payloads, and the
// single inventory CSV.
//
// The inventory header is written exactly once, when the file is opened:
//
//	inv, err := output.OpenInventory(filepath.Join(dir, "clusters.csv"))
//	if err != nil {
//	    return err
//	}
//	defer inv.Close()
//
//	err = inv.WriteRow(output.HostRecord{ClusterID: tree.String("c1")})
//
// Missing values are written as empty cells. Payloads are stored byte for
// byte as the control plane returned them:
//
//	err := output.WriteRaw(filepath.Join(dir, org, "servers-"+project+".json"), body)
package output
