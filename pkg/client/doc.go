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

// Package client is the HTTP transport to the monitoring control plane.
//
// It sends cookie-authenticated GET requests, optionally skips TLS
// verification, paces requests with a token bucket when a rate limit is
// configured, and converts every non-2xx answer into an
// errors.StructuredError carrying the status and URL. Nothing is retried.
//
//	c, err := client.New(client.Config{
//	    BaseURL: "https://opsmanager.example.com:8443",
//	    Cookie:  "mmsa-hosted=" + token,
//	})
//	body, err := c.Get(ctx, "/settings/orgs")
package client
