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

// Package logging provides structured logging utilities for fleetcrawl.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults:
// JSON records on stderr, level from LOG_LEVEL or --log-level, module and
// version attributes on every record, and source location on debug.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: one record per request, with source location
//   - INFO: per organization and project progress (default)
//   - WARN/WARNING: skipped data, e.g. a process without a host id
//   - ERROR: the fatal error that ends a crawl
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLoggerWithLevel("fleetcrawl", version, "info")
//	    slog.Info("processed org", "org", orgID)
//	}
//
// # Output Format
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "processed org",
//	    "module": "fleetcrawl",
//	    "version": "v1.0.0",
//	    "org": "5f1a..."
//	}
package logging
