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

package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/fleetcrawl/pkg/logging"
)

const (
	name           = "fleetcrawl"
	versionDefault = "dev"
	envPrefix      = "FLEETCRAWL_"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitError    = 1
	ExitCanceled = 2
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the command line against os.Args and exits the process.
// This is called by main.main().
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := Run(ctx, os.Args, os.Stdout, os.Stderr)
	cancel()
	os.Exit(ExitCode(err))
}

// Run executes the root command with args, writing user facing output to
// stdout and errors to stderr.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := rootCmd()
	cmd.Writer = stdout
	cmd.ErrWriter = stderr

	err := cmd.Run(ctx, args)
	if err != nil {
		fmt.Fprintf(stderr, "Error! %v\n", err)
	}
	return err
}

// ExitCode maps the result of Run to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitCanceled
	default:
		return ExitError
	}
}

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:      name,
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Usage:     "Download cluster inventory and metrics from MongoDB Cloud or Ops Manager",
		ArgsUsage: "AUTHCOOKIE",
		Description: `Walks every organization, project, and mongod host visible to the session
cookie and writes:

  clusters.csv                                  one row per monitored mongod
  <org>/servers-<project>.json                  raw server inventory
  <org>/<project>/<host>-metrics-<ms>.json      replica set metrics per window
  <org>/<project>/<host>-configdb.json          config db metrics (--config-db-metrics)

When querying the default SaaS endpoint at least one --org is required.

# Examples

Crawl a self-hosted Ops Manager with a self-signed certificate:
  fleetcrawl -u https://opsmanager.example.com:8443 -n $COOKIE

Crawl two SaaS orgs, production clusters only, two retention windows:
  fleetcrawl -o $ORG1 -o $ORG2 -c prod- --retention 172800000 --retention 604800000 $COOKIE`,
		EnableShellCompletion: true,
		Flags:                 crawlFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String(flagLogLevel))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date)
			return ctx, nil
		},
		Action: crawlAction,
	}
}
