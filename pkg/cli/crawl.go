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
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/fleetcrawl/pkg/client"
	"github.com/NVIDIA/fleetcrawl/pkg/crawler"
	"github.com/NVIDIA/fleetcrawl/pkg/defaults"
	"github.com/NVIDIA/fleetcrawl/pkg/errors"
	"github.com/NVIDIA/fleetcrawl/pkg/logging"
	"github.com/NVIDIA/fleetcrawl/pkg/serializer"
)

const (
	flagAuthCookie      = "auth-cookie"
	flagURL             = "url"
	flagOrg             = "org"
	flagNoVerify        = "noverify"
	flagProject         = "project"
	flagCluster         = "cluster"
	flagRetention       = "retention"
	flagClusterIDField  = "cluster-id-field"
	flagConfigDBMetrics = "config-db-metrics"
	flagOutputDir       = "output-dir"
	flagConfig          = "config"
	flagSummary         = "summary"
	flagMetricsFile     = "metrics-file"
	flagTimeout         = "timeout"
	flagRateLimit       = "rate-limit"
	flagLogLevel        = "log-level"
)

const successMessage = "Successfully downloaded all cluster data and metrics!"

func envVar(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

func crawlFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagAuthCookie,
			Usage:   "Session cookie value (alternative to the AUTHCOOKIE argument)",
			Sources: cli.EnvVars(envVar(flagAuthCookie)),
		},
		&cli.StringFlag{
			Name:    flagURL,
			Aliases: []string{"u"},
			Usage:   "Base URL of Ops Manager (leave unset for the SaaS endpoint)",
			Value:   defaults.BaseURL,
			Sources: cli.EnvVars(envVar(flagURL)),
		},
		&cli.StringSliceFlag{
			Name:    flagOrg,
			Aliases: []string{"o"},
			Usage:   "Crawl only this org id, can be repeated (required for the SaaS endpoint)",
			Sources: cli.EnvVars(envVar(flagOrg)),
		},
		&cli.BoolFlag{
			Name:    flagNoVerify,
			Aliases: []string{"n"},
			Usage:   "Do not verify the server TLS certificate",
			Sources: cli.EnvVars(envVar(flagNoVerify)),
		},
		&cli.StringSliceFlag{
			Name:    flagProject,
			Aliases: []string{"p"},
			Usage:   "Crawl only this project id, can be repeated",
			Sources: cli.EnvVars(envVar(flagProject)),
		},
		&cli.StringSliceFlag{
			Name:    flagCluster,
			Aliases: []string{"c"},
			Usage:   "Keep only clusters whose name starts with this prefix, can be repeated",
			Sources: cli.EnvVars(envVar(flagCluster)),
		},
		&cli.StringSliceFlag{
			Name:    flagRetention,
			Usage:   "Metrics retention window in milliseconds, can be repeated",
			Value:   []string{strconv.FormatInt(defaults.RetentionTwoDays, 10)},
			Sources: cli.EnvVars(envVar(flagRetention)),
		},
		&cli.StringFlag{
			Name:    flagClusterIDField,
			Usage:   "Dotted path of the cluster id within a process",
			Value:   defaults.ClusterIDField,
			Sources: cli.EnvVars(envVar(flagClusterIDField)),
		},
		&cli.BoolFlag{
			Name:    flagConfigDBMetrics,
			Usage:   "Also download one hour of config database storage metrics per host",
			Sources: cli.EnvVars(envVar(flagConfigDBMetrics)),
		},
		&cli.StringFlag{
			Name:    flagOutputDir,
			Aliases: []string{"d"},
			Usage:   "Directory to write the inventory and metrics to",
			Value:   ".",
			Sources: cli.EnvVars(envVar(flagOutputDir)),
		},
		&cli.StringFlag{
			Name:    flagConfig,
			Usage:   "YAML or JSON crawl config file; flags override its values",
			Sources: cli.EnvVars(envVar(flagConfig)),
		},
		&cli.StringFlag{
			Name:    flagSummary,
			Usage:   "Write a crawl summary to this path (yaml, json, or txt by extension; - for stdout)",
			Sources: cli.EnvVars(envVar(flagSummary)),
		},
		&cli.StringFlag{
			Name:    flagMetricsFile,
			Usage:   "Write crawl metrics in Prometheus text format to this path",
			Sources: cli.EnvVars(envVar(flagMetricsFile)),
		},
		&cli.DurationFlag{
			Name:    flagTimeout,
			Usage:   "Timeout of a single request, 0 disables it",
			Value:   defaults.CrawlRequestTimeout,
			Sources: cli.EnvVars(envVar(flagTimeout)),
		},
		&cli.FloatFlag{
			Name:    flagRateLimit,
			Usage:   "Maximum requests per second, 0 means unlimited",
			Sources: cli.EnvVars(envVar(flagRateLimit)),
		},
		&cli.StringFlag{
			Name:    flagLogLevel,
			Usage:   "Log level (debug, info, warn, error)",
			Value:   "info",
			Sources: cli.EnvVars(logging.EnvVarLogLevel, envVar(flagLogLevel)),
		},
	}
}

// settings is the merged view of flags and the optional config file.
type settings struct {
	context     crawler.Context
	timeout     time.Duration
	rateLimit   float64
	summary     string
	metricsFile string
}

func crawlAction(ctx context.Context, cmd *cli.Command) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cc := s.context

	httpClient, err := client.New(client.Config{
		BaseURL:            cc.BaseURL(),
		Cookie:             cc.Cookie(),
		InsecureSkipVerify: !cc.VerifyTLS(),
		RequestTimeout:     s.timeout,
		RateLimit:          s.rateLimit,
		UserAgent:          name + "/" + version,
	})
	if err != nil {
		return err
	}

	c := &crawler.Crawler{
		Version: version,
		Context: cc,
		Fetcher: httpClient,
	}

	if s.summary != "" {
		w, werr := serializer.NewFileWriterOrStdout(serializer.FormatFromPath(s.summary), s.summary)
		if werr != nil {
			return errors.Wrap(errors.ErrCodeIO, "failed to open summary", werr)
		}
		defer func() {
			if cerr := w.Close(); cerr != nil {
				slog.Warn("failed to close summary", "error", cerr)
			}
		}()
		c.Summary = w
	}

	_, err = c.Run(ctx)

	if s.metricsFile != "" {
		if merr := prometheus.WriteToTextfile(s.metricsFile, prometheus.DefaultGatherer); merr != nil {
			slog.Error("failed to write metrics file", "path", s.metricsFile, "error", merr)
			if err == nil {
				err = errors.Wrap(errors.ErrCodeIO, "failed to write metrics file", merr)
			}
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Root().Writer, successMessage)
	return nil
}

// loadSettings merges the config file, if any, under the command line.
// A flag given on the command line or through its environment variable
// always wins over the file.
func loadSettings(cmd *cli.Command) (*settings, error) {
	fc := &crawler.FileConfig{}
	if path := cmd.String(flagConfig); path != "" {
		loaded, err := crawler.LoadFileConfig(path)
		if err != nil {
			return nil, err
		}
		fc = loaded
	}

	cookie, err := authCookie(cmd, fc)
	if err != nil {
		return nil, err
	}

	retention := fc.Retention
	if cmd.IsSet(flagRetention) || len(retention) == 0 {
		if retention, err = parseRetention(cmd.StringSlice(flagRetention)); err != nil {
			return nil, err
		}
	}

	timeout := cmd.Duration(flagTimeout)
	if !cmd.IsSet(flagTimeout) && fc.Timeout != "" {
		if timeout, err = time.ParseDuration(fc.Timeout); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid timeout in config file", err)
		}
	}

	cc, err := crawler.NewContext(
		pickString(cmd, flagURL, fc.URL),
		cookie,
		crawler.WithVerifyTLS(!pickBool(cmd, flagNoVerify, fc.NoVerify)),
		crawler.WithOrgs(pickSlice(cmd, flagOrg, fc.Orgs)...),
		crawler.WithProjects(pickSlice(cmd, flagProject, fc.Projects)...),
		crawler.WithClusterPrefixes(pickSlice(cmd, flagCluster, fc.Clusters)...),
		crawler.WithRetentionWindows(retention...),
		crawler.WithClusterIDField(pickString(cmd, flagClusterIDField, fc.ClusterIDField)),
		crawler.WithConfigDBMetrics(pickBool(cmd, flagConfigDBMetrics, fc.ConfigDBMetrics)),
		crawler.WithOutputDir(pickString(cmd, flagOutputDir, fc.OutputDir)),
	)
	if err != nil {
		return nil, err
	}

	rateLimit := cmd.Float(flagRateLimit)
	if !cmd.IsSet(flagRateLimit) && fc.RateLimit > 0 {
		rateLimit = fc.RateLimit
	}

	return &settings{
		context:     cc,
		timeout:     timeout,
		rateLimit:   rateLimit,
		summary:     cmd.String(flagSummary),
		metricsFile: cmd.String(flagMetricsFile),
	}, nil
}

func authCookie(cmd *cli.Command, fc *crawler.FileConfig) (string, error) {
	if cmd.NArg() > 1 {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest, "too many arguments",
			map[string]any{"args": cmd.NArg()})
	}
	if arg := cmd.Args().First(); arg != "" {
		return arg, nil
	}
	if v := cmd.String(flagAuthCookie); v != "" {
		return v, nil
	}
	if fc.AuthCookie != "" {
		return fc.AuthCookie, nil
	}
	return "", errors.New(errors.ErrCodeInvalidRequest,
		"auth cookie is required: pass AUTHCOOKIE, --auth-cookie, or "+envVar(flagAuthCookie))
}

func parseRetention(values []string) ([]int64, error) {
	out := make([]int64, 0, len(values))
	for _, v := range values {
		ms, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid retention window", err,
				map[string]any{"retention": v})
		}
		out = append(out, ms)
	}
	return out, nil
}

func pickString(cmd *cli.Command, flag, fromFile string) string {
	if cmd.IsSet(flag) || fromFile == "" {
		return cmd.String(flag)
	}
	return fromFile
}

func pickSlice(cmd *cli.Command, flag string, fromFile []string) []string {
	if cmd.IsSet(flag) || len(fromFile) == 0 {
		return cmd.StringSlice(flag)
	}
	return fromFile
}

func pickBool(cmd *cli.Command, flag string, fromFile bool) bool {
	if cmd.IsSet(flag) {
		return cmd.Bool(flag)
	}
	return fromFile
}
