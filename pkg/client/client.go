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

package client

import (
	"context"
	"crypto/tls"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/fleetcrawl/pkg/defaults"
	"github.com/NVIDIA/fleetcrawl/pkg/errors"
)

// DefaultUserAgent is sent when Config.UserAgent is empty.
const DefaultUserAgent = "fleetcrawl/1.0"

// Fetcher is the narrow transport the crawler depends on. path is relative to
// the control plane base URL and may carry a query string.
type Fetcher interface {
	Get(ctx context.Context, path string) ([]byte, error)
}

// Config holds configuration for Client.
type Config struct {
	// BaseURL is the control plane root, e.g. https://cloud.mongodb.com.
	BaseURL string

	// Cookie is the full Cookie header value, e.g. "mmsa-prod=<token>".
	Cookie string

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool

	// RequestTimeout bounds a single request. Zero means no timeout.
	RequestTimeout time.Duration

	// RateLimit paces requests, in requests per second. Zero or negative
	// means unlimited.
	RateLimit float64

	// UserAgent overrides DefaultUserAgent.
	UserAgent string

	// MaxResponseBytes caps a response body; zero uses the package default.
	MaxResponseBytes int64
}

// Client performs authenticated GET requests against the control plane.
// Requests are issued one at a time by the caller; Client holds no
// per-request state.
type Client struct {
	http    *http.Client
	config  Config
	limiter *rate.Limiter
}

// New constructs a Client from cfg. Returns an error if BaseURL is empty.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "base URL is required")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxResponseBytes <= 0 {
		cfg.MaxResponseBytes = defaults.MaxResponseBytes
	}
	if cfg.RequestTimeout < 0 {
		cfg.RequestTimeout = 0
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	return &Client{
		http: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: newTransport(cfg.InsecureSkipVerify),
		},
		config:  cfg,
		limiter: rate.NewLimiter(limit, 1),
	}, nil
}

func newTransport(insecure bool) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		MaxIdleConnsPerHost:   1,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: insecure, //nolint:gosec // operator opt-in via --noverify
		},
	}
}

// BaseURL returns the configured control plane root without a trailing slash.
func (c *Client) BaseURL() string {
	return strings.TrimRight(c.config.BaseURL, "/")
}

// URL joins path onto the base URL.
func (c *Client) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.BaseURL() + path
}

// Get performs a GET request to path (relative to BaseURL) and returns the
// response body. Any non-2xx status is returned as a StructuredError naming
// the status and the full URL.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	url := c.URL(path)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, transportError(ctx, url, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to create request", err,
			map[string]any{"url": url})
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("X-Request-Id", requestID)
	if c.config.Cookie != "" {
		req.Header.Set("Cookie", c.config.Cookie)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues("error").Inc()
		return nil, transportError(ctx, url, err)
	}
	defer resp.Body.Close()

	status := strconv.Itoa(resp.StatusCode)
	requestsTotal.WithLabelValues(status).Inc()
	requestDuration.Observe(time.Since(start).Seconds())

	slog.Debug("request complete",
		"url", url,
		"status", resp.StatusCode,
		"requestID", requestID,
		"duration", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, errors.NewStatusError(resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxResponseBytes+1))
	if err != nil {
		return nil, transportError(ctx, url, fmt.Errorf("read body: %w", err))
	}
	if int64(len(body)) > c.config.MaxResponseBytes {
		return nil, errors.NewWithContext(errors.ErrCodeInternal,
			fmt.Sprintf("response body exceeds %d bytes", c.config.MaxResponseBytes),
			map[string]any{"url": url})
	}
	responseBytes.Add(float64(len(body)))

	return body, nil
}

func transportError(ctx context.Context, url string, err error) error {
	code := errors.ErrCodeUnavailable
	var netErr net.Error
	switch {
	case stderrors.Is(err, context.DeadlineExceeded), ctx.Err() != nil && stderrors.Is(ctx.Err(), context.DeadlineExceeded):
		code = errors.ErrCodeTimeout
	case stderrors.As(err, &netErr) && netErr.Timeout():
		code = errors.ErrCodeTimeout
	case stderrors.Is(err, context.Canceled):
		code = errors.ErrCodeInternal
	}
	return errors.WrapWithContext(code, "request failed: "+url, err, map[string]any{"url": url})
}
