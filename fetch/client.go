// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package fetch

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=client.go -destination=mocks/mock_downloader.go -package=mocks Downloader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/stacklok/skillctl/skillerr"
	"github.com/stacklok/skillctl/validation/content"
	httpval "github.com/stacklok/skillctl/validation/http"
	"github.com/stacklok/skillctl/validation/urlguard"
	"github.com/stacklok/skillctl/version"
)

const (
	// DefaultTimeout bounds a whole request, body included.
	DefaultTimeout = 30 * time.Second

	// MaxRedirects is the number of redirect hops a request may follow.
	MaxRedirects = 5
)

// Downloader fetches the text of a single URL.
type Downloader interface {
	// Download performs a guarded GET of rawURL and returns the validated body.
	Download(ctx context.Context, rawURL string) (string, error)
}

// Client is the default Downloader.
type Client struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

var _ Downloader = (*Client)(nil)

// NewClient creates a Client. It fails when the configured user agent is not
// a valid header value.
func NewClient(opts ...Option) (*Client, error) {
	o := newOptions(opts)

	if err := httpval.ValidateHeaderValue(o.userAgent); err != nil {
		return nil, skillerr.WithKind(fmt.Errorf("invalid user agent: %w", err), skillerr.KindValidation)
	}

	c := &Client{
		userAgent: o.userAgent,
		logger:    o.logger,
	}
	c.client = &http.Client{
		Timeout:       o.timeout,
		Transport:     o.transport,
		CheckRedirect: c.checkRedirect,
	}
	return c, nil
}

// checkRedirect caps the hop count and runs every hop through the URL guard.
func (c *Client) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) > MaxRedirects {
		return ErrTooManyRedirects
	}
	if _, err := urlguard.Validate(req.URL.String()); err != nil {
		return fmt.Errorf("redirect blocked: %w", err)
	}
	c.logger.Debug("following redirect", "url", req.URL.String(), "hop", len(via))
	return nil
}

// Download performs the guarded GET.
func (c *Client) Download(ctx context.Context, rawURL string) (string, error) {
	target, err := urlguard.Validate(rawURL)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return "", skillerr.WithKind(fmt.Errorf("failed to create request: %w", err), skillerr.KindValidation)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/markdown, text/plain")

	c.logger.Debug("downloading skill file", "url", rawURL)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", networkError(fmt.Errorf("failed to execute request for %s: %w", rawURL, err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", networkError(NewHTTPError(resp.StatusCode, rawURL, resp.Status))
	}

	if err := httpval.ValidateContentType(resp.Header.Get("Content-Type")); err != nil {
		return "", networkError(fmt.Errorf("%s: %w", rawURL, err))
	}

	if resp.ContentLength > content.MaxSize {
		return "", networkError(fmt.Errorf("%w: %s declares %d bytes", ErrTooLarge, rawURL, resp.ContentLength))
	}

	// One byte past the limit lets the content guard report the size violation.
	body, err := io.ReadAll(io.LimitReader(resp.Body, content.MaxSize+1))
	if err != nil {
		return "", networkError(fmt.Errorf("failed to read response body from %s: %w", rawURL, err))
	}

	text := string(body)
	if err := content.Validate(text); err != nil {
		return "", fmt.Errorf("content from %s rejected: %w", rawURL, err)
	}

	return text, nil
}

// networkError tags err as a network failure unless it already carries a
// kind, such as a validation error raised for a redirect hop.
func networkError(err error) error {
	if skillerr.KindOf(err) != skillerr.KindUnknown {
		return err
	}
	return skillerr.WithKind(err, skillerr.KindNetwork)
}

// Option configures a Client or a Resolver.
type Option func(*options)

type options struct {
	timeout   time.Duration
	userAgent string
	transport http.RoundTripper
	branches  []string
	logger    *slog.Logger
}

func newOptions(opts []Option) *options {
	o := &options{
		timeout:   DefaultTimeout,
		userAgent: version.UserAgent(),
		branches:  DefaultBranches(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithTimeout overrides DefaultTimeout. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithTransport sets the round tripper used by the Client.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

// WithBranches sets the branches the Resolver tries, in order.
// An empty list keeps the defaults.
func WithBranches(branches ...string) Option {
	return func(o *options) {
		if len(branches) > 0 {
			o.branches = append([]string(nil), branches...)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
