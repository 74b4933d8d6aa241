// Package provider contains the concrete translation adapters.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/ZaguanLabs/polytrans"
	"github.com/go-resty/resty/v2"
)

// Adapter is an alias to the main package interface.
type Adapter = polytrans.Adapter

// Options is an alias to the main package type.
type Options = polytrans.Options

// Server regions understood by region-aware adapters.
const (
	RegionEN = "EN"
	RegionCN = "CN"
)

const defaultHTTPTimeout = 20 * time.Second

var errNoResult = errors.New("result element not found")

// newHTTPClient builds the resty client an adapter uses for one session.
func newHTTPClient(baseURL string, opts Options, withCookies bool) (*resty.Client, error) {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(defaultHTTPTimeout).
		SetHeader("User-Agent", polytrans.UserAgent())

	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	if opts.Proxy != "" {
		c.SetProxy(opts.Proxy)
	}
	if withCookies {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		c.SetCookieJar(jar)
	}
	return c, nil
}

// statusError converts a non-2xx response into a provider error.
func statusError(provider, op string, resp *resty.Response) error {
	code := resp.StatusCode()
	return &polytrans.ProviderError{
		Provider:  provider,
		Kind:      polytrans.ErrNetwork,
		Message:   fmt.Sprintf("%s: unexpected status %s: %s", op, resp.Status(), abbreviate(resp.String(), 200)),
		Retryable: code == http.StatusTooManyRequests || code >= http.StatusInternalServerError,
	}
}

// unavailable wraps a session bootstrap failure.
func unavailable(provider, msg string, cause error) error {
	return &polytrans.ProviderError{
		Provider: provider,
		Kind:     polytrans.ErrProviderUnavailable,
		Message:  msg,
		Cause:    cause,
	}
}

// get issues a GET, decoding JSON into result when non-nil.
func get(ctx context.Context, c *resty.Client, provider, path string, result any) (*resty.Response, error) {
	req := c.R().SetContext(ctx)
	if result != nil {
		req.SetResult(result).ForceContentType("application/json")
	}
	resp, err := req.Get(path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, statusError(provider, "GET "+path, resp)
	}
	return resp, nil
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
