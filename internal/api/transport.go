package api

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/attachr/internal/config"
)

// Transport resolves a backend path into the URL that is actually requested.
// The routing decision (direct or proxied) is made once, when the Transport is built.
type Transport interface {
	URL(path string, query url.Values) (string, error)
	Name() string
}

// Direct sends requests straight to the backend.
type Direct struct {
	BaseURL string
}

// URL joins the base URL, path and query. path is already escaped, so
// segments built with url.PathEscape reach the backend unchanged.
func (d Direct) URL(path string, query url.Values) (string, error) {
	base, err := url.Parse(strings.TrimRight(d.BaseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("parsing backend url: %w", err)
	}
	escaped := base.EscapedPath() + path
	unescaped, err := url.PathUnescape(escaped)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	base.Path = unescaped
	base.RawPath = escaped
	if len(query) > 0 {
		base.RawQuery = query.Encode()
	}
	return base.String(), nil
}

// Name returns "direct".
func (Direct) Name() string { return "direct" }

// Proxy routes requests through a CORS proxy that takes the backend path in
// the "path" query parameter and forwards the remaining parameters.
type Proxy struct {
	ProxyURL string
}

// URL encodes path and query as parameters of the proxy endpoint.
func (p Proxy) URL(path string, query url.Values) (string, error) {
	u, err := url.Parse(p.ProxyURL)
	if err != nil {
		return "", fmt.Errorf("parsing proxy url: %w", err)
	}
	q := url.Values{}
	for k, vs := range query {
		if k == "path" {
			continue
		}
		q[k] = append([]string(nil), vs...)
	}
	q.Set("path", path)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Name returns "proxy".
func (Proxy) Name() string { return "proxy" }

// NewTransport picks the proxy when one is configured, otherwise direct access.
func NewTransport(cfg *config.Config) (Transport, error) {
	switch {
	case cfg.ProxyURL != "":
		return Proxy{ProxyURL: cfg.ProxyURL}, nil
	case cfg.BackendURL != "":
		return Direct{BaseURL: cfg.BackendURL}, nil
	default:
		return nil, fmt.Errorf("no backend_url or proxy_url configured")
	}
}
