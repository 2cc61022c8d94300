// Package proxy implements the CORS request proxy used by browser clients
// that cannot call the backend directly.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mark3labs/attachr/internal/api"
	"github.com/mark3labs/attachr/internal/logger"
	"go.uber.org/zap"
)

// Route is the single endpoint served by the proxy.
const Route = "/api/proxy"

const (
	allowOrigin  = "*"
	allowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	allowHeaders = "Content-Type, Authorization, x-publishable-api-key, " + api.IdempotencyKeyHeader
)

// Options configures a Server.
type Options struct {
	BackendURL     string
	PublishableKey string // used when the caller sends none
	Timeout        time.Duration
	HTTPClient     *http.Client
}

// Server forwards /api/proxy?path=/x&... to BackendURL+/x?....
type Server struct {
	echo       *echo.Echo
	backend    api.Direct
	defaultKey string
	client     *http.Client
}

// New builds the proxy server and its routes.
func New(opts Options) *Server {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	s := &Server{
		echo:       echo.New(),
		backend:    api.Direct{BaseURL: opts.BackendURL},
		defaultKey: opts.PublishableKey,
		client:     client,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Pre(corsMiddleware)
	s.echo.Use(middleware.Recover())
	s.echo.Use(requestIDMiddleware)

	s.echo.Match([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}, Route, s.forward)
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	return s
}

// ServeHTTP makes the server usable as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	logger.Info("proxy listening on %s, forwarding to %s", addr, s.backend.BaseURL)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("proxy server: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// corsMiddleware sets the CORS headers on every response and answers
// preflight requests with 200.
func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set("Access-Control-Allow-Origin", allowOrigin)
		h.Set("Access-Control-Allow-Methods", allowMethods)
		h.Set("Access-Control-Allow-Headers", allowHeaders)

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}
		return next(c)
	}
}

// requestIDMiddleware tags each request with an id and a request-scoped logger.
func requestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := uuid.New().String()
		c.Response().Header().Set("X-Request-ID", requestID)
		c.Set("logger", logger.With(zap.String("request_id", requestID)))
		return next(c)
	}
}

func requestLogger(c echo.Context) *zap.SugaredLogger {
	if l, ok := c.Get("logger").(*zap.SugaredLogger); ok {
		return l
	}
	return logger.With()
}

func (s *Server) forward(c echo.Context) error {
	log := requestLogger(c)

	path := c.QueryParam("path")
	if path == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Path parameter is required"})
	}

	query := url.Values{}
	for k, v := range c.QueryParams() {
		if k != "path" {
			query[k] = v
		}
	}
	target, err := s.backend.URL(path, query)
	if err != nil {
		return s.fail(c, err)
	}

	req := c.Request()
	var body io.Reader
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		data, err := io.ReadAll(req.Body)
		if err != nil {
			return s.fail(c, fmt.Errorf("reading request body: %w", err))
		}
		body = bytes.NewReader(data)
	}

	out, err := http.NewRequestWithContext(req.Context(), req.Method, target, body)
	if err != nil {
		return s.fail(c, err)
	}
	key := req.Header.Get("x-publishable-api-key")
	if key == "" {
		key = s.defaultKey
	}
	out.Header.Set("Content-Type", "application/json")
	out.Header.Set("Accept", "application/json")
	if key != "" {
		out.Header.Set("x-publishable-api-key", key)
	}
	for _, h := range []string{"Authorization", api.IdempotencyKeyHeader} {
		if v := req.Header.Get(h); v != "" {
			out.Header.Set(h, v)
		}
	}

	log.Infow("proxying request", "method", req.Method, "target", target)
	resp, err := s.client.Do(out)
	if err != nil {
		return s.fail(c, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return s.fail(c, fmt.Errorf("reading backend response: %w", err))
	}
	if !json.Valid(data) {
		return s.fail(c, fmt.Errorf("backend returned a non-JSON body (status %d)", resp.StatusCode))
	}
	return c.JSONBlob(resp.StatusCode, data)
}

func (s *Server) fail(c echo.Context, err error) error {
	requestLogger(c).Errorw("proxy error", "error", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error":   "Failed to proxy request",
		"details": err.Error(),
	})
}
