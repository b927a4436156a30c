// Package httptransport provides a logging http.RoundTripper.
package httptransport

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// LoggedTransport logs every request with slog.
//
// Responses with status code below 400 are logged with INFO level,
// others with WARN level. When DEBUG logging is enabled the response body
// is logged as well. Transport errors are logged with WARN level.
type LoggedTransport struct {
	// Base is the underlying transport. Defaults to http.DefaultTransport.
	Base http.RoundTripper
}

func (t LoggedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	isDebug := slog.Default().Enabled(context.Background(), slog.LevelDebug)
	if isDebug {
		slog.Debug("HTTP request", "method", req.Method, "url", req.URL)
	}
	start := time.Now()
	resp, err := base.RoundTrip(req)
	if err != nil {
		slog.Warn("HTTP request failed", "method", req.Method, "url", req.URL, "error", err)
		return resp, err
	}
	logResponse(isDebug, resp, req, time.Since(start))
	return resp, nil
}

func logResponse(isDebug bool, resp *http.Response, req *http.Request, elapsed time.Duration) {
	if isDebug && resp.Body != nil {
		body, err := io.ReadAll(resp.Body)
		if err == nil {
			resp.Body = io.NopCloser(bytes.NewBuffer(body))
			slog.Debug("HTTP response body", "url", req.URL, "body", string(body))
		}
	}
	level := slog.LevelInfo
	if resp.StatusCode >= 400 {
		level = slog.LevelWarn
	}
	slog.Log(
		context.Background(),
		level,
		"HTTP response",
		"method", req.Method,
		"url", req.URL,
		"status", resp.StatusCode,
		"elapsed", elapsed.Round(time.Millisecond),
	)
}
