package api

import (
	"context"
	"io"
	"slices"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/flapmsg/internal/errors"
)

// GetMessage reads the current message
func (c *MessageClient) GetMessage(ctx context.Context) (string, error) {
	return c.do(ctx, "get message", http.MethodGet, PathMessage, nil)
}

// PutMessage replaces the message and returns the stored value as echoed
// by the service, which may differ from text.
func (c *MessageClient) PutMessage(ctx context.Context, text string) (string, error) {
	return c.do(ctx, "put message", http.MethodPut, PathMessage, &text)
}

// PostMessage replaces the message without forcing a full refresh of the
// display modules. The response is the stored value.
func (c *MessageClient) PostMessage(ctx context.Context, text string) (string, error) {
	return c.do(ctx, "post message", http.MethodPost, PathMessage, &text)
}

// SetMode switches the display between message and clock mode
func (c *MessageClient) SetMode(ctx context.Context, mode string) (string, error) {
	if !slices.Contains(AvailableModes(), mode) {
		return "", apierrors.ErrInvalidMode
	}
	return c.do(ctx, "set mode", http.MethodPut, PathMode, &mode)
}

// do performs one request against the resource and returns the body as text.
// A nil body sends no payload; a pointer to "" sends an empty payload.
func (c *MessageClient) do(ctx context.Context, op, method, path string, body *string) (string, error) {
	endpoint := c.apiBase + path
	requestID := uuid.NewString()
	logger := c.logger.With("request_id", requestID, "op", op, "method", method, "endpoint", endpoint)

	var reader io.Reader
	if body != nil {
		reader = strings.NewReader(*body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return "", apierrors.NewTransportError(op, method, endpoint, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	}
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("request failed", "error", err, "elapsed", time.Since(start))
		return "", apierrors.NewTransportError(op, method, endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("read response failed", "status", resp.StatusCode, "error", err)
		return "", apierrors.NewTransportError(op, method, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := extractErrorMessage(data)
		logger.Error("unexpected status", "status", resp.StatusCode, "message", msg, "elapsed", time.Since(start))
		return "", apierrors.NewStatusError(op, method, endpoint, resp.StatusCode, msg)
	}

	logger.Debug("request completed", "status", resp.StatusCode, "bytes", len(data), "elapsed", time.Since(start))
	return string(data), nil
}

// extractErrorMessage turns a failed response body into a short message.
// JSON bodies are searched for the usual error fields first.
func extractErrorMessage(body []byte) string {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}

	if gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		if parsed.IsObject() {
			for _, path := range []string{"error.message", "error", "message", "detail"} {
				if v := parsed.Get(path); v.Type == gjson.String && v.String() != "" {
					return v.String()
				}
			}
		}
	}

	return strings.TrimSpace(string(body))
}
