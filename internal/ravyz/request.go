package ravyz

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/utils"
)

const (
	contentType = "application/json"
	maxLogBody  = 300
)

// APIError is returned for every non-2xx response. The backend has no
// structured error schema, so the raw body is kept as the message.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if body := strings.TrimSpace(e.Body); body != "" {
		return body
	}
	if e.Status != "" {
		return fmt.Sprintf("bad status: %s", e.Status)
	}
	return fmt.Sprintf("bad status: %d", e.StatusCode)
}

// do sends a JSON request and decodes a 2xx body into target. The route is
// the path template used for metrics, path the concrete path.
func (c *Client) do(ctx context.Context, method, route, path string, body, target any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.APIURL+path, reader)
	if err != nil {
		return err
	}

	req = c.setHeaders(ctx, req)
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	started := time.Now()
	resp, err := c.request(req)
	if err != nil {
		c.metrics.ObserveRequest(method, route, 0, time.Since(started))
		return err
	}
	defer resp.Body.Close()
	c.metrics.ObserveRequest(method, route, resp.StatusCode, time.Since(started))

	data, err := readBody(resp)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("got response from backend",
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.String("body_preview", utils.TruncateForLog(string(data), maxLogBody)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(data)}
	}

	if target == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	return io.ReadAll(reader)
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("method", req.Method), zap.String("url", req.URL.String()))
	return c.HTTPClient.Do(req)
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request) *http.Request {
	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", contentType)
	if c.RequestID != "" {
		req.Header.Set("X-Request-ID", c.RequestID)
	}

	return req
}
