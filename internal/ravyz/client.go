// Package ravyz is the client of the RAVYZ REST backend.
package ravyz

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ravyz/ravyz/internal/metrics"
)

const (
	DefaultAPIURL = "http://localhost:3000/api"
	userAgent     = "ravyz-cli"
)

// TokenStore keeps the bearer token between runs.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type Client struct {
	tokens  TokenStore
	logger  *zap.Logger
	metrics *metrics.Recorder

	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
	// RequestID is sent as X-Request-ID on every call when set.
	RequestID string
}

func New(apiURL string, tokens TokenStore, logger *zap.Logger) *Client {
	apiURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		tokens: tokens,
		logger: logger,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		UserAgent: userAgent,
	}
}

// WithMetrics makes the client record every request.
func (c *Client) WithMetrics(r *metrics.Recorder) *Client {
	c.metrics = r
	return c
}

// HasToken reports whether a bearer token is stored.
func (c *Client) HasToken(ctx context.Context) bool {
	return c.token(ctx) != ""
}

func (c *Client) token(ctx context.Context) string {
	if c.tokens == nil {
		return ""
	}

	token, err := c.tokens.Load(ctx)
	if err != nil {
		c.logger.Debug("no stored token", zap.Error(err))
		return ""
	}

	if expiresAt, ok := TokenExpiry(token); ok && time.Now().After(expiresAt) {
		c.logger.Warn("stored token is expired, the backend will likely reject it",
			zap.Time("expired_at", expiresAt),
			zap.String("hint", "run `ravyz login` again"),
		)
	}

	return token
}
