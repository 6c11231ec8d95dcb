package ravyz

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
)

const (
	apiRegisterPath = "/auth/register"
	apiLoginPath    = "/auth/login"
)

// Role is the profile kind chosen at the start of the flow.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleCompany   Role = "company"
)

func (r Role) Valid() bool {
	return r == RoleCandidate || r == RoleCompany
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Register creates an account. The backend response is returned untouched.
func (c *Client) Register(ctx context.Context, r RegisterRequest) (map[string]any, error) {
	if !r.Role.Valid() {
		return nil, fmt.Errorf("unknown role %q", r.Role)
	}

	var result map[string]any
	if err := c.do(ctx, http.MethodPost, apiRegisterPath, apiRegisterPath, r, &result); err != nil {
		return nil, err
	}

	c.logger.Info("registered account", zap.String("email", r.Email), zap.String("role", string(r.Role)))
	return result, nil
}

// Login exchanges credentials for a token and stores it for later calls.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, apiLoginPath, apiLoginPath, creds, &resp); err != nil {
		return "", err
	}

	token := strings.TrimSpace(resp.Token)
	if token == "" {
		return "", errors.New("backend returned an empty token")
	}

	if c.tokens != nil {
		if err := c.tokens.Save(ctx, token); err != nil {
			return "", fmt.Errorf("store token: %w", err)
		}
	}

	return token, nil
}

// Logout forgets the stored token. The backend keeps no session to close.
func (c *Client) Logout(ctx context.Context) error {
	if c.tokens == nil {
		return nil
	}
	return c.tokens.Clear(ctx)
}

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// Opaque tokens report false.
func TokenExpiry(token string) (time.Time, bool) {
	parsed, _, err := new(jwt.Parser).ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return time.Time{}, false
	}

	switch exp := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(exp), 0), true
	case int64:
		return time.Unix(exp, 0), true
	default:
		return time.Time{}, false
	}
}
