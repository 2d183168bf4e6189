// Package auth authenticates GitHub API requests. Anonymous requests are
// rate limited to a few dozen per hour, which a single "update all" can use up.
package auth

import (
	"net/http"
	"os"
	"strings"
)

// TokenEnv is the environment variable read when no token is configured.
const TokenEnv = "GITHUB_TOKEN"

// Authenticator applies credentials to an outgoing request.
type Authenticator interface {
	Apply(req *http.Request) error
	Type() Type
}

// Type represents the type of authentication.
type Type string

// Authentication types.
const (
	// BearerAuthType sends a personal access token as a Bearer token.
	BearerAuthType Type = "bearer"
	// BasicAuthType sends a username and token with HTTP Basic Authentication.
	BasicAuthType Type = "basic"
)

// BearerAuth represents Bearer token authentication.
type BearerAuth struct {
	Token string
}

// Apply adds a Bearer token to the Authorization header of the HTTP request.
func (b BearerAuth) Apply(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+b.Token)
	return nil
}

// Type returns BearerAuthType.
func (b BearerAuth) Type() Type { return BearerAuthType }

// BasicAuth represents HTTP Basic Authentication with a token as password.
type BasicAuth struct {
	Username string
	Token    string
}

// Apply adds Basic Authentication headers to the HTTP request.
func (b BasicAuth) Apply(req *http.Request) error {
	req.SetBasicAuth(b.Username, b.Token)
	return nil
}

// Type returns BasicAuthType.
func (b BasicAuth) Type() Type { return BasicAuthType }

// FromToken returns the authenticator for token, falling back to $GITHUB_TOKEN.
// A token written as "user:token" selects Basic Authentication. Nil means
// anonymous access.
func FromToken(token string) Authenticator {
	token = strings.TrimSpace(token)
	if token == "" {
		token = strings.TrimSpace(os.Getenv(TokenEnv))
	}
	if token == "" {
		return nil
	}
	if user, secret, ok := strings.Cut(token, ":"); ok && user != "" {
		return BasicAuth{Username: user, Token: secret}
	}
	return BearerAuth{Token: token}
}
