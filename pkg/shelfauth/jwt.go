package shelfauth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a bearer access/refresh token pair as returned by a cluster's
// token endpoint.
type Token struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// RefreshFunc exchanges a refresh token for a new Token. Implementations
// typically call the cluster's token endpoint.
type RefreshFunc func(ctx context.Context, refreshToken string) (*Token, error)

// skew is subtracted from a token's expiry so refresh happens before the
// server would reject the token.
const skew = 10 * time.Second

// JWTCredentials is a Credentials implementation backed by a bearer JWT,
// refreshed on demand via RefreshFunc.
type JWTCredentials struct {
	mu      sync.RWMutex
	current Token
	refresh RefreshFunc
}

// NewJWTCredentials wraps an initial token pair. refresh may be nil, in
// which case Token returns ErrCredentialsExpired once current expires
// instead of attempting to renew it.
func NewJWTCredentials(initial Token, refresh RefreshFunc) *JWTCredentials {
	return &JWTCredentials{current: initial, refresh: refresh}
}

// Scheme implements Credentials.
func (c *JWTCredentials) Scheme() string { return "Bearer" }

// Token implements Credentials, refreshing the held token if it is within
// skew of expiry.
func (c *JWTCredentials) Token(ctx context.Context) (string, error) {
	c.mu.RLock()
	tok := c.current
	c.mu.RUnlock()

	if time.Now().Before(tok.ExpiresAt.Add(-skew)) {
		return tok.AccessToken, nil
	}

	if c.refresh == nil {
		return "", ErrCredentialsExpired
	}

	next, err := c.refresh(ctx, tok.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}

	c.mu.Lock()
	c.current = *next
	c.mu.Unlock()

	return next.AccessToken, nil
}

// ParseClaims decodes the subject and expiry out of an unverified JWT
// access token, for diagnostics (shelfctl uses this to print token info
// without holding the signing key).
func ParseClaims(accessToken string) (subject string, expiresAt time.Time, err error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	var claims jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil {
		return "", time.Time{}, fmt.Errorf("parse jwt claims: %w", err)
	}

	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return claims.Subject, expiresAt, nil
}
