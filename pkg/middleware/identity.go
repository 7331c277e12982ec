package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a bearer token fails verification.
var ErrInvalidToken = errors.New("invalid bearer token")

// AuthConfig controls how the caller's user id is resolved from a request.
type AuthConfig struct {
	Secret      string `toml:"secret"`
	Issuer      string `toml:"issuer"`
	TrustHeader bool   `toml:"trust_header"`
	Header      string `toml:"header"`
}

// AuthEnv maps environment variable names for auth configuration.
type AuthEnv struct {
	Secret      string
	Issuer      string
	TrustHeader string
	Header      string
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *AuthConfig) Finalize(env *AuthEnv) error {
	if c.Header == "" {
		c.Header = "X-User-ID"
	}
	if env != nil {
		if v := lookup(env.Secret); v != "" {
			c.Secret = v
		}
		if v := lookup(env.Issuer); v != "" {
			c.Issuer = v
		}
		if v := lookup(env.TrustHeader); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.TrustHeader = b
			}
		}
		if v := lookup(env.Header); v != "" {
			c.Header = v
		}
	}
	if c.Secret == "" && !c.TrustHeader {
		return fmt.Errorf("either secret or trust_header must be configured")
	}
	return nil
}

// Merge applies non-zero values from overlay.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.TrustHeader {
		c.TrustHeader = true
	}
	if overlay.Header != "" {
		c.Header = overlay.Header
	}
}

type userKey struct{}

// WithUserID returns a copy of ctx carrying the resolved user id.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userKey{}, id)
}

// UserID returns the user id resolved by Identity, if any.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userKey{}).(int64)
	return id, ok
}

// Identity resolves the caller from a bearer JWT (sub claim) when a secret is
// configured, falling back to the configured header when trust_header is set.
// Requests without identity pass through unauthenticated; an invalid token is rejected.
func Identity(cfg *AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw, ok := bearer(r); ok && cfg.Secret != "" {
				id, err := ParseToken(cfg, raw)
				if err != nil {
					http.Error(w, ErrInvalidToken.Error(), http.StatusUnauthorized)
					return
				}
				next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
				return
			}

			if cfg.TrustHeader {
				if v := r.Header.Get(cfg.Header); v != "" {
					if id, err := strconv.ParseInt(v, 10, 64); err == nil {
						next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SignToken issues an HS256 token whose subject is userID.
func SignToken(cfg *AuthConfig, userID int64, ttl time.Duration) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("auth secret not configured")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		Issuer:    cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
}

// ParseToken verifies raw and returns the user id held in its subject.
func ParseToken(cfg *AuthConfig, raw string) (int64, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(cfg.Secret), nil
	}, opts...)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}
	return id, nil
}

func bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
