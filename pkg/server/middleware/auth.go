package middleware

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/modeladmin/madmin/pkg/identity"
)

// TokenKeyEnvVar names the environment variable holding the shared
// HMAC signing key for access tokens.
const TokenKeyEnvVar = "MADMIN_TOKEN_KEY"

// Authenticator is middleware that validates bearer tokens and attaches
// the authenticated principal to the request context.
type Authenticator struct {
	key []byte
}

// NewAuthenticator creates an Authenticator with an explicit key.
func NewAuthenticator(key []byte) *Authenticator {
	return &Authenticator{key: key}
}

// NewAuthenticatorFromEnv reads the signing key from MADMIN_TOKEN_KEY.
func NewAuthenticatorFromEnv() (*Authenticator, error) {
	key, ok := os.LookupEnv(TokenKeyEnvVar)
	if !ok || key == "" {
		return nil, fmt.Errorf("%s environment variable is required", TokenKeyEnvVar)
	}
	return NewAuthenticator([]byte(key)), nil
}

// IssueToken signs an access token for a principal.
func (a *Authenticator) IssueToken(principalID string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": principalID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	return token.SignedString(a.key)
}

// Middleware returns an HTTP middleware that validates bearer tokens
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Authorization missing"))
			return
		}

		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Malformed authorization header"))
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return a.key, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Invalid authorization token"))
			return
		}

		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Token missing subject"))
			return
		}

		id := identity.New(sub)
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			id = id.WithRemoteIP(net.ParseIP(host))
		}
		if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
			id.IssuedAt = iat.Time
		}
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			id.ExpiresAt = exp.Time
		}

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}
