package middlewarex

import (
	"net/http"
	"strconv"
	"strings"

	"worklog/internal/http/respond"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const RoleAdmin = "admin"

// Claims carried by access tokens. The subject is the application user id.
type Claims struct {
	TenantID int64  `json:"tenant_id"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuth verifies HS256 bearer tokens and stores the caller in the request
// context. An empty issuer disables the issuer check.
func JWTAuth(secret []byte, issuer string) func(http.Handler) http.Handler {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)
	keyFunc := func(*jwt.Token) (any, error) { return secret, nil }

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				respond.Fail(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims := &Claims{}
			if _, err := parser.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), claims, keyFunc); err != nil {
				log.Debug().Err(err).Msg("token rejected")
				respond.Fail(w, http.StatusUnauthorized, "invalid token")
				return
			}

			userID, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil || userID <= 0 || claims.TenantID <= 0 {
				respond.Fail(w, http.StatusUnauthorized, "invalid token claims")
				return
			}

			p := Principal{TenantID: claims.TenantID, UserID: userID, Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireAdmin rejects callers without the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok {
			respond.Fail(w, http.StatusUnauthorized, "unauthenticated")
			return
		}
		if p.Role != RoleAdmin {
			respond.Fail(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
