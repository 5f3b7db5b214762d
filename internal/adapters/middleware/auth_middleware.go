package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/domain"
)

// Claims is the verified caller identity extracted from a bearer token.
type Claims struct {
	UserID   int64
	Username string
	Role     domain.Role
}

type AuthMiddleware struct {
	jwtSecret []byte
}

func NewAuthMiddleware(jwtSecret []byte) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: jwtSecret}
}

type contextKey string

const claimsKey contextKey = "claims"

// Authenticate enforces a valid bearer token: 401 when the header is
// missing or the token fails verification.
func (m *AuthMiddleware) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeAuthError(w, domain.ErrNoToken)
			return
		}

		claims, err := m.verify(token)
		if err != nil {
			writeAuthError(w, domain.ErrInvalidToken)
			return
		}

		next(w, r.WithContext(withClaims(r.Context(), claims)))
	}
}

// OptionalAuthenticate attaches claims when a valid token is present and
// otherwise lets the request through as anonymous. It never writes an
// error: a missing, malformed, or expired token simply degrades to
// public-level access, which is what lets the stats endpoints serve both
// visitors and staff from one code path.
func (m *AuthMiddleware) OptionalAuthenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			next(w, r)
			return
		}

		claims, err := m.verify(token)
		if err != nil {
			next(w, r)
			return
		}

		next(w, r.WithContext(withClaims(r.Context(), claims)))
	}
}

// RequireRole runs mandatory authentication and then checks the caller's
// role against the accepted list using the hierarchy's total order: a
// caller at or above the lowest accepted role is allowed through.
func (m *AuthMiddleware) RequireRole(accepted []domain.Role, next http.HandlerFunc) http.HandlerFunc {
	return m.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := GetClaims(r.Context())
		role := claims.Role
		if err := domain.Authorize(&role, accepted...); err != nil {
			if appErr, ok := err.(*domain.Error); ok {
				writeAuthError(w, appErr)
			} else {
				writeAuthError(w, domain.ErrInsufficientRole)
			}
			return
		}
		next(w, r)
	})
}

func (m *AuthMiddleware) verify(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.jwtSecret, nil
	})
	if err != nil {
		return Claims{}, err
	}
	if !token.Valid {
		return Claims{}, jwt.ErrTokenUnverifiable
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, jwt.ErrTokenInvalidClaims
	}

	claims := Claims{Role: domain.RolePublic}
	if sub, ok := mapClaims["sub"].(float64); ok {
		claims.UserID = int64(sub)
	}
	if username, ok := mapClaims["username"].(string); ok {
		claims.Username = username
	}
	if role, ok := mapClaims["role"].(string); ok && role != "" {
		claims.Role = domain.Role(role)
	}
	return claims, nil
}

func withClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaims returns the verified caller, or false for anonymous requests.
func GetClaims(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(Claims)
	return claims, ok
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeAuthError(w http.ResponseWriter, err *domain.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   map[string]string{"message": err.Message},
	})
}
