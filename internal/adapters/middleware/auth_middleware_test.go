package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/domain"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, role domain.Role, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      int64(7),
		"username": "maja",
		"role":     string(role),
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func claimsEcho(t *testing.T) (http.HandlerFunc, *Claims, *bool) {
	t.Helper()

	var got Claims
	var anonymous bool
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if ok {
			got = claims
		}
		anonymous = !ok
		w.WriteHeader(http.StatusOK)
	}, &got, &anonymous
}

func TestAuthenticateMissingToken(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	next, _, _ := claimsEcho(t)

	rec := httptest.NewRecorder()
	m.Authenticate(next)(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	assertErrorMessage(t, rec, "Access denied. No token provided.")
}

func TestAuthenticateBadToken(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	next, _, _ := claimsEcho(t)

	for name, header := range map[string]string{
		"garbage":      "Bearer not-a-jwt",
		"wrong secret": "Bearer " + signToken(t, []byte("other-secret"), domain.RoleSuperAdmin, time.Hour),
		"expired":      "Bearer " + signToken(t, testSecret, domain.RoleSuperAdmin, -time.Hour),
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", header)
			rec := httptest.NewRecorder()
			m.Authenticate(next)(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			assertErrorMessage(t, rec, "Invalid token.")
		})
	}
}

func TestAuthenticateValidToken(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	next, got, _ := claimsEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, domain.RoleClinicStaff, time.Hour))
	rec := httptest.NewRecorder()
	m.Authenticate(next)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got.UserID != 7 || got.Username != "maja" || got.Role != domain.RoleClinicStaff {
		t.Errorf("claims = %+v, want user 7 maja clinic_staff", got)
	}
}

// Optional authentication must never reject: a missing or broken token
// degrades the request to anonymous instead.
func TestOptionalAuthenticate(t *testing.T) {
	m := NewAuthMiddleware(testSecret)

	tests := []struct {
		name      string
		header    string
		anonymous bool
		role      domain.Role
	}{
		{"no token", "", true, ""},
		{"garbled token", "Bearer nonsense", true, ""},
		{"expired token", "Bearer " + signToken(t, testSecret, domain.RoleClinicStaff, -time.Hour), true, ""},
		{"not bearer", "Basic abc123", true, ""},
		{"valid token", "Bearer " + signToken(t, testSecret, domain.RoleSuperAdmin, time.Hour), false, domain.RoleSuperAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, got, anonymous := claimsEcho(t)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			m.OptionalAuthenticate(next)(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, optional auth must always pass through", rec.Code)
			}
			if *anonymous != tt.anonymous {
				t.Errorf("anonymous = %v, want %v", *anonymous, tt.anonymous)
			}
			if !tt.anonymous && got.Role != tt.role {
				t.Errorf("role = %q, want %q", got.Role, tt.role)
			}
		})
	}
}

func TestRequireRoleHierarchy(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	staffUp := []domain.Role{domain.RoleClinicStaff, domain.RoleSuperAdmin}

	tests := []struct {
		name   string
		role   domain.Role
		status int
	}{
		{"public denied", domain.RolePublic, http.StatusForbidden},
		{"staff allowed", domain.RoleClinicStaff, http.StatusOK},
		{"admin allowed via hierarchy", domain.RoleSuperAdmin, http.StatusOK},
		{"unknown role denied", domain.Role("intern"), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _, _ := claimsEcho(t)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, tt.role, time.Hour))
			rec := httptest.NewRecorder()
			m.RequireRole(staffUp, next)(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestRequireRoleAnonymous(t *testing.T) {
	m := NewAuthMiddleware(testSecret)
	next, _, _ := claimsEcho(t)

	rec := httptest.NewRecorder()
	m.RequireRole([]domain.Role{domain.RoleSuperAdmin}, next)(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 before any role check", rec.Code)
	}
}

func assertErrorMessage(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Success {
		t.Error("success = true on an error response")
	}
	if body.Error.Message != want {
		t.Errorf("message = %q, want %q", body.Error.Message, want)
	}
}
