package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"internhub/internal/common"
	"internhub/internal/security"
)

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := PrincipalFromContext(r.Context())
		if !ok || id == "" {
			t.Fatal("expected principal in context")
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	provider := security.NewJWTProvider("secret")
	token, _, err := provider.Generate(common.NewUUID(), security.RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	handler := NewAuthMiddleware(provider).Authenticate(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	provider := security.NewJWTProvider("secret")
	handler := NewAuthMiddleware(provider).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc",
		"garbage token":  "Bearer not-a-jwt",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
	}
}

func TestRequireRole(t *testing.T) {
	provider := security.NewJWTProvider("secret")
	token, _, err := provider.Generate(common.NewUUID(), security.RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	middleware := NewAuthMiddleware(provider)

	adminOnly := middleware.Authenticate(RequireRole(security.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	adminOnly.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user token on admin route, got %d", rec.Code)
	}

	userOnly := middleware.Authenticate(RequireRole(security.RoleUser)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))
	req = httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	userOnly.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for matching role, got %d", rec.Code)
	}
}
