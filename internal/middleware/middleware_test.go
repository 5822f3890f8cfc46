package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"karak-pos/internal/auth"
	"karak-pos/internal/config"
)

func newAuthService(t *testing.T) auth.Service {
	t.Helper()
	staff, err := bcrypt.GenerateFromPassword([]byte("123"), bcrypt.MinCost)
	require.NoError(t, err)
	admin, err := bcrypt.GenerateFromPassword([]byte("987"), bcrypt.MinCost)
	require.NoError(t, err)
	return auth.NewService(&config.Config{
		SecretKey:    "test-secret",
		StaffPinHash: string(staff),
		AdminPinHash: string(admin),
	})
}

func unlock(t *testing.T, svc auth.Service, pin string) string {
	t.Helper()
	token, _, err := svc.Unlock(httptest.NewRequest("GET", "/", nil).Context(), pin)
	require.NoError(t, err)
	return token
}

func TestAuth_AttachesRole(t *testing.T) {
	svc := newAuthService(t)
	var seen auth.Role
	handler := Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RoleFromCtx(r.Context())
	}))

	t.Run("Valid Token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/orders", nil)
		req.Header.Set("Authorization", "Bearer "+unlock(t, svc, "123"))
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, auth.RoleStaff, seen)
	})

	t.Run("No Token Passes Through Unauthenticated", func(t *testing.T) {
		seen = "sentinel"
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/orders", nil))
		assert.Empty(t, seen)
	})

	t.Run("Garbage Token Passes Through Unauthenticated", func(t *testing.T) {
		seen = "sentinel"
		req := httptest.NewRequest("GET", "/api/orders", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Empty(t, seen)
	})
}

func TestRequireUnlocked(t *testing.T) {
	svc := newAuthService(t)
	handler := Auth(svc)(RequireUnlocked(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	t.Run("Locked Device Rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/api/orders", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Unlocked Device Allowed", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/orders", nil)
		req.Header.Set("Authorization", "Bearer "+unlock(t, svc, "123"))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	svc := newAuthService(t)
	handler := Auth(svc)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	t.Run("Staff Forbidden", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/shift/reset", nil)
		req.Header.Set("Authorization", "Bearer "+unlock(t, svc, "123"))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Admin Allowed", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/shift/reset", nil)
		req.Header.Set("Authorization", "Bearer "+unlock(t, svc, "987"))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimit(next)

	t.Run("Strict Tier Throttles PIN Attempts", func(t *testing.T) {
		var last int
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest("POST", "/api/auth/unlock", nil)
			req.Header.Set("X-Device-ID", "tablet-strict")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			last = w.Code
		}
		assert.Equal(t, http.StatusTooManyRequests, last)
	})

	t.Run("Devices Have Separate Buckets", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest("GET", "/api/orders", nil)
			req.Header.Set("X-Device-ID", fmt.Sprintf("tablet-%d", i))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}

func TestCORS(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("OPTIONS Preflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/api/orders", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Passes Through", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/orders", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
