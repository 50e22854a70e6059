package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"summary-service/internal/handler/http/auth"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return tok
}

func serve(header string) (*httptest.ResponseRecorder, string) {
	var seen string
	h := auth.Identity(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/metrics", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr, seen
}

func TestIdentity_ValidToken(t *testing.T) {
	tok := sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{
		"sub": "ada@example.com",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	rr, user := serve("Bearer " + tok)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ada@example.com", user)
}

func TestIdentity_NoHeaderIsAnonymous(t *testing.T) {
	rr, user := serve("")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, user)
}

func TestIdentity_Rejects(t *testing.T) {
	valid := func() int64 { return time.Now().Add(time.Hour).Unix() }
	tests := []struct {
		name   string
		header func(t *testing.T) string
	}{
		{name: "not bearer", header: func(*testing.T) string { return "Basic abc" }},
		{name: "garbage", header: func(*testing.T) string { return "Bearer not.a.jwt" }},
		{name: "expired", header: func(t *testing.T) string {
			return "Bearer " + sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{
				"sub": "ada@example.com", "exp": time.Now().Add(-time.Minute).Unix(),
			})
		}},
		{name: "no exp", header: func(t *testing.T) string {
			return "Bearer " + sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"sub": "ada@example.com"})
		}},
		{name: "wrong secret", header: func(t *testing.T) string {
			return "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("another-secret-another-secret-xx"), jwt.MapClaims{
				"sub": "ada@example.com", "exp": valid(),
			})
		}},
		{name: "wrong algorithm", header: func(t *testing.T) string {
			return "Bearer " + sign(t, jwt.SigningMethodHS512, secret, jwt.MapClaims{
				"sub": "ada@example.com", "exp": valid(),
			})
		}},
		{name: "missing sub", header: func(t *testing.T) string {
			return "Bearer " + sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"exp": valid()})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, user := serve(tt.header(t))
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Contains(t, rr.Body.String(), "unauthorized")
			assert.Empty(t, user)
		})
	}
}

func TestIdentity_DisabledWithoutSecret(t *testing.T) {
	var seen string
	h := auth.Identity(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.UserFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, seen)
}

func TestResolveUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "bob@example.com", auth.ResolveUser(req.Context(), " bob@example.com "))

	ctx := auth.WithUser(req.Context(), "ada@example.com")
	assert.Equal(t, "ada@example.com", auth.ResolveUser(ctx, "bob@example.com"))
}
