package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jarrett-joe/my-meal-planner/internal/infrastructure/config"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/outbound"
)

const testSecret = "test-signing-secret"

func signToken(t *testing.T, claims IdentityClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authedHandler(captured *outbound.CurrentUser) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current, ok := CurrentUserFrom(r.Context())
		if ok && captured != nil {
			*captured = current
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	cfg := config.AuthConfig{JWTSecret: testSecret, ClockSkew: time.Minute}
	userID := uuid.New()

	t.Run("valid token resolves the identity", func(t *testing.T) {
		var current outbound.CurrentUser
		handler := Authenticate(cfg, zap.NewNop())(authedHandler(&current))

		token := signToken(t, IdentityClaims{
			Email:     "cook@example.com",
			FirstName: "Alex",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   userID.String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}, testSecret)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, current.ID)
		assert.Equal(t, "cook@example.com", current.Email)
		assert.Equal(t, "Alex", current.FirstName)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		handler := Authenticate(cfg, zap.NewNop())(authedHandler(nil))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		handler := Authenticate(cfg, zap.NewNop())(authedHandler(nil))

		token := signToken(t, IdentityClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   userID.String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}, testSecret)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with the wrong secret is rejected", func(t *testing.T) {
		handler := Authenticate(cfg, zap.NewNop())(authedHandler(nil))

		token := signToken(t, IdentityClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   userID.String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}, "some-other-secret")

		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-UUID subject is rejected", func(t *testing.T) {
		handler := Authenticate(cfg, zap.NewNop())(authedHandler(nil))

		token := signToken(t, IdentityClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-42",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}, testSecret)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRateLimit(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("requests beyond the burst are rejected", func(t *testing.T) {
		handler := RateLimit(config.RateLimitConfig{
			Enable:         true,
			RequestsPerMin: 1,
			BurstSize:      2,
		})(next)

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/recipes/suggest", nil))
			codes = append(codes, rec.Code)
		}

		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("one user exhausting their bucket does not block another", func(t *testing.T) {
		handler := RateLimit(config.RateLimitConfig{
			Enable:         true,
			RequestsPerMin: 1,
			BurstSize:      1,
		})(next)

		heavyUser := outbound.CurrentUser{ID: uuid.New()}
		otherUser := outbound.CurrentUser{ID: uuid.New()}

		send := func(current outbound.CurrentUser) int {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/suggest", nil)
			req = req.WithContext(WithCurrentUser(req.Context(), current))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			return rec.Code
		}

		require.Equal(t, http.StatusOK, send(heavyUser))
		require.Equal(t, http.StatusTooManyRequests, send(heavyUser))
		assert.Equal(t, http.StatusOK, send(otherUser))
	})

	t.Run("disabled limiter passes everything through", func(t *testing.T) {
		handler := RateLimit(config.RateLimitConfig{Enable: false, RequestsPerMin: 1, BurstSize: 1})(next)

		for i := 0; i < 5; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/recipes/suggest", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})
}
