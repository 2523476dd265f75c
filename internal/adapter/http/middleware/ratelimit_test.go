package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"credit-arcade/internal/adapter/storage/memory"
	"credit-arcade/internal/core/ports"
	"credit-arcade/internal/core/ports/mocks"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupRateLimitRouter(store ports.RateLimitStore, identity string) *gin.Engine {
	r := gin.New()
	rule := RateLimitRule{Limit: 3, Window: time.Minute}

	r.GET("/test", func(c *gin.Context) {
		if identity != "" {
			c.Set(CtxIdentity, identity)
		}
		c.Next()
	}, RateLimiter(store, "test", rule, zerolog.Nop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	r := setupRateLimitRouter(memory.NewRateLimitStore(), "42")

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	r := setupRateLimitRouter(memory.NewRateLimitStore(), "42")

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "RATE_001")
}

func TestRateLimiter_KeysByIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockRateLimitStore(ctrl)
	store.EXPECT().Allow(gomock.Any(), "user:42:test", int64(3), time.Minute).
		Return(&ports.RateLimitResult{Allowed: true, Limit: 3, Remaining: 2}, nil)

	w := httptest.NewRecorder()
	setupRateLimitRouter(store, "42").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_KeysAnonymousByIP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockRateLimitStore(ctrl)
	store.EXPECT().Allow(gomock.Any(), "ip:192.0.2.1:test", int64(3), time.Minute).
		Return(&ports.RateLimitResult{Allowed: true, Limit: 3, Remaining: 2}, nil)

	w := httptest.NewRecorder()
	setupRateLimitRouter(store, "").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_StoreErrorAllowsRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockRateLimitStore(ctrl)
	store.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))

	w := httptest.NewRecorder()
	setupRateLimitRouter(store, "42").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestDefaultRateLimitRules(t *testing.T) {
	rules := DefaultRateLimitRules()
	for _, group := range []string{"auth_login", "auth_logout", "account", "mines", "mines_start"} {
		rule, ok := rules[group]
		assert.True(t, ok, "missing rule %s", group)
		assert.Positive(t, rule.Limit)
		assert.Equal(t, time.Minute, rule.Window)
	}
}
