package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_ExhaustsBudget(t *testing.T) {
	limiter := middleware.NewMemoryLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, remaining, _, err := limiter.Allow(ctx, "user:a")
		assert.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 2-i, remaining)
	}

	allowed, remaining, resetAt, err := limiter.Allow(ctx, "user:a")
	assert.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.True(t, resetAt.After(time.Now()))
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	limiter := middleware.NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	allowed, _, _, _ := limiter.Allow(ctx, "user:a")
	assert.True(t, allowed)
	allowed, _, _, _ = limiter.Allow(ctx, "user:a")
	assert.False(t, allowed)

	// A different key still has its full budget.
	allowed, _, _, _ = limiter.Allow(ctx, "user:b")
	assert.True(t, allowed)
}

func TestMemoryLimiter_WindowResets(t *testing.T) {
	limiter := middleware.NewMemoryLimiter(1, 10*time.Millisecond)
	ctx := context.Background()

	allowed, _, _, _ := limiter.Allow(ctx, "ip:1.2.3.4")
	assert.True(t, allowed)
	allowed, _, _, _ = limiter.Allow(ctx, "ip:1.2.3.4")
	assert.False(t, allowed)

	time.Sleep(15 * time.Millisecond)

	allowed, _, _, _ = limiter.Allow(ctx, "ip:1.2.3.4")
	assert.True(t, allowed)
}

func TestRedisLimiter_ExhaustsBudget(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	limiter := middleware.NewRedisLimiter(client, 2, time.Minute)
	ctx := context.Background()

	allowed, remaining, _, err := limiter.Allow(ctx, "user:a")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)

	allowed, remaining, _, err = limiter.Allow(ctx, "user:a")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 0, remaining)

	allowed, remaining, _, err = limiter.Allow(ctx, "user:a")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
}

func TestRedisLimiter_WindowResets(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	limiter := middleware.NewRedisLimiter(client, 1, time.Minute)
	ctx := context.Background()

	allowed, _, _, err := limiter.Allow(ctx, "user:a")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _, _, err = limiter.Allow(ctx, "user:a")
	require.NoError(t, err)
	assert.False(t, allowed)

	// Expire the window on the server side.
	srv.FastForward(2 * time.Minute)

	allowed, _, _, err = limiter.Allow(ctx, "user:a")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func setupRateLimitedRouter(limiter middleware.Limiter, userID *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if userID != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.UserIDKey, *userID)
		})
	}
	r.Use(middleware.RateLimit(limiter))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return r
}

func TestRateLimit_SetsHeaders(t *testing.T) {
	// Arrange
	router := setupRateLimitedRouter(middleware.NewMemoryLimiter(5, time.Minute), nil)

	req, _ := http.NewRequest("GET", "/ping", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "5", resp.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", resp.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, resp.Header().Get("X-RateLimit-Reset"))
}

func TestRateLimit_RejectsWith429(t *testing.T) {
	// Arrange
	router := setupRateLimitedRouter(middleware.NewMemoryLimiter(1, time.Minute), nil)

	req, _ := http.NewRequest("GET", "/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)

	// Act: second request in the same window
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Contains(t, resp.Body.String(), "RATE_LIMITED")
	assert.NotEmpty(t, resp.Header().Get("Retry-After"))
}

func TestRateLimit_AfterAuthKeysPerUserNotIP(t *testing.T) {
	// Arrange: the limiter runs behind the auth middleware, as the server
	// wires it, so the user ID is already in the context when it keys
	limiter := middleware.NewMemoryLimiter(1, time.Minute)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	protected := r.Group("/")
	protected.Use(middleware.JWTAuthMiddleware(testSecret), middleware.RateLimit(limiter))
	protected.GET("/boards", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	aliceToken, err := auth.GenerateToken(testSecret, uuid.New(), time.Hour)
	require.NoError(t, err)
	bobToken, err := auth.GenerateToken(testSecret, uuid.New(), time.Hour)
	require.NoError(t, err)

	get := func(token string) *httptest.ResponseRecorder {
		req, _ := http.NewRequest("GET", "/boards", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.RemoteAddr = "10.0.0.1:50000"
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		return resp
	}

	// Act: the first user exhausts their budget
	assert.Equal(t, http.StatusOK, get(aliceToken).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(aliceToken).Code)

	// Assert: a second user from the same IP still has a full budget
	assert.Equal(t, http.StatusOK, get(bobToken).Code)
}

func TestRateLimit_AuthenticatedUsersGetSeparateBudgets(t *testing.T) {
	// Arrange: two routers sharing one limiter, each with its own user
	limiter := middleware.NewMemoryLimiter(1, time.Minute)
	alice := uuid.New()
	bob := uuid.New()
	aliceRouter := setupRateLimitedRouter(limiter, &alice)
	bobRouter := setupRateLimitedRouter(limiter, &bob)

	req, _ := http.NewRequest("GET", "/ping", nil)

	// Act
	resp := httptest.NewRecorder()
	aliceRouter.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = httptest.NewRecorder()
	aliceRouter.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)

	// Assert: a different user is unaffected
	resp = httptest.NewRecorder()
	bobRouter.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
}
