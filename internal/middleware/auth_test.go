package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jrjohn/academy-cloud-go/internal/cache"
	"github.com/jrjohn/academy-cloud-go/internal/config"
	"github.com/jrjohn/academy-cloud-go/internal/domain/entity"
	"github.com/jrjohn/academy-cloud-go/internal/security"
	"github.com/jrjohn/academy-cloud-go/internal/testutil/mocks"
)

func testAuthSetup(t *testing.T) (*AuthMiddleware, *security.JWTProvider, *cache.SessionCache) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtProvider := security.NewJWTProvider(&config.JWTConfig{
		AccessSecret:         "test-access",
		RefreshSecret:        "test-refresh",
		ActivationSecret:     "test-activation",
		AccessTokenDuration:  5 * time.Minute,
		RefreshTokenDuration: time.Hour,
		ActivationDuration:   5 * time.Minute,
		Issuer:               "test",
	})
	sessions := cache.NewSessionCache(mocks.NewMockStore(), time.Hour)
	return NewAuthMiddleware(jwtProvider, sessions), jwtProvider, sessions
}

func testRouter(mw *AuthMiddleware, adminOnly bool) *gin.Engine {
	router := gin.New()
	handlers := []gin.HandlerFunc{mw.Authenticate()}
	if adminOnly {
		handlers = append(handlers, mw.RequireAdmin())
	}
	handlers = append(handlers, func(c *gin.Context) {
		user, _ := security.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"user_id": user.ID})
	})
	router.GET("/protected", handlers...)
	return router
}

func TestAuthenticate_NoToken(t *testing.T) {
	mw, _, _ := testAuthSetup(t)
	router := testRouter(mw, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	mw, _, _ := testAuthSetup(t)
	router := testRouter(mw, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticate_ValidTokenWithLiveSession(t *testing.T) {
	mw, jwtProvider, sessions := testAuthSetup(t)
	router := testRouter(mw, false)

	user := &entity.User{ID: 7, Role: entity.RoleUser}
	sessions.Put(context.Background(), user)
	token, _ := jwtProvider.GenerateAccessToken(user)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
}

func TestAuthenticate_CookieToken(t *testing.T) {
	mw, jwtProvider, sessions := testAuthSetup(t)
	router := testRouter(mw, false)

	user := &entity.User{ID: 7, Role: entity.RoleUser}
	sessions.Put(context.Background(), user)
	token, _ := jwtProvider.GenerateAccessToken(user)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestAuthenticate_EvictedSession(t *testing.T) {
	mw, jwtProvider, _ := testAuthSetup(t)
	router := testRouter(mw, false)

	// Token is valid but no session entry exists: logout took effect.
	user := &entity.User{ID: 7, Role: entity.RoleUser}
	token, _ := jwtProvider.GenerateAccessToken(user)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	mw, jwtProvider, sessions := testAuthSetup(t)
	router := testRouter(mw, true)
	ctx := context.Background()

	regular := &entity.User{ID: 7, Role: entity.RoleUser}
	sessions.Put(ctx, regular)
	regularToken, _ := jwtProvider.GenerateAccessToken(regular)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+regularToken)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("regular user status = %d, want 403", w.Code)
	}

	admin := &entity.User{ID: 1, Role: entity.RoleAdmin}
	sessions.Put(ctx, admin)
	adminToken, _ := jwtProvider.GenerateAccessToken(admin)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("admin status = %d, want 200", w.Code)
	}
}

func TestRateLimiter_RejectsBurstOverflow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(&config.RateLimitConfig{RequestsPerSecond: 1, Burst: 2})

	router := gin.New()
	router.GET("/login", rl.Handle(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("statuses = %v, first two must pass", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("statuses = %v, third must be limited", statuses)
	}
}
