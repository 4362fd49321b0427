package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/pkg/utils"
)

type staticSessionChecker struct {
	active map[string]bool
}

func (s *staticSessionChecker) IsSessionActive(_ context.Context, jti string) (bool, error) {
	return s.active[jti], nil
}

func newAuthRouter(jwtManager *utils.JWTManager, sessions SessionChecker, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(jwtManager, sessions)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c).String()})
	})
	r.GET("/ping", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()
	token, jti, err := jwtManager.GenerateAccessToken(userID, "a@b.test", "Ada", []string{"user"}, []string{"view-dashboard"})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	sessions := &staticSessionChecker{active: map[string]bool{jti: true}}
	router := newAuthRouter(jwtManager, sessions)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", token, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestAuthMiddlewareEndedSession(t *testing.T) {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	token, _, err := jwtManager.GenerateAccessToken(uuid.New(), "a@b.test", "Ada", []string{"user"}, nil)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	sessions := &staticSessionChecker{active: map[string]bool{}}
	router := newAuthRouter(jwtManager, sessions)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("logged-out session: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRequirePermission(t *testing.T) {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	token, jti, err := jwtManager.GenerateAccessToken(uuid.New(), "a@b.test", "Ada", []string{"user"}, []string{"upload-receipts"})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	sessions := &staticSessionChecker{active: map[string]bool{jti: true}}

	tests := []struct {
		name       string
		permission string
		want       int
	}{
		{"granted", "upload-receipts", http.StatusOK},
		{"denied", "manage-users", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthRouter(jwtManager, sessions, RequirePermission(tt.permission))
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	sessions := &staticSessionChecker{active: map[string]bool{}}

	tests := []struct {
		name     string
		roles    []string
		required []string
		want     int
	}{
		{"admin allowed", []string{"admin"}, []string{"admin", "super-admin"}, http.StatusOK},
		{"super-admin allowed", []string{"super-admin"}, []string{"admin", "super-admin"}, http.StatusOK},
		{"customer rejected", []string{"user"}, []string{"admin", "super-admin"}, http.StatusForbidden},
		{"customer rejected from super-admin", []string{"user", "admin"}, []string{"super-admin"}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, jti, err := jwtManager.GenerateAccessToken(uuid.New(), "a@b.test", "Ada", tt.roles, nil)
			if err != nil {
				t.Fatalf("generate token: %v", err)
			}
			sessions.active = map[string]bool{jti: true}
			router := newAuthRouter(jwtManager, sessions, RequireRole(tt.required...))
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
