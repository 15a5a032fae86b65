package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/twende-org/mauzo/config"
	"github.com/twende-org/mauzo/internal/middleware"
	"github.com/twende-org/mauzo/internal/models"
	"github.com/twende-org/mauzo/internal/utils"

	"github.com/gin-gonic/gin"
)

func setupAuth(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	orig := config.AppConfig
	config.AppConfig = &config.Config{
		Server: config.ServerConfig{JWTSecret: "test-secret", JWTExpirationHours: 1},
	}
	t.Cleanup(func() { config.AppConfig = orig })
}

func protectedRouter(roles ...string) *gin.Engine {
	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.MustGet("userID"), "role": c.MustGet("role")})
	})
	return r
}

func getWithToken(t *testing.T, r http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAllowsListedRole(t *testing.T) {
	setupAuth(t)
	token, err := utils.GenerateToken(7, models.RoleStaff)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	w := getWithToken(t, protectedRouter(models.RoleAdmin, models.RoleStaff), token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["role"] != models.RoleStaff {
		t.Fatalf("role on context = %v, want staff", body["role"])
	}
	if body["user_id"] != float64(7) {
		t.Fatalf("user id on context = %v, want 7", body["user_id"])
	}
}

// The 403 names the caller's role so a denied staff member sees why.
func TestAuthMiddlewareDeniedRoleNamedInPayload(t *testing.T) {
	setupAuth(t)
	token, err := utils.GenerateToken(7, models.RoleStaff)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	w := getWithToken(t, protectedRouter(models.RoleAdmin), token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["role"] != models.RoleStaff {
		t.Fatalf("denied role = %v, want staff", body["role"])
	}
}

func TestAuthMiddlewareAnyAuthenticatedWhenNoRoles(t *testing.T) {
	setupAuth(t)
	token, err := utils.GenerateToken(3, models.RoleStaff)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	w := getWithToken(t, protectedRouter(), token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	setupAuth(t)

	w := getWithToken(t, protectedRouter(models.RoleAdmin), "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
