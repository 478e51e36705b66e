package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/school-portal/portal-service/internal/auth"
	"github.com/school-portal/portal-service/internal/models"
)

func newGuardRouter(t *testing.T, tokens *auth.TokenIssuer, allowed ...models.UserRole) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	guard := NewAccessGuard(tokens)

	group := router.Group("/protected")
	group.Use(guard.AuthMiddleware())
	if len(allowed) > 0 {
		group.Use(guard.RequireRoleMiddleware(allowed...))
	}
	group.GET("", func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		role, _ := CurrentUserRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "role": role})
	})
	return router
}

func issueFor(t *testing.T, tokens *auth.TokenIssuer, role models.UserRole) string {
	t.Helper()
	token, err := tokens.Issue(&models.User{ID: 7, Email: "u@x.com", Role: role})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

func TestAuthMiddlewareRejections(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	other := auth.NewTokenIssuer("other-secret", time.Hour)
	router := newGuardRouter(t, tokens)

	expired := auth.NewTokenIssuer("secret", time.Hour).
		WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not a bearer scheme", header: "Basic abc123"},
		{name: "bearer without token", header: "Bearer"},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{name: "wrong signing secret", header: "Bearer " + issueFor(t, other, models.RoleAdmin)},
		{name: "expired token", header: "Bearer " + issueFor(t, expired, models.RoleAdmin)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d (%s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAuthMiddlewarePassesIdentity(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	router := newGuardRouter(t, tokens)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueFor(t, tokens, models.RoleTeacher))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"user_id":7`) || !strings.Contains(body, `"role":"teacher"`) {
		t.Errorf("identity not propagated: %s", body)
	}
}

func TestRequireRoleAllowlist(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)

	tests := []struct {
		name    string
		allowed []models.UserRole
		role    models.UserRole
		want    int
	}{
		{name: "role on the list", allowed: []models.UserRole{models.RoleTeacher}, role: models.RoleTeacher, want: http.StatusOK},
		{name: "role off the list", allowed: []models.UserRole{models.RoleTeacher}, role: models.RoleStudent, want: http.StatusForbidden},
		{name: "admin gets no override", allowed: []models.UserRole{models.RoleStudent}, role: models.RoleAdmin, want: http.StatusForbidden},
		{name: "multiple allowed roles", allowed: []models.UserRole{models.RoleAdmin, models.RoleTeacher}, role: models.RoleAdmin, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newGuardRouter(t, tokens, tt.allowed...)
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+issueFor(t, tokens, tt.role))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d (%s)", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}
