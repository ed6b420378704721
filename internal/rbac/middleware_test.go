package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"queout/internal/auth"

	"github.com/gin-gonic/gin"
)

func doRequest(t *testing.T, role string, allowed ...string) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if role != "" {
			c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), "u1", role))
		}
		c.Next()
	})
	r.GET("/x", RequireAnyRole(allowed...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRequireAnyRole_AllowsListedRole(t *testing.T) {
	if code := doRequest(t, auth.RoleUser, auth.RoleUser, auth.RoleGuest); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestRequireAnyRole_DeniesGuestOnUserOnlyRoute(t *testing.T) {
	if code := doRequest(t, auth.RoleGuest, auth.RoleUser); code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
}

func TestRequireAnyRole_DeniesMissingRole(t *testing.T) {
	if code := doRequest(t, "", auth.RoleUser); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
