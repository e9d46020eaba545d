package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"bearer", "Bearer abc", "", "abc"},
		{"bearer wins over cookie", "Bearer abc", "xyz", "abc"},
		{"cookie only", "", "xyz", "xyz"},
		{"empty bearer falls back to cookie", "Bearer ", "xyz", "xyz"},
		{"blank bearer falls back to cookie", "Bearer    ", "xyz", "xyz"},
		{"other scheme ignored", "Basic Zm9v", "xyz", "xyz"},
		{"nothing", "", "", ""},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			c := e.NewContext(req, httptest.NewRecorder())
			if got := TokenFromRequest(c); got != tt.want {
				t.Errorf("TokenFromRequest = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequireAuthEmptyBearerUsesCookie(t *testing.T) {
	f := newFixture(t)
	resp, err := f.login(testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	e := echo.New()
	e.GET("/admin", func(c echo.Context) error {
		if GetAdminFromContext(c) == nil {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.NoContent(http.StatusNoContent)
	}, RequireAuth(f.svc))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer ")
	req.AddCookie(&http.Cookie{Name: CookieName, Value: resp.Token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req.WithContext(context.Background()))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}
