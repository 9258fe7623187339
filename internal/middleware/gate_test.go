package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tcumang/admin-frontend/internal/session"
)

func TestDecide(t *testing.T) {
	cases := []struct {
		name     string
		path     string
		hasToken bool
		want     Decision
	}{
		{"protected without token", "/dashboard", false, ToLogin},
		{"protected with token", "/dashboard", true, Allow},
		{"nested protected without token", "/news/42/edit", false, ToLogin},
		{"api without token", "/api/news", false, ToLogin},
		{"api with token", "/api/news", true, Allow},
		{"login without token", "/login", false, Allow},
		{"login with token", "/login", true, ToDefault},
		{"health always open", "/healthz", false, Allow},
		{"login api always open", "/auth/login", false, Allow},
		{"static always open", "/static/app.js", false, Allow},
		{"assets always open", "/assets/logo.png", false, Allow},
		{"favicon always open", "/favicon.ico", false, Allow},
		{"root without token", "/", false, ToLogin},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decide(tc.path, tc.hasToken); got != tc.want {
				t.Fatalf("Decide(%q, %v) = %v, want %v", tc.path, tc.hasToken, got, tc.want)
			}
		})
	}
}

func TestSafeCallback(t *testing.T) {
	cases := []struct {
		target string
		want   string
	}{
		{"/news/4", "/news/4"},
		{"/settings", "/settings"},
		{"", DefaultPath},
		{"dashboard", DefaultPath},
		{"https://evil.example/phish", DefaultPath},
		{"//evil.example/phish", DefaultPath},
	}

	for _, tc := range cases {
		if got := SafeCallback(tc.target); got != tc.want {
			t.Errorf("SafeCallback(%q) = %q, want %q", tc.target, got, tc.want)
		}
	}
}

func gateRequest(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	RouteGate(next).ServeHTTP(rec, req)
	return rec
}

func TestRouteGateRedirectsToLoginWithCallback(t *testing.T) {
	rec := gateRequest(t, "/news", "")

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if got, want := rec.Header().Get("Location"), "/login?callback=%2Fnews"; got != want {
		t.Fatalf("Location = %q, want %q", got, want)
	}
}

func TestRouteGateAllowsWithToken(t *testing.T) {
	rec := gateRequest(t, "/news", "tok")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRouteGateRedirectsAwayFromLogin(t *testing.T) {
	rec := gateRequest(t, "/login", "tok")

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if got := rec.Header().Get("Location"); got != DefaultPath {
		t.Fatalf("Location = %q, want %q", got, DefaultPath)
	}
}

func TestRouteGateHonorsPendingCallback(t *testing.T) {
	rec := gateRequest(t, "/login?callback=%2Fnews%2F7", "tok")

	if got := rec.Header().Get("Location"); got != "/news/7" {
		t.Fatalf("Location = %q, want %q", got, "/news/7")
	}
}

func TestRouteGateDiscardsForeignCallback(t *testing.T) {
	rec := gateRequest(t, "/login?callback=https%3A%2F%2Fevil.example", "tok")

	if got := rec.Header().Get("Location"); got != DefaultPath {
		t.Fatalf("Location = %q, want %q", got, DefaultPath)
	}
}

func TestRouteGateRendersLoginWithoutToken(t *testing.T) {
	rec := gateRequest(t, "/login", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
