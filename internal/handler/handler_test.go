package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tcumang/admin-frontend/internal/api"
	"github.com/tcumang/admin-frontend/internal/auth"
	"github.com/tcumang/admin-frontend/internal/cache"
	"github.com/tcumang/admin-frontend/internal/middleware"
	"github.com/tcumang/admin-frontend/internal/resources"
	"github.com/tcumang/admin-frontend/internal/session"
)

// newTestApp wires the router the way internal/app does, against a fake
// upstream and an in-memory session store.
func newTestApp(t *testing.T, upstream http.HandlerFunc) (*httptest.Server, *session.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := httptest.NewServer(upstream)
	t.Cleanup(backend.Close)

	store := session.NewMemoryStore(session.CookieOptions{})
	client := api.NewClient(backend.URL, store)
	dataCache := cache.New()

	h := New(
		auth.NewService(client, store),
		resources.NewNewsService(client, dataCache, ""),
		resources.NewDocumentService(client, dataCache, ""),
		resources.NewSettingsService(client, dataCache, ""),
		resources.NewDashboardService(client, dataCache),
	)

	router := gin.New()
	router.Use(middleware.GinRouteGate())
	h.RegisterRoutes(router)

	app := httptest.NewServer(router)
	t.Cleanup(app.Close)
	return app, store
}

func loginBackend(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			fmt.Fprint(w, `{"success":true,"data":{"token":"tok-1","admin":{"id":1,"first_name":"Ada","email":"ada@example.com"}}}`)
		case "/auth/logout":
			fmt.Fprint(w, `{"success":true}`)
		case "/news":
			fmt.Fprint(w, `{"success":true,"data":{"data":[{"id":1,"title":"first"}],"pagination":{"total":1,"page":1,"limit":10,"totalPages":1}}}`)
		default:
			t.Errorf("unexpected upstream call %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestGateBlocksAPIWithoutCookie(t *testing.T) {
	app, _ := newTestApp(t, loginBackend(t))

	client := &http.Client{CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Get(app.URL + "/api/news")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); !strings.HasPrefix(loc, "/login?callback=") {
		t.Fatalf("Location = %q", loc)
	}
}

func TestLoginThenListFlow(t *testing.T) {
	app, store := newTestApp(t, loginBackend(t))

	body := bytes.NewBufferString(`{"email":"ada@example.com","password":"pw","remember":true}`)
	resp, err := http.Post(app.URL+"/auth/login", "application/json", body)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}

	var loginResp struct {
		Status   string `json:"status"`
		Redirect string `json:"redirect"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if loginResp.Status != "logged_in" || loginResp.Redirect != middleware.DefaultPath {
		t.Fatalf("login response = %+v", loginResp)
	}

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value != "tok-1" {
		t.Fatalf("cookie = %+v", cookie)
	}

	// Authenticated list request passes the gate and reaches the upstream
	// through the cache.
	req, _ := http.NewRequest(http.MethodGet, app.URL+"/api/news", nil)
	req.AddCookie(cookie)
	listResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	defer listResp.Body.Close()

	if listResp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", listResp.StatusCode)
	}

	var payload struct {
		Success bool `json:"success"`
		Data    struct {
			Items []resources.News `json:"items"`
		} `json:"data"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if !payload.Success || len(payload.Data.Items) != 1 || payload.Data.Items[0].Title != "first" {
		t.Fatalf("list payload = %+v", payload)
	}

	// Logout clears the durable side regardless of the cookie the caller
	// still holds.
	logoutReq, _ := http.NewRequest(http.MethodPost, app.URL+"/auth/logout", nil)
	logoutReq.AddCookie(cookie)
	logoutResp, err := http.DefaultClient.Do(logoutReq)
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	logoutResp.Body.Close()
	if logoutResp.StatusCode != http.StatusNoContent {
		t.Fatalf("logout status = %d", logoutResp.StatusCode)
	}
	if ok, _ := store.Has(req.Context()); ok {
		t.Fatal("durable store still holds a token after logout")
	}
}

func TestCreateNewsForwardsMultipart(t *testing.T) {
	var gotTitle string
	app, store := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/news" {
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("upstream multipart parse: %v", err)
			}
			gotTitle = r.FormValue("title")
			fmt.Fprint(w, `{"success":true,"data":{"id":9,"title":"made"}}`)
			return
		}
		t.Errorf("unexpected upstream call %s %s", r.Method, r.URL.Path)
	})

	rec := httptest.NewRecorder()
	if err := store.Commit(context.Background(), rec, "tok", &session.Admin{ID: 1}, false); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("title", "quarterly report")
	mw.Close()

	req, _ := http.NewRequest(http.MethodPost, app.URL+"/api/news", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "tok"})

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	if gotTitle != "quarterly report" {
		t.Fatalf("forwarded title = %q", gotTitle)
	}
}
