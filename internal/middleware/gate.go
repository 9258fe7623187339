package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/tcumang/admin-frontend/internal/session"
)

const (
	// LoginPath is matched exactly; everything the gate protects redirects
	// here when no token cookie is present.
	LoginPath = "/login"

	// DefaultPath is the post-login landing page and the fallback for any
	// callback target that fails validation.
	DefaultPath = "/dashboard"

	// CallbackParam carries the originally requested path across the login
	// redirect so the operator lands back where they started.
	CallbackParam = "callback"
)

// publicPrefixes are asset/internal paths the gate never blocks.
var publicPrefixes = []string{
	"/static/",
	"/assets/",
	"/favicon.ico",
}

// publicPaths are exact matches open without a session. The login API call
// itself must be reachable anonymously or nobody could ever log in.
var publicPaths = map[string]bool{
	"/healthz":    true,
	"/auth/login": true,
}

// Decision is the gate's verdict for one navigation.
type Decision int

const (
	Allow Decision = iota
	ToLogin
	ToDefault
)

// Decide classifies a navigation from the request path and cookie presence
// alone. It is total (every path falls into exactly one class) and performs
// no I/O; token validity is deferred to the first real upstream call, which
// surfaces a 401 if the token is stale.
func Decide(path string, hasToken bool) Decision {
	if path == LoginPath {
		if hasToken {
			return ToDefault
		}
		return Allow
	}

	if publicPaths[path] {
		return Allow
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return Allow
		}
	}

	if !hasToken {
		return ToLogin
	}
	return Allow
}

// SafeCallback validates a post-login redirect target. Only same-origin
// relative paths pass: the value must start with "/" and must not be
// scheme-relative ("//host"). Anything else falls back to the default
// landing path, which closes the open-redirect hole a crafted callback
// parameter would otherwise open.
func SafeCallback(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return DefaultPath
	}
	return target
}

// RouteGate enforces the decision table before any page renders. It only
// inspects the cookie already attached to the request; it never calls the
// upstream.
func RouteGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hasToken := false
		if cookie, err := r.Cookie(session.CookieName); err == nil && cookie.Value != "" {
			hasToken = true
		}

		switch Decide(r.URL.Path, hasToken) {
		case ToLogin:
			target := LoginPath + "?" + CallbackParam + "=" + url.QueryEscape(r.URL.Path)
			http.Redirect(w, r, target, http.StatusFound)
		case ToDefault:
			http.Redirect(w, r, SafeCallback(r.URL.Query().Get(CallbackParam)), http.StatusFound)
		default:
			next.ServeHTTP(w, r)
		}
	})
}
