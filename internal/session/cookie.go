package session

import (
	"net/http"
	"time"
)

const (
	// CookieName carries the bearer token for the route gate. The gate only
	// checks presence; it never forwards the value upstream.
	CookieName = "admin_token"

	// RememberTTL applies when the operator checked "remember me".
	RememberTTL = 7 * 24 * time.Hour
	// DefaultTTL applies otherwise.
	DefaultTTL = 24 * time.Hour
)

// CookieOptions defines how the token cookie is issued.
type CookieOptions struct {
	Path     string
	HttpOnly bool
	Secure   bool
	SameSite http.SameSite
	Domain   string
}

// normalize applies safe defaults without breaking callers
func (o CookieOptions) normalize() CookieOptions {
	if o.Path == "" {
		o.Path = "/"
	}
	if !o.HttpOnly {
		o.HttpOnly = true
	}
	return o
}

// SetCookie issues the token cookie with the expiry the remember flag picks.
func SetCookie(w http.ResponseWriter, token string, remember bool, opts CookieOptions) {
	opts = opts.normalize()

	ttl := DefaultTTL
	if remember {
		ttl = RememberTTL
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     opts.Path,
		Domain:   opts.Domain,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: opts.HttpOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ClearCookie removes the token cookie from the client.
func ClearCookie(w http.ResponseWriter, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     opts.Path,
		Domain:   opts.Domain,
		MaxAge:   -1,
		HttpOnly: opts.HttpOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}
