package session

import (
	"context"
	"errors"
	"net/http"
)

// Admin is the operator profile cached alongside the token so screens can
// render identity after a reload without an upstream round trip. It is only
// replaced by a successful login response; it may therefore be stale until
// the next login.
type Admin struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

var ErrEmptySession = errors.New("session: token and admin are required")

// Store keeps the operator session in two places: a durable store read by
// the API client, and a cookie read only by the route gate. Commit sequences
// the durable write first and the cookie write second. There is no
// compensating transaction between the two writes; if the process dies in
// between, the gate and the API client disagree until the next login or
// logout. Known limitation, not handled.
type Store interface {
	// Commit stores the token and admin profile, then issues the cookie.
	// remember selects the long-lived cookie policy.
	Commit(ctx context.Context, w http.ResponseWriter, token string, admin *Admin, remember bool) error

	// Token reads from the durable store only. It never consults the cookie.
	// Absent token yields "" with no error.
	Token(ctx context.Context) (string, error)

	// Admin returns the cached operator profile, nil when absent.
	Admin(ctx context.Context) (*Admin, error)

	// Clear removes both locations. Idempotent: clearing an empty session is
	// a no-op, never an error.
	Clear(ctx context.Context, w http.ResponseWriter) error

	// Has reports whether the durable store holds a token. This is the sole
	// "authenticated" signal; token validity is the upstream's call.
	Has(ctx context.Context) (bool, error)
}
