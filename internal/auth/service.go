package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/tcumang/admin-frontend/internal/api"
	"github.com/tcumang/admin-frontend/internal/logger"
	"github.com/tcumang/admin-frontend/internal/session"
)

// Status is the session state machine: StatusUnknown (zero value, nothing
// checked yet) resolves to exactly one of the two terminal states.
type Status int

const (
	StatusUnknown Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

// State is the resolved session state handed to screens.
type State struct {
	Status Status         `json:"-"`
	Admin  *session.Admin `json:"admin,omitempty"`
}

func (s State) Authenticated() bool {
	return s.Status == StatusAuthenticated
}

// ErrMalformedLogin covers a transport-level success whose payload is
// missing the token or the admin object. Treated as a failure; the session
// is left untouched.
var ErrMalformedLogin = errors.New("auth: login response missing token or admin")

// Credentials is the login form payload. Remember selects the long-lived
// cookie policy.
type Credentials struct {
	Email    string
	Password string
	Remember bool
}

// Service owns the operator session lifecycle against the upstream API.
type Service struct {
	api      *api.Client
	sessions session.Store
}

func NewService(client *api.Client, store session.Store) *Service {
	return &Service{api: client, sessions: store}
}

type loginPayload struct {
	Admin *session.Admin `json:"admin"`
	Token string         `json:"token"`
}

// Login authenticates upstream (the only anonymous call) and commits the
// session. On any failure the session is unchanged and the error propagates
// for the screen to display.
func (s *Service) Login(ctx context.Context, w http.ResponseWriter, creds Credentials) (*session.Admin, error) {
	var payload loginPayload
	err := s.api.Do(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body: map[string]string{
			"email":    creds.Email,
			"password": creds.Password,
		},
		Anonymous: true,
	}, &payload)
	if err != nil {
		return nil, err
	}

	if payload.Token == "" || payload.Admin == nil {
		return nil, ErrMalformedLogin
	}

	if err := s.sessions.Commit(ctx, w, payload.Token, payload.Admin, creds.Remember); err != nil {
		return nil, err
	}

	return payload.Admin, nil
}

// Logout tells the upstream best-effort, then tears the session down
// locally. The upstream call failing never blocks local teardown.
func (s *Service) Logout(ctx context.Context, w http.ResponseWriter) error {
	if err := s.api.Do(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "/auth/logout",
	}, nil); err != nil {
		logger.Warn("upstream logout failed", map[string]any{
			"error": err.Error(),
		})
	}

	return s.sessions.Clear(ctx, w)
}

// Check resolves the session state from the durable store without a network
// call. The restored admin profile can be stale until the next login.
// Idempotent; callable any number of times.
func (s *Service) Check(ctx context.Context) State {
	ok, err := s.sessions.Has(ctx)
	if err != nil {
		logger.Error("session check failed", map[string]any{
			"error": err.Error(),
		})
		return State{Status: StatusUnauthenticated}
	}
	if !ok {
		return State{Status: StatusUnauthenticated}
	}

	admin, err := s.sessions.Admin(ctx)
	if err != nil {
		logger.Error("session admin restore failed", map[string]any{
			"error": err.Error(),
		})
		return State{Status: StatusUnauthenticated}
	}

	return State{Status: StatusAuthenticated, Admin: admin}
}
