package session

import (
	"context"
	"net/http"
	"sync"
)

// MemoryStore keeps the session in process memory. Used when no Redis
// address is configured and by tests.
type MemoryStore struct {
	mu     sync.Mutex
	token  string
	admin  *Admin
	cookie CookieOptions
}

func NewMemoryStore(cookie CookieOptions) *MemoryStore {
	return &MemoryStore{cookie: cookie}
}

func (m *MemoryStore) Commit(ctx context.Context, w http.ResponseWriter, token string, admin *Admin, remember bool) error {
	if token == "" || admin == nil {
		return ErrEmptySession
	}

	m.mu.Lock()
	m.token = token
	copied := *admin
	m.admin = &copied
	m.mu.Unlock()

	SetCookie(w, token, remember, m.cookie)
	return nil
}

func (m *MemoryStore) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryStore) Admin(ctx context.Context) (*Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.admin == nil {
		return nil, nil
	}
	copied := *m.admin
	return &copied, nil
}

func (m *MemoryStore) Clear(ctx context.Context, w http.ResponseWriter) error {
	m.mu.Lock()
	m.token = ""
	m.admin = nil
	m.mu.Unlock()

	ClearCookie(w, m.cookie)
	return nil
}

func (m *MemoryStore) Has(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != "", nil
}
