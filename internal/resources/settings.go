package resources

import (
	"context"
	"errors"
	"net/http"

	"github.com/tcumang/admin-frontend/internal/api"
	"github.com/tcumang/admin-frontend/internal/cache"
)

const settingsResource = "settings"

// Local validation failures. Caught before any network call; they never
// reach the API client.
var (
	ErrPasswordRequired = errors.New("settings: current and new password are required")
	ErrPasswordTooShort = errors.New("settings: new password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("settings: password confirmation does not match")
)

// SettingsService manages site settings (logo, admin password).
type SettingsService struct {
	api    *api.Client
	cache  *cache.Cache
	assets string
}

func NewSettingsService(client *api.Client, c *cache.Cache, assetBase string) *SettingsService {
	return &SettingsService{api: client, cache: c, assets: assetBase}
}

func (s *SettingsService) Get(ctx context.Context) (*Settings, error) {
	key := cache.ListKey(settingsResource, "")

	value, err := s.cache.Get(ctx, key, func(ctx context.Context) (any, error) {
		var out Settings
		if err := s.api.Do(ctx, api.Request{
			Method: http.MethodGet,
			Path:   "/" + settingsResource,
		}, &out); err != nil {
			return nil, err
		}
		out.Logo = resolveAsset(s.assets, out.Logo)
		return &out, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*Settings), nil
}

// UpdateLogo replaces the site logo (multipart, file field "logo").
func (s *SettingsService) UpdateLogo(ctx context.Context, form *api.Form) (*Settings, error) {
	var out Settings
	if err := s.api.Do(ctx, api.Request{
		Method: http.MethodPut,
		Path:   "/" + settingsResource + "/logo",
		Form:   form,
	}, &out); err != nil {
		return nil, err
	}
	s.cache.Invalidate(settingsResource, cache.OpList)
	out.Logo = resolveAsset(s.assets, out.Logo)
	return &out, nil
}

// UpdatePassword validates locally, then forwards. The session token is not
// touched: the upstream keeps the bearer valid across a password change.
func (s *SettingsService) UpdatePassword(ctx context.Context, current, next, confirm string) error {
	if current == "" || next == "" {
		return ErrPasswordRequired
	}
	if len(next) < 8 {
		return ErrPasswordTooShort
	}
	if next != confirm {
		return ErrPasswordMismatch
	}

	return s.api.Do(ctx, api.Request{
		Method: http.MethodPut,
		Path:   "/" + settingsResource + "/password",
		Body: map[string]string{
			"current_password": current,
			"new_password":     next,
		},
	}, nil)
}
