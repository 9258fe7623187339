package resources

import (
	"context"
	"net/http"

	"github.com/tcumang/admin-frontend/internal/api"
	"github.com/tcumang/admin-frontend/internal/cache"
)

const dashboardResource = "dashboard"

// DashboardService fetches the landing page summary through the same cache
// as everything else, under its own resource tag.
type DashboardService struct {
	api   *api.Client
	cache *cache.Cache
}

func NewDashboardService(client *api.Client, c *cache.Cache) *DashboardService {
	return &DashboardService{api: client, cache: c}
}

func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	key := cache.ListKey(dashboardResource, "")

	value, err := s.cache.Get(ctx, key, func(ctx context.Context) (any, error) {
		var out DashboardSummary
		if err := s.api.Do(ctx, api.Request{
			Method: http.MethodGet,
			Path:   "/" + dashboardResource,
		}, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*DashboardSummary), nil
}
