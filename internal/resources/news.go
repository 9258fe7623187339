package resources

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tcumang/admin-frontend/internal/api"
	"github.com/tcumang/admin-frontend/internal/cache"
)

const newsResource = "news"

// NewsService reads and mutates news articles through the shared cache.
// Reads go through Get/ListKey caching; every successful mutation invalidates
// the whole list scope (any page/search) and, for update/delete, the
// affected item key. Create has no item key to invalidate.
type NewsService struct {
	api    *api.Client
	cache  *cache.Cache
	assets string
}

func NewNewsService(client *api.Client, c *cache.Cache, assetBase string) *NewsService {
	return &NewsService{api: client, cache: c, assets: assetBase}
}

// NewsPage is one list page plus its server-computed cursor.
type NewsPage struct {
	Items      []News     `json:"items"`
	Pagination Pagination `json:"pagination"`
}

func (s *NewsService) List(ctx context.Context, p ListParams) (*NewsPage, error) {
	p = p.normalize()
	key := cache.ListKey(newsResource, p.cacheParams())

	value, err := s.cache.Get(ctx, key, func(ctx context.Context) (any, error) {
		var out struct {
			Data       []News     `json:"data"`
			Pagination Pagination `json:"pagination"`
		}
		if err := s.api.Do(ctx, api.Request{
			Method: http.MethodGet,
			Path:   "/" + newsResource,
			Query:  p.query(),
		}, &out); err != nil {
			return nil, err
		}

		page := &NewsPage{Items: out.Data, Pagination: out.Pagination}
		if page.Items == nil {
			page.Items = []News{}
		}
		for i := range page.Items {
			page.Items[i].Image = resolveAsset(s.assets, page.Items[i].Image)
		}
		return page, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*NewsPage), nil
}

// Get fetches one article. id 0 means "no record selected": no request is
// issued and the caller gets nil.
func (s *NewsService) Get(ctx context.Context, id int64) (*News, error) {
	if id == 0 {
		return nil, nil
	}
	key := cache.ItemKey(newsResource, id)

	value, err := s.cache.Get(ctx, key, func(ctx context.Context) (any, error) {
		var item News
		if err := s.api.Do(ctx, api.Request{
			Method: http.MethodGet,
			Path:   fmt.Sprintf("/%s/%d", newsResource, id),
		}, &item); err != nil {
			return nil, err
		}
		item.Image = resolveAsset(s.assets, item.Image)
		return &item, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*News), nil
}

func (s *NewsService) Create(ctx context.Context, form *api.Form) (*News, error) {
	var item News
	if err := s.api.Save(ctx, newsResource, api.ModeCreate, 0, form, &item); err != nil {
		return nil, err
	}
	s.cache.Invalidate(newsResource, cache.OpList)
	return &item, nil
}

func (s *NewsService) Update(ctx context.Context, id int64, form *api.Form) (*News, error) {
	var item News
	if err := s.api.Save(ctx, newsResource, api.ModeUpdate, id, form, &item); err != nil {
		return nil, err
	}
	s.cache.Invalidate(newsResource, cache.OpList)
	s.cache.InvalidateItem(newsResource, id)
	return &item, nil
}

func (s *NewsService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Do(ctx, api.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/%s/%d", newsResource, id),
	}, nil); err != nil {
		return err
	}
	s.cache.Invalidate(newsResource, cache.OpList)
	s.cache.InvalidateItem(newsResource, id)
	return nil
}
