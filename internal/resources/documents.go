package resources

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/tcumang/admin-frontend/internal/api"
	"github.com/tcumang/admin-frontend/internal/cache"
)

const documentResource = "documents"

// DocumentService reads and mutates PDF documents. Same invalidation
// contract as news, plus a status toggle and a binary download path.
type DocumentService struct {
	api    *api.Client
	cache  *cache.Cache
	assets string
}

func NewDocumentService(client *api.Client, c *cache.Cache, assetBase string) *DocumentService {
	return &DocumentService{api: client, cache: c, assets: assetBase}
}

type DocumentPage struct {
	Items      []Document `json:"items"`
	Pagination Pagination `json:"pagination"`
}

func (s *DocumentService) List(ctx context.Context, p ListParams) (*DocumentPage, error) {
	p = p.normalize()
	key := cache.ListKey(documentResource, p.cacheParams())

	value, err := s.cache.Get(ctx, key, func(ctx context.Context) (any, error) {
		var out struct {
			Data       []Document `json:"data"`
			Pagination Pagination `json:"pagination"`
		}
		if err := s.api.Do(ctx, api.Request{
			Method: http.MethodGet,
			Path:   "/" + documentResource,
			Query:  p.query(),
		}, &out); err != nil {
			return nil, err
		}

		page := &DocumentPage{Items: out.Data, Pagination: out.Pagination}
		if page.Items == nil {
			page.Items = []Document{}
		}
		for i := range page.Items {
			page.Items[i].Image = resolveAsset(s.assets, page.Items[i].Image)
			page.Items[i].File = resolveAsset(s.assets, page.Items[i].File)
		}
		return page, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*DocumentPage), nil
}

func (s *DocumentService) Get(ctx context.Context, id int64) (*Document, error) {
	if id == 0 {
		return nil, nil
	}
	key := cache.ItemKey(documentResource, id)

	value, err := s.cache.Get(ctx, key, func(ctx context.Context) (any, error) {
		var item Document
		if err := s.api.Do(ctx, api.Request{
			Method: http.MethodGet,
			Path:   fmt.Sprintf("/%s/%d", documentResource, id),
		}, &item); err != nil {
			return nil, err
		}
		item.Image = resolveAsset(s.assets, item.Image)
		item.File = resolveAsset(s.assets, item.File)
		return &item, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*Document), nil
}

func (s *DocumentService) Create(ctx context.Context, form *api.Form) (*Document, error) {
	var item Document
	if err := s.api.Save(ctx, documentResource, api.ModeCreate, 0, form, &item); err != nil {
		return nil, err
	}
	s.cache.Invalidate(documentResource, cache.OpList)
	return &item, nil
}

func (s *DocumentService) Update(ctx context.Context, id int64, form *api.Form) (*Document, error) {
	var item Document
	if err := s.api.Save(ctx, documentResource, api.ModeUpdate, id, form, &item); err != nil {
		return nil, err
	}
	s.cache.Invalidate(documentResource, cache.OpList)
	s.cache.InvalidateItem(documentResource, id)
	return &item, nil
}

func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Do(ctx, api.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/%s/%d", documentResource, id),
	}, nil); err != nil {
		return err
	}
	s.cache.Invalidate(documentResource, cache.OpList)
	s.cache.InvalidateItem(documentResource, id)
	return nil
}

// ToggleStatus flips the published flag upstream. Same invalidation scope as
// an update.
func (s *DocumentService) ToggleStatus(ctx context.Context, id int64) (*Document, error) {
	if id == 0 {
		return nil, api.ErrMissingID
	}
	var item Document
	if err := s.api.Do(ctx, api.Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/%s/%d/status", documentResource, id),
	}, &item); err != nil {
		return nil, err
	}
	s.cache.Invalidate(documentResource, cache.OpList)
	s.cache.InvalidateItem(documentResource, id)
	return &item, nil
}

// Download streams the PDF binary. It bypasses the JSON path and the cache
// entirely; the caller owns the returned body.
func (s *DocumentService) Download(ctx context.Context, id int64) (body io.ReadCloser, contentType, filename string, err error) {
	if id == 0 {
		return nil, "", "", api.ErrMissingID
	}
	return s.api.Download(ctx, fmt.Sprintf("/%s/%d/download", documentResource, id))
}
