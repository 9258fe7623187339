package resources

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Pagination is server-computed and read-only; the client only ever supplies
// page/limit/search as request parameters.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ListParams are the client-supplied list query parameters.
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

func (p ListParams) normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	return p
}

// cacheParams renders the canonical cache-key suffix. Distinct pages and
// searches cache independently.
func (p ListParams) cacheParams() string {
	return fmt.Sprintf("page=%d&limit=%d&search=%s", p.Page, p.Limit, p.Search)
}

func (p ListParams) query() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("limit", strconv.Itoa(p.Limit))
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q
}

// News is a server-owned article record. Identity is always server-issued.
type News struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	Status      bool      `json:"status"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Document is a server-owned PDF record.
type Document struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	File        string    `json:"file,omitempty"`
	Image       string    `json:"image,omitempty"`
	Status      bool      `json:"status"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Settings holds site-wide admin settings.
type Settings struct {
	Logo string `json:"logo,omitempty"`
}

// DashboardSummary is the landing page's aggregate view.
type DashboardSummary struct {
	TotalNews      int        `json:"total_news"`
	TotalDocuments int        `json:"total_documents"`
	RecentNews     []News     `json:"recent_news"`
	RecentDocs     []Document `json:"recent_documents"`
}

// resolveAsset turns the bare filename the upstream returns into an absolute
// URL under the asset base. Already-absolute values pass through.
func resolveAsset(base, name string) string {
	if name == "" || base == "" {
		return name
	}
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		return name
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(name, "/")
}
