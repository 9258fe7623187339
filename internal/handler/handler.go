package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tcumang/admin-frontend/internal/api"
	"github.com/tcumang/admin-frontend/internal/auth"
	"github.com/tcumang/admin-frontend/internal/logger"
	"github.com/tcumang/admin-frontend/internal/resources"
)

// maxUploadBytes bounds each forwarded file. Matches the upstream's limit so
// oversized uploads fail here instead of mid-transfer.
const maxUploadBytes = 5 << 20

var (
	errFileTooLarge = errors.New("uploaded file exceeds the size limit")
	errInvalidForm  = errors.New("invalid multipart form")
)

type Handler struct {
	auth      *auth.Service
	news      *resources.NewsService
	documents *resources.DocumentService
	settings  *resources.SettingsService
	dashboard *resources.DashboardService
}

func New(
	authSvc *auth.Service,
	news *resources.NewsService,
	documents *resources.DocumentService,
	settings *resources.SettingsService,
	dashboard *resources.DashboardService,
) *Handler {
	return &Handler{
		auth:      authSvc,
		news:      news,
		documents: documents,
		settings:  settings,
		dashboard: dashboard,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.GET("/api/session", h.Session)

	r.GET("/api/dashboard", h.Dashboard)

	news := r.Group("/api/news")
	{
		news.GET("", h.ListNews)
		news.GET("/:id", h.GetNews)
		news.POST("", h.CreateNews)
		news.PUT("/:id", h.UpdateNews)
		news.DELETE("/:id", h.DeleteNews)
	}

	documents := r.Group("/api/documents")
	{
		documents.GET("", h.ListDocuments)
		documents.GET("/:id", h.GetDocument)
		documents.POST("", h.CreateDocument)
		documents.PUT("/:id", h.UpdateDocument)
		documents.DELETE("/:id", h.DeleteDocument)
		documents.PATCH("/:id/status", h.ToggleDocumentStatus)
		documents.GET("/:id/download", h.DownloadDocument)
	}

	settings := r.Group("/api/settings")
	{
		settings.GET("", h.GetSettings)
		settings.PUT("/logo", h.UpdateLogo)
		settings.PUT("/password", h.UpdatePassword)
	}
}

// listParams reads page/limit/search from the query string. Bad numbers fall
// back to the service defaults.
func listParams(c *gin.Context) resources.ListParams {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return resources.ListParams{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// formFromRequest converts the incoming multipart form into the payload
// forwarded upstream. File fields the operator left empty are simply absent,
// which the upstream reads as "keep existing".
func formFromRequest(c *gin.Context) (*api.Form, error) {
	mf, err := c.MultipartForm()
	if err != nil {
		return nil, errInvalidForm
	}

	form := api.NewForm()
	for key, values := range mf.Value {
		for _, v := range values {
			form.Set(key, v)
		}
	}
	for key, headers := range mf.File {
		for _, fh := range headers {
			if fh.Size > maxUploadBytes {
				return nil, errFileTooLarge
			}
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			form.File(key, fh.Filename, f)
		}
	}
	return form, nil
}

// respondError maps service failures onto the response. Upstream errors keep
// their status and message; anything unexpected becomes a plain 500.
func respondError(c *gin.Context, err error) {
	var apiErr *api.Error
	switch {
	case errors.As(err, &apiErr):
		c.JSON(apiErr.Status, gin.H{
			"error":  apiErr.Message,
			"code":   apiErr.Code,
			"fields": apiErr.Fields,
		})
	case errors.Is(err, api.ErrMissingID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "record id is required"})
	case errors.Is(err, errFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, errInvalidForm):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", map[string]any{
			"path":  c.Request.URL.Path,
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
