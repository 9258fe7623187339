package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tcumang/admin-frontend/internal/logger"
)

func (h *Handler) ListDocuments(c *gin.Context) {
	page, err := h.documents.List(c.Request.Context(), listParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": page})
}

func (h *Handler) GetDocument(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.documents.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

func (h *Handler) CreateDocument(c *gin.Context) {
	form, err := formFromRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}

	item, err := h.documents.Create(c.Request.Context(), form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": item})
}

func (h *Handler) UpdateDocument(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	form, err := formFromRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}

	item, err := h.documents.Update(c.Request.Context(), id, form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

func (h *Handler) DeleteDocument(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.documents.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) ToggleDocumentStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.documents.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

// DownloadDocument streams the PDF through to the browser with a filename
// the save dialog can use.
func (h *Handler) DownloadDocument(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	body, contentType, filename, err := h.documents.Download(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/pdf"
	}
	if filename == "" {
		filename = "document-" + strconv.FormatInt(id, 10) + ".pdf"
	}

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, body); err != nil {
		logger.Warn("download stream interrupted", map[string]any{
			"id":    id,
			"error": err.Error(),
		})
	}
}
