package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListNews(c *gin.Context) {
	page, err := h.news.List(c.Request.Context(), listParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": page})
}

func (h *Handler) GetNews(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.news.Get(c.Request.Context(), id)
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

func (h *Handler) CreateNews(c *gin.Context) {
	form, err := formFromRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}

	item, err := h.news.Create(c.Request.Context(), form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": item})
}

func (h *Handler) UpdateNews(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	form, err := formFromRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}

	item, err := h.news.Update(c.Request.Context(), id, form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

func (h *Handler) DeleteNews(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.news.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
