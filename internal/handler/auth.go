package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tcumang/admin-frontend/internal/auth"
	"github.com/tcumang/admin-frontend/internal/middleware"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	admin, err := h.auth.Login(c.Request.Context(), c.Writer, auth.Credentials{
		Email:    req.Email,
		Password: req.Password,
		Remember: req.Remember,
	})
	if err != nil {
		if errors.Is(err, auth.ErrMalformedLogin) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "authentication failed"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "logged_in",
		"admin":    admin,
		"redirect": middleware.SafeCallback(c.Query(middleware.CallbackParam)),
	})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), c.Writer); err != nil {
		respondError(c, err)
		return
	}

	// Idempotent response
	c.Status(http.StatusNoContent)
}

func (h *Handler) Session(c *gin.Context) {
	state := h.auth.Check(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"authenticated": state.Authenticated(),
		"admin":         state.Admin,
	})
}
