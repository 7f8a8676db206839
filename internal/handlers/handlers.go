package handlers

import (
	"errors"
	"net/http"

	apperrors "myaccount/internal/errors"
	"myaccount/internal/logger"
	"myaccount/internal/middleware"
	"myaccount/internal/models"
	"myaccount/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services *service.Services
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		services: services,
	}
}

// respondError переводит ошибку сервиса в HTTP-ответ.
// view is attached only to validation failures, so the client can render the error flags.
func respondError(c *gin.Context, err error, view any, msg string) {
	var verr *apperrors.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Validation failed",
			"fields": verr.Fields,
			"view":   view,
		})
	case errors.Is(err, apperrors.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Page session not found"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrBadInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.WithContext(c.Request.Context()).Error(msg, "error", err)
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

// Sessions handlers

// CreateSession - POST /api/sessions
// Смонтировать страницу аккаунта, опционально с вкладкой из ?tab=
func (h *Handlers) CreateSession(c *gin.Context) {
	response, err := h.services.Account.Mount(c.Request.Context(), c.Query("tab"))
	if err != nil {
		respondError(c, err, nil, "Failed to mount account page")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// DeleteSession - DELETE /api/sessions/current
// Размонтировать страницу; блокировка прокрутки снимается всегда
func (h *Handlers) DeleteSession(c *gin.Context) {
	if err := h.services.Account.Unmount(c.Request.Context(), middleware.SessionID(c)); err != nil {
		respondError(c, err, nil, "Failed to unmount account page")
		return
	}

	c.Status(http.StatusNoContent)
}

// Page handlers

// GetPage - GET /api/account/page
func (h *Handlers) GetPage(c *gin.Context) {
	response, err := h.services.Account.Page(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err, nil, "Failed to render account page")
		return
	}

	c.JSON(http.StatusOK, response)
}

// SelectTab - PUT /api/account/tab
// Переключить видимую секцию
func (h *Handlers) SelectTab(c *gin.Context) {
	var req models.SelectTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Account.SelectTab(c.Request.Context(), middleware.SessionID(c), req.Tab)
	if err != nil {
		respondError(c, err, nil, "Failed to select tab")
		return
	}

	c.JSON(http.StatusOK, response)
}
