package handlers

import (
	"net/http"

	"myaccount/internal/middleware"
	"myaccount/internal/models"

	"github.com/gin-gonic/gin"
)

// Profile handlers

// GetProfile - GET /api/account/profile
func (h *Handlers) GetProfile(c *gin.Context) {
	response, err := h.services.Account.Profile(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err, nil, "Failed to get profile")
		return
	}

	c.JSON(http.StatusOK, response)
}

// EditProfile - POST /api/account/profile/edit
// Перейти в режим редактирования
func (h *Handlers) EditProfile(c *gin.Context) {
	response, err := h.services.Account.EditProfile(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err, response, "Failed to edit profile")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ChangeProfile - PATCH /api/account/profile/draft
func (h *Handlers) ChangeProfile(c *gin.Context) {
	var req models.ProfileDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Account.ChangeProfile(c.Request.Context(), middleware.SessionID(c), &req)
	if err != nil {
		respondError(c, err, response, "Failed to change profile draft")
		return
	}

	c.JSON(http.StatusOK, response)
}

// SaveProfile - POST /api/account/profile/save
// Сохранить личные данные; при ошибке валидации 422 с флагами полей
func (h *Handlers) SaveProfile(c *gin.Context) {
	response, err := h.services.Account.SaveProfile(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err, response, "Failed to save profile")
		return
	}

	c.JSON(http.StatusOK, response)
}

// CancelProfileEdit - POST /api/account/profile/cancel
func (h *Handlers) CancelProfileEdit(c *gin.Context) {
	response, err := h.services.Account.CancelProfileEdit(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err, response, "Failed to cancel profile edit")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Password handlers

// OpenPasswordDialog - POST /api/account/password/open
func (h *Handlers) OpenPasswordDialog(c *gin.Context) {
	response, err := h.services.Account.OpenPasswordDialog(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err, response, "Failed to open password dialog")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ChangePassword - PATCH /api/account/password/draft
func (h *Handlers) ChangePassword(c *gin.Context) {
	var req models.PasswordDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Account.ChangePassword(c.Request.Context(), middleware.SessionID(c), &req)
	if err != nil {
		respondError(c, err, response, "Failed to change password draft")
		return
	}

	c.JSON(http.StatusOK, response)
}

// SavePassword - POST /api/account/password/save
// Сменить пароль; все правила проверяются сразу
func (h *Handlers) SavePassword(c *gin.Context) {
	response, err := h.services.Account.SavePassword(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err, response, "Failed to save password")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ClosePasswordDialog - POST /api/account/password/close
func (h *Handlers) ClosePasswordDialog(c *gin.Context) {
	response, err := h.services.Account.ClosePasswordDialog(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err, response, "Failed to close password dialog")
		return
	}

	c.JSON(http.StatusOK, response)
}
