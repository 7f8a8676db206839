package handlers

import (
	"net/http"
	"strconv"

	"myaccount/internal/middleware"
	"myaccount/internal/models"

	"github.com/gin-gonic/gin"
)

// Cards handlers

// ListCards - GET /api/account/cards
// Получить способы оплаты и состояние диалогов
func (h *Handlers) ListCards(c *gin.Context) {
	response, err := h.services.Account.PaymentMethods(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err, nil, "Failed to list cards")
		return
	}

	c.JSON(http.StatusOK, response)
}

// SetPrimaryCard - POST /api/account/cards/:id/primary
func (h *Handlers) SetPrimaryCard(c *gin.Context) {
	cardID, ok := parseCardID(c)
	if !ok {
		return
	}

	response, err := h.services.Account.SetPrimaryCard(c.Request.Context(), middleware.SessionID(c), cardID)
	if err != nil {
		respondError(c, err, response, "Failed to set primary card")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ExpiryOptions - GET /api/account/cards/new/options
func (h *Handlers) ExpiryOptions(c *gin.Context) {
	response, err := h.services.Account.ExpiryOptions(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err, nil, "Failed to get expiry options")
		return
	}

	c.JSON(http.StatusOK, response)
}

// OpenAddCard - POST /api/account/cards/new/open
func (h *Handlers) OpenAddCard(c *gin.Context) {
	response, err := h.services.Account.OpenAddCard(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err, response, "Failed to open add card dialog")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ChangeCardDraft - PATCH /api/account/cards/new/draft
func (h *Handlers) ChangeCardDraft(c *gin.Context) {
	var req models.CardDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Account.ChangeCardDraft(c.Request.Context(), middleware.SessionID(c), &req)
	if err != nil {
		respondError(c, err, response, "Failed to change card draft")
		return
	}

	c.JSON(http.StatusOK, response)
}

// SubmitCard - POST /api/account/cards/new/submit
// Добавить карту; при ошибке валидации 422 с флагами полей
func (h *Handlers) SubmitCard(c *gin.Context) {
	response, err := h.services.Account.SubmitCard(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err, response, "Failed to add card")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// CloseAddCard - POST /api/account/cards/new/close
func (h *Handlers) CloseAddCard(c *gin.Context) {
	response, err := h.services.Account.CloseAddCard(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err, response, "Failed to close add card dialog")
		return
	}

	c.JSON(http.StatusOK, response)
}

// RequestCardDeletion - POST /api/account/cards/:id/delete
// Открыть подтверждение удаления
func (h *Handlers) RequestCardDeletion(c *gin.Context) {
	cardID, ok := parseCardID(c)
	if !ok {
		return
	}

	response, err := h.services.Account.RequestCardDeletion(c.Request.Context(), middleware.SessionID(c), cardID)
	if err != nil {
		respondError(c, err, response, "Failed to request card deletion")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ConfirmCardDeletion - POST /api/account/cards/delete/confirm
func (h *Handlers) ConfirmCardDeletion(c *gin.Context) {
	response, err := h.services.Account.ConfirmCardDeletion(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err, response, "Failed to delete card")
		return
	}

	c.JSON(http.StatusOK, response)
}

// CancelCardDeletion - POST /api/account/cards/delete/cancel
func (h *Handlers) CancelCardDeletion(c *gin.Context) {
	response, err := h.services.Account.CancelCardDeletion(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err, response, "Failed to cancel card deletion")
		return
	}

	c.JSON(http.StatusOK, response)
}

func parseCardID(c *gin.Context) (int64, bool) {
	cardID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "card id must be an integer"})
		return 0, false
	}
	return cardID, true
}
