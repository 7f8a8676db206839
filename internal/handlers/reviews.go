package handlers

import (
	"net/http"

	"myaccount/internal/middleware"
	"myaccount/internal/models"

	"github.com/gin-gonic/gin"
)

// Reviews handlers

// OpenReview - POST /api/account/reviews/open
// Открыть форму отзыва для рейса
func (h *Handlers) OpenReview(c *gin.Context) {
	var req models.OpenReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Account.OpenReview(c.Request.Context(), middleware.SessionID(c), &req)
	if err != nil {
		respondError(c, err, response, "Failed to open review")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ChangeReview - PATCH /api/account/reviews/draft
func (h *Handlers) ChangeReview(c *gin.Context) {
	var req models.ReviewDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Account.ChangeReview(c.Request.Context(), middleware.SessionID(c), &req)
	if err != nil {
		respondError(c, err, response, "Failed to change review")
		return
	}

	c.JSON(http.StatusOK, response)
}

// SubmitReview - POST /api/account/reviews/submit
// Отправить отзыв в сервис отзывов
func (h *Handlers) SubmitReview(c *gin.Context) {
	response, err := h.services.Account.SubmitReview(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err, response, "Failed to submit review")
		return
	}

	c.JSON(http.StatusOK, response)
}

// CloseReview - POST /api/account/reviews/close
func (h *Handlers) CloseReview(c *gin.Context) {
	response, err := h.services.Account.CloseReview(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err, response, "Failed to close review")
		return
	}

	c.JSON(http.StatusOK, response)
}
