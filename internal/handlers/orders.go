package handlers

import (
	"net/http"
	"strconv"

	"myaccount/internal/middleware"
	"myaccount/internal/models"

	"github.com/gin-gonic/gin"
)

// Orders handlers

// ListOrders - GET /api/account/orders
// Получить историю заказов с текущим фильтром
func (h *Handlers) ListOrders(c *gin.Context) {
	response, err := h.services.Account.Orders(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err, nil, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, response)
}

// SetOrderFilter - PUT /api/account/orders/filter
func (h *Handlers) SetOrderFilter(c *gin.Context) {
	var req models.OrderFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Account.SetOrderFilter(c.Request.Context(), middleware.SessionID(c), req.Status)
	if err != nil {
		respondError(c, err, nil, "Failed to set order filter")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ToggleTicketSection - POST /api/account/orders/:orderId/tickets/:index/toggle
// Свернуть/развернуть секцию билета
func (h *Handlers) ToggleTicketSection(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be a non-negative integer"})
		return
	}

	var req models.ToggleSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Account.ToggleTicketSection(c.Request.Context(), middleware.SessionID(c), c.Param("orderId"), index, req.Section)
	if err != nil {
		respondError(c, err, nil, "Failed to toggle ticket section")
		return
	}

	c.JSON(http.StatusOK, response)
}
