package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sharpcut-pos/sharpcut-pos-service/internal/metrics"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/models"
)

// Quote handles POST /api/v1/pricing/quote. The UI posts the full selection
// on every change and renders the returned breakdown.
func (h *Handlers) Quote(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind quote request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	quote, err := h.completionService.Quote(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	metrics.QuotesComputed.Inc()
	c.JSON(http.StatusOK, quote)
}

// Complete handles POST /api/v1/appointments/:id/complete.
func (h *Handlers) Complete(c *gin.Context) {
	appointmentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || appointmentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}

	var req models.CompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind completion request",
			zap.Int64("appointment_id", appointmentID),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.completionService.Complete(c.Request.Context(), appointmentID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	metrics.AppointmentsCompleted.Inc()
	for range resp.SaleFailures {
		metrics.ProductSaleFailures.Inc()
	}

	// Partial product-sale failures still complete the appointment; 207
	// signals the caller to surface them.
	status := http.StatusOK
	if len(resp.SaleFailures) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, resp)
}
