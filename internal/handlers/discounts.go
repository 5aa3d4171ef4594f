package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sharpcut-pos/sharpcut-pos-service/internal/metrics"
)

type validateDiscountBody struct {
	Code         string   `json:"code"`
	ClientID     int64    `json:"clientId"`
	AppliedCodes []string `json:"appliedCodes"`
}

// ValidateDiscount handles POST /api/v1/discounts/validate. AppliedCodes are
// the codes already on the appointment; a duplicate is rejected without
// calling the backend.
func (h *Handlers) ValidateDiscount(c *gin.Context) {
	var body validateDiscountBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Error("Failed to bind discount validation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	dc, err := h.discountService.Validate(c.Request.Context(), body.Code, body.ClientID, body.AppliedCodes)
	if err != nil {
		metrics.DiscountValidations.WithLabelValues("rejected").Inc()
		handleError(c, err)
		return
	}

	metrics.DiscountValidations.WithLabelValues("accepted").Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dc,
	})
}
