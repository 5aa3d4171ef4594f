package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetSettings handles GET /api/v1/settings
func (h *Handlers) GetSettings(c *gin.Context) {
	settings, err := h.settings.Load(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

type monthlyTargetBody struct {
	MonthlyTarget float64 `json:"monthlyTarget"`
}

// SetMonthlyTarget handles PUT /api/v1/settings/monthly-target
func (h *Handlers) SetMonthlyTarget(c *gin.Context) {
	var body monthlyTargetBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if body.MonthlyTarget < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "monthly target must not be negative"})
		return
	}

	if err := h.settings.SetMonthlyTarget(c.Request.Context(), body.MonthlyTarget); err != nil {
		handleError(c, err)
		return
	}

	h.logger.Info("Monthly target updated", zap.Float64("monthly_target", body.MonthlyTarget))
	c.JSON(http.StatusOK, gin.H{"monthlyTarget": body.MonthlyTarget})
}

type closeDailyAccountBody struct {
	Date string `json:"date"`
}

// CloseDailyAccount handles POST /api/v1/settings/closed-days. Closing an
// already-closed day is a no-op.
func (h *Handlers) CloseDailyAccount(c *gin.Context) {
	var body closeDailyAccountBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	if err := h.settings.CloseDailyAccount(c.Request.Context(), body.Date); err != nil {
		handleError(c, err)
		return
	}

	h.logger.Info("Daily account closed", zap.String("date", body.Date))
	c.JSON(http.StatusOK, gin.H{"closed": body.Date})
}
