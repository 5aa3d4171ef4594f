package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Packages handles GET /api/v1/packages
func (h *Handlers) Packages(c *gin.Context) {
	packages, err := h.catalogService.Packages(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, packages)
}

// Products handles GET /api/v1/products. Defaults to active products only;
// pass all=true for the full list.
func (h *Handlers) Products(c *gin.Context) {
	activeOnly := c.Query("all") != "true"
	products, err := h.catalogService.Products(c.Request.Context(), activeOnly)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Staff handles GET /api/v1/staff
func (h *Handlers) Staff(c *gin.Context) {
	staff, err := h.catalogService.Staff(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}
