package service

import (
	"strings"

	"github.com/sharpcut-pos/sharpcut-pos-service/internal/apperrors"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/models"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/pricing"
)

// ValidateQuoteRequest checks the structural validity of a quote or completion
// payload before any catalog lookups happen. Referential checks (does the
// package exist, is the staff member real) are done later against the catalog.
func ValidateQuoteRequest(req *models.QuoteRequest) error {
	if req == nil {
		return apperrors.NewValidationError("request", "request body is required")
	}
	if req.ClientID <= 0 {
		return apperrors.NewValidationError("clientId", "client id is required")
	}
	if req.PackageID <= 0 {
		return apperrors.NewValidationError("packageId", "package id is required")
	}
	if req.PriceOption != nil {
		if strings.TrimSpace(req.PriceOption.Label) == "" {
			return apperrors.NewValidationError("priceOption.label", "price option label is required")
		}
		if req.PriceOption.Price <= 0 {
			return apperrors.NewValidationError("priceOption.price", "price option price must be positive")
		}
	}
	for _, id := range req.AdditionalPackageIDs {
		if id <= 0 {
			return apperrors.NewValidationError("additionalPackageIds", "additional package ids must be positive")
		}
	}
	for _, ci := range req.CustomItems {
		if strings.TrimSpace(ci.Name) == "" {
			return apperrors.NewValidationError("customItems.name", "custom item name is required")
		}
		if ci.Price <= 0 {
			return apperrors.NewValidationError("customItems.price", "custom item price must be positive")
		}
		// Catalog packages occupy the numeric id namespace; a digits-only
		// custom id would shadow a package as a discount target. Server-issued
		// custom ids are UUIDs and never collide.
		if ci.ID != "" && isNumericID(ci.ID) {
			return apperrors.NewValidationError("customItems.id", "custom item id must not be a catalog package id")
		}
	}
	for _, line := range req.Products {
		if line.ProductID <= 0 {
			return apperrors.NewValidationError("products.productId", "product id is required")
		}
		if line.Quantity <= 0 {
			return apperrors.NewValidationError("products.quantity", "product quantity must be positive")
		}
	}
	for _, d := range req.Discounts {
		if strings.TrimSpace(d.Code) == "" {
			return apperrors.NewValidationError("discounts.code", "discount code is required")
		}
		switch pricing.DiscountType(d.DiscountType) {
		case pricing.Percentage, pricing.FixedAmount:
		default:
			return apperrors.NewValidationError("discounts.discountType",
				"discount type must be percentage or fixed_amount")
		}
		if len(d.AppliedTo) == 0 {
			return apperrors.NewValidationError("discounts.appliedToPackages",
				"select at least one item to discount")
		}
	}
	if req.StaffID != nil && *req.StaffID <= 0 {
		return apperrors.NewValidationError("staffId", "staff id must be positive")
	}
	return nil
}

func isNumericID(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
