package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sharpcut-pos/sharpcut-pos-service/internal/apperrors"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/clients"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/models"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/pricing"
)

// DiscountService resolves user-entered discount codes through the booking
// backend, with the local guards that must fire before any network call.
type DiscountService struct {
	validator clients.DiscountValidator
	logger    *zap.Logger
}

// NewDiscountService creates a new discount service.
func NewDiscountService(validator clients.DiscountValidator, logger *zap.Logger) *DiscountService {
	return &DiscountService{
		validator: validator,
		logger:    logger.Named("discount-service"),
	}
}

// Validate resolves a code for one client. appliedCodes are the codes already
// added to the appointment; a duplicate (case-insensitive, trimmed) is
// rejected locally with no network call. The returned terms are a snapshot:
// later edits to the code on the backend do not affect this appointment.
func (s *DiscountService) Validate(ctx context.Context, code string, clientID int64, appliedCodes []string) (*models.DiscountCode, error) {
	normalized := pricing.NormalizeCode(code)
	if normalized == "" {
		return nil, apperrors.NewValidationError("code", "discount code is required")
	}

	for _, applied := range appliedCodes {
		if pricing.NormalizeCode(applied) == normalized {
			s.logger.Debug("Duplicate discount code rejected locally",
				zap.String("code", normalized),
			)
			return nil, apperrors.NewValidationError("code", "discount code already applied")
		}
	}

	dc, err := s.validator.Validate(ctx, normalized, clientID)
	if err != nil {
		return nil, err
	}

	dc.Code = pricing.NormalizeCode(dc.Code)
	return dc, nil
}
