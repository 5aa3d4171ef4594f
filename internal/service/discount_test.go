package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/sharpcut-pos/sharpcut-pos-service/internal/apperrors"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/clients"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/models"
)

func newDiscountFixture() (*DiscountService, *clients.MockDiscountClient) {
	validator := clients.NewMockDiscountClient()
	validator.Codes["FIRST10"] = &models.DiscountCode{
		ID:              11,
		Code:            "FIRST10",
		DiscountType:    "percentage",
		DiscountPercent: 10,
	}
	return NewDiscountService(validator, zap.NewNop()), validator
}

func TestDiscountService_Validate(t *testing.T) {
	svc, validator := newDiscountFixture()

	dc, err := svc.Validate(context.Background(), "  first10 ", 42, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dc.Code != "FIRST10" {
		t.Errorf("expected normalized code FIRST10, got %s", dc.Code)
	}
	if dc.ID != 11 || dc.DiscountPercent != 10 {
		t.Errorf("unexpected code snapshot: %+v", dc)
	}
	if validator.Calls != 1 {
		t.Errorf("expected 1 validator call, got %d", validator.Calls)
	}
}

func TestDiscountService_Validate_EmptyCode(t *testing.T) {
	svc, validator := newDiscountFixture()

	_, err := svc.Validate(context.Background(), "   ", 42, nil)
	var valErr *apperrors.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if validator.Calls != 0 {
		t.Errorf("expected no validator calls, got %d", validator.Calls)
	}
}

func TestDiscountService_Validate_DuplicateRejectedLocally(t *testing.T) {
	svc, validator := newDiscountFixture()

	_, err := svc.Validate(context.Background(), "first10", 42, []string{"FIRST10", "VIP5"})
	var valErr *apperrors.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	// The duplicate is caught before any network traffic.
	if validator.Calls != 0 {
		t.Errorf("expected no validator calls, got %d", validator.Calls)
	}
}

func TestDiscountService_Validate_UnknownCode(t *testing.T) {
	svc, _ := newDiscountFixture()

	_, err := svc.Validate(context.Background(), "NOPE", 42, nil)
	var remoteErr *apperrors.RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected remote error, got %v", err)
	}
}
