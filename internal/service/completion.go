package service

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sharpcut-pos/sharpcut-pos-service/internal/apperrors"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/clients"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/config"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/events"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/models"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/pricing"
)

// CompletionService owns the appointment completion flow: it recomputes the
// pricing breakdown from the submitted selection, writes the completed
// appointment to the booking backend, then records product sales one by one,
// best-effort.
type CompletionService struct {
	catalog      *CatalogService
	appointments clients.AppointmentUpdater
	products     clients.ProductSeller
	publisher    events.SaleEventPublisher
	config       *config.Config
	logger       *zap.Logger
}

// NewCompletionService creates a new completion service.
func NewCompletionService(
	catalog *CatalogService,
	appointments clients.AppointmentUpdater,
	products clients.ProductSeller,
	publisher events.SaleEventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) *CompletionService {
	return &CompletionService{
		catalog:      catalog,
		appointments: appointments,
		products:     products,
		publisher:    publisher,
		config:       cfg,
		logger:       logger.Named("completion-service"),
	}
}

// LineItemID is the engine-level id for a catalog package, usable as a
// discount target.
func LineItemID(packageID int64) string {
	return strconv.FormatInt(packageID, 10)
}

// Quote computes the pricing breakdown for a selection without touching the
// appointment. The UI calls this on every selection change.
func (s *CompletionService) Quote(ctx context.Context, req *models.QuoteRequest) (*models.QuoteResponse, error) {
	if err := ValidateQuoteRequest(req); err != nil {
		return nil, err
	}

	built, err := s.buildSelection(ctx, req)
	if err != nil {
		return nil, err
	}

	quote, err := built.selection.Quote(built.barber)
	if err != nil {
		return nil, err
	}

	resp := s.toQuoteResponse(quote)
	return &resp, nil
}

// Complete marks the appointment completed on the booking backend with the
// recomputed service-only final price, then records each product line as a
// separate sale. The appointment update is the one atomic step: if it fails,
// nothing has changed and the caller's selection survives for retry. Product
// sale failures after that point are reported in the response, not rolled
// back, since the appointment is already complete.
func (s *CompletionService) Complete(ctx context.Context, appointmentID int64, req *models.CompletionRequest) (*models.CompletionResponse, error) {
	if err := ValidateQuoteRequest(&req.QuoteRequest); err != nil {
		return nil, err
	}

	built, err := s.buildSelection(ctx, &req.QuoteRequest)
	if err != nil {
		return nil, err
	}

	quote, err := built.selection.Quote(built.barber)
	if err != nil {
		return nil, err
	}
	quoteResp := s.toQuoteResponse(quote)

	update := s.buildUpdateRequest(req, built, quote)

	appt, err := s.appointments.Update(ctx, appointmentID, update)
	if err != nil {
		s.logger.Error("Appointment update failed",
			zap.Int64("appointment_id", appointmentID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Appointment completed",
		zap.Int64("appointment_id", appt.ID),
		zap.Float64("final_price", appt.FinalPrice),
		zap.Int("product_lines", len(req.Products)),
	)

	// Product sales are issued sequentially and independently. A failure is
	// recorded and the loop continues; the user corrects partial failures
	// manually.
	var failures []models.ProductSaleFailure
	for _, line := range req.Products {
		sale := &models.ProductSaleRequest{
			ProductID:     line.ProductID,
			ClientID:      req.ClientID,
			Quantity:      line.Quantity,
			StaffID:       req.StaffID,
			AppointmentID: &appt.ID,
		}
		if err := s.products.Sell(ctx, sale); err != nil {
			s.logger.Error("Product sale failed",
				zap.Int64("product_id", line.ProductID),
				zap.Int64("appointment_id", appt.ID),
				zap.Error(err),
			)
			failures = append(failures, models.ProductSaleFailure{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Error:     err.Error(),
			})
			continue
		}

		if s.config.Features.EnableSaleEvents {
			if err := s.publisher.PublishProductSold(ctx, sale); err != nil {
				// Log but don't fail
				s.logger.Error("Failed to publish product sold event",
					zap.Int64("product_id", line.ProductID),
					zap.Error(err),
				)
			}
		}
	}

	if s.config.Features.EnableSaleEvents {
		if err := s.publisher.PublishAppointmentCompleted(ctx, appt, &quoteResp); err != nil {
			s.logger.Error("Failed to publish appointment completed event",
				zap.Int64("appointment_id", appt.ID),
				zap.Error(err),
			)
		}
	}

	return &models.CompletionResponse{
		Appointment:  *appt,
		Quote:        quoteResp,
		SaleFailures: failures,
	}, nil
}

// builtSelection pairs the engine selection with the request-level metadata
// needed to assemble the backend payload.
type builtSelection struct {
	selection   *pricing.Selection
	barber      *pricing.Barber
	codeIDs     map[string]int64
	customItems []models.CustomItemInput
}

func (s *CompletionService) buildSelection(ctx context.Context, req *models.QuoteRequest) (*builtSelection, error) {
	pkg, err := s.catalog.PackageByID(ctx, req.PackageID)
	if err != nil {
		if err == apperrors.ErrNotFound {
			return nil, apperrors.NewValidationError("packageId", "package not found")
		}
		return nil, err
	}

	base := pricing.Base{
		PackageID:          LineItemID(pkg.ID),
		Name:               pkg.Name,
		FlatPrice:          decimal.NewFromFloat(pkg.Price),
		HasVariablePricing: pkg.HasVariablePricing,
	}
	if req.PriceOption != nil {
		base.Option = &pricing.PriceOption{
			Label: req.PriceOption.Label,
			Price: decimal.NewFromFloat(req.PriceOption.Price),
		}
	}

	sel := pricing.NewSelection(base)

	for _, id := range req.AdditionalPackageIDs {
		add, err := s.catalog.PackageByID(ctx, id)
		if err != nil {
			if err == apperrors.ErrNotFound {
				return nil, apperrors.NewValidationError("additionalPackageIds",
					"additional package "+LineItemID(id)+" not found")
			}
			return nil, err
		}
		sel.AddAdditional(pricing.LineItem{
			ID:        LineItemID(add.ID),
			Name:      add.Name,
			UnitPrice: decimal.NewFromFloat(add.Price),
		})
	}

	customItems := make([]models.CustomItemInput, 0, len(req.CustomItems))
	for _, ci := range req.CustomItems {
		price := decimal.NewFromFloat(ci.Price)
		if ci.ID == "" {
			item, err := sel.AddCustomItem(ci.Name, price)
			if err != nil {
				return nil, err
			}
			ci.ID = item.ID
		} else {
			if err := sel.RestoreCustomItem(pricing.LineItem{
				ID:        ci.ID,
				Name:      ci.Name,
				UnitPrice: price,
			}); err != nil {
				return nil, err
			}
		}
		customItems = append(customItems, ci)
	}

	for _, line := range req.Products {
		product, err := s.catalog.ProductByID(ctx, line.ProductID)
		if err != nil {
			if err == apperrors.ErrNotFound {
				return nil, apperrors.NewValidationError("products",
					"product "+LineItemID(line.ProductID)+" not found")
			}
			return nil, err
		}
		sel.AddProduct(pricing.LineItem{
			ID:        "product-" + LineItemID(product.ID),
			Name:      product.Name,
			UnitPrice: decimal.NewFromFloat(product.Price),
			Quantity:  line.Quantity,
		})
	}

	codeIDs := make(map[string]int64, len(req.Discounts))
	for _, d := range req.Discounts {
		discount := pricing.Discount{
			Code:      d.Code,
			Type:      pricing.DiscountType(d.DiscountType),
			Percent:   decimal.NewFromFloat(d.DiscountPercent),
			Amount:    decimal.NewFromFloat(d.DiscountAmount),
			AppliedTo: d.AppliedTo,
		}
		if err := sel.RestoreDiscount(discount); err != nil {
			return nil, err
		}
		codeIDs[pricing.NormalizeCode(d.Code)] = d.DiscountCodeID
	}

	var barber *pricing.Barber
	if req.StaffID != nil {
		staff, err := s.catalog.StaffByID(ctx, *req.StaffID)
		if err != nil {
			if err == apperrors.ErrNotFound {
				return nil, apperrors.NewValidationError("staffId", "staff member not found")
			}
			return nil, err
		}
		productRate := s.config.Pricing.DefaultProductCommission
		if staff.ProductCommissionRate != nil {
			productRate = *staff.ProductCommissionRate
		}
		rate := decimal.NewFromFloat(productRate)
		barber = &pricing.Barber{
			ID:          staff.ID,
			Rate:        decimal.NewFromFloat(staff.CommissionRate),
			ProductRate: &rate,
		}
	}

	return &builtSelection{
		selection:   sel,
		barber:      barber,
		codeIDs:     codeIDs,
		customItems: customItems,
	}, nil
}

func (s *CompletionService) buildUpdateRequest(req *models.CompletionRequest, built *builtSelection, quote pricing.Quote) *models.AppointmentUpdateRequest {
	update := &models.AppointmentUpdateRequest{
		Status:             "completed",
		FinalPrice:         quote.FinalPrice.InexactFloat64(),
		AdditionalPackages: req.AdditionalPackageIDs,
		StaffID:            req.StaffID,
		Notes:              req.Notes,
	}
	if update.AdditionalPackages == nil {
		update.AdditionalPackages = []int64{}
	}

	update.CustomPackages = make([]models.CustomPackagePayload, 0, len(built.customItems))
	for _, ci := range built.customItems {
		update.CustomPackages = append(update.CustomPackages, models.CustomPackagePayload{
			Name:  ci.Name,
			Price: ci.Price,
		})
	}

	discounts := built.selection.Discounts()
	update.MultipleDiscountCodes = make([]models.AppliedDiscountPayload, 0, len(discounts))
	for _, d := range discounts {
		update.MultipleDiscountCodes = append(update.MultipleDiscountCodes, models.AppliedDiscountPayload{
			Code:              d.Code,
			AppliedToPackages: d.AppliedTo,
		})
	}

	// Older backend deployments read the single-discount fields; populate
	// them when exactly one code is applied.
	if len(discounts) == 1 {
		if id, ok := built.codeIDs[discounts[0].Code]; ok && id != 0 {
			update.DiscountCodeID = &id
		}
		amount := quote.TotalDiscount.InexactFloat64()
		update.DiscountAmount = &amount
	}

	return update
}

func (s *CompletionService) toQuoteResponse(quote pricing.Quote) models.QuoteResponse {
	discounts := make([]models.CodeDiscount, 0, len(quote.Discounts))
	for _, d := range quote.Discounts {
		discounts = append(discounts, models.CodeDiscount{
			Code:   d.Code,
			Amount: d.Amount.InexactFloat64(),
		})
	}

	return models.QuoteResponse{
		Subtotal:          quote.Subtotal.InexactFloat64(),
		ServiceSubtotal:   quote.ServiceSubtotal.InexactFloat64(),
		ProductSubtotal:   quote.ProductSubtotal.InexactFloat64(),
		Discounts:         discounts,
		TotalDiscount:     quote.TotalDiscount.InexactFloat64(),
		FinalPrice:        quote.FinalPrice.InexactFloat64(),
		ServiceCommission: quote.Commission.Service.InexactFloat64(),
		ProductCommission: quote.Commission.Product.InexactFloat64(),
		HasBarber:         quote.Commission.HasBarber,
		Currency:          s.config.Pricing.Currency,
	}
}
