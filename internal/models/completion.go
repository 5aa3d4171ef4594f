package models

// DiscountCode is the backend's resolved form of a user-entered code, as
// returned by POST /discount-codes/validate. The terms are snapshotted the
// moment validation succeeds; later edits to the code on the backend do not
// affect an already-added discount.
type DiscountCode struct {
	ID              int64   `json:"id"`
	Code            string  `json:"code"`
	DiscountType    string  `json:"discountType"`
	DiscountPercent float64 `json:"discountPercent,omitempty"`
	DiscountAmount  float64 `json:"discountAmount,omitempty"`
	Description     string  `json:"description,omitempty"`
}

// ValidateDiscountRequest is the body for POST /discount-codes/validate.
// Code is normalized to upper case before sending.
type ValidateDiscountRequest struct {
	Code     string `json:"code"`
	ClientID int64  `json:"clientId"`
}

// ValidateDiscountResponse wraps the backend's validation result.
type ValidateDiscountResponse struct {
	Success bool         `json:"success"`
	Data    DiscountCode `json:"data"`
	Message string       `json:"message,omitempty"`
}

// AppliedDiscountInput is one discount attached to a completion or quote
// request: the snapshot taken at validation time plus the line item ids the
// user scoped it to.
type AppliedDiscountInput struct {
	DiscountCodeID  int64    `json:"discountCodeId,omitempty"`
	Code            string   `json:"code"`
	DiscountType    string   `json:"discountType"`
	DiscountPercent float64  `json:"discountPercent,omitempty"`
	DiscountAmount  float64  `json:"discountAmount,omitempty"`
	AppliedTo       []string `json:"appliedToPackages"`
}

// CustomItemInput is an ad hoc, non-catalog line item added for one
// appointment only. ID is the stable identifier assigned at creation; when
// empty the server assigns one.
type CustomItemInput struct {
	ID    string  `json:"id,omitempty"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ProductLineInput is one retail product line on a completion.
type ProductLineInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// QuoteRequest is the selection state the pricing engine computes over. The
// UI posts it on every selection change.
type QuoteRequest struct {
	ClientID             int64                  `json:"clientId"`
	PackageID            int64                  `json:"packageId"`
	PriceOption          *PriceOption           `json:"priceOption,omitempty"`
	AdditionalPackageIDs []int64                `json:"additionalPackageIds"`
	CustomItems          []CustomItemInput      `json:"customItems"`
	Products             []ProductLineInput     `json:"products"`
	Discounts            []AppliedDiscountInput `json:"discounts"`
	StaffID              *int64                 `json:"staffId,omitempty"`
}

// CompletionRequest completes an appointment: the full selection plus the
// discounts validated earlier in the session.
type CompletionRequest struct {
	QuoteRequest
	Notes string `json:"notes,omitempty"`
}

// CodeDiscount is the computed contribution of a single discount code.
type CodeDiscount struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}

// QuoteResponse is the full pricing breakdown for a selection. FinalPrice is
// the service-only post-discount amount sent to the appointment record;
// product revenue is reported separately and never folded into it.
type QuoteResponse struct {
	Subtotal          float64        `json:"subtotal"`
	ServiceSubtotal   float64        `json:"serviceSubtotal"`
	ProductSubtotal   float64        `json:"productSubtotal"`
	Discounts         []CodeDiscount `json:"discounts"`
	TotalDiscount     float64        `json:"totalDiscount"`
	FinalPrice        float64        `json:"finalPrice"`
	ServiceCommission float64        `json:"serviceCommission"`
	ProductCommission float64        `json:"productCommission"`
	HasBarber         bool           `json:"hasBarber"`
	Currency          string         `json:"currency"`
}

// AppliedDiscountPayload is the stacked-discount form sent to the backend on
// appointment update.
type AppliedDiscountPayload struct {
	Code              string   `json:"code"`
	AppliedToPackages []string `json:"appliedToPackages"`
}

// CustomPackagePayload is the wire shape the backend expects for custom items.
type CustomPackagePayload struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// AppointmentUpdateRequest is the body for PUT /appointments/{id}. FinalPrice
// is service-only and post-discount. The legacy single-discount fields are
// populated only when exactly one code is applied.
type AppointmentUpdateRequest struct {
	Status                string                   `json:"status"`
	FinalPrice            float64                  `json:"finalPrice"`
	DiscountCodeID        *int64                   `json:"discountCodeId,omitempty"`
	DiscountAmount        *float64                 `json:"discountAmount,omitempty"`
	MultipleDiscountCodes []AppliedDiscountPayload `json:"multipleDiscountCodes,omitempty"`
	AdditionalPackages    []int64                  `json:"additionalPackages"`
	CustomPackages        []CustomPackagePayload   `json:"customPackages"`
	StaffID               *int64                   `json:"staffId,omitempty"`
	Notes                 string                   `json:"notes,omitempty"`
}

// Appointment is the backend's appointment record as returned after update.
type Appointment struct {
	ID            int64   `json:"id"`
	ClientID      int64   `json:"clientId"`
	Status        string  `json:"status"`
	FinalPrice    float64 `json:"finalPrice"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	StaffID       *int64  `json:"staffId,omitempty"`
}

// ProductSaleRequest is the body for POST /products/sell, issued once per
// distinct product line.
type ProductSaleRequest struct {
	ProductID     int64  `json:"productId"`
	ClientID      int64  `json:"clientId"`
	Quantity      int    `json:"quantity"`
	StaffID       *int64 `json:"staffId,omitempty"`
	AppointmentID *int64 `json:"appointmentId,omitempty"`
}

// ProductSaleFailure records one product-sale call that failed after the
// appointment was already completed. The user corrects these manually.
type ProductSaleFailure struct {
	ProductID int64  `json:"productId"`
	Quantity  int    `json:"quantity"`
	Error     string `json:"error"`
}

// CompletionResponse reports the completed appointment, its pricing
// breakdown, and any best-effort product sales that did not go through.
type CompletionResponse struct {
	Appointment  Appointment          `json:"appointment"`
	Quote        QuoteResponse        `json:"quote"`
	SaleFailures []ProductSaleFailure `json:"saleFailures,omitempty"`
}

// Settings is the shop-local settings store contract: the values the old
// front-end kept in browser local storage, with an explicit load/save cycle.
type Settings struct {
	MonthlyTarget       float64  `json:"monthlyTarget"`
	ClosedDailyAccounts []string `json:"closedDailyAccounts"`
}
