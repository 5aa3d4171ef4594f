package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/sharpcut-pos/sharpcut-pos-service/internal/apperrors"
)

// Kind classifies a line item for pricing purposes.
type Kind string

const (
	KindBase       Kind = "base"
	KindAdditional Kind = "additional"
	KindCustom     Kind = "custom"
	KindProduct    Kind = "product"
)

// DiscountType enumerates the supported discount strategies.
type DiscountType string

const (
	// Percentage discounts the targeted items by a percentage of their price.
	Percentage DiscountType = "percentage"
	// FixedAmount discounts a fixed sum, capped at what the targeted items
	// are worth.
	FixedAmount DiscountType = "fixed_amount"
)

// LineItem is anything that can be summed or discounted on an appointment.
// Quantity is meaningful for products only; zero is treated as one.
type LineItem struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
	Kind      Kind
	Quantity  int
}

// Total returns the line's contribution to the subtotal.
func (li LineItem) Total() decimal.Decimal {
	if li.Kind == KindProduct {
		qty := li.Quantity
		if qty <= 0 {
			qty = 1
		}
		return li.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
	}
	return li.UnitPrice
}

// PriceOption is one of the alternative base prices of a variable-pricing
// package.
type PriceOption struct {
	Label string
	Price decimal.Decimal
}

// Base describes the primary service of the appointment. When the package
// declares variable pricing, Option must be set before a price exists.
type Base struct {
	PackageID          string
	Name               string
	FlatPrice          decimal.Decimal
	HasVariablePricing bool
	Option             *PriceOption
}

// Price returns the effective base price. Variable pricing with no selected
// option is an error, never a silent default.
func (b Base) Price() (decimal.Decimal, error) {
	if b.HasVariablePricing {
		if b.Option == nil {
			return decimal.Zero, apperrors.NewValidationError("priceOption",
				"package has variable pricing and no price option is selected")
		}
		return b.Option.Price, nil
	}
	return b.FlatPrice, nil
}

// Discount is a code's terms as snapshotted at validation time, scoped to the
// line item ids in AppliedTo. The terms never change for the life of the
// session even if the underlying code is edited on the backend.
type Discount struct {
	Code        string
	Type        DiscountType
	Percent     decimal.Decimal
	Amount      decimal.Decimal
	Description string
	AppliedTo   []string
}

// Barber carries the commission inputs for the staff member completing the
// appointment. ProductRate may be nil; the engine then uses
// DefaultProductRate.
type Barber struct {
	ID          int64
	Rate        decimal.Decimal
	ProductRate *decimal.Decimal
}

// DefaultProductRate is the product commission percentage applied when the
// barber record carries none.
var DefaultProductRate = decimal.NewFromFloat(5.0)

// Commission is the split between service and product commission. The two
// figures use independent rates and bases and are never summed.
type Commission struct {
	Service decimal.Decimal
	Product decimal.Decimal
	// HasBarber is false when no staff member is assigned; both amounts are
	// zero then and attribution is left to the backend's acting-user policy.
	HasBarber bool
}

var oneHundred = decimal.NewFromInt(100)

// Subtotal sums the base price, additional packages, custom items and product
// lines. Adding any item never decreases the result.
func Subtotal(base Base, additional, custom, products []LineItem) (decimal.Decimal, error) {
	total, err := base.Price()
	if err != nil {
		return decimal.Zero, err
	}
	for _, item := range additional {
		total = total.Add(item.Total())
	}
	for _, item := range custom {
		total = total.Add(item.Total())
	}
	for _, item := range products {
		total = total.Add(item.Total())
	}
	return total, nil
}

// DiscountForCode computes one code's contribution over the currently
// selected line items. selected maps line item id to unit price; ids in
// AppliedTo that are absent from selected contribute nothing, silently, since
// targets can go stale when the user changes the selection after adding the
// code. The result is non-negative and never exceeds the discountable amount.
func DiscountForCode(d Discount, selected map[string]decimal.Decimal) decimal.Decimal {
	discountable := decimal.Zero
	for _, id := range d.AppliedTo {
		if price, ok := selected[id]; ok {
			discountable = discountable.Add(price)
		}
	}
	if discountable.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var amount decimal.Decimal
	switch d.Type {
	case Percentage:
		amount = discountable.Mul(d.Percent).Div(oneHundred)
	case FixedAmount:
		amount = d.Amount
		if amount.GreaterThan(discountable) {
			amount = discountable
		}
	default:
		return decimal.Zero
	}

	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// TotalDiscount sums DiscountForCode over all applied codes. Codes are
// additive, never compounding, and each code is clamped individually before
// the sum. Duplicate-code rejection happens before a code reaches this stage.
func TotalDiscount(discounts []Discount, selected map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range discounts {
		total = total.Add(DiscountForCode(d, selected))
	}
	return total
}

// FinalPrice clamps the discounted amount at zero. It never errors: a total
// discount exceeding the subtotal yields a free appointment, not a refund.
func FinalPrice(subtotal, totalDiscount decimal.Decimal) decimal.Decimal {
	final := subtotal.Sub(totalDiscount)
	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}

// Commissions computes the service/product commission split. Service
// commission is paid on the discounted service amount (what the business
// actually collects). Product commission always uses the full product sale
// amount, since appointment-level codes never discount products.
func Commissions(serviceAfterDiscount, productSubtotal decimal.Decimal, barber *Barber) Commission {
	if barber == nil {
		return Commission{Service: decimal.Zero, Product: decimal.Zero, HasBarber: false}
	}
	productRate := DefaultProductRate
	if barber.ProductRate != nil {
		productRate = *barber.ProductRate
	}
	return Commission{
		Service:   serviceAfterDiscount.Mul(barber.Rate).Div(oneHundred).Round(2),
		Product:   productSubtotal.Mul(productRate).Div(oneHundred).Round(2),
		HasBarber: true,
	}
}

// CodeDiscount pairs a code with its computed contribution.
type CodeDiscount struct {
	Code   string
	Amount decimal.Decimal
}

// Quote is the full pricing breakdown for a selection. FinalPrice covers the
// service side only; product revenue is carried in ProductSubtotal and its
// commission, and never inflates FinalPrice.
type Quote struct {
	Subtotal        decimal.Decimal
	ServiceSubtotal decimal.Decimal
	ProductSubtotal decimal.Decimal
	Discounts       []CodeDiscount
	TotalDiscount   decimal.Decimal
	FinalPrice      decimal.Decimal
	Commission      Commission
}
