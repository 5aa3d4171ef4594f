package pricing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sharpcut-pos/sharpcut-pos-service/internal/apperrors"
)

// NormalizeCode upper-cases and trims a user-entered discount code. All
// duplicate checks and backend lookups use the normalized form.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Selection is the working state of one completion dialog: the base package,
// everything added to it, and the discount codes attached so far. It lives
// for the duration of the interaction and is discarded once submission
// succeeds; a failed submission leaves it untouched for retry.
type Selection struct {
	base       Base
	additional []LineItem
	custom     []LineItem
	products   []LineItem
	discounts  []Discount
}

// NewSelection opens a selection on the given base package.
func NewSelection(base Base) *Selection {
	return &Selection{base: base}
}

// ChoosePriceOption selects one of a variable-pricing package's options.
func (s *Selection) ChoosePriceOption(opt PriceOption) {
	s.base.Option = &opt
}

// AddAdditional adds a catalog package to the appointment. Re-adding an id
// replaces the previous entry.
func (s *Selection) AddAdditional(item LineItem) {
	item.Kind = KindAdditional
	s.removeFrom(&s.additional, item.ID)
	s.additional = append(s.additional, item)
}

// RemoveAdditional drops an additional package. Discount codes targeting it
// are left in place; their contribution from this item becomes zero.
func (s *Selection) RemoveAdditional(id string) {
	s.removeFrom(&s.additional, id)
}

// AddCustomItem adds an ad hoc line item with a generated stable identifier,
// so discount targets survive later removals of other custom items.
func (s *Selection) AddCustomItem(name string, price decimal.Decimal) (LineItem, error) {
	if strings.TrimSpace(name) == "" {
		return LineItem{}, apperrors.NewValidationError("name", "custom item name is required")
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return LineItem{}, apperrors.NewValidationError("price", "custom item price must be positive")
	}
	item := LineItem{
		ID:        uuid.NewString(),
		Name:      name,
		UnitPrice: price,
		Kind:      KindCustom,
	}
	s.custom = append(s.custom, item)
	return item, nil
}

// RestoreCustomItem re-adds a custom item under its existing identifier, for
// selections rebuilt from a request payload.
func (s *Selection) RestoreCustomItem(item LineItem) error {
	if item.ID == "" {
		return apperrors.NewValidationError("id", "custom item id is required")
	}
	if item.UnitPrice.LessThanOrEqual(decimal.Zero) {
		return apperrors.NewValidationError("price", "custom item price must be positive")
	}
	item.Kind = KindCustom
	s.removeFrom(&s.custom, item.ID)
	s.custom = append(s.custom, item)
	return nil
}

// RemoveCustomItem drops a custom line item by its stable id.
func (s *Selection) RemoveCustomItem(id string) {
	s.removeFrom(&s.custom, id)
}

// AddProduct adds a retail product line. Products are summed into the display
// subtotal but excluded from the appointment's discount base and final price.
func (s *Selection) AddProduct(item LineItem) {
	item.Kind = KindProduct
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	s.removeFrom(&s.products, item.ID)
	s.products = append(s.products, item)
}

// RemoveProduct drops a product line.
func (s *Selection) RemoveProduct(id string) {
	s.removeFrom(&s.products, id)
}

// AddDiscount attaches a newly validated discount to the selection. It
// enforces the local guards that block a code before any network traffic: a
// non-empty code, at least one currently-selected target, and no duplicate of
// an already-added code (case-insensitive).
func (s *Selection) AddDiscount(d Discount) error {
	if err := s.addDiscount(d); err != nil {
		return err
	}
	selected := s.discountableItems()
	added := s.discounts[len(s.discounts)-1]
	for _, id := range added.AppliedTo {
		if _, ok := selected[id]; ok {
			return nil
		}
	}
	s.discounts = s.discounts[:len(s.discounts)-1]
	return apperrors.NewValidationError("appliedToPackages", "no selected item matches the discount targets")
}

// RestoreDiscount re-attaches a code that was already applied earlier in the
// session, for selections rebuilt from a request payload. Unlike AddDiscount
// it does not require a currently-selected target: the selection may have
// changed since the code was added, and a code whose targets all went stale
// keeps contributing zero rather than invalidating the whole request.
func (s *Selection) RestoreDiscount(d Discount) error {
	return s.addDiscount(d)
}

func (s *Selection) addDiscount(d Discount) error {
	d.Code = NormalizeCode(d.Code)
	if d.Code == "" {
		return apperrors.NewValidationError("code", "discount code is required")
	}
	for _, existing := range s.discounts {
		if existing.Code == d.Code {
			return apperrors.NewValidationError("code", "discount code already applied")
		}
	}
	if len(d.AppliedTo) == 0 {
		return apperrors.NewValidationError("appliedToPackages", "select at least one item to discount")
	}
	s.discounts = append(s.discounts, d)
	return nil
}

// RemoveDiscount detaches a code by its normalized text.
func (s *Selection) RemoveDiscount(code string) {
	code = NormalizeCode(code)
	for i, d := range s.discounts {
		if d.Code == code {
			s.discounts = append(s.discounts[:i], s.discounts[i+1:]...)
			return
		}
	}
}

// HasDiscount reports whether a code (case-insensitive) is already applied.
// Callers use it as the duplicate-add guard before hitting the validator.
func (s *Selection) HasDiscount(code string) bool {
	code = NormalizeCode(code)
	for _, d := range s.discounts {
		if d.Code == code {
			return true
		}
	}
	return false
}

// Discounts returns the applied codes in the order they were added.
func (s *Selection) Discounts() []Discount {
	out := make([]Discount, len(s.discounts))
	copy(out, s.discounts)
	return out
}

// Additional returns the selected additional packages.
func (s *Selection) Additional() []LineItem {
	out := make([]LineItem, len(s.additional))
	copy(out, s.additional)
	return out
}

// CustomItems returns the custom line items.
func (s *Selection) CustomItems() []LineItem {
	out := make([]LineItem, len(s.custom))
	copy(out, s.custom)
	return out
}

// Products returns the retail product lines.
func (s *Selection) Products() []LineItem {
	out := make([]LineItem, len(s.products))
	copy(out, s.products)
	return out
}

// discountableItems maps id to unit price for everything a code may target:
// the base package, selected additional packages and custom items. Products
// are deliberately absent; appointment-level codes never discount them.
func (s *Selection) discountableItems() map[string]decimal.Decimal {
	selected := make(map[string]decimal.Decimal, 1+len(s.additional)+len(s.custom))
	if basePrice, err := s.base.Price(); err == nil {
		selected[s.base.PackageID] = basePrice
	}
	for _, item := range s.additional {
		selected[item.ID] = item.UnitPrice
	}
	for _, item := range s.custom {
		selected[item.ID] = item.UnitPrice
	}
	return selected
}

// Quote computes the full pricing breakdown for the current state. It fails
// only when the base price is undetermined (variable pricing with no option);
// every other oddity resolves to a clamped number, not an error.
func (s *Selection) Quote(barber *Barber) (Quote, error) {
	basePrice, err := s.base.Price()
	if err != nil {
		return Quote{}, err
	}

	serviceSubtotal := basePrice
	for _, item := range s.additional {
		serviceSubtotal = serviceSubtotal.Add(item.Total())
	}
	for _, item := range s.custom {
		serviceSubtotal = serviceSubtotal.Add(item.Total())
	}

	productSubtotal := decimal.Zero
	for _, item := range s.products {
		productSubtotal = productSubtotal.Add(item.Total())
	}

	selected := s.discountableItems()
	perCode := make([]CodeDiscount, 0, len(s.discounts))
	totalDiscount := decimal.Zero
	// Per-code amounts are rounded before summing so the reported figures
	// always add up to the reported total.
	for _, d := range s.discounts {
		amount := DiscountForCode(d, selected).Round(2)
		perCode = append(perCode, CodeDiscount{Code: d.Code, Amount: amount})
		totalDiscount = totalDiscount.Add(amount)
	}

	finalPrice := FinalPrice(serviceSubtotal, totalDiscount)

	return Quote{
		Subtotal:        serviceSubtotal.Add(productSubtotal).Round(2),
		ServiceSubtotal: serviceSubtotal.Round(2),
		ProductSubtotal: productSubtotal.Round(2),
		Discounts:       perCode,
		TotalDiscount:   totalDiscount.Round(2),
		FinalPrice:      finalPrice.Round(2),
		Commission:      Commissions(finalPrice, productSubtotal, barber),
	}, nil
}

func (s *Selection) removeFrom(items *[]LineItem, id string) {
	for i, item := range *items {
		if item.ID == id {
			*items = append((*items)[:i], (*items)[i+1:]...)
			return
		}
	}
}
