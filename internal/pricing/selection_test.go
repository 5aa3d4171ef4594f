package pricing

import (
	"testing"
)

func newTestSelection() *Selection {
	return NewSelection(Base{PackageID: "pkg-1", Name: "Classic Cut", FlatPrice: dec("80")})
}

func TestSelection_AddDiscountGuards(t *testing.T) {
	tests := []struct {
		name     string
		discount Discount
		wantErr  bool
	}{
		{
			name: "valid discount",
			discount: Discount{
				Code: "welcome15", Type: Percentage,
				Percent: dec("15"), AppliedTo: []string{"pkg-1"},
			},
			wantErr: false,
		},
		{
			name: "empty code",
			discount: Discount{
				Code: "   ", Type: Percentage,
				Percent: dec("15"), AppliedTo: []string{"pkg-1"},
			},
			wantErr: true,
		},
		{
			name: "no targets",
			discount: Discount{
				Code: "WELCOME15", Type: Percentage, Percent: dec("15"),
			},
			wantErr: true,
		},
		{
			name: "no selected item matches targets",
			discount: Discount{
				Code: "WELCOME15", Type: Percentage,
				Percent: dec("15"), AppliedTo: []string{"pkg-404"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSelection()
			err := s.AddDiscount(tt.discount)
			if tt.wantErr && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestSelection_DuplicateCodeRejected(t *testing.T) {
	s := newTestSelection()

	first := Discount{Code: "SAVE10", Type: FixedAmount, Amount: dec("10"), AppliedTo: []string{"pkg-1"}}
	if err := s.AddDiscount(first); err != nil {
		t.Fatalf("First add failed: %v", err)
	}

	// Same code, different case and whitespace.
	dup := Discount{Code: " save10 ", Type: FixedAmount, Amount: dec("10"), AppliedTo: []string{"pkg-1"}}
	if err := s.AddDiscount(dup); err == nil {
		t.Error("Expected duplicate code to be rejected")
	}

	if !s.HasDiscount("Save10") {
		t.Error("Expected HasDiscount to match case-insensitively")
	}
	if len(s.Discounts()) != 1 {
		t.Errorf("Expected 1 applied discount, got %d", len(s.Discounts()))
	}
}

func TestSelection_VariablePricingGate(t *testing.T) {
	s := NewSelection(Base{
		PackageID:          "pkg-7",
		Name:               "Cut & Style",
		FlatPrice:          dec("60"),
		HasVariablePricing: true,
	})

	if _, err := s.Quote(nil); err == nil {
		t.Error("Expected quote to fail without a selected price option")
	}

	s.ChoosePriceOption(PriceOption{Label: "Long hair", Price: dec("75")})
	quote, err := s.Quote(nil)
	if err != nil {
		t.Fatalf("Quote failed after option selection: %v", err)
	}
	if !quote.FinalPrice.Equal(dec("75")) {
		t.Errorf("Expected final price 75, got %s", quote.FinalPrice)
	}
}

func TestSelection_StaleTargetLeniency(t *testing.T) {
	s := newTestSelection()
	s.AddAdditional(LineItem{ID: "pkg-2", Name: "Beard Trim", UnitPrice: dec("20")})

	err := s.AddDiscount(Discount{
		Code: "TRIM10", Type: FixedAmount,
		Amount: dec("10"), AppliedTo: []string{"pkg-2"},
	})
	if err != nil {
		t.Fatalf("AddDiscount failed: %v", err)
	}

	quote, err := s.Quote(nil)
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if !quote.TotalDiscount.Equal(dec("10")) {
		t.Errorf("Expected discount 10 while target selected, got %s", quote.TotalDiscount)
	}

	// Removing the targeted package zeroes the code's contribution without
	// error; the code itself stays applied.
	s.RemoveAdditional("pkg-2")

	quote, err = s.Quote(nil)
	if err != nil {
		t.Fatalf("Quote failed after removal: %v", err)
	}
	if !quote.TotalDiscount.Equal(dec("0")) {
		t.Errorf("Expected stale discount to contribute 0, got %s", quote.TotalDiscount)
	}
	if !quote.FinalPrice.Equal(dec("80")) {
		t.Errorf("Expected final price back at 80, got %s", quote.FinalPrice)
	}
	if len(s.Discounts()) != 1 {
		t.Error("Expected stale code to remain applied")
	}
}

// A selection rebuilt from a request payload may carry a code whose targets
// have all gone stale. RestoreDiscount keeps the structural guards but not
// the live-target requirement; the code re-attaches and contributes zero.
func TestSelection_RestoreDiscountAllowsStaleTargets(t *testing.T) {
	s := newTestSelection()

	err := s.RestoreDiscount(Discount{
		Code: "TINT5", Type: FixedAmount,
		Amount: dec("5"), AppliedTo: []string{"gone-custom-id"},
	})
	if err != nil {
		t.Fatalf("RestoreDiscount failed: %v", err)
	}

	quote, err := s.Quote(nil)
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if !quote.TotalDiscount.Equal(dec("0")) {
		t.Errorf("Expected fully stale code to contribute 0, got %s", quote.TotalDiscount)
	}
	if !quote.FinalPrice.Equal(dec("80")) {
		t.Errorf("Expected final price 80, got %s", quote.FinalPrice)
	}

	// The structural guards still hold on restore.
	if err := s.RestoreDiscount(Discount{
		Code: "tint5", Type: FixedAmount,
		Amount: dec("5"), AppliedTo: []string{"gone-custom-id"},
	}); err == nil {
		t.Error("Expected duplicate code to be rejected on restore")
	}
	if err := s.RestoreDiscount(Discount{
		Code: "  ", Type: FixedAmount, Amount: dec("5"), AppliedTo: []string{"x"},
	}); err == nil {
		t.Error("Expected empty code to be rejected on restore")
	}
	if err := s.RestoreDiscount(Discount{
		Code: "NOTARGETS", Type: FixedAmount, Amount: dec("5"),
	}); err == nil {
		t.Error("Expected code without targets to be rejected on restore")
	}
}

// Per-code amounts in the quote are rounded to cents before summing, so the
// listed figures always add up to the reported total even on fractional
// percentage results.
func TestSelection_DiscountRoundingConsistent(t *testing.T) {
	s := NewSelection(Base{PackageID: "pkg-1", Name: "Classic Cut", FlatPrice: dec("33.33")})

	// 10% of 33.33 is 3.333, shown as 3.33.
	for _, code := range []string{"TEN-A", "TEN-B"} {
		if err := s.AddDiscount(Discount{
			Code: code, Type: Percentage,
			Percent: dec("10"), AppliedTo: []string{"pkg-1"},
		}); err != nil {
			t.Fatalf("AddDiscount(%s) failed: %v", code, err)
		}
	}

	quote, err := s.Quote(nil)
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}

	sum := dec("0")
	for _, d := range quote.Discounts {
		sum = sum.Add(d.Amount)
	}
	if !quote.TotalDiscount.Equal(sum) {
		t.Errorf("Total discount %s does not equal sum of per-code amounts %s",
			quote.TotalDiscount, sum)
	}
	if !quote.TotalDiscount.Equal(dec("6.66")) {
		t.Errorf("Expected total discount 6.66, got %s", quote.TotalDiscount)
	}
	if !quote.FinalPrice.Equal(dec("26.67")) {
		t.Errorf("Expected final price 26.67, got %s", quote.FinalPrice)
	}
}

func TestSelection_ProductsExcludedFromFinalPrice(t *testing.T) {
	s := newTestSelection()
	s.AddProduct(LineItem{ID: "prod-5", Name: "Pomade", UnitPrice: dec("25"), Quantity: 2})

	quote, err := s.Quote(nil)
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}

	if !quote.Subtotal.Equal(dec("130")) {
		t.Errorf("Expected display subtotal 130, got %s", quote.Subtotal)
	}
	if !quote.ProductSubtotal.Equal(dec("50")) {
		t.Errorf("Expected product subtotal 50, got %s", quote.ProductSubtotal)
	}
	if !quote.FinalPrice.Equal(dec("80")) {
		t.Errorf("Expected final price to exclude products, got %s", quote.FinalPrice)
	}

	// A code targeting the product id must not find it: products are not
	// discountable.
	err = s.AddDiscount(Discount{
		Code: "PROD", Type: Percentage,
		Percent: dec("10"), AppliedTo: []string{"prod-5"},
	})
	if err == nil {
		t.Error("Expected discount targeting a product to be rejected")
	}
}

func TestSelection_CustomItemsGetStableIDs(t *testing.T) {
	s := newTestSelection()

	wax, err := s.AddCustomItem("Wax", dec("15"))
	if err != nil {
		t.Fatalf("AddCustomItem failed: %v", err)
	}
	tint, err := s.AddCustomItem("Beard Tint", dec("30"))
	if err != nil {
		t.Fatalf("AddCustomItem failed: %v", err)
	}
	if wax.ID == "" || wax.ID == tint.ID {
		t.Fatalf("Expected distinct non-empty ids, got %q and %q", wax.ID, tint.ID)
	}

	err = s.AddDiscount(Discount{
		Code: "TINT5", Type: FixedAmount,
		Amount: dec("5"), AppliedTo: []string{tint.ID},
	})
	if err != nil {
		t.Fatalf("AddDiscount failed: %v", err)
	}

	// Removing a different custom item must not re-target the discount.
	s.RemoveCustomItem(wax.ID)

	quote, err := s.Quote(nil)
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if !quote.TotalDiscount.Equal(dec("5")) {
		t.Errorf("Expected discount to stay on its target, got %s", quote.TotalDiscount)
	}
	if !quote.FinalPrice.Equal(dec("105")) { // 80 + 30 - 5
		t.Errorf("Expected final price 105, got %s", quote.FinalPrice)
	}
}

func TestSelection_CustomItemValidation(t *testing.T) {
	s := newTestSelection()

	if _, err := s.AddCustomItem("", dec("10")); err == nil {
		t.Error("Expected empty name to be rejected")
	}
	if _, err := s.AddCustomItem("Freebie", dec("0")); err == nil {
		t.Error("Expected non-positive price to be rejected")
	}
	if _, err := s.AddCustomItem("Refund", dec("-5")); err == nil {
		t.Error("Expected negative price to be rejected")
	}
}

// End-to-end worked example: base RM80, additional RM20, custom "Wax" RM15,
// 15% off the base, RM10 fixed off the additional.
func TestSelection_WorkedExample(t *testing.T) {
	s := newTestSelection()
	s.AddAdditional(LineItem{ID: "pkg-2", Name: "Beard Trim", UnitPrice: dec("20")})
	wax, err := s.AddCustomItem("Wax", dec("15"))
	if err != nil {
		t.Fatalf("AddCustomItem failed: %v", err)
	}
	_ = wax

	if err := s.AddDiscount(Discount{
		Code: "BASE15", Type: Percentage,
		Percent: dec("15"), AppliedTo: []string{"pkg-1"},
	}); err != nil {
		t.Fatalf("AddDiscount failed: %v", err)
	}
	if err := s.AddDiscount(Discount{
		Code: "TRIM10", Type: FixedAmount,
		Amount: dec("10"), AppliedTo: []string{"pkg-2"},
	}); err != nil {
		t.Fatalf("AddDiscount failed: %v", err)
	}

	barber := &Barber{ID: 3, Rate: dec("50")}
	quote, err := s.Quote(barber)
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}

	if !quote.ServiceSubtotal.Equal(dec("115")) {
		t.Errorf("Expected subtotal 115, got %s", quote.ServiceSubtotal)
	}
	if len(quote.Discounts) != 2 {
		t.Fatalf("Expected 2 per-code discounts, got %d", len(quote.Discounts))
	}
	if !quote.Discounts[0].Amount.Equal(dec("12")) {
		t.Errorf("Expected 15%% of 80 = 12, got %s", quote.Discounts[0].Amount)
	}
	if !quote.Discounts[1].Amount.Equal(dec("10")) {
		t.Errorf("Expected min(10, 20) = 10, got %s", quote.Discounts[1].Amount)
	}
	if !quote.TotalDiscount.Equal(dec("22")) {
		t.Errorf("Expected total discount 22, got %s", quote.TotalDiscount)
	}
	if !quote.FinalPrice.Equal(dec("93")) {
		t.Errorf("Expected final price 93, got %s", quote.FinalPrice)
	}
	if !quote.Commission.Service.Equal(dec("46.50")) {
		t.Errorf("Expected service commission 46.50, got %s", quote.Commission.Service)
	}
}

// A code scoped to the base package contributes nothing toward an additional
// package even when both are selected.
func TestSelection_ScopingIsolation(t *testing.T) {
	s := newTestSelection()
	s.AddAdditional(LineItem{ID: "pkg-2", Name: "Beard Trim", UnitPrice: dec("20")})

	if err := s.AddDiscount(Discount{
		Code: "BASEONLY", Type: Percentage,
		Percent: dec("50"), AppliedTo: []string{"pkg-1"},
	}); err != nil {
		t.Fatalf("AddDiscount failed: %v", err)
	}

	quote, err := s.Quote(nil)
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	// 50% of the base only: 40, not 50% of 100.
	if !quote.TotalDiscount.Equal(dec("40")) {
		t.Errorf("Expected discount scoped to base (40), got %s", quote.TotalDiscount)
	}
	if !quote.FinalPrice.Equal(dec("60")) {
		t.Errorf("Expected final price 60, got %s", quote.FinalPrice)
	}
}
