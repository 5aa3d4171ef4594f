package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSubtotal(t *testing.T) {
	base := Base{PackageID: "pkg-1", FlatPrice: dec("80")}

	tests := []struct {
		name       string
		additional []LineItem
		custom     []LineItem
		products   []LineItem
		expected   string
	}{
		{
			name:     "base only",
			expected: "80",
		},
		{
			name: "base plus additional and custom",
			additional: []LineItem{
				{ID: "pkg-2", UnitPrice: dec("20"), Kind: KindAdditional},
			},
			custom: []LineItem{
				{ID: "c-1", Name: "Wax", UnitPrice: dec("15"), Kind: KindCustom},
			},
			expected: "115",
		},
		{
			name: "product quantity multiplies",
			products: []LineItem{
				{ID: "prod-1", UnitPrice: dec("25"), Kind: KindProduct, Quantity: 2},
			},
			expected: "130",
		},
		{
			name: "product without quantity counts once",
			products: []LineItem{
				{ID: "prod-1", UnitPrice: dec("25"), Kind: KindProduct},
			},
			expected: "105",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Subtotal(base, tt.additional, tt.custom, tt.products)
			if err != nil {
				t.Fatalf("Subtotal returned error: %v", err)
			}
			if !got.Equal(dec(tt.expected)) {
				t.Errorf("Expected subtotal %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestSubtotal_VariablePricingRequiresOption(t *testing.T) {
	base := Base{PackageID: "pkg-1", FlatPrice: dec("80"), HasVariablePricing: true}

	if _, err := Subtotal(base, nil, nil, nil); err == nil {
		t.Error("Expected error for variable pricing with no selected option")
	}

	base.Option = &PriceOption{Label: "Long hair", Price: dec("95")}
	got, err := Subtotal(base, nil, nil, nil)
	if err != nil {
		t.Fatalf("Subtotal returned error: %v", err)
	}
	if !got.Equal(dec("95")) {
		t.Errorf("Expected selected option price 95, got %s", got)
	}
}

func TestDiscountForCode(t *testing.T) {
	selected := map[string]decimal.Decimal{
		"pkg-1": dec("100"),
		"pkg-2": dec("40"),
	}

	tests := []struct {
		name     string
		discount Discount
		expected string
	}{
		{
			name: "percentage over one target",
			discount: Discount{
				Code: "TEN", Type: Percentage,
				Percent: dec("10"), AppliedTo: []string{"pkg-1"},
			},
			expected: "10",
		},
		{
			name: "percentage over multiple targets",
			discount: Discount{
				Code: "TEN", Type: Percentage,
				Percent: dec("10"), AppliedTo: []string{"pkg-1", "pkg-2"},
			},
			expected: "14",
		},
		{
			name: "fixed amount clamped at discountable",
			discount: Discount{
				Code: "BIG", Type: FixedAmount,
				Amount: dec("100"), AppliedTo: []string{"pkg-2"},
			},
			expected: "40",
		},
		{
			name: "fixed amount below discountable",
			discount: Discount{
				Code: "RM10", Type: FixedAmount,
				Amount: dec("10"), AppliedTo: []string{"pkg-2"},
			},
			expected: "10",
		},
		{
			name: "stale target contributes zero",
			discount: Discount{
				Code: "GONE", Type: Percentage,
				Percent: dec("50"), AppliedTo: []string{"pkg-999"},
			},
			expected: "0",
		},
		{
			name: "scoping isolation ignores unselected targets",
			discount: Discount{
				Code: "MIX", Type: Percentage,
				Percent: dec("10"), AppliedTo: []string{"pkg-1", "pkg-999"},
			},
			expected: "10",
		},
		{
			name: "unknown type contributes zero",
			discount: Discount{
				Code: "ODD", Type: DiscountType("bogus"),
				AppliedTo: []string{"pkg-1"},
			},
			expected: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiscountForCode(tt.discount, selected)
			if !got.Equal(dec(tt.expected)) {
				t.Errorf("Expected discount %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestTotalDiscount_AdditiveNotCompounding(t *testing.T) {
	selected := map[string]decimal.Decimal{"pkg-1": dec("100")}
	discounts := []Discount{
		{Code: "TEN", Type: Percentage, Percent: dec("10"), AppliedTo: []string{"pkg-1"}},
		{Code: "TWENTY", Type: Percentage, Percent: dec("20"), AppliedTo: []string{"pkg-1"}},
	}

	got := TotalDiscount(discounts, selected)
	// 10 + 20, not 100 * (1 - 0.9*0.8) = 28.
	if !got.Equal(dec("30")) {
		t.Errorf("Expected additive discount 30, got %s", got)
	}
}

func TestFinalPrice_NeverNegative(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		discount string
		expected string
	}{
		{"discount below subtotal", "115", "22", "93"},
		{"discount equals subtotal", "50", "50", "0"},
		{"discount exceeds subtotal", "50", "80", "0"},
		{"no discount", "80", "0", "80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinalPrice(dec(tt.subtotal), dec(tt.discount))
			if !got.Equal(dec(tt.expected)) {
				t.Errorf("Expected final price %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestCommissions(t *testing.T) {
	productRate := dec("8")

	tests := []struct {
		name            string
		barber          *Barber
		service         string
		product         string
		expectedService string
		expectedProduct string
		expectedBarber  bool
	}{
		{
			name:            "standard split",
			barber:          &Barber{ID: 1, Rate: dec("50")},
			service:         "93",
			product:         "50",
			expectedService: "46.50",
			expectedProduct: "2.50", // default 5% product rate
			expectedBarber:  true,
		},
		{
			name:            "explicit product rate",
			barber:          &Barber{ID: 1, Rate: dec("40"), ProductRate: &productRate},
			service:         "100",
			product:         "50",
			expectedService: "40",
			expectedProduct: "4",
			expectedBarber:  true,
		},
		{
			name:            "no barber assigned",
			barber:          nil,
			service:         "93",
			product:         "50",
			expectedService: "0",
			expectedProduct: "0",
			expectedBarber:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Commissions(dec(tt.service), dec(tt.product), tt.barber)
			if !got.Service.Equal(dec(tt.expectedService)) {
				t.Errorf("Expected service commission %s, got %s", tt.expectedService, got.Service)
			}
			if !got.Product.Equal(dec(tt.expectedProduct)) {
				t.Errorf("Expected product commission %s, got %s", tt.expectedProduct, got.Product)
			}
			if got.HasBarber != tt.expectedBarber {
				t.Errorf("Expected HasBarber %v, got %v", tt.expectedBarber, got.HasBarber)
			}
		})
	}
}

// Commission on the service side uses the discounted amount, the product side
// the full sale amount; the two are reported separately.
func TestCommissions_BasesAreIndependent(t *testing.T) {
	barber := &Barber{ID: 3, Rate: dec("50")}

	got := Commissions(dec("93"), dec("50"), barber)
	if !got.Service.Equal(dec("46.50")) {
		t.Errorf("Expected 46.50 on discounted service amount, got %s", got.Service)
	}
	if !got.Product.Equal(dec("2.50")) {
		t.Errorf("Expected 2.50 on full product amount, got %s", got.Product)
	}
}
