package models

// ServicePackage is a catalog service offered by the shop, fetched from the
// booking backend via GET /packages.
type ServicePackage struct {
	ID                 int64         `json:"id"`
	Name               string        `json:"name"`
	Price              float64       `json:"price"`
	DurationMin        int           `json:"duration_min"`
	HasVariablePricing bool          `json:"hasVariablePricing"`
	PriceOptions       []PriceOption `json:"priceOptions,omitempty"`
	Active             bool          `json:"active"`
}

// PriceOption is an alternative base price for a variable-pricing package.
// Selecting one is mandatory at completion time when the package declares
// variable pricing.
type PriceOption struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

// Product is a retail item sold alongside appointments, fetched via
// GET /products?activeOnly=true.
type Product struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Active bool    `json:"active"`
}

// Staff is a barber or other staff member. Commission rates are read-only
// inputs to the pricing engine; ProductCommissionRate may be absent, in which
// case the engine applies its default.
type Staff struct {
	ID                    int64    `json:"id"`
	Name                  string   `json:"name"`
	CommissionRate        float64  `json:"commissionRate"`
	ProductCommissionRate *float64 `json:"productCommissionRate,omitempty"`
}
