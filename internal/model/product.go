package model

// Product represents a fabric sold by the meter.
type Product struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	Description      string  `json:"description"`
	PricePerMeter    float64 `json:"pricePerMeter"`
	QuantityInMeters float64 `json:"quantityInMeters"`
}

// ProductInput carries the fields of a product create request.
type ProductInput struct {
	Name             string
	Category         string
	Description      string
	PricePerMeter    float64
	QuantityInMeters float64
}

// ProductPatch carries the fields of a product update request. Nil fields are
// left untouched.
type ProductPatch struct {
	Name             *string
	Category         *string
	Description      *string
	PricePerMeter    *float64
	QuantityInMeters *float64
}

// ProductFilter narrows a product listing. Empty fields match everything.
type ProductFilter struct {
	Query    string
	Category string
}
