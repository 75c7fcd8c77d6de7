package model

import "time"

// Order represents a placed order. Orders are append-only.
type Order struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"userId"`
	CreatedAt   time.Time   `json:"createdAt"`
	TotalAmount float64     `json:"totalAmount"`
	Items       []OrderItem `json:"items"`
}

// OrderItem is a snapshot of a cart line taken when the order was placed.
type OrderItem struct {
	ProductID     int64   `json:"productId"`
	ProductName   string  `json:"productName"`
	PricePerMeter float64 `json:"pricePerMeter"`
	Meters        float64 `json:"meters"`
}

// LineTotal returns meters multiplied by the captured price.
func (i OrderItem) LineTotal() float64 {
	return i.Meters * i.PricePerMeter
}
