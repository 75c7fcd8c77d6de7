package model

// CartItem is one line in a user's cart. ProductName and PricePerMeter are
// captured when the line is first added.
type CartItem struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	ProductID     int64   `json:"productId"`
	ProductName   string  `json:"productName"`
	PricePerMeter float64 `json:"pricePerMeter"`
	Meters        float64 `json:"meters"`
}

// SuccessResponse is returned by mutations that have no entity to report.
type SuccessResponse struct {
	Success bool `json:"success"`
}
