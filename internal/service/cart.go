package service

import (
	"context"

	"fabric-shop/internal/model"
)

// AddToCartInput is the payload of an add-to-cart request.
type AddToCartInput struct {
	UserID    int64
	ProductID int64
	Meters    float64
}

// AddToCart adds meters of a product to a user's cart. A product already in
// the cart has its meters increased instead of gaining a second line. The
// resulting quantity may not exceed the product's current stock.
func (s *Store) AddToCart(ctx context.Context, in AddToCartInput) error {
	if in.UserID < 1 || in.ProductID < 1 || in.Meters <= 0 {
		return model.ErrInvalidCartPayload
	}

	err := s.update(ctx, func(doc *model.Document) error {
		if doc.FindUser(in.UserID) < 0 {
			return model.ErrUserNotFound
		}
		pi := doc.FindProduct(in.ProductID)
		if pi < 0 {
			return model.ErrProductNotFound
		}
		product := doc.Products[pi]
		if in.Meters > product.QuantityInMeters {
			return model.ErrExceedsStock
		}

		key := model.CartKey(in.UserID)
		items := doc.Carts[key]
		for i := range items {
			if items[i].ProductID != in.ProductID {
				continue
			}
			total := items[i].Meters + in.Meters
			if total > product.QuantityInMeters {
				return model.ErrTotalExceedsStock
			}
			items[i].Meters = total
			return nil
		}

		doc.Carts[key] = append(items, model.CartItem{
			ID:            doc.Seq.CartItem,
			UserID:        in.UserID,
			ProductID:     in.ProductID,
			ProductName:   product.Name,
			PricePerMeter: product.PricePerMeter,
			Meters:        in.Meters,
		})
		doc.Seq.CartItem++
		return nil
	})
	if err != nil {
		s.logger.Debug().
			Err(err).
			Int64("user_id", in.UserID).
			Int64("product_id", in.ProductID).
			Float64("meters", in.Meters).
			Msg("add to cart rejected")
		return err
	}

	s.logger.Info().
		Int64("user_id", in.UserID).
		Int64("product_id", in.ProductID).
		Float64("meters", in.Meters).
		Msg("cart updated")

	return nil
}

// GetCart returns the cart lines of a user, empty when the user has none.
func (s *Store) GetCart(ctx context.Context, userID int64) ([]model.CartItem, error) {
	var items []model.CartItem
	err := s.view(ctx, func(doc *model.Document) error {
		items = append([]model.CartItem{}, doc.Carts[model.CartKey(userID)]...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// RemoveCartItem deletes the cart line with the given id from whichever cart
// holds it. An unknown id is not an error.
func (s *Store) RemoveCartItem(ctx context.Context, itemID int64) error {
	return s.update(ctx, func(doc *model.Document) error {
		for userID, items := range doc.Carts {
			kept := make([]model.CartItem, 0, len(items))
			for _, item := range items {
				if item.ID != itemID {
					kept = append(kept, item)
				}
			}
			doc.Carts[userID] = kept
		}
		return nil
	})
}
