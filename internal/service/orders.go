package service

import (
	"context"

	"fabric-shop/internal/model"
)

// PlaceOrder turns a user's cart into an order. Every line is checked against
// the product's current stock before anything changes; then stock is
// decremented, the order is appended with a snapshot of the lines and the
// cart is emptied.
func (s *Store) PlaceOrder(ctx context.Context, userID int64) (*model.Order, error) {
	if userID < 1 {
		return nil, model.ErrInvalidUserID
	}

	var order model.Order
	err := s.update(ctx, func(doc *model.Document) error {
		key := model.CartKey(userID)
		cart := doc.Carts[key]
		if len(cart) == 0 {
			return model.ErrCartEmpty
		}

		for _, item := range cart {
			i := doc.FindProduct(item.ProductID)
			if i < 0 {
				return model.ProductMissingError(item.ProductID)
			}
			if item.Meters > doc.Products[i].QuantityInMeters {
				return model.InsufficientStockError(doc.Products[i].Name)
			}
		}

		items := make([]model.OrderItem, 0, len(cart))
		var total float64
		for _, item := range cart {
			line := model.OrderItem{
				ProductID:     item.ProductID,
				ProductName:   item.ProductName,
				PricePerMeter: item.PricePerMeter,
				Meters:        item.Meters,
			}
			items = append(items, line)
			total += line.LineTotal()

			i := doc.FindProduct(item.ProductID)
			doc.Products[i].QuantityInMeters -= item.Meters
		}

		order = model.Order{
			ID:          doc.Seq.Order,
			UserID:      userID,
			CreatedAt:   s.now(),
			TotalAmount: total,
			Items:       items,
		}
		doc.Seq.Order++
		doc.Orders = append(doc.Orders, order)
		doc.Carts[key] = []model.CartItem{}
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("order rejected")
		return nil, err
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Int64("user_id", userID).
		Int("item_count", len(order.Items)).
		Float64("total_amount", order.TotalAmount).
		Msg("order placed")

	return cloneOrder(order), nil
}

// ListUserOrders returns a user's orders, oldest first.
func (s *Store) ListUserOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	var orders []model.Order
	err := s.view(ctx, func(doc *model.Document) error {
		orders = make([]model.Order, 0)
		for _, o := range doc.Orders {
			if o.UserID == userID {
				orders = append(orders, *cloneOrder(o))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// ListOrders returns every order, oldest first.
func (s *Store) ListOrders(ctx context.Context, grant AdminGrant) ([]model.Order, error) {
	if err := s.requireAdmin(grant); err != nil {
		return nil, err
	}

	var orders []model.Order
	err := s.view(ctx, func(doc *model.Document) error {
		orders = make([]model.Order, 0, len(doc.Orders))
		for _, o := range doc.Orders {
			orders = append(orders, *cloneOrder(o))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func cloneOrder(o model.Order) *model.Order {
	o.Items = append([]model.OrderItem{}, o.Items...)
	return &o
}
