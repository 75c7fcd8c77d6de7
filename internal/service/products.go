package service

import (
	"context"
	"strings"

	"fabric-shop/internal/model"
)

// ListProducts returns the products matching filter, in catalogue order.
func (s *Store) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	category := normalizeCategory(filter.Category)

	var products []model.Product
	err := s.view(ctx, func(doc *model.Document) error {
		products = make([]model.Product, 0, len(doc.Products))
		for _, p := range doc.Products {
			if matchesFilter(p, query, category) {
				products = append(products, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(products)).
		Str("query", query).
		Str("category", category).
		Msg("retrieved products")

	return products, nil
}

// matchesFilter reports whether p contains query in its name, category or
// description and has exactly the given category. Empty criteria match.
func matchesFilter(p model.Product, query, category string) bool {
	if category != "" && normalizeCategory(p.Category) != category {
		return false
	}
	if query == "" {
		return true
	}

	parts := make([]string, 0, 3)
	for _, field := range []string{p.Name, p.Category, p.Description} {
		if field != "" {
			parts = append(parts, field)
		}
	}
	return strings.Contains(strings.ToLower(strings.Join(parts, " ")), query)
}

// CreateProduct appends a product to the catalogue.
func (s *Store) CreateProduct(ctx context.Context, grant AdminGrant, in model.ProductInput) (*model.Product, error) {
	if err := s.requireAdmin(grant); err != nil {
		return nil, err
	}

	product := model.Product{
		Name:             strings.TrimSpace(in.Name),
		Category:         normalizeCategory(in.Category),
		Description:      strings.TrimSpace(in.Description),
		PricePerMeter:    in.PricePerMeter,
		QuantityInMeters: in.QuantityInMeters,
	}
	if product.Name == "" || product.Category == "" {
		return nil, model.ErrProductFieldsRequired
	}

	err := s.update(ctx, func(doc *model.Document) error {
		product.ID = doc.Seq.Product
		doc.Seq.Product++
		doc.Products = append(doc.Products, product)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("product_id", product.ID).
		Str("category", product.Category).
		Msg("product created")

	return &product, nil
}

// UpdateProduct applies the supplied fields of patch to a product.
func (s *Store) UpdateProduct(ctx context.Context, grant AdminGrant, id int64, patch model.ProductPatch) (*model.Product, error) {
	if err := s.requireAdmin(grant); err != nil {
		return nil, err
	}

	var updated model.Product
	err := s.update(ctx, func(doc *model.Document) error {
		i := doc.FindProduct(id)
		if i < 0 {
			return model.ErrProductNotFound
		}

		p := &doc.Products[i]
		if patch.Name != nil {
			p.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Category != nil {
			p.Category = normalizeCategory(*patch.Category)
		}
		if patch.Description != nil {
			p.Description = strings.TrimSpace(*patch.Description)
		}
		if patch.PricePerMeter != nil {
			p.PricePerMeter = *patch.PricePerMeter
		}
		if patch.QuantityInMeters != nil {
			p.QuantityInMeters = *patch.QuantityInMeters
		}

		updated = *p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated")

	return &updated, nil
}

// DeleteProduct removes a product and every cart line referencing it.
// Orders keep their snapshots. Deleting an unknown id is not an error.
func (s *Store) DeleteProduct(ctx context.Context, grant AdminGrant, id int64) error {
	if err := s.requireAdmin(grant); err != nil {
		return err
	}

	removedLines := 0
	err := s.update(ctx, func(doc *model.Document) error {
		products := doc.Products[:0]
		for _, p := range doc.Products {
			if p.ID != id {
				products = append(products, p)
			}
		}
		doc.Products = products

		for userID, items := range doc.Carts {
			kept := make([]model.CartItem, 0, len(items))
			for _, item := range items {
				if item.ProductID == id {
					removedLines++
					continue
				}
				kept = append(kept, item)
			}
			doc.Carts[userID] = kept
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Int64("product_id", id).
		Int("cart_lines_removed", removedLines).
		Msg("product deleted")

	return nil
}

// UpdateStock sets a product's stock to quantity meters.
func (s *Store) UpdateStock(ctx context.Context, grant AdminGrant, id int64, quantity float64) (*model.Product, error) {
	if err := s.requireAdmin(grant); err != nil {
		return nil, err
	}

	var updated model.Product
	err := s.update(ctx, func(doc *model.Document) error {
		i := doc.FindProduct(id)
		if i < 0 {
			return model.ErrProductNotFound
		}
		if quantity < 0 {
			return model.ErrNegativeStock
		}

		doc.Products[i].QuantityInMeters = quantity
		updated = doc.Products[i]
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("product_id", id).
		Float64("quantity_in_meters", quantity).
		Msg("stock updated")

	return &updated, nil
}

// LowStock returns the products whose stock is at or below LowStockThreshold.
func (s *Store) LowStock(ctx context.Context, grant AdminGrant) ([]model.Product, error) {
	if err := s.requireAdmin(grant); err != nil {
		return nil, err
	}

	var products []model.Product
	err := s.view(ctx, func(doc *model.Document) error {
		products = make([]model.Product, 0)
		for _, p := range doc.Products {
			if p.QuantityInMeters <= LowStockThreshold {
				products = append(products, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return products, nil
}
