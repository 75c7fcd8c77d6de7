package service

import (
	"fmt"
	"os"
	"strings"

	"fabric-shop/internal/model"

	"gopkg.in/yaml.v3"
)

// Seed defaults.
const (
	DefaultAdminEmail    = "admin@shop.com"
	DefaultAdminPassword = "admin123"
)

// DefaultCatalog returns the products seeded into a fresh document.
func DefaultCatalog() []model.Product {
	return []model.Product{
		{
			ID:               1,
			Name:             "Premium Rubia Voile",
			Category:         "rubia voile",
			Description:      "Soft breathable voile for daily pagari use.",
			PricePerMeter:    7.5,
			QuantityInMeters: 120,
		},
		{
			ID:               2,
			Name:             "Classic Full Voile",
			Category:         "full voile",
			Description:      "Traditional full voile fabric with smooth finish.",
			PricePerMeter:    8.25,
			QuantityInMeters: 95,
		},
		{
			ID:               3,
			Name:             "Pagari Accessories Set",
			Category:         "accessories",
			Description:      "Essential accessories for turban styling.",
			PricePerMeter:    4.0,
			QuantityInMeters: 30,
		},
		{
			ID:               4,
			Name:             "Kurta Pajama Premium Cotton",
			Category:         "kurta pajama",
			Description:      "Comfort cotton fabric suitable for kurta pajama.",
			PricePerMeter:    6.75,
			QuantityInMeters: 80,
		},
	}
}

// SeedDocument builds the document written when nothing valid is stored: one
// admin user, the catalog (DefaultCatalog when nil), no carts or orders, and
// counters past every seeded id.
func SeedDocument(adminEmail, adminPassword string, catalog []model.Product) *model.Document {
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	products := make([]model.Product, len(catalog))
	copy(products, catalog)

	var maxProductID int64
	for _, p := range products {
		if p.ID > maxProductID {
			maxProductID = p.ID
		}
	}

	return &model.Document{
		Users: []model.User{
			{
				ID:       1,
				Name:     "Admin",
				Email:    adminEmail,
				Password: adminPassword,
				Address:  "Main Store",
			},
		},
		Products: products,
		Carts:    map[string][]model.CartItem{},
		Orders:   []model.Order{},
		Seq: model.Sequences{
			User:     2,
			Product:  maxProductID + 1,
			CartItem: 1,
			Order:    1,
		},
	}
}

// catalogFile is the YAML layout of a seed catalogue.
type catalogFile struct {
	Products []catalogProduct `yaml:"products"`
}

type catalogProduct struct {
	ID               int64   `yaml:"id"`
	Name             string  `yaml:"name"`
	Category         string  `yaml:"category"`
	Description      string  `yaml:"description"`
	PricePerMeter    float64 `yaml:"pricePerMeter"`
	QuantityInMeters float64 `yaml:"quantityInMeters"`
}

// LoadCatalog reads a YAML seed catalogue. Products without an id are
// numbered after the highest explicit id.
func LoadCatalog(path string) ([]model.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	var nextID int64 = 1
	seen := make(map[int64]bool, len(file.Products))
	for _, p := range file.Products {
		if p.ID > 0 {
			if seen[p.ID] {
				return nil, fmt.Errorf("catalog %s: duplicate product id %d", path, p.ID)
			}
			seen[p.ID] = true
			if p.ID >= nextID {
				nextID = p.ID + 1
			}
		}
	}

	products := make([]model.Product, 0, len(file.Products))
	for i, p := range file.Products {
		name := strings.TrimSpace(p.Name)
		category := normalizeCategory(p.Category)
		if name == "" || category == "" {
			return nil, fmt.Errorf("catalog %s: product %d: name and category are required", path, i)
		}
		if p.PricePerMeter < 0 || p.QuantityInMeters < 0 {
			return nil, fmt.Errorf("catalog %s: product %d: price and quantity cannot be negative", path, i)
		}

		id := p.ID
		if id <= 0 {
			id = nextID
			nextID++
		}

		products = append(products, model.Product{
			ID:               id,
			Name:             name,
			Category:         category,
			Description:      strings.TrimSpace(p.Description),
			PricePerMeter:    p.PricePerMeter,
			QuantityInMeters: p.QuantityInMeters,
		})
	}

	return products, nil
}
