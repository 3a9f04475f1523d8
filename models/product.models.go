package models

import (
	"time"
)

// Category groups products for the storefront catalog
type Category struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// ProductWeight is one selectable weight option for a product
type ProductWeight struct {
	ID        string    `bson:"_id" json:"id"`
	ProductID string    `bson:"product_id" json:"product_id"`
	Weight    float64   `bson:"weight" json:"weight"`
	Unit      string    `bson:"unit" json:"unit"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ProductVariation is a named choice axis (e.g. "Type") with its options
type ProductVariation struct {
	ID        string    `bson:"_id" json:"id"`
	ProductID string    `bson:"product_id" json:"product_id"`
	Name      string    `bson:"name" json:"name"`
	Options   []string  `bson:"options" json:"options"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Product represents a product in the catalog
type Product struct {
	ID             string    `bson:"_id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Description    string    `bson:"description,omitempty" json:"description,omitempty"`
	Price          float64   `bson:"price" json:"price"`
	ImageURL       string    `bson:"image_url,omitempty" json:"image_url,omitempty"`
	CategoryID     string    `bson:"category_id,omitempty" json:"category_id,omitempty"`
	InventoryCount int       `bson:"inventory_count" json:"inventory_count"`
	IsFeatured     bool      `bson:"is_featured" json:"is_featured"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`

	// Related rows, joined in memory by foreign-key equality. Never stored
	// on the product document itself.
	Category   *Category          `bson:"-" json:"category,omitempty"`
	Weights    []ProductWeight    `bson:"-" json:"weights,omitempty"`
	Variations []ProductVariation `bson:"-" json:"variations,omitempty"`
}

// DefaultWeight returns the first declared weight option, if any.
func (p Product) DefaultWeight() *ProductWeight {
	if len(p.Weights) == 0 {
		return nil
	}
	w := p.Weights[0]
	return &w
}

// ExtendProduct attaches category, weight and variation rows to a product.
// Related rows are fetched separately and joined here by foreign-key
// equality; rows belonging to other products are ignored.
func ExtendProduct(product Product, categories []Category, weights []ProductWeight, variations []ProductVariation) Product {
	if product.CategoryID != "" {
		for i := range categories {
			if categories[i].ID == product.CategoryID {
				product.Category = &categories[i]
				break
			}
		}
	}

	for _, w := range weights {
		if w.ProductID == product.ID {
			product.Weights = append(product.Weights, w)
		}
	}

	for _, v := range variations {
		if v.ProductID == product.ID {
			product.Variations = append(product.Variations, v)
		}
	}

	return product
}

// ExtendProducts applies ExtendProduct to a whole catalog listing.
func ExtendProducts(products []Product, categories []Category, weights []ProductWeight, variations []ProductVariation) []Product {
	extended := make([]Product, len(products))
	for i, p := range products {
		extended[i] = ExtendProduct(p, categories, weights, variations)
	}
	return extended
}
