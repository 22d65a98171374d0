package product

import "time"

// Product represents a catalog item. Images and specifications are stored
// as jsonb, price as numeric(10,2).
type Product struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	Price          float64           `json:"price"`
	StockQuantity  int               `json:"stock_quantity"`
	Images         []string          `json:"images"`
	Specifications map[string]string `json:"specifications,omitempty"`
	IsActive       bool              `json:"is_active"`
	Weight         string            `json:"weight"`
	SKU            string            `json:"sku"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Patch enumerates the updatable product fields. Nil pointers are left
// untouched; an unknown JSON key never reaches the row.
type Patch struct {
	Name           *string            `json:"name,omitempty"`
	Description    *string            `json:"description,omitempty"`
	Category       *string            `json:"category,omitempty"`
	Price          *float64           `json:"price,omitempty"`
	StockQuantity  *int               `json:"stock_quantity,omitempty"`
	Images         *[]string          `json:"images,omitempty"`
	Specifications *map[string]string `json:"specifications,omitempty"`
	IsActive       *bool              `json:"is_active,omitempty"`
	Weight         *string            `json:"weight,omitempty"`
	SKU            *string            `json:"sku,omitempty"`
}
