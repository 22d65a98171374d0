package showcase

import "time"

// Image is one entry of the storefront showcase carousel. Listing orders by
// rank first, then recency.
type Image struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	ImageURL    string    `json:"image_url"`
	Rank        int       `json:"order"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Patch enumerates the updatable image fields.
type Patch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Rank        *int    `json:"order,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}
