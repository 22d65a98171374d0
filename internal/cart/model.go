package cart

import "time"

// Item is one cart row, keyed by an anonymous session id rather than a user.
// At most one row exists per (session_id, product_id); a second add merges
// quantities into the existing row.
type Item struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}
