package inventory

import "time"

// Movement is an append-only ledger entry recording a stock change and its
// cause. Rows are never updated or deleted after creation.
type Movement struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	MovementType string    `json:"movement_type"` // in, out, adjustment
	Quantity     int       `json:"quantity"`
	Reason       string    `json:"reason"`
	ReferenceID  *string   `json:"reference_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
