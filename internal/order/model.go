package order

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

// Valid reports whether s is a known order status. There is no transition
// table: any known status can be set at any time.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Item is a single order line. Immutable once created.
type Item struct {
	ID         int64   `json:"id"`
	OrderID    int64   `json:"order_id"`
	ProductID  int64   `json:"product_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

type Order struct {
	ID              int64             `json:"id"`
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerPhone   *string           `json:"customer_phone,omitempty"`
	ShippingAddress map[string]string `json:"shipping_address"`
	TotalAmount     float64           `json:"total_amount"`
	Status          Status            `json:"status"`
	PaymentStatus   PaymentStatus     `json:"payment_status"`
	PaymentMethod   *string           `json:"payment_method,omitempty"`
	Notes           *string           `json:"notes,omitempty"`
	Items           []Item            `json:"items,omitempty"` // not stored on the orders row
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
