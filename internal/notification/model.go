package notification

import "time"

type Notification struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"` // info, warning, error, success
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
