package contact

import "time"

// Contact is a stored contact-form submission.
type Contact struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is one entry in the conversation thread attached to a contact.
type Message struct {
	ID        int64     `json:"id"`
	ContactID *int64    `json:"contact_id,omitempty"`
	FromAdmin bool      `json:"from_admin"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// WithMessages is a contact together with its full message thread.
type WithMessages struct {
	Contact
	Messages []Message `json:"messages"`
}
