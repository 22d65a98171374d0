package contact

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound        = errors.New("contact not found")
	ErrMessageNotFound = errors.New("message not found")
)

type Repository interface {
	Create(ctx context.Context, c *Contact) (*Contact, error)
	List(ctx context.Context) ([]Contact, error)
	GetByID(ctx context.Context, id int64) (*Contact, error)
	ListMessages(ctx context.Context, contactID *int64) ([]Message, error)
	CreateMessage(ctx context.Context, m *Message) (*Message, error)
	MarkMessageRead(ctx context.Context, id int64) (*Message, error)
	GetWithMessages(ctx context.Context, contactID int64) (*WithMessages, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

const contactColumns = `id, name, email, phone, subject, message, created_at`
const messageColumns = `id, contact_id, from_admin, message, is_read, created_at`

func scanContact(row pgx.Row, c *Contact) error {
	return row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.CreatedAt)
}

func scanMessage(row pgx.Row, m *Message) error {
	return row.Scan(&m.ID, &m.ContactID, &m.FromAdmin, &m.Message, &m.IsRead, &m.CreatedAt)
}

func (r *postgresRepository) Create(ctx context.Context, c *Contact) (*Contact, error) {
	query := `
		INSERT INTO contacts (name, email, phone, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + contactColumns

	var stored Contact
	err := scanContact(r.db.QueryRow(ctx, query, c.Name, c.Email, c.Phone, c.Subject, c.Message), &stored)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert contact: %w", err)
	}

	return &stored, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]Contact, 0)
	for rows.Next() {
		var c Contact
		if err := scanContact(rows, &c); err != nil {
			return nil, fmt.Errorf("repository: failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating contacts: %w", err)
	}

	return contacts, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`

	var c Contact
	err := scanContact(r.db.QueryRow(ctx, query, id), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select contact by id %d: %w", id, err)
	}

	return &c, nil
}

func (r *postgresRepository) ListMessages(ctx context.Context, contactID *int64) ([]Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages ORDER BY created_at DESC`
	args := []interface{}{}
	if contactID != nil {
		query = `SELECT ` + messageColumns + ` FROM messages WHERE contact_id = $1 ORDER BY created_at DESC`
		args = append(args, *contactID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := make([]Message, 0)
	for rows.Next() {
		var m Message
		if err := scanMessage(rows, &m); err != nil {
			return nil, fmt.Errorf("repository: failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating messages: %w", err)
	}

	return messages, nil
}

func (r *postgresRepository) CreateMessage(ctx context.Context, m *Message) (*Message, error) {
	query := `
		INSERT INTO messages (contact_id, from_admin, message)
		VALUES ($1, $2, $3)
		RETURNING ` + messageColumns

	var stored Message
	err := scanMessage(r.db.QueryRow(ctx, query, m.ContactID, m.FromAdmin, m.Message), &stored)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert message: %w", err)
	}

	return &stored, nil
}

func (r *postgresRepository) MarkMessageRead(ctx context.Context, id int64) (*Message, error) {
	query := `UPDATE messages SET is_read = TRUE WHERE id = $1 RETURNING ` + messageColumns

	var stored Message
	err := scanMessage(r.db.QueryRow(ctx, query, id), &stored)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("repository: failed to mark message %d as read: %w", id, err)
	}

	return &stored, nil
}

func (r *postgresRepository) GetWithMessages(ctx context.Context, contactID int64) (*WithMessages, error) {
	c, err := r.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	messages, err := r.ListMessages(ctx, &contactID)
	if err != nil {
		return nil, err
	}

	return &WithMessages{Contact: *c, Messages: messages}, nil
}
