package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("notification not found")

type Repository interface {
	List(ctx context.Context) ([]Notification, error)
	Create(ctx context.Context, n *Notification) (*Notification, error)
	MarkRead(ctx context.Context, id int64) (*Notification, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

const notificationColumns = `id, title, message, type, is_read, created_at`

func scanNotification(row pgx.Row, n *Notification) error {
	return row.Scan(&n.ID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt)
}

func (r *postgresRepository) List(ctx context.Context) ([]Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]Notification, 0)
	for rows.Next() {
		var n Notification
		if err := scanNotification(rows, &n); err != nil {
			return nil, fmt.Errorf("repository: failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating notifications: %w", err)
	}

	return notifications, nil
}

func (r *postgresRepository) Create(ctx context.Context, n *Notification) (*Notification, error) {
	if n.Type == "" {
		n.Type = "info"
	}

	query := `
		INSERT INTO notifications (title, message, type)
		VALUES ($1, $2, $3)
		RETURNING ` + notificationColumns

	var stored Notification
	err := scanNotification(r.db.QueryRow(ctx, query, n.Title, n.Message, n.Type), &stored)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert notification: %w", err)
	}

	return &stored, nil
}

func (r *postgresRepository) MarkRead(ctx context.Context, id int64) (*Notification, error) {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 RETURNING ` + notificationColumns

	var stored Notification
	err := scanNotification(r.db.QueryRow(ctx, query, id), &stored)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to mark notification %d as read: %w", id, err)
	}

	return &stored, nil
}
