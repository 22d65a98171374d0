package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("cart item not found")

type Repository interface {
	ListBySession(ctx context.Context, sessionID string) ([]Item, error)
	Add(ctx context.Context, item *Item) (*Item, error)
	UpdateQuantity(ctx context.Context, id int64, quantity int) (*Item, error)
	Remove(ctx context.Context, id int64) error
	Clear(ctx context.Context, sessionID string) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

const itemColumns = `id, session_id, product_id, quantity, created_at`

func scanItem(row pgx.Row, item *Item) error {
	return row.Scan(&item.ID, &item.SessionID, &item.ProductID, &item.Quantity, &item.CreatedAt)
}

func (r *postgresRepository) ListBySession(ctx context.Context, sessionID string) ([]Item, error) {
	query := `SELECT ` + itemColumns + ` FROM cart WHERE session_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query cart items for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var item Item
		if err := scanItem(rows, &item); err != nil {
			return nil, fmt.Errorf("repository: failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating cart items: %w", err)
	}

	return items, nil
}

// Add inserts the item, or merges its quantity into the existing row for the
// same (session_id, product_id). The merge is a single statement backed by a
// unique index, so concurrent adds cannot produce duplicate rows or lose an
// update.
func (r *postgresRepository) Add(ctx context.Context, item *Item) (*Item, error) {
	query := `
		INSERT INTO cart (session_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id, product_id)
		DO UPDATE SET quantity = cart.quantity + EXCLUDED.quantity
		RETURNING ` + itemColumns

	var stored Item
	err := scanItem(r.db.QueryRow(ctx, query, item.SessionID, item.ProductID, item.Quantity), &stored)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to add cart item for session %s: %w", item.SessionID, err)
	}

	return &stored, nil
}

func (r *postgresRepository) UpdateQuantity(ctx context.Context, id int64, quantity int) (*Item, error) {
	query := `UPDATE cart SET quantity = $1 WHERE id = $2 RETURNING ` + itemColumns

	var stored Item
	err := scanItem(r.db.QueryRow(ctx, query, quantity, id), &stored)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to update cart item %d: %w", id, err)
	}

	return &stored, nil
}

func (r *postgresRepository) Remove(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM cart WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to remove cart item %d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *postgresRepository) Clear(ctx context.Context, sessionID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("repository: failed to clear cart for session %s: %w", sessionID, err)
	}

	return nil
}
