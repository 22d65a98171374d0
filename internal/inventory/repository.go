package inventory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	List(ctx context.Context, productID *int64) ([]Movement, error)
	Create(ctx context.Context, m *Movement) (*Movement, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

const movementColumns = `id, product_id, movement_type, quantity, reason, reference_id, created_at`

func scanMovement(row pgx.Row, m *Movement) error {
	return row.Scan(
		&m.ID,
		&m.ProductID,
		&m.MovementType,
		&m.Quantity,
		&m.Reason,
		&m.ReferenceID,
		&m.CreatedAt,
	)
}

func (r *postgresRepository) List(ctx context.Context, productID *int64) ([]Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory ORDER BY created_at DESC`
	args := []interface{}{}
	if productID != nil {
		query = `SELECT ` + movementColumns + ` FROM inventory WHERE product_id = $1 ORDER BY created_at DESC`
		args = append(args, *productID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query inventory movements: %w", err)
	}
	defer rows.Close()

	movements := make([]Movement, 0)
	for rows.Next() {
		var m Movement
		if err := scanMovement(rows, &m); err != nil {
			return nil, fmt.Errorf("repository: failed to scan inventory movement: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating inventory movements: %w", err)
	}

	return movements, nil
}

func (r *postgresRepository) Create(ctx context.Context, m *Movement) (*Movement, error) {
	query := `
		INSERT INTO inventory (product_id, movement_type, quantity, reason, reference_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + movementColumns

	var stored Movement
	err := scanMovement(r.db.QueryRow(ctx, query, m.ProductID, m.MovementType, m.Quantity, m.Reason, m.ReferenceID), &stored)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert inventory movement: %w", err)
	}

	return &stored, nil
}
