package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var ErrNotFound = errors.New("product not found")

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, p *Product) (*Product, error)
	Update(ctx context.Context, id int64, patch Patch) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

const productColumns = `id, name, description, category, price, stock_quantity, images, specifications, is_active, weight, sku, created_at, updated_at`

func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.Price,
		&p.StockQuantity,
		&p.Images,
		&p.Specifications,
		&p.IsActive,
		&p.Weight,
		&p.SKU,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

func (r *postgresRepository) List(ctx context.Context) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("repository: failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating products: %w", err)
	}

	return products, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p Product
	err := scanProduct(r.db.QueryRow(ctx, query, id), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select product by id %d: %w", id, err)
	}

	return &p, nil
}

// Create inserts the product and records the initial "in" movement for its
// opening stock in the same transaction.
func (r *postgresRepository) Create(ctx context.Context, p *Product) (created *Product, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Str("sku", p.SKU).Msg("repository: failed to rollback product create")
			}
		}
	}()

	if p.Images == nil {
		p.Images = []string{}
	}

	query := `
		INSERT INTO products (name, description, category, price, stock_quantity, images, specifications, is_active, weight, sku)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + productColumns

	var stored Product
	err = scanProduct(tx.QueryRow(ctx, query,
		p.Name,
		p.Description,
		p.Category,
		p.Price,
		p.StockQuantity,
		p.Images,
		p.Specifications,
		p.IsActive,
		p.Weight,
		p.SKU,
	), &stored)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert product: %w", err)
	}

	movementQuery := `
		INSERT INTO inventory (product_id, movement_type, quantity, reason, reference_id)
		VALUES ($1, 'in', $2, 'Initial stock', $3)
	`
	_, err = tx.Exec(ctx, movementQuery, stored.ID, stored.StockQuantity, fmt.Sprintf("initial-%d", stored.ID))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert initial stock movement for product %d: %w", stored.ID, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository: failed to commit product create: %w", err)
	}

	return &stored, nil
}

// Update applies the patch and refreshes updated_at. When the patch changes
// stock_quantity, the row is locked and a "Manual adjustment" movement of the
// absolute difference is appended in the same transaction, so a concurrent
// order placement cannot interleave between the read and the overwrite.
func (r *postgresRepository) Update(ctx context.Context, id int64, patch Patch) (updated *Product, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Int64("product_id", id).Msg("repository: failed to rollback product update")
			}
		}
	}()

	if patch.StockQuantity != nil {
		var currentStock int
		err = tx.QueryRow(ctx, `SELECT stock_quantity FROM products WHERE id = $1 FOR UPDATE`, id).Scan(&currentStock)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("repository: failed to lock product %d for stock adjustment: %w", id, err)
		}

		if diff := *patch.StockQuantity - currentStock; diff != 0 {
			movementType := "in"
			quantity := diff
			if diff < 0 {
				movementType = "out"
				quantity = -diff
			}

			refID, uuidErr := uuid.NewV4()
			if uuidErr != nil {
				return nil, fmt.Errorf("repository: failed to generate adjustment reference id: %w", uuidErr)
			}

			movementQuery := `
				INSERT INTO inventory (product_id, movement_type, quantity, reason, reference_id)
				VALUES ($1, $2, $3, 'Manual adjustment', $4)
			`
			_, err = tx.Exec(ctx, movementQuery, id, movementType, quantity, "adjustment-"+refID.String())
			if err != nil {
				return nil, fmt.Errorf("repository: failed to insert adjustment movement for product %d: %w", id, err)
			}
		}
	}

	setClauses, args := patchAssignments(patch)
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE products SET %s, updated_at = now() WHERE id = $%d RETURNING `+productColumns, setClauses, len(args))

	var p Product
	err = scanProduct(tx.QueryRow(ctx, query, args...), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to update product %d: %w", id, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository: failed to commit product update: %w", err)
	}

	return &p, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete product %d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// patchAssignments renders the non-nil patch fields as SET clauses. An empty
// patch yields a no-op clause so the UPDATE still runs and touches updated_at.
func patchAssignments(patch Patch) (string, []interface{}) {
	clauses := ""
	args := make([]interface{}, 0, 10)

	add := func(column string, value interface{}) {
		args = append(args, value)
		if clauses != "" {
			clauses += ", "
		}
		clauses += fmt.Sprintf("%s = $%d", column, len(args))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.StockQuantity != nil {
		add("stock_quantity", *patch.StockQuantity)
	}
	if patch.Images != nil {
		add("images", *patch.Images)
	}
	if patch.Specifications != nil {
		add("specifications", *patch.Specifications)
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}
	if patch.Weight != nil {
		add("weight", *patch.Weight)
	}
	if patch.SKU != nil {
		add("sku", *patch.SKU)
	}

	if clauses == "" {
		clauses = "id = id"
	}

	return clauses, args
}
