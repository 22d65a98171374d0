package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotFound        = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
)

type Repository interface {
	List(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	PlaceOrder(ctx context.Context, o *Order) (*Order, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (*Order, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

const orderColumns = `id, customer_name, customer_email, customer_phone, shipping_address, total_amount, status, payment_status, payment_method, notes, created_at, updated_at`

func scanOrder(row pgx.Row, o *Order) error {
	return row.Scan(
		&o.ID,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&o.ShippingAddress,
		&o.TotalAmount,
		&o.Status,
		&o.PaymentStatus,
		&o.PaymentMethod,
		&o.Notes,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
}

func (r *postgresRepository) List(ctx context.Context) ([]Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var o Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("repository: failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating orders: %w", err)
	}

	return orders, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var o Order
	err := scanOrder(r.db.QueryRow(ctx, query, id), &o)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select order by id %d: %w", id, err)
	}

	itemsQuery := `
		SELECT id, order_id, product_id, quantity, unit_price, total_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items for order %d: %w", id, err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var item Item
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.TotalPrice)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order item for order %d: %w", id, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating order items for order %d: %w", id, err)
	}

	o.Items = items

	return &o, nil
}

// PlaceOrder runs the whole placement sequence in one transaction: insert the
// order, then per line item in submission order lock the product row, insert
// the order_items row, decrement the stock, and append an "out" movement
// referencing the order. Any failure rolls everything back, so a
// partially-applied order can never persist. Stock is allowed to go negative;
// the ledger records the sale either way.
func (r *postgresRepository) PlaceOrder(ctx context.Context, o *Order) (placed *Order, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Msg("repository: failed to rollback order placement")
			}
		}
	}()

	orderQuery := `
		INSERT INTO orders (customer_name, customer_email, customer_phone, shipping_address, total_amount, status, payment_status, payment_method, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + orderColumns

	var stored Order
	err = scanOrder(tx.QueryRow(ctx, orderQuery,
		o.CustomerName,
		o.CustomerEmail,
		o.CustomerPhone,
		o.ShippingAddress,
		o.TotalAmount,
		StatusPending,
		PaymentPending,
		o.PaymentMethod,
		o.Notes,
	), &stored)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert order: %w", err)
	}

	stored.Items = make([]Item, 0, len(o.Items))
	for _, item := range o.Items {
		var currentStock int
		err = tx.QueryRow(ctx, `SELECT stock_quantity FROM products WHERE id = $1 FOR UPDATE`, item.ProductID).Scan(&currentStock)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("repository: %w: id %d", ErrProductNotFound, item.ProductID)
			}
			return nil, fmt.Errorf("repository: failed to lock product %d for order placement: %w", item.ProductID, err)
		}

		itemQuery := `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, order_id, product_id, quantity, unit_price, total_price
		`
		var storedItem Item
		err = tx.QueryRow(ctx, itemQuery, stored.ID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice).
			Scan(&storedItem.ID, &storedItem.OrderID, &storedItem.ProductID, &storedItem.Quantity, &storedItem.UnitPrice, &storedItem.TotalPrice)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to insert order item for product %d: %w", item.ProductID, err)
		}
		stored.Items = append(stored.Items, storedItem)

		_, err = tx.Exec(ctx, `UPDATE products SET stock_quantity = $1, updated_at = now() WHERE id = $2`, currentStock-item.Quantity, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to update stock for product %d: %w", item.ProductID, err)
		}

		movementQuery := `
			INSERT INTO inventory (product_id, movement_type, quantity, reason, reference_id)
			VALUES ($1, 'out', $2, 'Order sale', $3)
		`
		_, err = tx.Exec(ctx, movementQuery, item.ProductID, item.Quantity, fmt.Sprintf("order-%d", stored.ID))
		if err != nil {
			return nil, fmt.Errorf("repository: failed to insert sale movement for product %d: %w", item.ProductID, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository: failed to commit order placement: %w", err)
	}

	return &stored, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id int64, status Status) (*Order, error) {
	query := `
		UPDATE orders
		SET status = $1, updated_at = now()
		WHERE id = $2
		RETURNING ` + orderColumns

	var o Order
	err := scanOrder(r.db.QueryRow(ctx, query, status.String(), id), &o)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to update status for order %d: %w", id, err)
	}

	return &o, nil
}
