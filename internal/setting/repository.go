package setting

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("setting not found")

type Repository interface {
	List(ctx context.Context) ([]Setting, error)
	GetByKey(ctx context.Context, key string) (*Setting, error)
	Upsert(ctx context.Context, key, value string) (*Setting, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

const settingColumns = `id, key, value, description, updated_at`

func scanSetting(row pgx.Row, s *Setting) error {
	return row.Scan(&s.ID, &s.Key, &s.Value, &s.Description, &s.UpdatedAt)
}

func (r *postgresRepository) List(ctx context.Context) ([]Setting, error) {
	query := `SELECT ` + settingColumns + ` FROM settings ORDER BY key`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query settings: %w", err)
	}
	defer rows.Close()

	settings := make([]Setting, 0)
	for rows.Next() {
		var s Setting
		if err := scanSetting(rows, &s); err != nil {
			return nil, fmt.Errorf("repository: failed to scan setting: %w", err)
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating settings: %w", err)
	}

	return settings, nil
}

func (r *postgresRepository) GetByKey(ctx context.Context, key string) (*Setting, error) {
	query := `SELECT ` + settingColumns + ` FROM settings WHERE key = $1`

	var s Setting
	err := scanSetting(r.db.QueryRow(ctx, query, key), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select setting %q: %w", key, err)
	}

	return &s, nil
}

// Upsert inserts the key or updates its value in a single statement, so the
// same row is reused on repeated writes.
func (r *postgresRepository) Upsert(ctx context.Context, key, value string) (*Setting, error) {
	query := `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()
		RETURNING ` + settingColumns

	var s Setting
	err := scanSetting(r.db.QueryRow(ctx, query, key, value), &s)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to upsert setting %q: %w", key, err)
	}

	return &s, nil
}
