package showcase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("showcase image not found")

type Repository interface {
	List(ctx context.Context) ([]Image, error)
	GetByID(ctx context.Context, id int64) (*Image, error)
	Create(ctx context.Context, img *Image) (*Image, error)
	Update(ctx context.Context, id int64, patch Patch) (*Image, error)
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

const imageColumns = `id, title, description, image_url, rank, is_active, created_at, updated_at`

func scanImage(row pgx.Row, img *Image) error {
	return row.Scan(&img.ID, &img.Title, &img.Description, &img.ImageURL, &img.Rank, &img.IsActive, &img.CreatedAt, &img.UpdatedAt)
}

func (r *postgresRepository) List(ctx context.Context) ([]Image, error) {
	query := `SELECT ` + imageColumns + ` FROM showcase_images ORDER BY rank, created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query showcase images: %w", err)
	}
	defer rows.Close()

	images := make([]Image, 0)
	for rows.Next() {
		var img Image
		if err := scanImage(rows, &img); err != nil {
			return nil, fmt.Errorf("repository: failed to scan showcase image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating showcase images: %w", err)
	}

	return images, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Image, error) {
	query := `SELECT ` + imageColumns + ` FROM showcase_images WHERE id = $1`

	var img Image
	err := scanImage(r.db.QueryRow(ctx, query, id), &img)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select showcase image by id %d: %w", id, err)
	}

	return &img, nil
}

func (r *postgresRepository) Create(ctx context.Context, img *Image) (*Image, error) {
	query := `
		INSERT INTO showcase_images (title, description, image_url, rank, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + imageColumns

	var stored Image
	err := scanImage(r.db.QueryRow(ctx, query, img.Title, img.Description, img.ImageURL, img.Rank, img.IsActive), &stored)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert showcase image: %w", err)
	}

	return &stored, nil
}

func (r *postgresRepository) Update(ctx context.Context, id int64, patch Patch) (*Image, error) {
	clauses := ""
	args := make([]interface{}, 0, 5)

	add := func(column string, value interface{}) {
		args = append(args, value)
		if clauses != "" {
			clauses += ", "
		}
		clauses += fmt.Sprintf("%s = $%d", column, len(args))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.ImageURL != nil {
		add("image_url", *patch.ImageURL)
	}
	if patch.Rank != nil {
		add("rank", *patch.Rank)
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}
	if clauses == "" {
		clauses = "id = id"
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE showcase_images SET %s, updated_at = now() WHERE id = $%d RETURNING `+imageColumns, clauses, len(args))

	var stored Image
	err := scanImage(r.db.QueryRow(ctx, query, args...), &stored)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to update showcase image %d: %w", id, err)
	}

	return &stored, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM showcase_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete showcase image %d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
