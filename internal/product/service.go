package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Service interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, p *Product) (*Product, error)
	Update(ctx context.Context, id int64, patch Patch) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list products")
		return nil, fmt.Errorf("service: failed to list products: %w", err)
	}

	return products, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int64("product_id", id).Msg("service: failed to fetch product")
		return nil, fmt.Errorf("service: failed to fetch product: %w", err)
	}

	return p, nil
}

func (s *service) Create(ctx context.Context, p *Product) (*Product, error) {
	if p.Price < 0 {
		return nil, errors.New("service: product price cannot be negative")
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		log.Error().Err(err).Str("sku", p.SKU).Msg("service: failed to create product")
		return nil, fmt.Errorf("service: failed to create product: %w", err)
	}

	log.Info().Int64("product_id", created.ID).Str("sku", created.SKU).Msg("service: product created")

	return created, nil
}

func (s *service) Update(ctx context.Context, id int64, patch Patch) (*Product, error) {
	if patch.Price != nil && *patch.Price < 0 {
		return nil, errors.New("service: product price cannot be negative")
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int64("product_id", id).Msg("service: failed to update product")
		return nil, fmt.Errorf("service: failed to update product: %w", err)
	}

	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Int64("product_id", id).Msg("service: failed to delete product")
		return fmt.Errorf("service: failed to delete product: %w", err)
	}

	log.Info().Int64("product_id", id).Msg("service: product deleted")

	return nil
}
