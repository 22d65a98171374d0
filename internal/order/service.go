package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var ErrInvalidStatus = errors.New("invalid order status")

type Service interface {
	List(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	PlaceOrder(ctx context.Context, o *Order) (*Order, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (*Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list orders")
		return nil, fmt.Errorf("service: failed to list orders: %w", err)
	}

	return orders, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int64("order_id", id).Msg("service: failed to fetch order")
		return nil, fmt.Errorf("service: failed to fetch order: %w", err)
	}

	return o, nil
}

// PlaceOrder validates the line items before any write reaches the store,
// then hands the whole sequence to the repository as one atomic operation.
func (s *service) PlaceOrder(ctx context.Context, o *Order) (*Order, error) {
	if len(o.Items) == 0 {
		return nil, errors.New("service: order must contain at least one item")
	}

	for _, item := range o.Items {
		if item.ProductID <= 0 {
			return nil, errors.New("service: order item product id is required")
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("service: order item quantity for product %d must be greater than zero", item.ProductID)
		}
		if item.UnitPrice < 0 || item.TotalPrice < 0 {
			return nil, fmt.Errorf("service: order item price for product %d cannot be negative", item.ProductID)
		}
	}

	placed, err := s.repo.PlaceOrder(ctx, o)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, err
		}
		log.Error().Err(err).Msg("service: failed to place order")
		return nil, fmt.Errorf("service: failed to place order: %w", err)
	}

	log.Info().Int64("order_id", placed.ID).Int("items", len(placed.Items)).Float64("total_amount", placed.TotalAmount).Msg("service: order placed")

	return placed, nil
}

func (s *service) UpdateStatus(ctx context.Context, id int64, status Status) (*Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int64("order_id", id).Stringer("new_status", status).Msg("service: failed to update order status")
		return nil, fmt.Errorf("service: failed to update order status: %w", err)
	}

	log.Info().Int64("order_id", id).Stringer("new_status", status).Msg("service: order status updated")

	return updated, nil
}
