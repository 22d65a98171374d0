package order_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vasiliy-maslov/storefront-backend/internal/order"
)

type mockRepository struct {
	listFunc         func(ctx context.Context) ([]order.Order, error)
	getByIDFunc      func(ctx context.Context, id int64) (*order.Order, error)
	placeOrderFunc   func(ctx context.Context, o *order.Order) (*order.Order, error)
	updateStatusFunc func(ctx context.Context, id int64, status order.Status) (*order.Order, error)
}

func (m *mockRepository) List(ctx context.Context) ([]order.Order, error) {
	return m.listFunc(ctx)
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockRepository) PlaceOrder(ctx context.Context, o *order.Order) (*order.Order, error) {
	return m.placeOrderFunc(ctx, o)
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id int64, status order.Status) (*order.Order, error) {
	return m.updateStatusFunc(ctx, id, status)
}

func validOrder() *order.Order {
	return &order.Order{
		CustomerName:    "Anna Petrova",
		CustomerEmail:   "anna@example.com",
		ShippingAddress: map[string]string{"city": "Berlin", "street": "Hauptstr. 5"},
		TotalAmount:     59.97,
		Items: []order.Item{
			{ProductID: 1, Quantity: 1, UnitPrice: 19.99, TotalPrice: 19.99},
			{ProductID: 2, Quantity: 2, UnitPrice: 19.99, TotalPrice: 39.98},
		},
	}
}

func TestService_PlaceOrder(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(o *order.Order)
		placeOrder func(ctx context.Context, o *order.Order) (*order.Order, error)
		wantErr    bool
		wantErrMsg string
	}{
		{
			name:       "no_items",
			mutate:     func(o *order.Order) { o.Items = nil },
			wantErr:    true,
			wantErrMsg: "order must contain at least one item",
		},
		{
			name:       "zero_quantity",
			mutate:     func(o *order.Order) { o.Items[1].Quantity = 0 },
			wantErr:    true,
			wantErrMsg: "quantity for product 2 must be greater than zero",
		},
		{
			name:       "missing_product_id",
			mutate:     func(o *order.Order) { o.Items[0].ProductID = 0 },
			wantErr:    true,
			wantErrMsg: "product id is required",
		},
		{
			name:       "negative_unit_price",
			mutate:     func(o *order.Order) { o.Items[0].UnitPrice = -1 },
			wantErr:    true,
			wantErrMsg: "price for product 1 cannot be negative",
		},
		{
			name:   "repository_failure",
			mutate: func(o *order.Order) {},
			placeOrder: func(ctx context.Context, o *order.Order) (*order.Order, error) {
				return nil, errors.New("connection reset")
			},
			wantErr:    true,
			wantErrMsg: "failed to place order",
		},
		{
			name:   "success",
			mutate: func(o *order.Order) {},
			placeOrder: func(ctx context.Context, o *order.Order) (*order.Order, error) {
				placed := *o
				placed.ID = 42
				placed.Status = order.StatusPending
				placed.PaymentStatus = order.PaymentPending
				return &placed, nil
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoCalled := false
			repo := &mockRepository{
				placeOrderFunc: func(ctx context.Context, o *order.Order) (*order.Order, error) {
					repoCalled = true
					if tt.placeOrder != nil {
						return tt.placeOrder(ctx, o)
					}
					return o, nil
				},
			}
			svc := order.NewService(repo)

			o := validOrder()
			tt.mutate(o)

			placed, err := svc.PlaceOrder(context.Background(), o)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				if tt.placeOrder == nil {
					assert.False(t, repoCalled, "invalid payloads must not reach the repository")
				}
				return
			}

			assert.NoError(t, err)
			assert.True(t, repoCalled)
			assert.Equal(t, int64(42), placed.ID)
			assert.Equal(t, order.StatusPending, placed.Status)
			assert.Equal(t, order.PaymentPending, placed.PaymentStatus)
		})
	}
}

func TestService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name         string
		status       order.Status
		updateStatus func(ctx context.Context, id int64, status order.Status) (*order.Order, error)
		wantErrIs    error
	}{
		{
			name:      "unknown_status",
			status:    order.Status("archived"),
			wantErrIs: order.ErrInvalidStatus,
		},
		{
			name:   "not_found",
			status: order.StatusShipped,
			updateStatus: func(ctx context.Context, id int64, status order.Status) (*order.Order, error) {
				return nil, order.ErrNotFound
			},
			wantErrIs: order.ErrNotFound,
		},
		{
			name:   "success",
			status: order.StatusConfirmed,
			updateStatus: func(ctx context.Context, id int64, status order.Status) (*order.Order, error) {
				return &order.Order{ID: id, Status: status}, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{updateStatusFunc: tt.updateStatus}
			svc := order.NewService(repo)

			updated, err := svc.UpdateStatus(context.Background(), 7, tt.status)
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, int64(7), updated.ID)
			assert.Equal(t, tt.status, updated.Status)
		})
	}
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := &mockRepository{
		getByIDFunc: func(ctx context.Context, id int64) (*order.Order, error) {
			return nil, order.ErrNotFound
		},
	}
	svc := order.NewService(repo)

	_, err := svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, order.ErrNotFound)
}
