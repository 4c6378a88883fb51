package repositories

import (
	"context"

	"DoctorPortal/backend"
	"DoctorPortal/models"
)

// OrderRepository is the portal's access path to the order service. Orders
// are never cached: every load re-synchronises with the backend.
type OrderRepository struct {
	backend *backend.Client
}

func NewOrderRepository(backend *backend.Client) *OrderRepository {
	return &OrderRepository{backend: backend}
}

// Pending lists the orders awaiting this doctor's review.
func (r *OrderRepository) Pending(ctx context.Context, sess *models.Session) ([]models.Order, error) {
	list, err := r.backend.DoctorOrders(ctx, sess)
	if err != nil {
		return nil, err
	}
	return list.Orders, nil
}

// History lists orders already approved or rejected.
func (r *OrderRepository) History(ctx context.Context, sess *models.Session) ([]models.Order, error) {
	list, err := r.backend.DoctorOrderHistory(ctx, sess)
	if err != nil {
		return nil, err
	}
	return list.Orders, nil
}

// Update replaces an order's line items on the backend.
func (r *OrderRepository) Update(ctx context.Context, sess *models.Session, update models.UpdateOrderRequest) error {
	return r.backend.UpdateOrder(ctx, sess, update)
}

// Confirm approves an order.
func (r *OrderRepository) Confirm(ctx context.Context, sess *models.Session, orderID string) error {
	return r.backend.ConfirmOrder(ctx, sess, orderID)
}

// Reject rejects an order.
func (r *OrderRepository) Reject(ctx context.Context, sess *models.Session, orderID string) error {
	return r.backend.RejectOrder(ctx, sess, orderID)
}
