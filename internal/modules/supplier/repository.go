package supplier

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines supplier and delivery data access.
type Repository interface {
	CreateSupplier(ctx context.Context, s *Supplier) error
	GetSupplierByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	ListSuppliers(ctx context.Context, activeOnly bool) ([]*Supplier, error)
	UpdateSupplier(ctx context.Context, s *Supplier) error

	CreateDelivery(ctx context.Context, d *Delivery) error
	ListDeliveries(ctx context.Context, supplierID *uuid.UUID) ([]*Delivery, error)
}
