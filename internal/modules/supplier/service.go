package supplier

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StockAdder restocks inventory when a delivery is received.
type StockAdder interface {
	AddStock(ctx context.Context, id uuid.UUID, qty float64) error
}

// ExpenseRecorder writes the delivery cost to the ledger.
type ExpenseRecorder interface {
	RecordExpense(ctx context.Context, amount float64, sourceRef, description string) error
}

// Service defines supplier business logic. Recording a delivery restocks the
// inventory item and books the cost as an expense in one call.
type Service interface {
	CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*Supplier, error)
	GetSupplier(ctx context.Context, id uuid.UUID) (*Supplier, error)
	ListSuppliers(ctx context.Context, activeOnly bool) ([]*Supplier, error)
	UpdateSupplier(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*Supplier, error)

	RecordDelivery(ctx context.Context, req RecordDeliveryRequest) (*Delivery, error)
	ListDeliveries(ctx context.Context, supplierID *uuid.UUID) ([]*Delivery, error)
}

type service struct {
	repo   Repository
	stock  StockAdder
	ledger ExpenseRecorder
}

// NewService creates a new supplier service.
func NewService(repo Repository, stock StockAdder, ledger ExpenseRecorder) Service {
	return &service{repo: repo, stock: stock, ledger: ledger}
}

func (s *service) CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*Supplier, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	sup := &Supplier{
		ID:          uuid.New(),
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		Active:      true,
	}
	if err := s.repo.CreateSupplier(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *service) GetSupplier(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	return s.repo.GetSupplierByID(ctx, id)
}

func (s *service) ListSuppliers(ctx context.Context, activeOnly bool) ([]*Supplier, error) {
	return s.repo.ListSuppliers(ctx, activeOnly)
}

func (s *service) UpdateSupplier(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*Supplier, error) {
	sup, err := s.repo.GetSupplierByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ContactName != nil {
		sup.ContactName = *req.ContactName
	}
	if req.Phone != nil {
		sup.Phone = *req.Phone
	}
	if req.Email != nil {
		sup.Email = *req.Email
	}
	if req.Address != nil {
		sup.Address = *req.Address
	}
	if req.Active != nil {
		sup.Active = *req.Active
	}
	if err := s.repo.UpdateSupplier(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *service) RecordDelivery(ctx context.Context, req RecordDeliveryRequest) (*Delivery, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("invalid supplier_id: %w", err)
	}
	itemID, err := uuid.Parse(req.InventoryItemID)
	if err != nil {
		return nil, fmt.Errorf("invalid inventory_item_id: %w", err)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be > 0")
	}
	if req.UnitCost < 0 {
		return nil, fmt.Errorf("unit_cost must not be negative")
	}

	sup, err := s.repo.GetSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if !sup.Active {
		return nil, fmt.Errorf("supplier %s is inactive", sup.Name)
	}

	d := &Delivery{
		ID:              uuid.New(),
		SupplierID:      supplierID,
		InventoryItemID: itemID,
		Quantity:        req.Quantity,
		UnitCost:        req.UnitCost,
		TotalCost:       req.Quantity * req.UnitCost,
		Notes:           req.Notes,
		ReceivedAt:      time.Now(),
	}
	if err := s.repo.CreateDelivery(ctx, d); err != nil {
		return nil, err
	}

	if err := s.stock.AddStock(ctx, itemID, req.Quantity); err != nil {
		return nil, fmt.Errorf("restock inventory: %w", err)
	}
	sourceRef := fmt.Sprintf("DELIVERY-%s", d.ID)
	description := fmt.Sprintf("Stock delivery from %s", sup.Name)
	if err := s.ledger.RecordExpense(ctx, d.TotalCost, sourceRef, description); err != nil {
		return nil, fmt.Errorf("record delivery expense: %w", err)
	}
	return d, nil
}

func (s *service) ListDeliveries(ctx context.Context, supplierID *uuid.UUID) ([]*Delivery, error) {
	return s.repo.ListDeliveries(ctx, supplierID)
}
