package supplier

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

type memRepo struct {
	suppliers  map[uuid.UUID]*Supplier
	deliveries []*Delivery
}

func newMemRepo() *memRepo { return &memRepo{suppliers: map[uuid.UUID]*Supplier{}} }

func (r *memRepo) CreateSupplier(ctx context.Context, s *Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *memRepo) GetSupplierByID(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, fmt.Errorf("supplier not found")
	}
	return s, nil
}

func (r *memRepo) ListSuppliers(ctx context.Context, activeOnly bool) ([]*Supplier, error) {
	var out []*Supplier
	for _, s := range r.suppliers {
		if !activeOnly || s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memRepo) UpdateSupplier(ctx context.Context, s *Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *memRepo) CreateDelivery(ctx context.Context, d *Delivery) error {
	r.deliveries = append(r.deliveries, d)
	return nil
}

func (r *memRepo) ListDeliveries(ctx context.Context, supplierID *uuid.UUID) ([]*Delivery, error) {
	var out []*Delivery
	for _, d := range r.deliveries {
		if supplierID == nil || d.SupplierID == *supplierID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeStock struct {
	added map[uuid.UUID]float64
}

func (f *fakeStock) AddStock(ctx context.Context, id uuid.UUID, qty float64) error {
	f.added[id] += qty
	return nil
}

type fakeLedger struct {
	amounts []float64
	refs    []string
}

func (f *fakeLedger) RecordExpense(ctx context.Context, amount float64, sourceRef, description string) error {
	f.amounts = append(f.amounts, amount)
	f.refs = append(f.refs, sourceRef)
	return nil
}

func TestRecordDeliveryRestocksAndBooksExpense(t *testing.T) {
	repo := newMemRepo()
	stock := &fakeStock{added: map[uuid.UUID]float64{}}
	ledger := &fakeLedger{}
	svc := NewService(repo, stock, ledger)
	ctx := context.Background()

	sup, err := svc.CreateSupplier(ctx, CreateSupplierRequest{Name: "Zambeef"})
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}
	itemID := uuid.New()

	d, err := svc.RecordDelivery(ctx, RecordDeliveryRequest{
		SupplierID:      sup.ID.String(),
		InventoryItemID: itemID.String(),
		Quantity:        25,
		UnitCost:        18.40,
	})
	if err != nil {
		t.Fatalf("RecordDelivery: %v", err)
	}
	if d.TotalCost != 460 {
		t.Errorf("total cost = %v, want 460", d.TotalCost)
	}
	if stock.added[itemID] != 25 {
		t.Errorf("restocked qty = %v, want 25", stock.added[itemID])
	}
	if len(ledger.amounts) != 1 || ledger.amounts[0] != 460 {
		t.Errorf("expense amounts = %v, want [460]", ledger.amounts)
	}
	wantRef := fmt.Sprintf("DELIVERY-%s", d.ID)
	if ledger.refs[0] != wantRef {
		t.Errorf("source ref = %q, want %q", ledger.refs[0], wantRef)
	}
}

func TestRecordDeliveryRejectsInactiveSupplier(t *testing.T) {
	repo := newMemRepo()
	stock := &fakeStock{added: map[uuid.UUID]float64{}}
	svc := NewService(repo, stock, &fakeLedger{})
	ctx := context.Background()

	sup, _ := svc.CreateSupplier(ctx, CreateSupplierRequest{Name: "Dormant Ltd"})
	inactive := false
	svc.UpdateSupplier(ctx, sup.ID, UpdateSupplierRequest{Active: &inactive})

	_, err := svc.RecordDelivery(ctx, RecordDeliveryRequest{
		SupplierID:      sup.ID.String(),
		InventoryItemID: uuid.New().String(),
		Quantity:        5,
		UnitCost:        2,
	})
	if err == nil {
		t.Fatal("delivery from inactive supplier accepted")
	}
	if len(stock.added) != 0 {
		t.Errorf("stock touched for rejected delivery: %v", stock.added)
	}
}

func TestRecordDeliveryValidation(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &fakeStock{added: map[uuid.UUID]float64{}}, &fakeLedger{})
	ctx := context.Background()

	sup, _ := svc.CreateSupplier(ctx, CreateSupplierRequest{Name: "Valid"})
	base := RecordDeliveryRequest{SupplierID: sup.ID.String(), InventoryItemID: uuid.New().String(), Quantity: 1, UnitCost: 1}

	bad := base
	bad.Quantity = 0
	if _, err := svc.RecordDelivery(ctx, bad); err == nil {
		t.Error("accepted zero quantity")
	}
	bad = base
	bad.UnitCost = -1
	if _, err := svc.RecordDelivery(ctx, bad); err == nil {
		t.Error("accepted negative unit cost")
	}
	bad = base
	bad.SupplierID = "nope"
	if _, err := svc.RecordDelivery(ctx, bad); err == nil {
		t.Error("accepted bad supplier id")
	}
}
