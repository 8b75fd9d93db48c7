package inventory

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/google/uuid"
)

type recipeLine struct {
	inventoryItemID uuid.UUID
	quantity        float64
}

// fakeRepo models the zero floor the SQL layer enforces with GREATEST so the
// clamp contract is exercised, not just the call counts.
type fakeRepo struct {
	items   map[uuid.UUID]*InventoryItem
	recipes map[uuid.UUID][]recipeLine // menu item id -> ingredients
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items:   map[uuid.UUID]*InventoryItem{},
		recipes: map[uuid.UUID][]recipeLine{},
	}
}

func (r *fakeRepo) CreateItem(_ context.Context, it *InventoryItem) error {
	c := *it
	r.items[it.ID] = &c
	return nil
}

func (r *fakeRepo) GetItemByID(_ context.Context, id uuid.UUID) (*InventoryItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("inventory item %s not found", id)
	}
	c := *it
	return &c, nil
}

func (r *fakeRepo) ListItems(_ context.Context) ([]*InventoryItem, error) {
	var out []*InventoryItem
	for _, it := range r.items {
		c := *it
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeRepo) ListLowStock(_ context.Context) ([]*InventoryItem, error) {
	all, _ := r.ListItems(context.Background())
	var out []*InventoryItem
	for _, it := range all {
		if it.Quantity <= it.ReorderLevel {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeRepo) DecrementStock(_ context.Context, id uuid.UUID, qty float64) error {
	it, ok := r.items[id]
	if !ok {
		return fmt.Errorf("inventory item %s not found", id)
	}
	it.Quantity -= qty
	if it.Quantity < 0 {
		it.Quantity = 0
	}
	return nil
}

func (r *fakeRepo) AddStock(_ context.Context, id uuid.UUID, qty float64) error {
	it, ok := r.items[id]
	if !ok {
		return fmt.Errorf("inventory item %s not found", id)
	}
	it.Quantity += qty
	return nil
}

func (r *fakeRepo) DeductRecipeIngredients(ctx context.Context, menuItemID uuid.UUID, qtySold int) error {
	for _, line := range r.recipes[menuItemID] {
		if err := r.DecrementStock(ctx, line.inventoryItemID, line.quantity*float64(qtySold)); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRepo) DeleteItem(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func addItem(repo *fakeRepo, name string, qty, reorder float64) *InventoryItem {
	it := &InventoryItem{ID: uuid.New(), Name: name, Unit: "kg", Quantity: qty, ReorderLevel: reorder}
	repo.items[it.ID] = it
	return it
}

func quantityOf(t *testing.T, svc Service, id uuid.UUID) float64 {
	t.Helper()
	it, err := svc.GetItem(context.Background(), id)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	return it.Quantity
}

func TestDecrementStockFloorsAtZero(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	beer := addItem(repo, "Mosi Lager", 3, 10)

	if err := svc.DecrementStock(ctx, beer.ID, 2); err != nil {
		t.Fatalf("DecrementStock: %v", err)
	}
	if got := quantityOf(t, svc, beer.ID); got != 1 {
		t.Errorf("quantity = %v, want 1", got)
	}

	// selling more than is on hand clamps to zero, never negative
	if err := svc.DecrementStock(ctx, beer.ID, 5); err != nil {
		t.Fatalf("DecrementStock past zero: %v", err)
	}
	if got := quantityOf(t, svc, beer.ID); got != 0 {
		t.Errorf("quantity = %v, want 0", got)
	}
}

func TestStockOperationsRejectNonPositiveQuantities(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	it := addItem(repo, "Tomatoes", 5, 1)

	for _, qty := range []float64{0, -2} {
		if err := svc.DecrementStock(ctx, it.ID, qty); err == nil {
			t.Errorf("DecrementStock(%v): expected error", qty)
		}
		if err := svc.AddStock(ctx, it.ID, qty); err == nil {
			t.Errorf("AddStock(%v): expected error", qty)
		}
	}
	for _, sold := range []int{0, -1} {
		if err := svc.DeductRecipeIngredients(ctx, uuid.New(), sold); err == nil {
			t.Errorf("DeductRecipeIngredients(%d): expected error", sold)
		}
	}
	if got := quantityOf(t, svc, it.ID); got != 5 {
		t.Errorf("quantity = %v after rejected calls, want 5", got)
	}
}

func TestDeductRecipeIngredients(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	rum := addItem(repo, "Rum", 1.0, 0.2)
	mint := addItem(repo, "Mint", 0.05, 0.1)
	mojito := uuid.New()
	repo.recipes[mojito] = []recipeLine{
		{inventoryItemID: rum.ID, quantity: 0.05},
		{inventoryItemID: mint.ID, quantity: 0.03},
	}

	// two sold: rum 1.0 - 0.10, mint 0.05 - 0.06 floors at zero
	if err := svc.DeductRecipeIngredients(ctx, mojito, 2); err != nil {
		t.Fatalf("DeductRecipeIngredients: %v", err)
	}
	if got := quantityOf(t, svc, rum.ID); got != 0.9 {
		t.Errorf("rum = %v, want 0.9", got)
	}
	if got := quantityOf(t, svc, mint.ID); got != 0 {
		t.Errorf("mint = %v, want 0 (floored)", got)
	}
}

func TestAdjustStock(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	it := addItem(repo, "Flour", 10, 2)

	got, err := svc.AdjustStock(ctx, it.ID, AdjustStockRequest{Delta: 4})
	if err != nil {
		t.Fatalf("AdjustStock(+4): %v", err)
	}
	if got.Quantity != 14 {
		t.Errorf("quantity = %v, want 14", got.Quantity)
	}

	got, err = svc.AdjustStock(ctx, it.ID, AdjustStockRequest{Delta: -20, Reason: "spoilage"})
	if err != nil {
		t.Fatalf("AdjustStock(-20): %v", err)
	}
	if got.Quantity != 0 {
		t.Errorf("quantity = %v, want 0 (write-off floors)", got.Quantity)
	}

	if _, err := svc.AdjustStock(ctx, it.ID, AdjustStockRequest{Delta: 0}); err == nil {
		t.Error("AdjustStock(0): expected error")
	}
}

func TestCreateItemValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateItemRequest
	}{
		{"missing name", CreateItemRequest{Unit: "kg"}},
		{"missing unit", CreateItemRequest{Name: "Flour"}},
		{"negative quantity", CreateItemRequest{Name: "Flour", Unit: "kg", Quantity: -1}},
		{"bad supplier id", CreateItemRequest{Name: "Flour", Unit: "kg", SupplierID: "not-a-uuid"}},
	}
	for _, tt := range tests {
		if _, err := svc.CreateItem(ctx, tt.req); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}

	it, err := svc.CreateItem(ctx, CreateItemRequest{Name: "Flour", Unit: "kg", Quantity: 25, ReorderLevel: 5})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if it.ID == uuid.Nil || it.Quantity != 25 {
		t.Errorf("created item = %+v", it)
	}
}

func TestListLowStock(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	addItem(repo, "Flour", 25, 5)
	low := addItem(repo, "Rice", 2, 5)
	edge := addItem(repo, "Salt", 5, 5) // at the level counts as low

	items, err := svc.ListLowStock(context.Background())
	if err != nil {
		t.Fatalf("ListLowStock: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("low stock items = %d, want 2", len(items))
	}
	got := map[uuid.UUID]bool{}
	for _, it := range items {
		got[it.ID] = true
	}
	if !got[low.ID] || !got[edge.ID] {
		t.Errorf("low stock set missing expected items: %v", got)
	}
}
