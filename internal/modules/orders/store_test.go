package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lusakagrand/hoteldesk-backend/internal/feed"
	"github.com/lusakagrand/hoteldesk-backend/internal/modules/menu"
)

// ── fakes ────────────────────────────────────────────────────────────────────

type fakeRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*Order
	items  map[uuid.UUID]*OrderItem
	fail   map[string]error // op name -> forced error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		orders: map[uuid.UUID]*Order{},
		items:  map[uuid.UUID]*OrderItem{},
		fail:   map[string]error{},
	}
}

func (r *fakeRepo) ListActiveOrders(ctx context.Context) ([]*Order, error) {
	if err := r.fail["ListActiveOrders"]; err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Order
	for _, o := range r.orders {
		if o.Status != StatusActive {
			continue
		}
		c := *o
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	for _, o := range out {
		o.Items = r.itemsOf(o.ID)
	}
	return out, nil
}

func (r *fakeRepo) InsertOrder(ctx context.Context, o *Order) error {
	if err := r.fail["InsertOrder"]; err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *o
	r.orders[o.ID] = &c
	return nil
}

func (r *fakeRepo) UpdateTotals(ctx context.Context, id uuid.UUID, subtotal, tax, total float64) error {
	if err := r.fail["UpdateTotals"]; err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order %s not found", id)
	}
	o.Subtotal, o.TaxAmount, o.TotalAmount = subtotal, tax, total
	return nil
}

func (r *fakeRepo) MarkPaid(ctx context.Context, id uuid.UUID, method string) error {
	if err := r.fail["MarkPaid"]; err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != StatusActive {
		return fmt.Errorf("order %s is not active", id)
	}
	o.Status = StatusPaid
	o.PaymentMethod = method
	return nil
}

func (r *fakeRepo) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := r.fail["DeleteOrder"]; err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for itemID, item := range r.items {
		if item.OrderID == id {
			delete(r.items, itemID)
		}
	}
	delete(r.orders, id)
	return nil
}

func (r *fakeRepo) ListItems(ctx context.Context, orderID uuid.UUID) ([]*OrderItem, error) {
	if err := r.fail["ListItems"]; err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.itemsOf(orderID), nil
}

func (r *fakeRepo) InsertItem(ctx context.Context, item *OrderItem) error {
	if err := r.fail["InsertItem"]; err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *item
	r.items[item.ID] = &c
	return nil
}

func (r *fakeRepo) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	if err := r.fail["UpdateItemQuantity"]; err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return fmt.Errorf("item %s not found", itemID)
	}
	item.Quantity = quantity
	return nil
}

func (r *fakeRepo) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	if err := r.fail["DeleteItem"]; err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, itemID)
	return nil
}

// itemsOf must be called with r.mu held.
func (r *fakeRepo) itemsOf(orderID uuid.UUID) []*OrderItem {
	var out []*OrderItem
	for _, item := range r.items {
		if item.OrderID == orderID {
			c := *item
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

type fakeMenu struct {
	items map[uuid.UUID]*menu.MenuItem
}

func (m *fakeMenu) GetItem(ctx context.Context, id uuid.UUID) (*menu.MenuItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("menu item %s not found", id)
	}
	return item, nil
}

type saleRecord struct {
	amount                                float64
	sourceRef, method, guest, description string
}

type fakeAccounting struct {
	sales []saleRecord
	err   error
}

func (a *fakeAccounting) RecordSale(ctx context.Context, amount float64, sourceRef, method, guest, description string) error {
	if a.err != nil {
		return a.err
	}
	a.sales = append(a.sales, saleRecord{amount, sourceRef, method, guest, description})
	return nil
}

type dispatchRecord struct {
	orderID  uuid.UUID
	guest    string
	lines    []TicketLine
	estimate int
	priority int
}

type fakeKitchen struct {
	dispatches []dispatchRecord
	err        error
}

func (k *fakeKitchen) DispatchTicket(ctx context.Context, orderID uuid.UUID, guest string, lines []TicketLine, estimate, priority int) error {
	if k.err != nil {
		return k.err
	}
	k.dispatches = append(k.dispatches, dispatchRecord{orderID, guest, lines, estimate, priority})
	return nil
}

type fakeStock struct {
	decrements  map[uuid.UUID]float64
	recipeCalls map[uuid.UUID]int
}

func newFakeStock() *fakeStock {
	return &fakeStock{decrements: map[uuid.UUID]float64{}, recipeCalls: map[uuid.UUID]int{}}
}

func (s *fakeStock) DecrementStock(ctx context.Context, id uuid.UUID, qty float64) error {
	s.decrements[id] += qty
	return nil
}

func (s *fakeStock) DeductRecipeIngredients(ctx context.Context, menuItemID uuid.UUID, qty int) error {
	s.recipeCalls[menuItemID] += qty
	return nil
}

type fakeTax struct{ rate float64 }

func (t *fakeTax) DefaultTaxRate(ctx context.Context) (float64, error) { return t.rate, nil }

type fakeFeed struct {
	mu       sync.Mutex
	handlers map[string][]feed.Handler
}

func newFakeFeed() *fakeFeed { return &fakeFeed{handlers: map[string][]feed.Handler{}} }

func (f *fakeFeed) Subscribe(table string, types []feed.EventType, h feed.Handler) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[table] = append(f.handlers[table], h)
	return func() {}
}

func (f *fakeFeed) emit(ev feed.Event) {
	f.mu.Lock()
	handlers := append([]feed.Handler(nil), f.handlers[ev.Table]...)
	f.mu.Unlock()
	for _, h := range handlers {
		h(ev)
	}
}

// ── test fixture ─────────────────────────────────────────────────────────────

type fixture struct {
	store      *Store
	repo       *fakeRepo
	menu       *fakeMenu
	accounting *fakeAccounting
	kitchen    *fakeKitchen
	stock      *fakeStock
	feed       *fakeFeed
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:       newFakeRepo(),
		menu:       &fakeMenu{items: map[uuid.UUID]*menu.MenuItem{}},
		accounting: &fakeAccounting{},
		kitchen:    &fakeKitchen{},
		stock:      newFakeStock(),
		feed:       newFakeFeed(),
	}
	f.store = NewStore(f.repo, f.menu, f.accounting, f.kitchen, f.stock, &fakeTax{rate: 16}, f.feed)
	if err := f.store.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return f
}

func (f *fixture) addMenuItem(name string, category menu.Category, price float64, taxRate *float64) *menu.MenuItem {
	m := &menu.MenuItem{
		ID:       uuid.New(),
		Name:     name,
		Category: category,
		Price:    price,
		TaxRate:  taxRate,
	}
	f.menu.items[m.ID] = m
	return m
}

func floatPtr(v float64) *float64 { return &v }

// ── tests ────────────────────────────────────────────────────────────────────

// Mirrors the canonical walk-in scenario: totals track line mutations, adding
// the same dish merges into one line, and a zero quantity removes the line.
func TestOrderTotalsLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	burger := f.addMenuItem("Burger", menu.CategoryMainCourse, 10.00, floatPtr(5))

	o, err := f.store.CreateOrder(ctx, CreateOrderRequest{GuestName: "Walk-in 1234", GuestType: "WALK_IN"})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if o.Status != StatusActive || o.TotalAmount != 0 {
		t.Fatalf("new order: status=%s total=%v, want ACTIVE 0", o.Status, o.TotalAmount)
	}

	o, err = f.store.AddItem(ctx, o.ID, AddItemRequest{MenuItemID: burger.ID.String(), Quantity: 2})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	assertTotals(t, o, 20.00, 1.00, 21.00)
	if len(o.Items) != 1 || o.Items[0].Quantity != 2 {
		t.Fatalf("items = %d (qty %d), want 1 line qty 2", len(o.Items), o.Items[0].Quantity)
	}

	// same dish again: merged line, not a second row
	o, err = f.store.AddItem(ctx, o.ID, AddItemRequest{MenuItemID: burger.ID.String(), Quantity: 1})
	if err != nil {
		t.Fatalf("AddItem again: %v", err)
	}
	if len(o.Items) != 1 {
		t.Fatalf("after re-add got %d lines, want 1", len(o.Items))
	}
	if o.Items[0].Quantity != 3 {
		t.Fatalf("merged quantity = %d, want 3", o.Items[0].Quantity)
	}
	assertTotals(t, o, 30.00, 1.50, 31.50)

	// quantity zero deletes the line
	if err := f.store.UpdateItemQuantity(ctx, o.Items[0].ID, 0); err != nil {
		t.Fatalf("UpdateItemQuantity(0): %v", err)
	}
	o, _ = f.store.Get(o.ID)
	if len(o.Items) != 0 {
		t.Fatalf("after zeroing got %d lines, want 0", len(o.Items))
	}
	assertTotals(t, o, 0, 0, 0)
}

func TestTotalInvariantHoldsAcrossMutations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	burger := f.addMenuItem("Burger", menu.CategoryMainCourse, 12.50, floatPtr(5))
	beer := f.addMenuItem("Mosi Lager", menu.CategoryBeer, 3.75, nil) // default 16%

	o, _ := f.store.CreateOrder(ctx, CreateOrderRequest{GuestName: "Chanda", GuestType: "WALK_IN"})

	steps := []AddItemRequest{
		{MenuItemID: burger.ID.String(), Quantity: 1},
		{MenuItemID: beer.ID.String(), Quantity: 4},
		{MenuItemID: burger.ID.String(), Quantity: 2},
	}
	for _, step := range steps {
		var err error
		o, err = f.store.AddItem(ctx, o.ID, step)
		if err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		var wantSub, wantTax float64
		for _, item := range o.Items {
			wantSub += item.Price * float64(item.Quantity)
			wantTax += item.Price * float64(item.Quantity) * item.TaxRate / 100
		}
		assertTotals(t, o, round2(wantSub), round2(wantTax), round2(round2(wantSub)+round2(wantTax)))
	}
	if o.Items[1].TaxRate != 16 {
		t.Errorf("beer tax rate = %v, want default 16", o.Items[1].TaxRate)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateOrderRequest
	}{
		{"missing guest name", CreateOrderRequest{GuestType: "WALK_IN"}},
		{"bad guest type", CreateOrderRequest{GuestName: "A", GuestType: "DRIVE_THROUGH"}},
		{"table order without table", CreateOrderRequest{GuestName: "A", GuestType: "TABLE"}},
		{"room order without room", CreateOrderRequest{GuestName: "A", GuestType: "ROOM"}},
	}
	for _, tt := range tests {
		if _, err := f.store.CreateOrder(ctx, tt.req); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
	if n := len(f.store.ActiveOrders()); n != 0 {
		t.Fatalf("rejected orders leaked into memory: %d", n)
	}
}

func TestProcessPaymentRemovesFromActiveSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	burger := f.addMenuItem("Burger", menu.CategoryMainCourse, 10, floatPtr(5))
	o, _ := f.store.CreateOrder(ctx, CreateOrderRequest{GuestName: "Mutale", GuestType: "WALK_IN"})
	o, _ = f.store.AddItem(ctx, o.ID, AddItemRequest{MenuItemID: burger.ID.String(), Quantity: 2})

	if err := f.store.ProcessPayment(ctx, o.ID, PaymentRequest{PaymentMethod: "CASH"}); err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}

	if _, found := f.store.Get(o.ID); found {
		t.Error("paid order still in active set")
	}
	if err := f.store.FetchActiveOrders(ctx); err != nil {
		t.Fatalf("FetchActiveOrders: %v", err)
	}
	for _, active := range f.store.ActiveOrders() {
		if active.ID == o.ID {
			t.Error("paid order returned by FetchActiveOrders")
		}
	}

	if len(f.accounting.sales) != 1 {
		t.Fatalf("ledger entries = %d, want 1", len(f.accounting.sales))
	}
	sale := f.accounting.sales[0]
	if sale.amount != 21.00 || sale.method != "CASH" || sale.guest != "Mutale" {
		t.Errorf("sale = %+v", sale)
	}
	wantRef := fmt.Sprintf("POS-%s", o.ID)
	if sale.sourceRef != wantRef {
		t.Errorf("source ref = %q, want %q", sale.sourceRef, wantRef)
	}
}

func TestProcessPaymentCategoryRouting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	invID := uuid.New()
	burger := f.addMenuItem("Burger", menu.CategoryMainCourse, 10, floatPtr(5))
	beer := f.addMenuItem("Mosi Lager", menu.CategoryBeer, 4, nil)
	beer.TrackInventory = true
	beer.InventoryItemID = &invID
	mojito := f.addMenuItem("Mojito", menu.CategoryCocktail, 8, nil)
	mojito.Recipe = []*menu.RecipeIngredient{{ID: uuid.New(), MenuItemID: mojito.ID, InventoryItemID: uuid.New(), Quantity: 0.05}}

	o, _ := f.store.CreateOrder(ctx, CreateOrderRequest{GuestName: "Bwalya", GuestType: "WALK_IN"})
	o, _ = f.store.AddItem(ctx, o.ID, AddItemRequest{MenuItemID: burger.ID.String(), Quantity: 1})
	o, _ = f.store.AddItem(ctx, o.ID, AddItemRequest{MenuItemID: beer.ID.String(), Quantity: 3})
	o, _ = f.store.AddItem(ctx, o.ID, AddItemRequest{MenuItemID: mojito.ID.String(), Quantity: 2})

	if err := f.store.ProcessPayment(ctx, o.ID, PaymentRequest{PaymentMethod: "CARD"}); err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}

	// exactly one ticket, carrying the burger and the cocktail but not the beer
	if len(f.kitchen.dispatches) != 1 {
		t.Fatalf("kitchen dispatches = %d, want 1", len(f.kitchen.dispatches))
	}
	d := f.kitchen.dispatches[0]
	if len(d.lines) != 2 {
		t.Fatalf("ticket lines = %d, want 2", len(d.lines))
	}
	names := map[string]bool{}
	for _, line := range d.lines {
		names[line.Name] = true
	}
	if !names["Burger"] || !names["Mojito"] || names["Mosi Lager"] {
		t.Errorf("ticket lines = %v", names)
	}
	if d.estimate != 20 || d.priority != 1 {
		t.Errorf("estimate=%d priority=%d, want 20 and 1", d.estimate, d.priority)
	}

	// beer decremented one-for-one, cocktail deducted through its recipe
	if got := f.stock.decrements[invID]; got != 3 {
		t.Errorf("beer stock decrement = %v, want 3", got)
	}
	if got := f.stock.recipeCalls[mojito.ID]; got != 2 {
		t.Errorf("recipe deduction qty = %d, want 2", got)
	}
	if len(f.stock.recipeCalls) != 1 {
		t.Errorf("recipe calls = %v, want only the cocktail", f.stock.recipeCalls)
	}
}

func TestProcessPaymentNoKitchenTicketWithoutQualifyingLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	beer := f.addMenuItem("Mosi Lager", menu.CategoryBeer, 4, nil)
	o, _ := f.store.CreateOrder(ctx, CreateOrderRequest{GuestName: "Luya", GuestType: "WALK_IN"})
	o, _ = f.store.AddItem(ctx, o.ID, AddItemRequest{MenuItemID: beer.ID.String(), Quantity: 2})

	if err := f.store.ProcessPayment(ctx, o.ID, PaymentRequest{PaymentMethod: "CASH"}); err != nil {
		t.Fatalf("ProcessPayment: %v", err)
	}
	if len(f.kitchen.dispatches) != 0 {
		t.Errorf("kitchen dispatches = %d, want 0", len(f.kitchen.dispatches))
	}
}

func TestProcessPaymentRejectsNonActiveOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	burger := f.addMenuItem("Burger", menu.CategoryMainCourse, 10, floatPtr(5))
	o, _ := f.store.CreateOrder(ctx, CreateOrderRequest{GuestName: "Zola", GuestType: "WALK_IN"})
	o, _ = f.store.AddItem(ctx, o.ID, AddItemRequest{MenuItemID: burger.ID.String(), Quantity: 1})

	if err := f.store.ProcessPayment(ctx, o.ID, PaymentRequest{PaymentMethod: "CASH"}); err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if err := f.store.ProcessPayment(ctx, o.ID, PaymentRequest{PaymentMethod: "CASH"}); err == nil {
		t.Fatal("second payment accepted; want rejection")
	}
	if len(f.accounting.sales) != 1 {
		t.Errorf("ledger entries = %d after double pay, want 1", len(f.accounting.sales))
	}
}

func TestPaymentFailureLeavesEarlierStepsCommitted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	burger := f.addMenuItem("Burger", menu.CategoryMainCourse, 10, floatPtr(5))
	o, _ := f.store.CreateOrder(ctx, CreateOrderRequest{GuestName: "Kunda", GuestType: "WALK_IN"})
	o, _ = f.store.AddItem(ctx, o.ID, AddItemRequest{MenuItemID: burger.ID.String(), Quantity: 1})

	f.kitchen.err = fmt.Errorf("display offline")
	if err := f.store.ProcessPayment(ctx, o.ID, PaymentRequest{PaymentMethod: "CASH"}); err == nil {
		t.Fatal("expected payment failure")
	}

	// steps 1 and 2 are already committed: order paid, sale on the ledger
	f.repo.mu.Lock()
	status := f.repo.orders[o.ID].Status
	f.repo.mu.Unlock()
	if status != StatusPaid {
		t.Errorf("order status = %s, want PAID (no rollback across steps)", status)
	}
	if len(f.accounting.sales) != 1 {
		t.Errorf("ledger entries = %d, want 1", len(f.accounting.sales))
	}
	// the order stays in memory so the terminal can retry or reconcile
	if _, found := f.store.Get(o.ID); !found {
		t.Error("order dropped from memory despite failed payment")
	}
}

func TestDeleteOrderRemovesItemsAndOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	burger := f.addMenuItem("Burger", menu.CategoryMainCourse, 10, floatPtr(5))
	o, _ := f.store.CreateOrder(ctx, CreateOrderRequest{GuestName: "Tembo", GuestType: "WALK_IN"})
	o, _ = f.store.AddItem(ctx, o.ID, AddItemRequest{MenuItemID: burger.ID.String(), Quantity: 2})

	if err := f.store.DeleteOrder(ctx, o.ID); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}
	if _, found := f.store.Get(o.ID); found {
		t.Error("deleted order still in memory")
	}
	f.repo.mu.Lock()
	defer f.repo.mu.Unlock()
	if len(f.repo.items) != 0 {
		t.Errorf("orphaned items remain: %d", len(f.repo.items))
	}
}

func TestFetchActiveOrdersFailureKeepsPriorState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.CreateOrder(ctx, CreateOrderRequest{GuestName: "Nsofwa", GuestType: "WALK_IN"})
	f.repo.fail["ListActiveOrders"] = fmt.Errorf("connection reset")

	if err := f.store.FetchActiveOrders(ctx); err == nil {
		t.Fatal("expected fetch error")
	}
	if n := len(f.store.ActiveOrders()); n != 1 {
		t.Errorf("active orders after failed fetch = %d, want 1", n)
	}
}

// ── change feed tests ────────────────────────────────────────────────────────

func orderInsertEvent(t *testing.T, row orderRow) feed.Event {
	t.Helper()
	payload, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return feed.Event{Table: "orders", Action: feed.EventInsert, New: payload}
}

func TestDuplicateOrderInsertEventSuppressed(t *testing.T) {
	f := newFixture(t)

	row := orderRow{
		ID:        uuid.New(),
		GuestName: "Table 4",
		GuestType: GuestWalkIn,
		Status:    StatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	ev := orderInsertEvent(t, row)
	f.feed.emit(ev)
	f.feed.emit(ev) // echoed duplicate

	count := 0
	for _, o := range f.store.ActiveOrders() {
		if o.ID == row.ID {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("order appears %d times, want 1", count)
	}
}

func TestLocalCreateThenEchoedInsertEventSuppressed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, _ := f.store.CreateOrder(ctx, CreateOrderRequest{GuestName: "Echo", GuestType: "WALK_IN"})
	f.feed.emit(orderInsertEvent(t, orderRow{
		ID:        o.ID,
		GuestName: o.GuestName,
		GuestType: o.GuestType,
		Status:    StatusActive,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}))

	if n := len(f.store.ActiveOrders()); n != 1 {
		t.Fatalf("active orders = %d, want 1", n)
	}
}

func TestOrderPaidElsewhereLeavesActiveSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, _ := f.store.CreateOrder(ctx, CreateOrderRequest{GuestName: "Remote", GuestType: "WALK_IN"})
	method := "CASH"
	payload, _ := json.Marshal(orderRow{
		ID:            o.ID,
		GuestName:     o.GuestName,
		GuestType:     o.GuestType,
		Status:        StatusPaid,
		PaymentMethod: &method,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     time.Now(),
	})
	f.feed.emit(feed.Event{Table: "orders", Action: feed.EventUpdate, New: payload})

	if _, found := f.store.Get(o.ID); found {
		t.Error("order paid on another terminal still in active set")
	}
}

func TestItemFeedEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, _ := f.store.CreateOrder(ctx, CreateOrderRequest{GuestName: "Items", GuestType: "WALK_IN"})

	row := itemRow{
		ID:         uuid.New(),
		OrderID:    o.ID,
		MenuItemID: uuid.New(),
		Name:       "Chips",
		Category:   string(menu.CategorySnack),
		Price:      2.50,
		Quantity:   1,
		TaxRate:    16,
		Status:     ItemPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	payload, _ := json.Marshal(row)
	insert := feed.Event{Table: "order_items", Action: feed.EventInsert, New: payload}
	f.feed.emit(insert)
	f.feed.emit(insert) // duplicate guarded by id

	got, _ := f.store.Get(o.ID)
	if len(got.Items) != 1 {
		t.Fatalf("items after duplicate insert = %d, want 1", len(got.Items))
	}

	row.Quantity = 5
	payload, _ = json.Marshal(row)
	f.feed.emit(feed.Event{Table: "order_items", Action: feed.EventUpdate, New: payload})
	got, _ = f.store.Get(o.ID)
	if got.Items[0].Quantity != 5 {
		t.Errorf("patched quantity = %d, want 5", got.Items[0].Quantity)
	}

	f.feed.emit(feed.Event{Table: "order_items", Action: feed.EventDelete, Old: payload})
	got, _ = f.store.Get(o.ID)
	if len(got.Items) != 0 {
		t.Errorf("items after delete event = %d, want 0", len(got.Items))
	}
}

// Orders handed out by Get and ActiveOrders are detached copies. Feed events
// keep mutating the in-memory originals on the listener goroutine, so a
// returned order must neither change under its caller nor leak caller writes
// back into the store.
func TestGetReturnsDetachedCopy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	burger := f.addMenuItem("Burger", menu.CategoryMainCourse, 10, floatPtr(5))
	o, _ := f.store.CreateOrder(ctx, CreateOrderRequest{GuestName: "Chilufya", GuestType: "WALK_IN"})
	o, _ = f.store.AddItem(ctx, o.ID, AddItemRequest{MenuItemID: burger.ID.String(), Quantity: 1})

	snap, _ := f.store.Get(o.ID)

	// a line arriving over the feed is invisible to the earlier snapshot
	payload, _ := json.Marshal(itemRow{
		ID:        uuid.New(),
		OrderID:   o.ID,
		Name:      "Chips",
		Category:  string(menu.CategorySnack),
		Price:     2.50,
		Quantity:  1,
		Status:    ItemPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	f.feed.emit(feed.Event{Table: "order_items", Action: feed.EventInsert, New: payload})
	if len(snap.Items) != 1 {
		t.Fatalf("snapshot grew to %d items after feed event, want 1", len(snap.Items))
	}
	fresh, _ := f.store.Get(o.ID)
	if len(fresh.Items) != 2 {
		t.Fatalf("fresh read has %d items, want 2", len(fresh.Items))
	}

	// writes through a snapshot never reach the store
	snap.GuestName = "tampered"
	snap.Items[0].Quantity = 99
	fresh, _ = f.store.Get(o.ID)
	if fresh.GuestName != "Chilufya" || fresh.Items[0].Quantity == 99 {
		t.Errorf("snapshot writes leaked into store: guest=%q qty=%d",
			fresh.GuestName, fresh.Items[0].Quantity)
	}
	for _, active := range f.store.ActiveOrders() {
		if active.ID == o.ID && active.Items[0].Quantity == 99 {
			t.Error("snapshot writes visible through ActiveOrders")
		}
	}
}

// Exercises Get and ActiveOrders while item feed events land from another
// goroutine. Run with -race; live pointers escaping the store lock fail here.
func TestConcurrentReadsDuringFeedEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o, _ := f.store.CreateOrder(ctx, CreateOrderRequest{GuestName: "Busy", GuestType: "WALK_IN"})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			payload, _ := json.Marshal(itemRow{
				ID:        uuid.New(),
				OrderID:   o.ID,
				Name:      fmt.Sprintf("Line %d", i),
				Quantity:  1,
				Status:    ItemPending,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			})
			f.feed.emit(feed.Event{Table: "order_items", Action: feed.EventInsert, New: payload})
		}
	}()

	for i := 0; i < 200; i++ {
		if got, ok := f.store.Get(o.ID); ok {
			_ = len(got.Items)
		}
		for _, active := range f.store.ActiveOrders() {
			_ = len(active.Items)
		}
	}
	<-done

	got, _ := f.store.Get(o.ID)
	if len(got.Items) != 200 {
		t.Fatalf("items after feed burst = %d, want 200", len(got.Items))
	}
}

// ── helpers ──────────────────────────────────────────────────────────────────

func assertTotals(t *testing.T, o *Order, subtotal, tax, total float64) {
	t.Helper()
	if o.Subtotal != subtotal || o.TaxAmount != tax || o.TotalAmount != total {
		t.Fatalf("totals = %.2f/%.2f/%.2f, want %.2f/%.2f/%.2f",
			o.Subtotal, o.TaxAmount, o.TotalAmount, subtotal, tax, total)
	}
	if o.TotalAmount != o.Subtotal+o.TaxAmount {
		t.Fatalf("invariant broken: total %.2f != subtotal %.2f + tax %.2f",
			o.TotalAmount, o.Subtotal, o.TaxAmount)
	}
}
