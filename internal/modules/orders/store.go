package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lusakagrand/hoteldesk-backend/internal/feed"
	"github.com/lusakagrand/hoteldesk-backend/internal/modules/menu"
)

// MenuReader resolves menu items when lines are added and when payment-time
// routing decides inventory effects.
type MenuReader interface {
	GetItem(ctx context.Context, id uuid.UUID) (*menu.MenuItem, error)
}

// AccountingRecorder writes the ledger entry for a paid order.
type AccountingRecorder interface {
	RecordSale(ctx context.Context, amount float64, sourceRef, paymentMethod, guestName, description string) error
}

// KitchenDispatcher files a kitchen ticket for the kitchen-relevant lines of
// a paid order.
type KitchenDispatcher interface {
	DispatchTicket(ctx context.Context, orderID uuid.UUID, guestName string, lines []TicketLine, estimatedMinutes, priority int) error
}

// TicketLine is one kitchen-relevant line handed to the dispatcher.
type TicketLine struct {
	OrderItemID         uuid.UUID
	Name                string
	Quantity            int
	SpecialInstructions string
}

// StockDeductor applies payment-time inventory effects.
type StockDeductor interface {
	DecrementStock(ctx context.Context, inventoryItemID uuid.UUID, qty float64) error
	DeductRecipeIngredients(ctx context.Context, menuItemID uuid.UUID, qtySold int) error
}

// TaxRateSource supplies the configured default tax rate (percent) for menu
// items without an override.
type TaxRateSource interface {
	DefaultTaxRate(ctx context.Context) (float64, error)
}

// Estimated kitchen prep time per ticket line, and the default ticket priority.
const (
	prepMinutesPerItem = 10
	defaultPriority    = 1
)

// Store holds the authoritative client-facing view of all ACTIVE orders and
// orchestrates the payment workflow. It stays consistent with the database
// through its own writes and through change-feed events from other terminals;
// totals are always rederived from a fresh line-item read rather than patched
// incrementally, which is what keeps concurrent edits from drifting.
type Store struct {
	repo       Repository
	menu       MenuReader
	accounting AccountingRecorder
	kitchen    KitchenDispatcher
	stock      StockDeductor
	taxRates   TaxRateSource
	feed       feed.Subscriber

	mu     sync.Mutex
	orders []*Order // newest first

	unsubscribe []func()
}

// NewStore creates an order store. Call Start to load state and begin
// consuming feed events, and Stop to detach.
func NewStore(repo Repository, menuReader MenuReader, accounting AccountingRecorder,
	kitchen KitchenDispatcher, stock StockDeductor, taxRates TaxRateSource,
	subscriber feed.Subscriber) *Store {
	return &Store{
		repo:       repo,
		menu:       menuReader,
		accounting: accounting,
		kitchen:    kitchen,
		stock:      stock,
		taxRates:   taxRates,
		feed:       subscriber,
	}
}

// Start loads the active orders and subscribes to change-feed events for the
// orders and order_items tables.
func (s *Store) Start(ctx context.Context) error {
	if err := s.FetchActiveOrders(ctx); err != nil {
		return fmt.Errorf("initial order load: %w", err)
	}
	if s.feed != nil {
		all := []feed.EventType{feed.EventInsert, feed.EventUpdate, feed.EventDelete}
		s.unsubscribe = append(s.unsubscribe,
			s.feed.Subscribe("orders", all, s.applyOrderEvent),
			s.feed.Subscribe("order_items", all, s.applyItemEvent),
		)
	}
	return nil
}

// Stop detaches the store from the change feed.
func (s *Store) Stop() {
	for _, unsub := range s.unsubscribe {
		unsub()
	}
	s.unsubscribe = nil
}

// FetchActiveOrders replaces the in-memory list with the persisted ACTIVE
// orders, newest first. On failure the prior state is left untouched.
func (s *Store) FetchActiveOrders(ctx context.Context) error {
	orders, err := s.repo.ListActiveOrders(ctx)
	if err != nil {
		return fmt.Errorf("fetch active orders: %w", err)
	}
	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	return nil
}

// ActiveOrders returns a snapshot of the in-memory active order list. The
// returned orders are deep copies; feed events arriving on the listener
// goroutine keep mutating the originals under the lock, so live pointers must
// never leave it.
func (s *Store) ActiveOrders() []*Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = cloneOrder(o)
	}
	return out
}

// Get returns a deep copy of the in-memory order with the given id, if
// present.
func (s *Store) Get(id uuid.UUID) (*Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			return cloneOrder(o), true
		}
	}
	return nil, false
}

// CreateOrder opens a new ACTIVE order with zero totals and prepends it to
// the active list.
func (s *Store) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if req.GuestName == "" {
		return nil, fmt.Errorf("guest_name is required")
	}
	guestType := GuestType(req.GuestType)
	if !ValidGuestType(guestType) {
		return nil, fmt.Errorf("invalid guest_type %q", req.GuestType)
	}

	o := &Order{
		ID:        uuid.New(),
		GuestName: req.GuestName,
		GuestType: guestType,
		Status:    StatusActive,
		Items:     []*OrderItem{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	switch guestType {
	case GuestTable:
		if req.TableID == "" {
			return nil, fmt.Errorf("table_id is required for table orders")
		}
		tid, err := uuid.Parse(req.TableID)
		if err != nil {
			return nil, fmt.Errorf("invalid table_id: %w", err)
		}
		o.TableID = &tid
	case GuestRoom:
		if req.RoomNumber == "" {
			return nil, fmt.Errorf("room_number is required for room orders")
		}
		o.RoomNumber = req.RoomNumber
	}

	if err := s.repo.InsertOrder(ctx, o); err != nil {
		return nil, err
	}
	s.prepend(o)
	return o, nil
}

// AddItem adds quantity of a menu item to an order. If the order already has
// a line with the same item name the quantities merge; otherwise a new line
// is inserted with a price and tax-rate snapshot. Totals are then recomputed
// from the persisted items.
func (s *Store) AddItem(ctx context.Context, orderID uuid.UUID, req AddItemRequest) (*Order, error) {
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return nil, fmt.Errorf("quantity must be > 0")
	}
	o, ok := s.Get(orderID)
	if !ok {
		return nil, fmt.Errorf("order %s not found", orderID)
	}
	menuItemID, err := uuid.Parse(req.MenuItemID)
	if err != nil {
		return nil, fmt.Errorf("invalid menu_item_id: %w", err)
	}
	m, err := s.menu.GetItem(ctx, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("menu item not found: %w", err)
	}

	if existing := s.findItemByName(orderID, m.Name); existing != nil {
		if err := s.repo.UpdateItemQuantity(ctx, existing.ID, existing.Quantity+qty); err != nil {
			return nil, err
		}
	} else {
		rate, err := s.resolveTaxRate(ctx, m)
		if err != nil {
			return nil, err
		}
		item := &OrderItem{
			ID:                  uuid.New(),
			OrderID:             orderID,
			MenuItemID:          m.ID,
			Name:                m.Name,
			Category:            m.Category,
			Price:               m.Price,
			Quantity:            qty,
			TaxRate:             rate,
			SpecialInstructions: req.SpecialInstructions,
			Status:              ItemPending,
			CreatedAt:           time.Now(),
			UpdatedAt:           time.Now(),
		}
		if err := s.repo.InsertItem(ctx, item); err != nil {
			return nil, err
		}
	}

	if err := s.recomputeTotals(ctx, orderID); err != nil {
		return nil, err
	}
	o, _ = s.Get(orderID)
	return o, nil
}

// UpdateItemQuantity sets a line item's quantity; zero or less deletes the
// line. Totals are recomputed for every in-memory order holding the item
// (normally exactly one).
func (s *Store) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		if err := s.repo.DeleteItem(ctx, itemID); err != nil {
			return err
		}
	} else {
		if err := s.repo.UpdateItemQuantity(ctx, itemID, quantity); err != nil {
			return err
		}
	}
	for _, orderID := range s.ordersHolding(itemID) {
		if err := s.recomputeTotals(ctx, orderID); err != nil {
			return err
		}
	}
	return nil
}

// ProcessPayment settles an order. The steps run strictly in sequence and a
// failure aborts the remainder without rolling back what already committed:
// the order may end up PAID with no ledger entry, or ledgered with stock not
// yet deducted. See DESIGN.md for why this is accepted rather than masked.
func (s *Store) ProcessPayment(ctx context.Context, orderID uuid.UUID, req PaymentRequest) error {
	if req.PaymentMethod == "" {
		return fmt.Errorf("payment_method is required")
	}
	o, ok := s.Get(orderID)
	if !ok {
		return fmt.Errorf("order %s not found", orderID)
	}
	if o.Status != StatusActive {
		return fmt.Errorf("order %s is not active", orderID)
	}

	// Step 1: transition the order to PAID.
	if err := s.repo.MarkPaid(ctx, orderID, req.PaymentMethod); err != nil {
		return err
	}

	// Step 2: one ledger entry for the full amount.
	sourceRef := fmt.Sprintf("POS-%s", orderID)
	description := fmt.Sprintf("POS order for %s", o.GuestName)
	if err := s.accounting.RecordSale(ctx, o.TotalAmount, sourceRef, req.PaymentMethod, o.GuestName, description); err != nil {
		return fmt.Errorf("record sale: %w", err)
	}

	// Step 3: kitchen ticket for kitchen-relevant lines, if any.
	var lines []TicketLine
	for _, item := range o.Items {
		if menu.RoutingFor(item.Category).KitchenRelevant {
			lines = append(lines, TicketLine{
				OrderItemID:         item.ID,
				Name:                item.Name,
				Quantity:            item.Quantity,
				SpecialInstructions: item.SpecialInstructions,
			})
		}
	}
	if len(lines) > 0 {
		est := prepMinutesPerItem * len(lines)
		if err := s.kitchen.DispatchTicket(ctx, orderID, o.GuestName, lines, est, defaultPriority); err != nil {
			return fmt.Errorf("dispatch kitchen ticket: %w", err)
		}
	}

	// Step 4: inventory effects per line.
	for _, item := range o.Items {
		m, err := s.menu.GetItem(ctx, item.MenuItemID)
		if err != nil {
			return fmt.Errorf("resolve menu item for %q: %w", item.Name, err)
		}
		routing := menu.RoutingFor(m.Category)
		switch {
		case routing.DirectInventoryBeverage && m.TrackInventory && m.InventoryItemID != nil:
			if err := s.stock.DecrementStock(ctx, *m.InventoryItemID, float64(item.Quantity)); err != nil {
				return fmt.Errorf("decrement stock for %q: %w", item.Name, err)
			}
		case len(m.Recipe) > 0:
			if err := s.stock.DeductRecipeIngredients(ctx, m.ID, item.Quantity); err != nil {
				return fmt.Errorf("deduct recipe for %q: %w", item.Name, err)
			}
		}
	}

	// Step 5: the order is no longer active.
	s.remove(orderID)
	return nil
}

// DeleteOrder removes an order and its items from the database and memory.
func (s *Store) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	if err := s.repo.DeleteOrder(ctx, orderID); err != nil {
		return err
	}
	s.remove(orderID)
	return nil
}

// recomputeTotals rederives subtotal/tax/total from the persisted line items,
// persists them, and swaps the fresh items into the in-memory order. Reading
// back from the store rather than trusting memory is what protects totals
// against concurrent edits from other terminals.
func (s *Store) recomputeTotals(ctx context.Context, orderID uuid.UUID) error {
	items, err := s.repo.ListItems(ctx, orderID)
	if err != nil {
		return fmt.Errorf("reload items: %w", err)
	}

	var subtotal, tax float64
	for _, item := range items {
		line := item.LineTotal()
		subtotal += line
		tax += line * item.TaxRate / 100
	}
	subtotal = round2(subtotal)
	tax = round2(tax)
	total := round2(subtotal + tax)

	if err := s.repo.UpdateTotals(ctx, orderID, subtotal, tax, total); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == orderID {
			o.Items = items
			o.Subtotal = subtotal
			o.TaxAmount = tax
			o.TotalAmount = total
			o.UpdatedAt = time.Now()
			break
		}
	}
	return nil
}

func (s *Store) resolveTaxRate(ctx context.Context, m *menu.MenuItem) (float64, error) {
	if m.TaxRate != nil {
		return *m.TaxRate, nil
	}
	rate, err := s.taxRates.DefaultTaxRate(ctx)
	if err != nil {
		return 0, fmt.Errorf("resolve default tax rate: %w", err)
	}
	return rate, nil
}

// ── in-memory list maintenance ───────────────────────────────────────────────

func (s *Store) prepend(o *Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.orders {
		if existing.ID == o.ID {
			return // already arrived via the change feed
		}
	}
	s.orders = append([]*Order{o}, s.orders...)
}

func (s *Store) remove(orderID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.orders {
		if o.ID == orderID {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return
		}
	}
}

func (s *Store) findItemByName(orderID uuid.UUID, name string) *OrderItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID != orderID {
			continue
		}
		for _, item := range o.Items {
			if item.Name == name {
				dup := *item
				return &dup
			}
		}
	}
	return nil
}

func (s *Store) ordersHolding(itemID uuid.UUID) []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []uuid.UUID
	for _, o := range s.orders {
		for _, item := range o.Items {
			if item.ID == itemID {
				ids = append(ids, o.ID)
				break
			}
		}
	}
	return ids
}

// ── change feed integration ──────────────────────────────────────────────────
//
// Events may arrive out of order relative to local mutations (the local write
// and its echoed feed event race). All mutations are idempotent replacements
// keyed by id, so duplicate detection by id is the only ordering defense
// needed.

// orderRow matches the column JSON emitted by the row-change triggers.
type orderRow struct {
	ID            uuid.UUID  `json:"id"`
	GuestName     string     `json:"guest_name"`
	GuestType     GuestType  `json:"guest_type"`
	TableID       *uuid.UUID `json:"table_id"`
	RoomNumber    string     `json:"room_number"`
	Status        OrderStatus `json:"status"`
	Subtotal      float64    `json:"subtotal"`
	TaxAmount     float64    `json:"tax_amount"`
	TotalAmount   float64    `json:"total_amount"`
	PaymentMethod *string    `json:"payment_method"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type itemRow struct {
	ID                  uuid.UUID  `json:"id"`
	OrderID             uuid.UUID  `json:"order_id"`
	MenuItemID          uuid.UUID  `json:"menu_item_id"`
	Name                string     `json:"name"`
	Category            string     `json:"category"`
	Price               float64    `json:"price"`
	Quantity            int        `json:"quantity"`
	TaxRate             float64    `json:"tax_rate"`
	SpecialInstructions string     `json:"special_instructions"`
	Status              ItemStatus `json:"status"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (s *Store) applyOrderEvent(ev feed.Event) {
	switch ev.Action {
	case feed.EventInsert, feed.EventUpdate:
		var row orderRow
		if err := json.Unmarshal(ev.New, &row); err != nil {
			log.Printf("orders: bad %s payload for orders: %v", ev.Action, err)
			return
		}
		if ev.Action == feed.EventInsert {
			if row.Status != StatusActive {
				return
			}
			s.prepend(orderFromRow(row))
			return
		}
		s.mergeOrder(row)
	case feed.EventDelete:
		var row orderRow
		if err := json.Unmarshal(ev.Old, &row); err != nil {
			log.Printf("orders: bad DELETE payload for orders: %v", err)
			return
		}
		s.remove(row.ID)
	}
}

func (s *Store) applyItemEvent(ev feed.Event) {
	switch ev.Action {
	case feed.EventInsert, feed.EventUpdate:
		var row itemRow
		if err := json.Unmarshal(ev.New, &row); err != nil {
			log.Printf("orders: bad %s payload for order_items: %v", ev.Action, err)
			return
		}
		if ev.Action == feed.EventInsert {
			s.appendItem(row)
			return
		}
		s.patchItem(row)
	case feed.EventDelete:
		var row itemRow
		if err := json.Unmarshal(ev.Old, &row); err != nil {
			log.Printf("orders: bad DELETE payload for order_items: %v", err)
			return
		}
		s.removeItem(row.ID)
	}
}

func (s *Store) mergeOrder(row orderRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.orders {
		if o.ID != row.ID {
			continue
		}
		if row.Status != StatusActive {
			// paid or cancelled elsewhere; it leaves the active set
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return
		}
		o.GuestName = row.GuestName
		o.GuestType = row.GuestType
		o.TableID = row.TableID
		o.RoomNumber = row.RoomNumber
		o.Status = row.Status
		o.Subtotal = row.Subtotal
		o.TaxAmount = row.TaxAmount
		o.TotalAmount = row.TotalAmount
		if row.PaymentMethod != nil {
			o.PaymentMethod = *row.PaymentMethod
		}
		o.UpdatedAt = row.UpdatedAt
		return
	}
}

func (s *Store) appendItem(row itemRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID != row.OrderID {
			continue
		}
		for _, item := range o.Items {
			if item.ID == row.ID {
				return // duplicate event
			}
		}
		o.Items = append(o.Items, itemFromRow(row))
		return
	}
}

func (s *Store) patchItem(row itemRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		for i, item := range o.Items {
			if item.ID == row.ID {
				o.Items[i] = itemFromRow(row)
				return
			}
		}
	}
}

func (s *Store) removeItem(itemID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		for i, item := range o.Items {
			if item.ID == itemID {
				o.Items = append(o.Items[:i], o.Items[i+1:]...)
				return
			}
		}
	}
}

// ── helpers ──────────────────────────────────────────────────────────────────

// cloneOrder copies an order and its item slice so the result can be read
// outside the store's lock.
func cloneOrder(o *Order) *Order {
	c := *o
	c.Items = make([]*OrderItem, len(o.Items))
	for i, item := range o.Items {
		dup := *item
		c.Items[i] = &dup
	}
	return &c
}

func orderFromRow(row orderRow) *Order {
	o := &Order{
		ID:          row.ID,
		GuestName:   row.GuestName,
		GuestType:   row.GuestType,
		TableID:     row.TableID,
		RoomNumber:  row.RoomNumber,
		Status:      row.Status,
		Subtotal:    row.Subtotal,
		TaxAmount:   row.TaxAmount,
		TotalAmount: row.TotalAmount,
		Items:       []*OrderItem{},
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.PaymentMethod != nil {
		o.PaymentMethod = *row.PaymentMethod
	}
	return o
}

func itemFromRow(row itemRow) *OrderItem {
	return &OrderItem{
		ID:                  row.ID,
		OrderID:             row.OrderID,
		MenuItemID:          row.MenuItemID,
		Name:                row.Name,
		Category:            menu.Category(row.Category),
		Price:               row.Price,
		Quantity:            row.Quantity,
		TaxRate:             row.TaxRate,
		SpecialInstructions: row.SpecialInstructions,
		Status:              row.Status,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
