package accounting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeRepo struct {
	entries []*Entry
}

func (f *fakeRepo) CreateEntry(_ context.Context, e *Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeRepo) GetEntryByID(_ context.Context, id uuid.UUID) (*Entry, error) {
	for _, e := range f.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepo) ListEntries(_ context.Context, from, to time.Time, t EntryType) ([]*Entry, error) {
	var out []*Entry
	for _, e := range f.entries {
		if e.EntryDate.Before(from) || !e.EntryDate.Before(to) {
			continue
		}
		if t != "" && e.Type != t {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

var errNotFound = errors.New("entry not found")

func TestRecordSaleAndExpense(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.RecordSale(ctx, 150, "POS-abc", "CASH", "Mwamba", "order settlement"); err != nil {
		t.Fatalf("RecordSale: %v", err)
	}
	if err := svc.RecordExpense(ctx, 460, "DELIVERY-xyz", "flour restock"); err != nil {
		t.Fatalf("RecordExpense: %v", err)
	}
	if len(repo.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(repo.entries))
	}
	if repo.entries[0].Type != EntrySale || repo.entries[0].PaymentMethod != "CASH" {
		t.Errorf("sale entry = %+v", repo.entries[0])
	}
	if repo.entries[1].Type != EntryExpense || repo.entries[1].Amount != 460 {
		t.Errorf("expense entry = %+v", repo.entries[1])
	}
}

func TestNegativeAmountsRejected(t *testing.T) {
	svc := NewService(&fakeRepo{})
	ctx := context.Background()
	if err := svc.RecordSale(ctx, -1, "POS-x", "CASH", "", ""); err == nil {
		t.Error("expected error for negative sale")
	}
	if err := svc.RecordExpense(ctx, -1, "DELIVERY-x", ""); err == nil {
		t.Error("expected error for negative expense")
	}
	if _, err := svc.CreateEntry(ctx, CreateEntryRequest{Type: "SALE", Amount: -5}); err == nil {
		t.Error("expected error for negative manual entry")
	}
}

func TestCreateEntryTypeValidation(t *testing.T) {
	svc := NewService(&fakeRepo{})
	ctx := context.Background()

	e, err := svc.CreateEntry(ctx, CreateEntryRequest{Type: "refund", Amount: 20})
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if e.Type != EntryRefund {
		t.Errorf("type = %s, want REFUND", e.Type)
	}

	if _, err := svc.CreateEntry(ctx, CreateEntryRequest{Type: "BRIBE", Amount: 20}); err == nil {
		t.Error("expected error for unknown entry type")
	}
}

func TestDailySummary(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	add := func(typ EntryType, amount float64, method string, at time.Time) {
		repo.entries = append(repo.entries, &Entry{
			ID: uuid.New(), Type: typ, Amount: amount,
			PaymentMethod: method, EntryDate: at,
		})
	}
	add(EntrySale, 100, "CASH", day.Add(9*time.Hour))
	add(EntrySale, 250, "MOBILE_MONEY", day.Add(13*time.Hour))
	add(EntryExpense, 80, "", day.Add(15*time.Hour))
	add(EntryRefund, 30, "CASH", day.Add(16*time.Hour))
	// next day, must not count
	add(EntrySale, 999, "CARD", day.AddDate(0, 0, 1).Add(time.Hour))

	sum, err := svc.DailySummary(ctx, day.Add(10*time.Hour))
	if err != nil {
		t.Fatalf("DailySummary: %v", err)
	}
	if sum.Date != "2026-03-14" {
		t.Errorf("date = %s", sum.Date)
	}
	if sum.TotalSales != 350 || sum.TotalExpenses != 80 || sum.TotalRefunds != 30 {
		t.Errorf("totals = sales %.2f expenses %.2f refunds %.2f",
			sum.TotalSales, sum.TotalExpenses, sum.TotalRefunds)
	}
	if sum.Net != 240 {
		t.Errorf("net = %.2f, want 240", sum.Net)
	}
	if sum.ByPaymentMethod["CASH"] != 100 || sum.ByPaymentMethod["MOBILE_MONEY"] != 250 {
		t.Errorf("by method = %v", sum.ByPaymentMethod)
	}
	if sum.EntryCount != 4 {
		t.Errorf("entry count = %d, want 4", sum.EntryCount)
	}
}
