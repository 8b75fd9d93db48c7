package accounting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service defines ledger business logic.
type Service interface {
	// RecordSale writes one SALE entry. Called by the POS payment pipeline,
	// facility sessions, and booking checkout.
	RecordSale(ctx context.Context, amount float64, sourceRef, paymentMethod, guestName, description string) error

	// RecordExpense writes one EXPENSE entry, e.g. for a supplier delivery.
	RecordExpense(ctx context.Context, amount float64, sourceRef, description string) error

	// CreateEntry records a manual ledger entry.
	CreateEntry(ctx context.Context, req CreateEntryRequest) (*Entry, error)

	// GetEntry retrieves a single entry.
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)

	// ListEntries returns entries for a date range (inclusive from, exclusive to).
	ListEntries(ctx context.Context, from, to time.Time, entryType string) ([]*Entry, error)

	// DailySummary aggregates one day's entries.
	DailySummary(ctx context.Context, day time.Time) (*DailySummary, error)
}

type service struct {
	repo Repository
}

// NewService creates a new accounting service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RecordSale(ctx context.Context, amount float64, sourceRef, paymentMethod, guestName, description string) error {
	if amount < 0 {
		return fmt.Errorf("sale amount must not be negative")
	}
	return s.repo.CreateEntry(ctx, &Entry{
		ID:            uuid.New(),
		Type:          EntrySale,
		Amount:        amount,
		Description:   description,
		SourceRef:     sourceRef,
		PaymentMethod: paymentMethod,
		GuestName:     guestName,
		EntryDate:     time.Now(),
	})
}

func (s *service) RecordExpense(ctx context.Context, amount float64, sourceRef, description string) error {
	if amount < 0 {
		return fmt.Errorf("expense amount must not be negative")
	}
	return s.repo.CreateEntry(ctx, &Entry{
		ID:          uuid.New(),
		Type:        EntryExpense,
		Amount:      amount,
		Description: description,
		SourceRef:   sourceRef,
		EntryDate:   time.Now(),
	})
}

func (s *service) CreateEntry(ctx context.Context, req CreateEntryRequest) (*Entry, error) {
	entryType := EntryType(strings.ToUpper(req.Type))
	if !ValidEntryType(entryType) {
		return nil, fmt.Errorf("invalid entry type %q", req.Type)
	}
	if req.Amount < 0 {
		return nil, fmt.Errorf("amount must not be negative")
	}
	e := &Entry{
		ID:            uuid.New(),
		Type:          entryType,
		Amount:        req.Amount,
		Description:   req.Description,
		SourceRef:     req.SourceRef,
		PaymentMethod: req.PaymentMethod,
		GuestName:     req.GuestName,
		EntryDate:     time.Now(),
	}
	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetEntryByID(ctx, id)
}

func (s *service) ListEntries(ctx context.Context, from, to time.Time, entryType string) ([]*Entry, error) {
	var t EntryType
	if entryType != "" {
		t = EntryType(strings.ToUpper(entryType))
		if !ValidEntryType(t) {
			return nil, fmt.Errorf("invalid entry type %q", entryType)
		}
	}
	return s.repo.ListEntries(ctx, from, to, t)
}

func (s *service) DailySummary(ctx context.Context, day time.Time) (*DailySummary, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	entries, err := s.repo.ListEntries(ctx, start, end, "")
	if err != nil {
		return nil, err
	}

	summary := &DailySummary{
		Date:            start.Format("2006-01-02"),
		ByPaymentMethod: map[string]float64{},
		EntryCount:      len(entries),
	}
	for _, e := range entries {
		switch e.Type {
		case EntrySale:
			summary.TotalSales += e.Amount
			if e.PaymentMethod != "" {
				summary.ByPaymentMethod[e.PaymentMethod] += e.Amount
			}
		case EntryExpense:
			summary.TotalExpenses += e.Amount
		case EntryRefund:
			summary.TotalRefunds += e.Amount
		}
	}
	summary.Net = summary.TotalSales - summary.TotalExpenses - summary.TotalRefunds
	return summary, nil
}
