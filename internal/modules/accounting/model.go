package accounting

import (
	"time"

	"github.com/google/uuid"
)

// EntryType categorises a ledger entry.
type EntryType string

const (
	EntrySale       EntryType = "SALE"
	EntryExpense    EntryType = "EXPENSE"
	EntryRefund     EntryType = "REFUND"
	EntryAdjustment EntryType = "ADJUSTMENT"
)

// ValidEntryType reports whether t is a known entry type.
func ValidEntryType(t EntryType) bool {
	switch t {
	case EntrySale, EntryExpense, EntryRefund, EntryAdjustment:
		return true
	}
	return false
}

// Entry is a single row in the hotel's ledger. Sales are written by the POS
// payment pipeline, facility sessions, and booking checkouts; expenses by
// supplier deliveries and manual entry.
type Entry struct {
	ID            uuid.UUID `json:"id"`
	Type          EntryType `json:"type"`
	Amount        float64   `json:"amount"`
	Description   string    `json:"description,omitempty"`
	SourceRef     string    `json:"source_ref,omitempty"` // e.g. "POS-<order id>", "BKG-<booking id>"
	PaymentMethod string    `json:"payment_method,omitempty"`
	GuestName     string    `json:"guest_name,omitempty"`
	EntryDate     time.Time `json:"entry_date"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateEntryRequest is the payload for a manual ledger entry.
type CreateEntryRequest struct {
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description,omitempty"`
	SourceRef     string  `json:"source_ref,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	GuestName     string  `json:"guest_name,omitempty"`
}

// DailySummary aggregates a day's ledger for the dashboard.
type DailySummary struct {
	Date            string             `json:"date"`
	TotalSales      float64            `json:"total_sales"`
	TotalExpenses   float64            `json:"total_expenses"`
	TotalRefunds    float64            `json:"total_refunds"`
	Net             float64            `json:"net"`
	ByPaymentMethod map[string]float64 `json:"by_payment_method"`
	EntryCount      int                `json:"entry_count"`
}
