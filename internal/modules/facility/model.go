package facility

import (
	"time"

	"github.com/google/uuid"
)

// Kind classifies a leisure facility.
type Kind string

const (
	KindGym        Kind = "GYM"
	KindGameCenter Kind = "GAME_CENTER"
	KindPool       Kind = "POOL"
)

// ValidKind reports whether k is a known facility kind.
func ValidKind(k Kind) bool {
	switch k {
	case KindGym, KindGameCenter, KindPool:
		return true
	}
	return false
}

// SessionStatus represents the state of a facility session.
type SessionStatus string

const (
	SessionOpen   SessionStatus = "OPEN"
	SessionClosed SessionStatus = "CLOSED"
)

// Facility is a paid leisure area, billed per started hour.
type Facility struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Kind       Kind      `json:"kind"`
	HourlyRate float64   `json:"hourly_rate"`
	Capacity   int       `json:"capacity"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Session is one guest's visit to a facility. Amount is computed when the
// session closes.
type Session struct {
	ID            uuid.UUID     `json:"id"`
	FacilityID    uuid.UUID     `json:"facility_id"`
	GuestName     string        `json:"guest_name"`
	Status        SessionStatus `json:"status"`
	StartedAt     time.Time     `json:"started_at"`
	EndedAt       *time.Time    `json:"ended_at,omitempty"`
	Amount        float64       `json:"amount"`
	PaymentMethod string        `json:"payment_method,omitempty"`
}

// CreateFacilityRequest is the payload for registering a facility.
type CreateFacilityRequest struct {
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	HourlyRate float64 `json:"hourly_rate"`
	Capacity   int     `json:"capacity"`
}

// OpenSessionRequest is the payload for starting a session.
type OpenSessionRequest struct {
	FacilityID string `json:"facility_id"`
	GuestName  string `json:"guest_name"`
}

// CloseSessionRequest is the payload for closing a session.
type CloseSessionRequest struct {
	PaymentMethod string `json:"payment_method"`
}
