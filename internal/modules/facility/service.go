package facility

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SaleRecorder writes the session charge to the ledger when it closes.
type SaleRecorder interface {
	RecordSale(ctx context.Context, amount float64, sourceRef, paymentMethod, guestName, description string) error
}

// Service defines facility business logic. Sessions bill per started hour;
// closing one records the charge as a SALE.
type Service interface {
	CreateFacility(ctx context.Context, req CreateFacilityRequest) (*Facility, error)
	GetFacility(ctx context.Context, id uuid.UUID) (*Facility, error)
	ListFacilities(ctx context.Context) ([]*Facility, error)

	OpenSession(ctx context.Context, req OpenSessionRequest) (*Session, error)
	CloseSession(ctx context.Context, id uuid.UUID, req CloseSessionRequest) (*Session, error)
	ListSessions(ctx context.Context, facilityID *uuid.UUID, status string) ([]*Session, error)
}

type service struct {
	repo   Repository
	ledger SaleRecorder
	now    func() time.Time
}

// NewService creates a new facility service.
func NewService(repo Repository, ledger SaleRecorder) Service {
	return &service{repo: repo, ledger: ledger, now: time.Now}
}

func (s *service) CreateFacility(ctx context.Context, req CreateFacilityRequest) (*Facility, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	kind := Kind(strings.ToUpper(req.Kind))
	if !ValidKind(kind) {
		return nil, fmt.Errorf("invalid facility kind %q", req.Kind)
	}
	if req.HourlyRate < 0 {
		return nil, fmt.Errorf("hourly_rate must not be negative")
	}
	if req.Capacity <= 0 {
		return nil, fmt.Errorf("capacity must be > 0")
	}

	f := &Facility{
		ID:         uuid.New(),
		Name:       req.Name,
		Kind:       kind,
		HourlyRate: req.HourlyRate,
		Capacity:   req.Capacity,
		Active:     true,
	}
	if err := s.repo.CreateFacility(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) GetFacility(ctx context.Context, id uuid.UUID) (*Facility, error) {
	return s.repo.GetFacilityByID(ctx, id)
}

func (s *service) ListFacilities(ctx context.Context) ([]*Facility, error) {
	return s.repo.ListFacilities(ctx)
}

func (s *service) OpenSession(ctx context.Context, req OpenSessionRequest) (*Session, error) {
	if req.GuestName == "" {
		return nil, fmt.Errorf("guest_name is required")
	}
	facilityID, err := uuid.Parse(req.FacilityID)
	if err != nil {
		return nil, fmt.Errorf("invalid facility_id: %w", err)
	}
	f, err := s.repo.GetFacilityByID(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	if !f.Active {
		return nil, fmt.Errorf("facility %s is closed", f.Name)
	}
	open, err := s.repo.CountOpenSessions(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	if open >= f.Capacity {
		return nil, fmt.Errorf("facility %s is at capacity", f.Name)
	}

	session := &Session{
		ID:         uuid.New(),
		FacilityID: facilityID,
		GuestName:  req.GuestName,
		Status:     SessionOpen,
		StartedAt:  s.now(),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *service) CloseSession(ctx context.Context, id uuid.UUID, req CloseSessionRequest) (*Session, error) {
	if req.PaymentMethod == "" {
		return nil, fmt.Errorf("payment_method is required")
	}
	session, err := s.repo.GetSessionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status != SessionOpen {
		return nil, fmt.Errorf("session %s is not open", id)
	}
	f, err := s.repo.GetFacilityByID(ctx, session.FacilityID)
	if err != nil {
		return nil, err
	}

	ended := s.now()
	hours := math.Ceil(ended.Sub(session.StartedAt).Hours())
	if hours < 1 {
		hours = 1
	}
	session.EndedAt = &ended
	session.Amount = hours * f.HourlyRate
	session.PaymentMethod = req.PaymentMethod
	session.Status = SessionClosed

	if err := s.repo.CloseSession(ctx, session); err != nil {
		return nil, err
	}

	sourceRef := fmt.Sprintf("FACILITY-%s", session.ID)
	description := fmt.Sprintf("%s session, %.0f hour(s)", f.Name, hours)
	if err := s.ledger.RecordSale(ctx, session.Amount, sourceRef, req.PaymentMethod, session.GuestName, description); err != nil {
		return nil, fmt.Errorf("record session charge: %w", err)
	}
	return session, nil
}

func (s *service) ListSessions(ctx context.Context, facilityID *uuid.UUID, status string) ([]*Session, error) {
	var st SessionStatus
	if status != "" {
		st = SessionStatus(strings.ToUpper(status))
		if st != SessionOpen && st != SessionClosed {
			return nil, fmt.Errorf("invalid session status %q", status)
		}
	}
	return s.repo.ListSessions(ctx, facilityID, st)
}
