package facility

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type memRepo struct {
	facilities map[uuid.UUID]*Facility
	sessions   map[uuid.UUID]*Session
}

func newMemRepo() *memRepo {
	return &memRepo{facilities: map[uuid.UUID]*Facility{}, sessions: map[uuid.UUID]*Session{}}
}

func (r *memRepo) CreateFacility(ctx context.Context, f *Facility) error {
	r.facilities[f.ID] = f
	return nil
}

func (r *memRepo) GetFacilityByID(ctx context.Context, id uuid.UUID) (*Facility, error) {
	f, ok := r.facilities[id]
	if !ok {
		return nil, fmt.Errorf("facility not found")
	}
	return f, nil
}

func (r *memRepo) ListFacilities(ctx context.Context) ([]*Facility, error) {
	var out []*Facility
	for _, f := range r.facilities {
		out = append(out, f)
	}
	return out, nil
}

func (r *memRepo) CreateSession(ctx context.Context, s *Session) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *memRepo) GetSessionByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session not found")
	}
	return s, nil
}

func (r *memRepo) ListSessions(ctx context.Context, facilityID *uuid.UUID, status SessionStatus) ([]*Session, error) {
	var out []*Session
	for _, s := range r.sessions {
		if facilityID != nil && s.FacilityID != *facilityID {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *memRepo) CountOpenSessions(ctx context.Context, facilityID uuid.UUID) (int, error) {
	n := 0
	for _, s := range r.sessions {
		if s.FacilityID == facilityID && s.Status == SessionOpen {
			n++
		}
	}
	return n, nil
}

func (r *memRepo) CloseSession(ctx context.Context, s *Session) error {
	existing, ok := r.sessions[s.ID]
	if !ok || existing.Status == SessionClosed && s != existing {
		return fmt.Errorf("session %s is not open", s.ID)
	}
	r.sessions[s.ID] = s
	return nil
}

type fakeLedger struct {
	amounts []float64
	refs    []string
}

func (f *fakeLedger) RecordSale(ctx context.Context, amount float64, sourceRef, method, guest, description string) error {
	f.amounts = append(f.amounts, amount)
	f.refs = append(f.refs, sourceRef)
	return nil
}

func TestCloseSessionBillsPerStartedHour(t *testing.T) {
	repo := newMemRepo()
	ledger := &fakeLedger{}
	svc := NewService(repo, ledger).(*service)
	ctx := context.Background()

	gym, err := svc.CreateFacility(ctx, CreateFacilityRequest{Name: "Gym", Kind: "GYM", HourlyRate: 50, Capacity: 20})
	if err != nil {
		t.Fatalf("CreateFacility: %v", err)
	}

	start := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }
	session, err := svc.OpenSession(ctx, OpenSessionRequest{FacilityID: gym.ID.String(), GuestName: "Chileshe"})
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	// 90 minutes rounds up to 2 billable hours
	svc.now = func() time.Time { return start.Add(90 * time.Minute) }
	session, err = svc.CloseSession(ctx, session.ID, CloseSessionRequest{PaymentMethod: "CASH"})
	if err != nil {
		t.Fatalf("CloseSession: %v", err)
	}
	if session.Amount != 100 {
		t.Errorf("amount = %v, want 100", session.Amount)
	}
	if len(ledger.amounts) != 1 || ledger.amounts[0] != 100 {
		t.Errorf("ledger amounts = %v, want [100]", ledger.amounts)
	}
	wantRef := fmt.Sprintf("FACILITY-%s", session.ID)
	if ledger.refs[0] != wantRef {
		t.Errorf("source ref = %q, want %q", ledger.refs[0], wantRef)
	}
}

func TestCloseSessionMinimumOneHour(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &fakeLedger{}).(*service)
	ctx := context.Background()

	pool, _ := svc.CreateFacility(ctx, CreateFacilityRequest{Name: "Pool", Kind: "POOL", HourlyRate: 30, Capacity: 10})

	start := time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }
	session, _ := svc.OpenSession(ctx, OpenSessionRequest{FacilityID: pool.ID.String(), GuestName: "Lombe"})

	svc.now = func() time.Time { return start.Add(10 * time.Minute) }
	session, err := svc.CloseSession(ctx, session.ID, CloseSessionRequest{PaymentMethod: "CASH"})
	if err != nil {
		t.Fatalf("CloseSession: %v", err)
	}
	if session.Amount != 30 {
		t.Errorf("amount = %v, want 30 (one hour minimum)", session.Amount)
	}
}

func TestOpenSessionRespectsCapacity(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &fakeLedger{})
	ctx := context.Background()

	arcade, _ := svc.CreateFacility(ctx, CreateFacilityRequest{Name: "Game Center", Kind: "GAME_CENTER", HourlyRate: 25, Capacity: 1})
	if _, err := svc.OpenSession(ctx, OpenSessionRequest{FacilityID: arcade.ID.String(), GuestName: "A"}); err != nil {
		t.Fatalf("first session: %v", err)
	}
	if _, err := svc.OpenSession(ctx, OpenSessionRequest{FacilityID: arcade.ID.String(), GuestName: "B"}); err == nil {
		t.Fatal("opened session past capacity")
	}
}

func TestCloseSessionTwiceRejected(t *testing.T) {
	repo := newMemRepo()
	ledger := &fakeLedger{}
	svc := NewService(repo, ledger)
	ctx := context.Background()

	gym, _ := svc.CreateFacility(ctx, CreateFacilityRequest{Name: "Gym", Kind: "GYM", HourlyRate: 50, Capacity: 5})
	session, _ := svc.OpenSession(ctx, OpenSessionRequest{FacilityID: gym.ID.String(), GuestName: "C"})

	if _, err := svc.CloseSession(ctx, session.ID, CloseSessionRequest{PaymentMethod: "CASH"}); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if _, err := svc.CloseSession(ctx, session.ID, CloseSessionRequest{PaymentMethod: "CASH"}); err == nil {
		t.Fatal("second close accepted")
	}
	if len(ledger.amounts) != 1 {
		t.Errorf("ledger entries = %d, want 1", len(ledger.amounts))
	}
}
