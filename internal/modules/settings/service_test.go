package settings

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"
)

type fakeRepo struct {
	values map[string]string
}

func (f *fakeRepo) Get(_ context.Context, key string) (*Setting, error) {
	v, ok := f.values[key]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &Setting{Key: key, Value: v, UpdatedAt: time.Now()}, nil
}

func (f *fakeRepo) Upsert(_ context.Context, key, value string) error {
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[key] = value
	return nil
}

func (f *fakeRepo) List(_ context.Context) ([]*Setting, error) {
	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*Setting, 0, len(keys))
	for _, k := range keys {
		out = append(out, &Setting{Key: k, Value: f.values[k]})
	}
	return out, nil
}

func TestDefaultTaxRate(t *testing.T) {
	repo := &fakeRepo{values: map[string]string{KeyDefaultTaxRate: "16"}}
	svc := NewService(repo)
	ctx := context.Background()

	rate, err := svc.DefaultTaxRate(ctx)
	if err != nil {
		t.Fatalf("DefaultTaxRate: %v", err)
	}
	if rate != 16 {
		t.Errorf("rate = %.2f, want 16", rate)
	}
}

func TestDefaultTaxRateMissingIsZero(t *testing.T) {
	svc := NewService(&fakeRepo{})
	rate, err := svc.DefaultTaxRate(context.Background())
	if err != nil {
		t.Fatalf("DefaultTaxRate: %v", err)
	}
	if rate != 0 {
		t.Errorf("rate = %.2f, want 0 for missing setting", rate)
	}
}

func TestDefaultTaxRateMalformed(t *testing.T) {
	repo := &fakeRepo{values: map[string]string{KeyDefaultTaxRate: "sixteen"}}
	svc := NewService(repo)
	if _, err := svc.DefaultTaxRate(context.Background()); err == nil {
		t.Error("expected error for malformed rate")
	}
}

func TestSetSettingValidatesTaxRate(t *testing.T) {
	svc := NewService(&fakeRepo{})
	ctx := context.Background()

	for _, bad := range []string{"abc", "-1", "101"} {
		if _, err := svc.SetSetting(ctx, KeyDefaultTaxRate, bad); err == nil {
			t.Errorf("expected error setting tax rate to %q", bad)
		}
	}

	got, err := svc.SetSetting(ctx, KeyDefaultTaxRate, "18")
	if err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if got.Value != "18" {
		t.Errorf("value = %q, want 18", got.Value)
	}

	if _, err := svc.SetSetting(ctx, "", "x"); err == nil {
		t.Error("expected error for empty key")
	}
}
