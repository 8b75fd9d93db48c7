package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

// Service defines settings business logic.
type Service interface {
	// GetSetting retrieves a single setting by key.
	GetSetting(ctx context.Context, key string) (*Setting, error)

	// SetSetting creates or replaces a setting value.
	SetSetting(ctx context.Context, key, value string) (*Setting, error)

	// ListSettings returns all settings.
	ListSettings(ctx context.Context) ([]*Setting, error)

	// DefaultTaxRate returns the configured default tax rate in percent.
	// A missing setting is treated as 0, not an error.
	DefaultTaxRate(ctx context.Context) (float64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new settings service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetSetting(ctx context.Context, key string) (*Setting, error) {
	return s.repo.Get(ctx, key)
}

func (s *service) SetSetting(ctx context.Context, key, value string) (*Setting, error) {
	if key == "" {
		return nil, fmt.Errorf("key is required")
	}
	if key == KeyDefaultTaxRate {
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil || rate < 0 || rate > 100 {
			return nil, fmt.Errorf("invalid tax rate %q: must be a percentage between 0 and 100", value)
		}
	}
	if err := s.repo.Upsert(ctx, key, value); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, key)
}

func (s *service) ListSettings(ctx context.Context) ([]*Setting, error) {
	return s.repo.List(ctx)
}

func (s *service) DefaultTaxRate(ctx context.Context) (float64, error) {
	setting, err := s.repo.Get(ctx, KeyDefaultTaxRate)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	rate, err := strconv.ParseFloat(setting.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed default_tax_rate setting %q: %w", setting.Value, err)
	}
	return rate, nil
}
