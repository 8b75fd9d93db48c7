package settings

import "context"

// Repository defines settings data storage.
type Repository interface {
	// Get retrieves a setting by key. Returns sql.ErrNoRows when absent.
	Get(ctx context.Context, key string) (*Setting, error)

	// Upsert creates or replaces a setting value.
	Upsert(ctx context.Context, key, value string) error

	// List returns all settings ordered by key.
	List(ctx context.Context) ([]*Setting, error)
}
