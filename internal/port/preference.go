package port

import "context"

// PreferenceStore is a persistent key-value store for user preferences.
// Get returns domain.ErrNotFound when the key has never been written.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
}
