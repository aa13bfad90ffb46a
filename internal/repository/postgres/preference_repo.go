package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"bridge/internal/domain"
	"bridge/internal/port"
)

type preferenceRepo struct {
	db *sqlx.DB
}

// NewPreferenceRepo creates a new PostgreSQL-backed PreferenceStore.
// The preferences table is created by the migrations under db/migrations.
func NewPreferenceRepo(db *sqlx.DB) port.PreferenceStore {
	return &preferenceRepo{db: db}
}

func (r *preferenceRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, "SELECT value FROM preferences WHERE key = $1", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("preferenceRepo.Get: %w", err)
	}
	return value, nil
}

func (r *preferenceRepo) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO preferences (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("preferenceRepo.Set: %w", err)
	}
	return nil
}

func (r *preferenceRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
