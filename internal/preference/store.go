package preference

import (
	"fmt"

	"bridge/internal/config"
	"bridge/internal/port"
	"bridge/internal/repository/memory"
	"bridge/internal/repository/postgres"
	"bridge/internal/repository/redis"
	"bridge/internal/repository/sqlite"
)

// OpenStore builds the PreferenceStore selected by cfg.Driver. The returned
// close function releases the underlying connection.
func OpenStore(cfg *config.PreferenceConfig) (port.PreferenceStore, func() error, error) {
	switch cfg.Driver {
	case "memory":
		return memory.NewStore(), func() error { return nil }, nil
	case "sqlite", "":
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case "postgres":
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewPreferenceRepo(db), db.Close, nil
	case "redis":
		store := redis.NewStore(redis.NewClient(cfg))
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown preference driver: %s", cfg.Driver)
	}
}
