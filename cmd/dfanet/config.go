package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"github.com/tempestive/DFAnet"
)

// Config holds the CLI defaults, read from DFANET_* environment variables
// and overridable per invocation with flags.
type Config struct {
	Store     string `env:"DFANET_STORE" envDefault:"file"`            // memory | file | sqlite | redis
	Dir       string `env:"DFANET_DIR" envDefault:".dfanet/snapshots"` // file store directory
	DB        string `env:"DFANET_DB" envDefault:"dfanet.db"`          // sqlite database path
	RedisAddr string `env:"DFANET_REDIS_ADDR" envDefault:"localhost:6379"`
	Format    string `env:"DFANET_FORMAT" envDefault:"json"` // json | yaml
	LogLevel  string `env:"DFANET_LOG_LEVEL" envDefault:"info"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

func (c Config) logLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openStore builds the snapshot store selected by the configuration.
// The returned close function releases the backing resource and must be
// called on every exit path.
func openStore(cfg Config) (dfanet.SnapshotStore, func() error, error) {
	noClose := func() error { return nil }

	switch cfg.Store {
	case "memory":
		return dfanet.NewMemorySnapshotStore(), noClose, nil
	case "file":
		return dfanet.NewFileSnapshotStore(cfg.Dir), noClose, nil
	case "sqlite":
		db, err := sql.Open("sqlite", cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite database %q: %w", cfg.DB, err)
		}
		store, err := dfanet.NewSQLiteSnapshotStore(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store, db.Close, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return dfanet.NewRedisSnapshotStore(client, "dfanet:"), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q (want memory, file, sqlite or redis)", cfg.Store)
	}
}
