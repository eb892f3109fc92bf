package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/zlog"

	"github.com/OlivierMantz/CommentAPI/internal/config"
)

// openDB is replaced in tests.
var openDB = dbpg.New

// Connect opens the master/replica pool and waits until the master answers,
// retrying as configured.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*dbpg.DB, error) {
	opts := &dbpg.Options{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetimeSec) * time.Second,
	}
	slaves := splitAndTrim(cfg.Slaves, ",")

	attempts := cfg.ConnectRetries
	if attempts < 1 {
		attempts = 1
	}

	var (
		database *dbpg.DB
		err      error
	)
	for i := 0; i < attempts; i++ {
		database, err = openDB(cfg.DSN, slaves, opts)
		if err == nil {
			if err = database.Master.PingContext(ctx); err == nil {
				return database, nil
			}
			zlog.Logger.Warn().Err(err).Msg("db ping failed")
			Close(database)
		}
		zlog.Logger.Warn().Err(err).Msgf("waiting for database (attempt %d/%d)", i+1, attempts)

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(cfg.ConnectRetryDelaySec) * time.Second):
		}
	}
	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
}

// Close closes the master and every replica pool.
func Close(database *dbpg.DB) {
	if database == nil {
		return
	}
	if err := database.Master.Close(); err != nil {
		zlog.Logger.Warn().Err(err).Msg("close master db")
	}
	for _, s := range database.Slaves {
		if err := s.Close(); err != nil {
			zlog.Logger.Warn().Err(err).Msg("close replica db")
		}
	}
}

// splitAndTrim splits s by sep and trims results.
func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
