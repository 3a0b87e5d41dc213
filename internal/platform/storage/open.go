package storage

import (
	"context"

	"github.com/rs/zerolog"
)

// Open selects the backing store. With an empty databaseURL the seeded
// in-memory store is used directly. Otherwise one connection attempt is
// made against the external database; if it fails, Open falls back to the
// in-memory store without retrying.
func Open(ctx context.Context, databaseURL string, maxConns, minConns int32, log zerolog.Logger) Store {
	if databaseURL == "" {
		log.Info().Msg("no database configured, using in-memory store")
		return NewMemory(log)
	}

	pg, err := NewPostgres(ctx, databaseURL, maxConns, minConns, log)
	if err != nil {
		log.Warn().Err(err).Msg("database unreachable, falling back to in-memory store")
		return NewMemory(log)
	}

	log.Info().Msg("connected to database")
	return pg
}
