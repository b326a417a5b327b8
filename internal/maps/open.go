package maps

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ugaemi/ghostlight/internal/store"
)

const openTimeout = 5 * time.Second

var ErrNoDatabase = errors.New("DATABASE_URL is not set")

// Unavailable is a Source that fails every fetch with Err, so Load falls back
// to empty geometry.
type Unavailable struct {
	Err error
}

func (s Unavailable) Fetch(context.Context, string) ([]byte, error) {
	return nil, s.Err
}

// Opener connects the store behind a "db" source.
type Opener func(ctx context.Context) (store.Store, error)

// PostgresOpener opens databaseURL with store.NewPostgresStore.
func PostgresOpener(databaseURL string) Opener {
	return func(ctx context.Context) (store.Store, error) {
		if databaseURL == "" {
			return nil, ErrNoDatabase
		}
		return store.NewPostgresStore(ctx, databaseURL)
	}
}

// Open resolves a source string for clients that must keep running without
// their map. Errors are logged and turned into an Unavailable source. The
// returned close func releases the store, if one was opened.
func Open(ctx context.Context, raw string, open Opener) (Source, func()) {
	noop := func() {}
	if raw != "db" {
		src, err := ParseSource(raw, nil)
		if err != nil {
			slog.Warn("map source unusable, using empty geometry", "source", raw, "error", err)
			return Unavailable{Err: err}, noop
		}
		return src, noop
	}

	ctx, cancel := context.WithTimeout(ctx, openTimeout)
	defer cancel()
	st, err := open(ctx)
	if err != nil {
		err = fmt.Errorf("open map store: %w", err)
		slog.Warn("map store unavailable, using empty geometry", "error", err)
		return Unavailable{Err: err}, noop
	}
	return StoreSource{Store: st}, func() {
		if err := st.Close(); err != nil {
			slog.Warn("failed to close map store", "error", err)
		}
	}
}
