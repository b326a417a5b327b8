package maps

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ugaemi/ghostlight/internal/game"
)

// Fetch retrieves and parses a map document.
func Fetch(ctx context.Context, src Source, name string) (*game.Geometry, error) {
	data, err := src.Fetch(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetch map %q: %w", name, err)
	}
	geo, err := game.ParseGeometry(data)
	if err != nil {
		return nil, fmt.Errorf("parse map %q: %w", name, err)
	}
	if geo.Name == "" {
		geo.Name = name
	}
	return geo, nil
}

// Load is Fetch that never fails: any error is logged and an empty, fully
// walkable map is returned in its place.
func Load(ctx context.Context, src Source, name string) *game.Geometry {
	geo, err := Fetch(ctx, src, name)
	if err != nil {
		slog.Warn("map unavailable, using empty geometry", "map", name, "error", err)
		return game.EmptyGeometry(name)
	}
	slog.Info("map loaded", "map", geo.Name, "walls", len(geo.Walls), "obstacles", len(geo.Obstacles))
	return geo
}

// LoadAsync runs Load on its own goroutine. The channel yields exactly one
// geometry.
func LoadAsync(ctx context.Context, src Source, name string) <-chan *game.Geometry {
	ch := make(chan *game.Geometry, 1)
	go func() {
		ch <- Load(ctx, src, name)
	}()
	return ch
}
