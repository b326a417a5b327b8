// Command mapimport validates map geometry documents and saves them to the
// database so servers and clients can use MAP_SOURCE=db.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ugaemi/ghostlight/internal/config"
	"github.com/ugaemi/ghostlight/internal/game"
	"github.com/ugaemi/ghostlight/internal/store"
)

func main() {
	name := flag.String("name", "", "map name (defaults to the file name without .json)")
	flag.Parse()

	cfg := config.Load()
	config.SetupLogger(cfg, "mapimport")

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: mapimport [-name NAME] FILE.json...")
		os.Exit(2)
	}
	if *name != "" && flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "-name only applies to a single file")
		os.Exit(2)
	}
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	failed := 0
	for _, path := range flag.Args() {
		mapName := *name
		if mapName == "" {
			mapName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		if err := importMap(ctx, st, path, mapName); err != nil {
			slog.Error("import failed", "file", path, "error", err)
			failed++
			continue
		}
		slog.Info("map imported", "file", path, "map", mapName)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// importMap parses the document before saving it, so only valid geometry
// reaches the store. The stored document is the normalized form.
func importMap(ctx context.Context, st store.Store, path, name string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	geo, err := game.ParseGeometry(data)
	if err != nil {
		return err
	}
	geo.Name = name
	doc, err := json.Marshal(geo)
	if err != nil {
		return fmt.Errorf("encode geometry: %w", err)
	}
	return st.SaveMap(ctx, name, doc)
}
