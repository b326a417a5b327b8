package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/ghostlight/internal/game"
	"github.com/ugaemi/ghostlight/internal/store"
)

func TestImportMap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crypt.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"width":800,"obstacles":[{"x":1,"y":2,"width":3,"height":4}]}`), 0o644))

	st := store.NewMemoryStore()
	require.NoError(t, importMap(context.Background(), st, path, "crypt"))

	doc, err := st.LoadMap(context.Background(), "crypt")
	require.NoError(t, err)
	geo, err := game.ParseGeometry(doc)
	require.NoError(t, err)
	assert.Equal(t, "crypt", geo.Name)
	assert.Equal(t, 800.0, geo.Width)
	assert.Equal(t, float64(game.DefaultMapHeight), geo.Height, "defaults are stored")
	assert.Len(t, geo.Obstacles, 1)
}

func TestImportMap_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"width":-5}`), 0o644))

	st := store.NewMemoryStore()
	err := importMap(context.Background(), st, path, "bad")
	assert.ErrorIs(t, err, game.ErrInvalidGeometry)

	_, err = st.LoadMap(context.Background(), "bad")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
