package maps

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ugaemi/ghostlight/internal/store"
)

var (
	ErrEmptyName     = errors.New("map name is empty")
	ErrInvalidName   = errors.New("invalid map name")
	ErrUnknownSource = errors.New("unknown map source")
)

const (
	fetchTimeout   = 10 * time.Second
	maxDocumentLen = 4 << 20
)

// Source fetches raw geometry documents by map name.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// FileSource reads <Dir>/<name>.json.
type FileSource struct {
	Dir string
}

func (s FileSource) Fetch(_ context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(s.Dir, name+".json"))
}

// HTTPSource fetches <BaseURL>/<name>.json.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func (s HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	u, err := url.JoinPath(s.BaseURL, url.PathEscape(name)+".json")
	if err != nil {
		return nil, fmt.Errorf("build map url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", u, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDocumentLen))
}

// StoreSource reads documents saved in the store.
type StoreSource struct {
	Store store.Store
}

func (s StoreSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	return s.Store.LoadMap(ctx, name)
}

// ParseSource builds a Source from its configuration string:
// "file:<dir>", "http(s)://<base>" or "db". A "db" source needs st.
func ParseSource(raw string, st store.Store) (Source, error) {
	switch {
	case strings.HasPrefix(raw, "file:"):
		return FileSource{Dir: strings.TrimPrefix(raw, "file:")}, nil
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return HTTPSource{BaseURL: raw}, nil
	case raw == "db":
		if st == nil {
			return nil, fmt.Errorf("%w: db source without a store", ErrUnknownSource)
		}
		return StoreSource{Store: st}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSource, raw)
}

func checkName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
