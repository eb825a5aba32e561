// Package file stores the recipe catalog as a JSON document on disk
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alchemorsel/menugen/internal/domain/menu"
	"github.com/alchemorsel/menugen/internal/ports/outbound"
)

// CatalogRepository reads and writes a JSON object mapping category names
// to arrays of recipes.
type CatalogRepository struct {
	path string
}

// NewCatalogRepository creates a repository for the given file path
func NewCatalogRepository(path string) *CatalogRepository {
	return &CatalogRepository{path: path}
}

// Path returns the catalog file location
func (r *CatalogRepository) Path() string {
	return r.path
}

// Load decodes the catalog file. A missing file is menu.ErrCatalogNotFound;
// undecodable content is menu.ErrCatalogMalformed.
func (r *CatalogRepository) Load(ctx context.Context) (menu.Pools, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, menu.ErrCatalogNotFound
		}
		return nil, fmt.Errorf("failed to read catalog %s: %w", r.path, err)
	}

	var pools menu.Pools
	if err := json.Unmarshal(data, &pools); err != nil {
		return nil, fmt.Errorf("%w: %v", menu.ErrCatalogMalformed, err)
	}
	if pools == nil {
		return nil, fmt.Errorf("%w: document is null", menu.ErrCatalogMalformed)
	}

	return pools, nil
}

// Save writes the catalog indented by four spaces without escaping slashes.
// The file is replaced atomically via a temporary sibling.
func (r *CatalogRepository) Save(ctx context.Context, pools menu.Pools) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(pools); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".recipes-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp catalog: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close catalog: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set catalog permissions: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("failed to replace catalog: %w", err)
	}

	return nil
}

var _ outbound.CatalogRepository = (*CatalogRepository)(nil)
