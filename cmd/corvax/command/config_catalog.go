package command

import (
	"fmt"
	"os"

	"github.com/pixil98/corvax-lab/internal/sim"
	"github.com/pixil98/corvax-lab/internal/storage"
)

// CatalogConfig points at machine spec overrides. Each record id names the
// machine type it replaces.
type CatalogConfig struct {
	Path string `json:"path"`
}

func (c *CatalogConfig) Validate() error {
	if c.Path == "" {
		return nil
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("catalog: invalid path %q: %w", c.Path, err)
	}
	return nil
}

func (c *CatalogConfig) buildCatalog() (*sim.Catalog, error) {
	catalog := sim.DefaultCatalog()
	if c.Path == "" {
		return catalog, nil
	}

	store, err := storage.NewFileStore[*sim.MachineSpec](c.Path)
	if err != nil {
		return nil, fmt.Errorf("creating catalog store: %w", err)
	}

	err = storage.Apply(store, func(id string, spec *sim.MachineSpec) error {
		return catalog.Set(sim.MachineType(id), spec)
	})
	if err != nil {
		return nil, fmt.Errorf("applying catalog overrides: %w", err)
	}

	return catalog, nil
}
