package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/events.yaml
var defaultData []byte

// ErrEmptyCatalog is returned when a catalog file holds no events at all.
var ErrEmptyCatalog = errors.New("catalog has no events")

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultData)
}

// LoadFile reads a catalog from a YAML file. An empty path selects the
// embedded catalog.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.Warn("Error closing catalog file", "file", path, "error", err)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(c.Upcoming) == 0 && len(c.Past) == 0 {
		return nil, ErrEmptyCatalog
	}

	if c.Details == nil {
		c.Details = make(map[string]EventDetail)
	}
	for slug, d := range c.Details {
		d.Slug = slug
		c.Details[slug] = d
	}
	return &c, nil
}
