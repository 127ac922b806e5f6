// Package file loads a whole ability catalog from a single YAML, JSON or
// TOML file.
package file

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aretw0/abilitree/pkg/adapters/memory"
	"github.com/aretw0/abilitree/pkg/domain"
	"github.com/aretw0/abilitree/pkg/schema"
	"gopkg.in/yaml.v3"
)

// Format is a catalog encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported catalog extension %q", filepath.Ext(path))
}

// Supported reports whether path has a catalog extension this package reads.
func Supported(path string) bool {
	_, err := FormatOf(path)
	return err == nil
}

// Loader serves the classes of one catalog file. The file is read once.
type Loader struct {
	*memory.Loader
	Path    string
	Catalog *domain.Catalog
}

// New reads and decodes the catalog at path.
func New(path string) (*Loader, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog load failed (%s): %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	cat, err := Decode(name, format, data)
	if err != nil {
		return nil, fmt.Errorf("catalog parse failed (%s): %w", path, err)
	}

	return &Loader{
		Loader:  memory.NewLoader(cat),
		Path:    path,
		Catalog: cat,
	}, nil
}

// Decode parses data in the given format and decodes it into a catalog.
func Decode(name string, format Format, data []byte) (*domain.Catalog, error) {
	raw := make(map[string]any)
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
	return schema.DecodeCatalog(name, raw)
}
