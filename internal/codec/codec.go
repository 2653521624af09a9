// Package codec reads and writes exported circuits.
package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gatesim/internal/domain"
)

// Document is an exported simulation together with the templates its
// components reference
type Document struct {
	Name       string                `json:"name"`
	Simulation domain.Simulation     `json:"simulation"`
	Templates  []domain.GateTemplate `json:"templates,omitempty"`
}

// Importer interface for importing circuits from various formats
type Importer interface {
	Parse(r io.Reader) (*Document, error)
	Format() string
}

// Exporter interface for exporting circuits to various formats
type Exporter interface {
	Export(doc *Document, w io.Writer) error
	Format() string
}

// Codec both imports and exports
type Codec interface {
	Importer
	Exporter
}

// ForFormat returns the codec for "json" or "yaml"
func ForFormat(format string) (Codec, error) {
	switch strings.ToLower(format) {
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// ForPath picks a codec from the file extension, defaulting to JSON
func ForPath(path string) Codec {
	if c, err := ForFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return c
	}
	return NewJSONCodec()
}

func normalize(doc *Document) {
	if doc.Simulation.Components == nil {
		doc.Simulation.Components = make([]domain.ComponentState, 0)
	}
	if doc.Simulation.Wires == nil {
		doc.Simulation.Wires = make([]domain.WireState, 0)
	}
	if doc.Simulation.Scale == (domain.Vec2{}) {
		doc.Simulation.Scale = domain.DefaultViewport().Scale
	}
}
