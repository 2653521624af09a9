// Package loader reads gate template libraries from YAML files.
package loader

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gatesim/internal/domain"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// LibraryYAML represents the YAML file structure
type LibraryYAML struct {
	Version     string               `yaml:"version"`
	Description string               `yaml:"description,omitempty"`
	Gates       map[string]*GateYAML `yaml:"gates"`
}

// GateYAML represents a gate template in YAML format. The gate name is its
// key in the gates map.
type GateYAML struct {
	Version    string `yaml:"version,omitempty"`
	Inputs     *int   `yaml:"inputs,omitempty"`
	Outputs    *int   `yaml:"outputs,omitempty"`
	Activation string `yaml:"activation,omitempty"`
	Color      string `yaml:"color,omitempty"`
	Image      string `yaml:"image,omitempty"`
	Editable   *bool  `yaml:"editable,omitempty"`
}

// LoadYAML loads gate templates from a YAML file
func LoadYAML(path string) ([]domain.GateTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseYAML(data)
}

// ParseYAML parses gate templates from YAML bytes. Templates come back
// sorted by name. Entries that cannot be converted are skipped and reported
// together in the error.
func ParseYAML(data []byte) ([]domain.GateTemplate, error) {
	var yamlData LibraryYAML
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return convertYAMLToTemplates(&yamlData)
}

func convertYAMLToTemplates(y *LibraryYAML) ([]domain.GateTemplate, error) {
	names := make([]string, 0, len(y.Gates))
	for name := range y.Gates {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs error
	out := make([]domain.GateTemplate, 0, len(names))
	for _, name := range names {
		t, err := convertGate(name, y.Gates[name])
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		out = append(out, t)
	}
	return out, errs
}

func convertGate(name string, g *GateYAML) (domain.GateTemplate, error) {
	if strings.TrimSpace(name) == "" {
		return domain.GateTemplate{}, fmt.Errorf("gate with empty name")
	}
	t := domain.NewGateTemplate(name)
	if g == nil {
		return t, nil
	}

	if g.Version != "" {
		t.Version = g.Version
	}
	if g.Inputs != nil {
		t.Inputs = *g.Inputs
	}
	if g.Outputs != nil {
		t.Outputs = *g.Outputs
	}
	if t.Inputs < 0 || t.Outputs < 0 {
		return domain.GateTemplate{}, fmt.Errorf("gate %s: pin counts must not be negative", name)
	}
	t.Activation = g.Activation
	if g.Editable != nil {
		t.Editable = *g.Editable
	}

	switch {
	case g.Image != "" && g.Color != "":
		return domain.GateTemplate{}, fmt.Errorf("gate %s: color and image are mutually exclusive", name)
	case g.Image != "":
		t.Material = domain.Material{Mode: domain.MaterialStandardImage, Data: g.Image}
	case g.Color != "":
		t.Material = domain.Material{Mode: domain.MaterialColor, Data: g.Color}
	}
	return t, nil
}

// ExportYAML exports gate templates to YAML format
func ExportYAML(tmpls []domain.GateTemplate) ([]byte, error) {
	yamlData := &LibraryYAML{
		Version: "1",
		Gates:   make(map[string]*GateYAML, len(tmpls)),
	}

	for _, t := range tmpls {
		inputs, outputs, editable := t.Inputs, t.Outputs, t.Editable
		g := &GateYAML{
			Version:    t.Version,
			Inputs:     &inputs,
			Outputs:    &outputs,
			Activation: t.Activation,
			Editable:   &editable,
		}
		if t.Material.Mode == domain.MaterialStandardImage {
			g.Image = t.Material.Data
		} else {
			g.Color = t.Material.Data
		}
		yamlData.Gates[t.Name] = g
	}

	data, err := yaml.Marshal(yamlData)
	if err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return data, nil
}
