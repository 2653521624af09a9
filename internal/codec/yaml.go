package codec

import (
	"fmt"
	"io"

	"gatesim/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlDocument flattens the simulation into the top level of the file
type yamlDocument struct {
	Name       string                `yaml:"name"`
	Position   []float64             `yaml:"position,flow"`
	Scale      []float64             `yaml:"scale,flow"`
	Components []yamlComponent       `yaml:"components"`
	Wires      []yamlWire            `yaml:"wires"`
	Templates  []domain.GateTemplate `yaml:"templates,omitempty"`
}

type yamlComponent struct {
	ID       int       `yaml:"id"`
	Template string    `yaml:"template"`
	Position []float64 `yaml:"position,flow"`
	Scale    []float64 `yaml:"scale,flow"`
}

// yamlWire writes each end as a [component, index] pair
type yamlWire struct {
	From []int `yaml:"from,flow"`
	To   []int `yaml:"to,flow"`
}

// Parse imports a circuit from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*Document, error) {
	var yd yamlDocument
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&yd); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	doc := &Document{
		Name:      yd.Name,
		Templates: yd.Templates,
	}
	sim := &doc.Simulation

	var err error
	if sim.Position, err = toVec2(yd.Position, "position"); err != nil {
		return nil, err
	}
	if sim.Scale, err = toVec2(yd.Scale, "scale"); err != nil {
		return nil, err
	}

	for _, yc := range yd.Components {
		pos, err := toVec2(yc.Position, fmt.Sprintf("component %d position", yc.ID))
		if err != nil {
			return nil, err
		}
		scale, err := toVec2(yc.Scale, fmt.Sprintf("component %d scale", yc.ID))
		if err != nil {
			return nil, err
		}
		sim.Components = append(sim.Components, domain.ComponentState{
			ID:       yc.ID,
			Template: yc.Template,
			Position: pos,
			Scale:    scale,
		})
	}

	for i, yw := range yd.Wires {
		if len(yw.From) != 2 || len(yw.To) != 2 {
			return nil, fmt.Errorf("wire %d: endpoints must be [component, index] pairs", i)
		}
		sim.Wires = append(sim.Wires, domain.WireState{
			From: domain.PinRef{Owner: yw.From[0], Index: yw.From[1]},
			To:   domain.PinRef{Owner: yw.To[0], Index: yw.To[1]},
		})
	}

	normalize(doc)
	return doc, nil
}

// Export writes a circuit as YAML
func (c *YAMLCodec) Export(doc *Document, w io.Writer) error {
	sim := doc.Simulation
	yd := yamlDocument{
		Name:       doc.Name,
		Position:   sim.Position[:],
		Scale:      sim.Scale[:],
		Components: make([]yamlComponent, 0, len(sim.Components)),
		Wires:      make([]yamlWire, 0, len(sim.Wires)),
		Templates:  doc.Templates,
	}
	for _, cs := range sim.Components {
		yd.Components = append(yd.Components, yamlComponent{
			ID:       cs.ID,
			Template: cs.Template,
			Position: []float64{cs.Position[0], cs.Position[1]},
			Scale:    []float64{cs.Scale[0], cs.Scale[1]},
		})
	}
	for _, ws := range sim.Wires {
		yd.Wires = append(yd.Wires, yamlWire{
			From: []int{ws.From.Owner, ws.From.Index},
			To:   []int{ws.To.Owner, ws.To.Index},
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(yd); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}

func toVec2(v []float64, what string) (domain.Vec2, error) {
	switch len(v) {
	case 0:
		return domain.Vec2{}, nil
	case 2:
		return domain.Vec2{v[0], v[1]}, nil
	default:
		return domain.Vec2{}, fmt.Errorf("%s: expected 2 numbers, got %d", what, len(v))
	}
}
