package domain

// MaterialMode selects how a component body is filled
type MaterialMode string

const (
	MaterialColor         MaterialMode = "color"
	MaterialStandardImage MaterialMode = "standard_image"
)

// Material describes the appearance of a gate
type Material struct {
	Mode MaterialMode `json:"mode" yaml:"mode" validate:"required,oneof=color standard_image"`
	Data string       `json:"data" yaml:"data"`
}

const (
	DefaultTemplateVersion = "1.0.0"
	DefaultTemplateColor   = "blue"
)

// GateTemplate is a reusable gate definition referenced by name from components
type GateTemplate struct {
	Name       string   `json:"name" yaml:"name" validate:"required"`
	Version    string   `json:"version" yaml:"version"`
	Inputs     int      `json:"inputs" yaml:"inputs" validate:"gte=0,lte=64"`
	Outputs    int      `json:"outputs" yaml:"outputs" validate:"gte=0,lte=64"`
	Activation string   `json:"activation" yaml:"activation"`
	Editable   bool     `json:"editable" yaml:"editable"`
	Material   Material `json:"material" yaml:"material"`
}

// NewGateTemplate returns the default editable 1-input/1-output template
func NewGateTemplate(name string) GateTemplate {
	return GateTemplate{
		Name:       name,
		Version:    DefaultTemplateVersion,
		Inputs:     1,
		Outputs:    1,
		Activation: "",
		Editable:   true,
		Material: Material{
			Mode: MaterialColor,
			Data: DefaultTemplateColor,
		},
	}
}

// TemplateFields are the user-editable fields of a template
type TemplateFields struct {
	Activation string
	Inputs     int
	Outputs    int
	Color      string
}

// Fields extracts the editable fields of the template
func (t GateTemplate) Fields() TemplateFields {
	return TemplateFields{
		Activation: t.Activation,
		Inputs:     t.Inputs,
		Outputs:    t.Outputs,
		Color:      t.Material.Data,
	}
}

// WithFields returns a copy of the template with the edited fields applied
func (t GateTemplate) WithFields(f TemplateFields) GateTemplate {
	t.Activation = f.Activation
	t.Inputs = f.Inputs
	t.Outputs = f.Outputs
	t.Material = Material{Mode: MaterialColor, Data: f.Color}
	return t
}
