package domain

// Component is a gate instance placed on the canvas
type Component struct {
	ID       int
	Template string
	Version  string
	Position Vec2
	Scale    Vec2
	Material Material

	// UI state, never persisted
	Clicked bool
	IsOnTop bool

	Inputs  []Pin
	Outputs []Pin
}

// ComponentState is the persisted form of a Component. Pins are rebuilt from
// the template on load.
type ComponentState struct {
	ID       int    `json:"id" yaml:"id"`
	Template string `json:"template" yaml:"template"`
	Position Vec2   `json:"position" yaml:"position"`
	Scale    Vec2   `json:"scale" yaml:"scale"`
}

// NewComponent instantiates a component from a template. Pin counts are
// copied from the template and do not follow later template edits.
func NewComponent(id int, tmpl GateTemplate, position, scale Vec2) *Component {
	return &Component{
		ID:       id,
		Template: tmpl.Name,
		Version:  tmpl.Version,
		Position: position,
		Scale:    scale,
		Material: tmpl.Material,
		Inputs:   NewPins(id, PinInput, tmpl.Inputs),
		Outputs:  NewPins(id, PinOutput, tmpl.Outputs),
	}
}

// State returns the serializable state of the component
func (c *Component) State() ComponentState {
	return ComponentState{
		ID:       c.ID,
		Template: c.Template,
		Position: c.Position,
		Scale:    c.Scale,
	}
}

// Pins returns the pins of the given role
func (c *Component) Pins(role PinRole) []Pin {
	if role == PinOutput {
		return c.Outputs
	}
	return c.Inputs
}

// Pin looks up a pin by role and index
func (c *Component) Pin(role PinRole, index int) (Pin, bool) {
	pins := c.Pins(role)
	if index < 0 || index >= len(pins) {
		return Pin{}, false
	}
	return pins[index], true
}

// Move translates the component by the given delta
func (c *Component) Move(dx, dy float64) {
	c.Position = c.Position.Add(dx, dy)
}
