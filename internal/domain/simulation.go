package domain

// Simulation is the persisted state of a named circuit
type Simulation struct {
	Components []ComponentState `json:"components" yaml:"components"`
	Wires      []WireState      `json:"wires" yaml:"wires"`
	Position   Vec2             `json:"position" yaml:"position"`
	Scale      Vec2             `json:"scale" yaml:"scale"`
}

// EmptySimulation returns the state written for a newly created simulation
func EmptySimulation() Simulation {
	vp := DefaultViewport()
	return Simulation{
		Components: make([]ComponentState, 0),
		Wires:      make([]WireState, 0),
		Position:   vp.Position,
		Scale:      vp.Scale,
	}
}

// Viewport returns the viewport stored in the simulation
func (s Simulation) Viewport() Viewport {
	return Viewport{Position: s.Position, Scale: s.Scale}
}
