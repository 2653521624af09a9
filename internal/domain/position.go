package domain

import "fmt"

// Vec2 is an (x, y) pair used for positions and scales
type Vec2 [2]float64

// X returns the first coordinate
func (v Vec2) X() float64 { return v[0] }

// Y returns the second coordinate
func (v Vec2) Y() float64 { return v[1] }

// Add returns v translated by (dx, dy)
func (v Vec2) Add(dx, dy float64) Vec2 {
	return Vec2{v[0] + dx, v[1] + dy}
}

func (v Vec2) String() string {
	return fmt.Sprintf("[%g,%g]", v[0], v[1])
}

// Viewport is the pan/zoom state of the canvas a simulation is drawn on
type Viewport struct {
	Position Vec2 `json:"position" yaml:"position"`
	Scale    Vec2 `json:"scale" yaml:"scale"`
}

// DefaultViewport returns the viewport of a freshly created simulation
func DefaultViewport() Viewport {
	return Viewport{
		Position: Vec2{0, 0},
		Scale:    Vec2{1, 1},
	}
}

// Pan moves the viewport by the given delta
func (v *Viewport) Pan(dx, dy float64) {
	v.Position = v.Position.Add(dx, dy)
}
