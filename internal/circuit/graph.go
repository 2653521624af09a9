package circuit

import (
	"context"
	"fmt"

	"gatesim/internal/domain"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Templates resolves gate templates by name
type Templates interface {
	Get(ctx context.Context, name string) (domain.GateTemplate, bool, error)
}

// Options control placement of new components
type Options struct {
	// Offset is the per-component step of the default placement rule
	Offset float64
	// Scale is the size given to new components
	Scale domain.Vec2
}

// DefaultOptions returns the standard placement: 50px steps, 100x100 gates
func DefaultOptions() Options {
	return Options{
		Offset: 50,
		Scale:  domain.Vec2{100, 100},
	}
}

// Graph holds the placed components in render order
type Graph struct {
	opts      Options
	templates Templates
	logger    *zap.Logger

	components []*domain.Component
	index      map[int]*domain.Component
	nextID     int
	onTop      *domain.Component
}

// NewGraph creates an empty graph resolving templates through t
func NewGraph(t Templates, opts Options, logger *zap.Logger) *Graph {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Graph{
		opts:      opts,
		templates: t,
		logger:    logger,
		index:     make(map[int]*domain.Component),
		nextID:    1,
	}
}

// Add places a new component at the default position: offset*count on both axes
func (g *Graph) Add(ctx context.Context, template string) (*domain.Component, error) {
	step := g.opts.Offset * float64(len(g.components))
	return g.AddAt(ctx, template, domain.Vec2{step, step})
}

// AddAt places a new component at position
func (g *Graph) AddAt(ctx context.Context, template string, position domain.Vec2) (*domain.Component, error) {
	tmpl, err := g.lookup(ctx, template)
	if err != nil {
		return nil, err
	}

	c := domain.NewComponent(g.nextID, tmpl, position, g.opts.Scale)
	g.nextID++
	g.insert(c)

	g.logger.Debug("component added",
		zap.Int("id", c.ID),
		zap.String("template", c.Template),
		zap.Stringer("position", c.Position))
	return c, nil
}

func (g *Graph) lookup(ctx context.Context, name string) (domain.GateTemplate, error) {
	tmpl, ok, err := g.templates.Get(ctx, name)
	if err != nil {
		return domain.GateTemplate{}, fmt.Errorf("failed to load template %s: %w", name, err)
	}
	if !ok {
		return domain.GateTemplate{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return tmpl, nil
}

func (g *Graph) insert(c *domain.Component) {
	g.components = append(g.components, c)
	g.index[c.ID] = c
}

// Get looks a component up by id
func (g *Graph) Get(id int) (*domain.Component, bool) {
	c, ok := g.index[id]
	return c, ok
}

// Components returns the components in render order, back to front
func (g *Graph) Components() []*domain.Component {
	out := make([]*domain.Component, len(g.components))
	copy(out, g.components)
	return out
}

// Len returns the number of components
func (g *Graph) Len() int {
	return len(g.components)
}

// Remove deletes a component. Wires touching it are the caller's concern.
func (g *Graph) Remove(id int) bool {
	c, ok := g.index[id]
	if !ok {
		return false
	}
	delete(g.index, id)
	g.components = filter(g.components, func(other *domain.Component) bool {
		return other != c
	})
	if g.onTop == c {
		g.onTop = nil
	}
	return true
}

// Clear removes every component
func (g *Graph) Clear() {
	g.components = nil
	g.index = make(map[int]*domain.Component)
	g.onTop = nil
}

// SmartClear removes every component for which connected returns false and
// returns how many were removed
func (g *Graph) SmartClear(connected func(id int) bool) int {
	before := len(g.components)
	g.components = filter(g.components, func(c *domain.Component) bool {
		if connected(c.ID) {
			return true
		}
		delete(g.index, c.ID)
		if g.onTop == c {
			g.onTop = nil
		}
		return false
	})
	return before - len(g.components)
}

// BringToFront moves a component to the end of the render order
func (g *Graph) BringToFront(id int) bool {
	c, ok := g.index[id]
	if !ok {
		return false
	}
	if g.onTop != nil {
		g.onTop.IsOnTop = false
	}
	g.onTop = c
	c.IsOnTop = true

	if g.components[len(g.components)-1] == c {
		return true
	}
	g.components = append(g.components, c)
	g.removeDuplicates(c)
	return true
}

// removeDuplicates keeps only the last occurrence of c in the render order
func (g *Graph) removeDuplicates(c *domain.Component) {
	last := -1
	for i, other := range g.components {
		if other == c {
			last = i
		}
	}
	out := g.components[:0]
	for i, other := range g.components {
		if other == c && i != last {
			continue
		}
		out = append(out, other)
	}
	g.components = out
}

// Press marks a component as grabbed by the pointer
func (g *Graph) Press(id int) bool {
	c, ok := g.index[id]
	if !ok {
		return false
	}
	c.Clicked = true
	return true
}

// Release lets go of every grabbed component
func (g *Graph) Release() {
	for _, c := range g.components {
		c.Clicked = false
	}
}

// Drag moves every grabbed component by (dx, dy) and brings the last one to
// the front. It returns the number of components moved.
func (g *Graph) Drag(dx, dy float64) int {
	var moved []*domain.Component
	for _, c := range g.components {
		if c.Clicked {
			c.Move(dx, dy)
			moved = append(moved, c)
		}
	}
	if len(moved) > 0 {
		g.BringToFront(moved[len(moved)-1].ID)
	}
	return len(moved)
}

// Serialize returns the state of every component in render order
func (g *Graph) Serialize() []domain.ComponentState {
	states := make([]domain.ComponentState, 0, len(g.components))
	for _, c := range g.components {
		states = append(states, c.State())
	}
	return states
}

// Deserialize replaces the graph contents with components rebuilt from
// states. Pins come from each template's current pin counts. Components whose
// template cannot be resolved are skipped and reported in the returned error.
func (g *Graph) Deserialize(ctx context.Context, states []domain.ComponentState) ([]*domain.Component, error) {
	g.Clear()
	g.nextID = 1

	var errs error
	for _, s := range states {
		if _, dup := g.index[s.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("duplicate component id %d", s.ID))
			continue
		}
		tmpl, err := g.lookup(ctx, s.Template)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("component %d: %w", s.ID, err))
			continue
		}

		c := domain.NewComponent(s.ID, tmpl, s.Position, s.Scale)
		g.insert(c)
		if s.ID >= g.nextID {
			g.nextID = s.ID + 1
		}
	}

	return g.Components(), errs
}

func filter(in []*domain.Component, keep func(*domain.Component) bool) []*domain.Component {
	out := in[:0]
	for _, c := range in {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
