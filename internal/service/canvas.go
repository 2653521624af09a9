package service

import (
	"context"
	"errors"
	"fmt"

	"gatesim/internal/circuit"
	"gatesim/internal/domain"

	"go.uber.org/zap"
)

// Components returns the components in render order
func (m *Manager) Components() []*domain.Component {
	return m.graph.Components()
}

// Component looks a component up by id
func (m *Manager) Component(id int) (*domain.Component, bool) {
	return m.graph.Get(id)
}

// Wires returns the current wires
func (m *Manager) Wires() []domain.Wire {
	return m.wires.Wires()
}

// Viewport returns the canvas viewport
func (m *Manager) Viewport() domain.Viewport {
	return m.viewport
}

// Frame returns what the renderer is given after each change
func (m *Manager) Frame() Frame {
	start, _ := m.wires.Pending()
	return Frame{
		Name:       m.Name(),
		Components: m.graph.Components(),
		Wires:      m.wires.Wires(),
		Pending:    start,
		Viewport:   m.viewport,
		Dirty:      m.Dirty(),
	}
}

// changed publishes a circuit change and redraws
func (m *Manager) changed() {
	if m.loading {
		return
	}
	m.bus.Publish(Event{Type: EventCircuitChanged, Payload: m.Name()})
	m.renderer.Render(m.Frame())
}

// Clear removes every component and wire
func (m *Manager) Clear() {
	m.wires.Dispose()
	m.graph.Clear()
	m.changed()
	m.notifier.Notify(KindSuccess, fmt.Sprintf("Successfully cleared the simulation %s", m.Name()))
}

// SmartClear removes every component without wires and returns how many
// went away
func (m *Manager) SmartClear() int {
	n := m.graph.SmartClear(m.wires.Touches)
	if n > 0 {
		m.changed()
	}
	m.notifier.Notify(KindSuccess, fmt.Sprintf("Successfully cleared %d unconnected gates", n))
	return n
}

// Add places a component at the default position
func (m *Manager) Add(ctx context.Context, template string) (*domain.Component, error) {
	c, err := m.graph.Add(ctx, template)
	if err != nil {
		return nil, m.fail(err)
	}
	m.changed()
	return c, nil
}

// AddAt places a component at position
func (m *Manager) AddAt(ctx context.Context, template string, position domain.Vec2) (*domain.Component, error) {
	c, err := m.graph.AddAt(ctx, template, position)
	if err != nil {
		return nil, m.fail(err)
	}
	m.changed()
	return c, nil
}

// Remove deletes a component together with every wire touching it
func (m *Manager) Remove(id int) error {
	if _, ok := m.graph.Get(id); !ok {
		return m.fail(fmt.Errorf("%w: %d", circuit.ErrUnknownComponent, id))
	}
	m.loading = true
	m.wires.RemoveWiresOf(id)
	m.loading = false
	m.graph.Remove(id)
	m.changed()
	return nil
}

// BringToFront draws a component last
func (m *Manager) BringToFront(id int) error {
	if !m.graph.BringToFront(id) {
		return m.fail(fmt.Errorf("%w: %d", circuit.ErrUnknownComponent, id))
	}
	m.changed()
	return nil
}

// MoveTo places a component at an absolute position
func (m *Manager) MoveTo(id int, position domain.Vec2) error {
	c, ok := m.graph.Get(id)
	if !ok {
		return m.fail(fmt.Errorf("%w: %d", circuit.ErrUnknownComponent, id))
	}
	c.Move(position.X()-c.Position.X(), position.Y()-c.Position.Y())
	m.changed()
	return nil
}

// Connect wires output pin out of component from to input pin in of
// component to
func (m *Manager) Connect(from, out, to, in int) (domain.Wire, error) {
	src, err := m.pin(from, domain.PinOutput, out)
	if err != nil {
		return domain.Wire{}, m.fail(err)
	}
	dst, err := m.pin(to, domain.PinInput, in)
	if err != nil {
		return domain.Wire{}, m.fail(err)
	}
	w, err := m.wires.Connect(src, dst)
	if err != nil {
		return domain.Wire{}, m.fail(err)
	}
	return w, nil
}

func (m *Manager) pin(id int, role domain.PinRole, index int) (domain.Pin, error) {
	c, ok := m.graph.Get(id)
	if !ok {
		return domain.Pin{}, fmt.Errorf("%w: %d", circuit.ErrUnknownComponent, id)
	}
	p, ok := c.Pin(role, index)
	if !ok {
		return domain.Pin{}, fmt.Errorf("%w: %s %d of component %d", circuit.ErrPinOutOfRange, role, index, id)
	}
	return p, nil
}

// PinDown starts a connection attempt at p
func (m *Manager) PinDown(p domain.Pin) {
	m.wires.SetStart(p)
}

// PinUp finishes the connection attempt at p. Invalid connections are
// dropped without a notification. It reports whether a wire was created.
func (m *Manager) PinUp(p domain.Pin) bool {
	m.wires.SetEnd(p)
	_, err := m.wires.TryResolve()
	switch {
	case err == nil:
		return true
	case errors.Is(err, circuit.ErrSelfLoop), errors.Is(err, circuit.ErrRoleMismatch), errors.Is(err, circuit.ErrIncompleteConnection):
		m.logger.Debug("connection discarded", zap.Stringer("pin", p), zap.Error(err))
	default:
		m.fail(err)
	}
	return false
}

// Press grabs a component with the pointer
func (m *Manager) Press(id int) bool {
	return m.graph.Press(id)
}

// Release lets go of every grabbed component
func (m *Manager) Release() {
	m.graph.Release()
}

// Drag moves the grabbed components, or pans the viewport when nothing is
// grabbed
func (m *Manager) Drag(dx, dy float64) {
	if m.graph.Drag(dx, dy) == 0 {
		m.viewport.Pan(dx, dy)
	}
	m.changed()
}
