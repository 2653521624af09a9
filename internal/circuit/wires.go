package circuit

import (
	"fmt"

	"gatesim/internal/domain"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ComponentLookup resolves component ids to live components
type ComponentLookup interface {
	Get(id int) (*domain.Component, bool)
}

// WireManager owns the wires of a circuit and the pending connection slots
type WireManager struct {
	logger *zap.Logger

	wires []domain.Wire
	start *domain.Pin
	end   *domain.Pin

	listeners []func()
	batching  bool
}

// NewWireManager creates an empty wire manager
func NewWireManager(logger *zap.Logger) *WireManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WireManager{logger: logger}
}

// SetStart fills the start slot
func (m *WireManager) SetStart(p domain.Pin) {
	m.start = &p
}

// SetEnd fills the end slot
func (m *WireManager) SetEnd(p domain.Pin) {
	m.end = &p
}

// Pending returns the contents of the two slots; nil means empty
func (m *WireManager) Pending() (start, end *domain.Pin) {
	return m.start, m.end
}

// TryResolve turns the two pending pins into a wire. The output pin always
// becomes the wire's source regardless of slot. A wire already feeding the
// target input is replaced. Rejected attempts clear both slots and add
// nothing; a missing slot leaves the other slot untouched.
func (m *WireManager) TryResolve() (domain.Wire, error) {
	if m.start == nil || m.end == nil {
		return domain.Wire{}, ErrIncompleteConnection
	}
	a, b := *m.start, *m.end
	m.start, m.end = nil, nil

	if a.Owner == b.Owner {
		return domain.Wire{}, ErrSelfLoop
	}
	if a.Role == b.Role {
		return domain.Wire{}, ErrRoleMismatch
	}

	from, to := a, b
	if from.Role != domain.PinOutput {
		from, to = to, from
	}
	w := domain.NewWire(from, to)

	m.wires = removeWires(m.wires, func(existing domain.Wire) bool {
		return existing.FeedsInput(w.To)
	})
	m.wires = append(m.wires, w)

	m.logger.Debug("wire resolved", zap.String("wire", w.Key()))
	m.update()
	return w, nil
}

// Connect is SetStart, SetEnd and TryResolve in one call
func (m *WireManager) Connect(start, end domain.Pin) (domain.Wire, error) {
	m.SetStart(start)
	m.SetEnd(end)
	return m.TryResolve()
}

// Wires returns a copy of the wire list
func (m *WireManager) Wires() []domain.Wire {
	out := make([]domain.Wire, len(m.wires))
	copy(out, m.wires)
	return out
}

// Len returns the number of wires
func (m *WireManager) Len() int {
	return len(m.wires)
}

// Touches reports whether any wire has an end on the component
func (m *WireManager) Touches(componentID int) bool {
	for _, w := range m.wires {
		if w.Touches(componentID) {
			return true
		}
	}
	return false
}

// RemoveWiresOf drops every wire touching the component
func (m *WireManager) RemoveWiresOf(componentID int) int {
	before := len(m.wires)
	m.wires = removeWires(m.wires, func(w domain.Wire) bool {
		return w.Touches(componentID)
	})
	removed := before - len(m.wires)
	if removed > 0 {
		m.update()
	}
	return removed
}

// Dispose clears every wire and both pending slots
func (m *WireManager) Dispose() {
	m.wires = nil
	m.start, m.end = nil, nil
}

// OnUpdate registers a listener called after the wire set changes
func (m *WireManager) OnUpdate(fn func()) func() {
	m.listeners = append(m.listeners, fn)
	idx := len(m.listeners) - 1
	return func() {
		m.listeners[idx] = nil
	}
}

func (m *WireManager) update() {
	if m.batching {
		return
	}
	for _, fn := range m.listeners {
		if fn != nil {
			fn()
		}
	}
}

// Serialize returns the wires as id/index pairs
func (m *WireManager) Serialize() []domain.WireState {
	return m.Wires()
}

// Deserialize replaces the wire set with states resolved against the live
// components, going through the same TryResolve path as interactive wiring.
// Wires that cannot be resolved are skipped and reported in the returned error.
// Listeners are notified once at the end.
func (m *WireManager) Deserialize(states []domain.WireState, components ComponentLookup) error {
	m.Dispose()

	m.batching = true
	var errs error
	for _, s := range states {
		from, err := resolvePin(components, s.From, domain.PinOutput)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("wire %s: %w", s.Key(), err))
			continue
		}
		to, err := resolvePin(components, s.To, domain.PinInput)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("wire %s: %w", s.Key(), err))
			continue
		}
		if _, err := m.Connect(from, to); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("wire %s: %w", s.Key(), err))
		}
	}
	m.batching = false

	if len(states) > 0 {
		m.update()
	}
	return errs
}

func resolvePin(components ComponentLookup, ref domain.PinRef, role domain.PinRole) (domain.Pin, error) {
	c, ok := components.Get(ref.Owner)
	if !ok {
		return domain.Pin{}, fmt.Errorf("%w: %d", ErrUnknownComponent, ref.Owner)
	}
	pin, ok := c.Pin(role, ref.Index)
	if !ok {
		return domain.Pin{}, fmt.Errorf("%w: %s %d of component %d", ErrPinOutOfRange, role, ref.Index, ref.Owner)
	}
	return pin, nil
}

func removeWires(in []domain.Wire, drop func(domain.Wire) bool) []domain.Wire {
	out := make([]domain.Wire, 0, len(in))
	for _, w := range in {
		if !drop(w) {
			out = append(out, w)
		}
	}
	return out
}
