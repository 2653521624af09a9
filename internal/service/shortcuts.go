package service

import "context"

// InputEvents holds the named key combinations active in one input event,
// such as "ctrl+s"
type InputEvents map[string]bool

// InputMode tells the caller which prompt to open after a shortcut
type InputMode int

const (
	ModeNone InputMode = iota
	// ModeCreate asks for the name of a new simulation
	ModeCreate
	// ModePalette opens the command prompt
	ModePalette
)

func (im InputMode) String() string {
	switch im {
	case ModeCreate:
		return "create"
	case ModePalette:
		return "palette"
	default:
		return "none"
	}
}

// Shortcut binds a key combination to a manager action
type Shortcut struct {
	Keys        string
	Description string
	Run         func(ctx context.Context, m *Manager) (InputMode, error)
}

func action(fn func(ctx context.Context, m *Manager) error) func(context.Context, *Manager) (InputMode, error) {
	return func(ctx context.Context, m *Manager) (InputMode, error) {
		return ModeNone, fn(ctx, m)
	}
}

func mode(im InputMode) func(context.Context, *Manager) (InputMode, error) {
	return func(context.Context, *Manager) (InputMode, error) {
		return im, nil
	}
}

// DefaultShortcuts returns the standard key bindings. Order matters: the
// first binding whose keys are active wins.
func DefaultShortcuts() []Shortcut {
	return []Shortcut{
		{"ctrl+shift+p", "open the command palette", mode(ModePalette)},
		{"ctrl+s", "save", action(func(ctx context.Context, m *Manager) error { return m.Save(ctx) })},
		{"ctrl+z", "undo to the last save", action(func(ctx context.Context, m *Manager) error { return m.Refresh(ctx) })},
		{"ctrl+r", "reload the circuit", action(func(ctx context.Context, m *Manager) error { return m.SilentRefresh(ctx, true) })},
		{"shift+delete", "clear the canvas", action(func(_ context.Context, m *Manager) error { m.Clear(); return nil })},
		{"delete", "remove unconnected gates", action(func(_ context.Context, m *Manager) error { m.SmartClear(); return nil })},
		{"ctrl+m", "create a simulation", mode(ModeCreate)},
	}
}

// Shortcuts returns the active key bindings
func (m *Manager) Shortcuts() []Shortcut {
	return m.shortcuts
}

// HandleInput runs the first shortcut whose keys are active in ev
func (m *Manager) HandleInput(ctx context.Context, ev InputEvents) (InputMode, error) {
	for _, s := range m.shortcuts {
		if ev[s.Keys] {
			return s.Run(ctx, m)
		}
	}
	return ModeNone, nil
}
