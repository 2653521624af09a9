package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gatesim/internal/circuit"
	"gatesim/internal/command"
	"gatesim/internal/domain"
	"gatesim/internal/repository"
	"gatesim/internal/store"
	"gatesim/internal/templates"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// SettingCurrentSimulation is the settings key holding the selected simulation
const SettingCurrentSimulation = "main"

// Options tune the Manager
type Options struct {
	// DefaultName is selected on first run and used as the fallback after
	// deleting the last simulation
	DefaultName string
	// FlagMarker prefixes command flags
	FlagMarker string
	// HistorySize bounds the command history
	HistorySize int
	// SeedBuiltins stores the built-in gates when no template exists
	SeedBuiltins bool
	Canvas       circuit.Options
}

// DefaultOptions returns the standard manager options
func DefaultOptions() Options {
	return Options{
		DefaultName:  "default",
		FlagMarker:   command.DefaultFlagMarker,
		HistorySize:  command.DefaultHistorySize,
		SeedBuiltins: true,
		Canvas:       circuit.DefaultOptions(),
	}
}

// Deps are the collaborators of a Manager. Only Backend is required.
type Deps struct {
	Backend   repository.Backend
	Templates *templates.Store
	Dialog    Dialog
	Notifier  Notifier
	Renderer  Renderer
	// Output receives the text printed by commands such as ls and help
	Output io.Writer
	Logger *zap.Logger
}

// Manager owns the circuit being edited and the simulations it is saved as
type Manager struct {
	opts    Options
	logger  *zap.Logger
	backend repository.Backend

	templates *templates.Store
	sims      *store.Store[domain.Simulation]
	historyKV *store.Store[string]
	current   *store.Field[string]

	graph    *circuit.Graph
	wires    *circuit.WireManager
	viewport domain.Viewport

	history   *command.History
	interp    *command.Interpreter[*Manager]
	shortcuts []Shortcut

	dialog   Dialog
	notifier Notifier
	renderer Renderer
	out      io.Writer
	bus      *EventBus

	saved   Fingerprint
	loading bool
}

// New builds a Manager over deps.Backend and loads the selected simulation.
// On first run the empty default simulation is saved so there is always at
// least one stored simulation. Load problems are reported, not returned.
func New(ctx context.Context, deps Deps, opts Options) (*Manager, error) {
	if deps.Backend == nil {
		return nil, fmt.Errorf("manager requires a storage backend")
	}
	if opts.DefaultName == "" {
		opts.DefaultName = DefaultOptions().DefaultName
	}

	m := &Manager{
		opts:     opts,
		logger:   deps.Logger,
		backend:  deps.Backend,
		dialog:   deps.Dialog,
		notifier: deps.Notifier,
		renderer: deps.Renderer,
		out:      deps.Output,
		bus:      NewEventBus(),
		viewport: domain.DefaultViewport(),
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.dialog == nil {
		m.dialog = denyDialog{}
	}
	if m.notifier == nil {
		m.notifier = nopNotifier{}
	}
	if m.renderer == nil {
		m.renderer = nopRenderer{}
	}
	if m.out == nil {
		m.out = io.Discard
	}

	var err error
	m.templates = deps.Templates
	if m.templates == nil {
		if m.templates, err = templates.New(ctx, deps.Backend, m.logger.Named("templates")); err != nil {
			return nil, err
		}
	}
	if m.sims, err = store.NewJSON[domain.Simulation](ctx, deps.Backend, repository.NamespaceSimulations); err != nil {
		return nil, err
	}
	if m.historyKV, err = store.NewJSON[string](ctx, deps.Backend, repository.NamespaceHistory); err != nil {
		return nil, err
	}
	m.current, err = store.NewField(ctx, deps.Backend, store.Schema[string]{
		Namespace: repository.NamespaceSettings,
		Key:       SettingCurrentSimulation,
		Default:   opts.DefaultName,
	})
	if err != nil {
		return nil, err
	}

	m.graph = circuit.NewGraph(m.templates, opts.Canvas, m.logger.Named("graph"))
	m.wires = circuit.NewWireManager(m.logger.Named("wires"))
	m.wires.OnUpdate(m.changed)

	m.history = command.NewHistory(opts.HistorySize)
	m.interp = command.NewInterpreter[*Manager](opts.FlagMarker)
	registerBuiltins(m.interp)
	m.shortcuts = DefaultShortcuts()

	m.sims.OnChange(func(keys []string) {
		m.bus.Publish(Event{Type: EventSimulationsChanged, Payload: keys})
	})
	m.templates.OnChange(func(keys []string) {
		m.bus.Publish(Event{Type: EventTemplatesChanged, Payload: keys})
	})

	if opts.SeedBuiltins {
		if _, err := m.templates.SeedBuiltins(ctx); err != nil {
			m.logger.Warn("failed to seed built-in gates", zap.Error(err))
		}
	}

	m.markClean(m.State())
	if err := m.firstRun(ctx); err != nil {
		m.logger.Warn("initial load incomplete", zap.Error(err))
	}
	return m, nil
}

func (m *Manager) firstRun(ctx context.Context) error {
	names, err := m.sims.Ls(ctx)
	if err != nil {
		return m.fail(err)
	}
	if len(names) == 0 {
		m.logger.Info("no saved simulations, saving the current one", zap.String("simulation", m.Name()))
		return m.save(ctx)
	}
	if err := m.loadHistory(ctx); err != nil {
		return m.fail(err)
	}
	return m.Refresh(ctx)
}

// Name returns the name of the current simulation
func (m *Manager) Name() string {
	return m.current.Get()
}

// Events returns the manager's event bus
func (m *Manager) Events() *EventBus {
	return m.bus
}

// Templates returns the gate template store
func (m *Manager) Templates() *templates.Store {
	return m.templates
}

// History returns the command history
func (m *Manager) History() *command.History {
	return m.history
}

// Commands returns the command interpreter
func (m *Manager) Commands() *command.Interpreter[*Manager] {
	return m.interp
}

// State returns the serializable snapshot of the canvas
func (m *Manager) State() domain.Simulation {
	return domain.Simulation{
		Components: m.graph.Serialize(),
		Wires:      m.wires.Serialize(),
		Position:   m.viewport.Position,
		Scale:      m.viewport.Scale,
	}
}

// Simulations returns the stored simulation names
func (m *Manager) Simulations(ctx context.Context) ([]string, error) {
	return m.sims.Ls(ctx)
}

// CreateSimulation stores an empty simulation under name and switches to it.
// Overwriting an existing simulation needs confirmation; a declined
// confirmation leaves everything unchanged.
func (m *Manager) CreateSimulation(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return m.fail(ErrEmptyName)
	}

	ok, err := m.confirmOverwrite(ctx, name)
	if err != nil || !ok {
		return err
	}
	return m.create(ctx, name, domain.EmptySimulation())
}

func (m *Manager) confirmOverwrite(ctx context.Context, name string) (bool, error) {
	exists, err := m.sims.Has(ctx, name)
	if err != nil {
		return false, m.fail(err)
	}
	if !exists {
		return true, nil
	}
	ok, err := m.dialog.Confirm(ctx, "Overwrite simulation",
		fmt.Sprintf("Simulation %s already exists. Do you want to overwrite it?", name))
	if err != nil {
		return false, m.fail(fmt.Errorf("failed to confirm overwrite of %s: %w", name, err))
	}
	return ok, nil
}

// create writes sim under name, saves the current simulation when it is a
// different one, then switches and reloads
func (m *Manager) create(ctx context.Context, name string, sim domain.Simulation) error {
	if err := m.sims.Set(ctx, name, sim); err != nil {
		return m.fail(fmt.Errorf("failed to create simulation %s: %w", name, err))
	}
	if name != m.Name() {
		if err := m.Save(ctx); err != nil {
			return err
		}
	}
	if err := m.current.Set(ctx, name); err != nil {
		return m.fail(err)
	}

	m.logger.Info("simulation created", zap.String("simulation", name))
	m.bus.Publish(Event{Type: EventSimulationCreated, Payload: name})
	return m.Refresh(ctx)
}

// SwitchTo selects name and loads its stored state. When nothing is stored
// under name the selection still changes, the canvas is cleared and
// ErrSimulationNotFound is reported.
func (m *Manager) SwitchTo(ctx context.Context, name string) error {
	if err := m.current.Set(ctx, name); err != nil {
		return m.fail(err)
	}

	sim, ok, err := m.sims.Get(ctx, name)
	if err != nil {
		return m.fail(err)
	}
	if !ok {
		m.load(ctx, domain.EmptySimulation())
		m.markClean(m.State())
		return m.fail(fmt.Errorf("%w: %s", ErrSimulationNotFound, name))
	}

	m.logger.Info("switched simulation", zap.String("simulation", name))
	loadErr := m.load(ctx, sim)
	m.markClean(sim)
	return m.fail(loadErr)
}

// Save persists the command history and the canvas under the current name
func (m *Manager) Save(ctx context.Context) error {
	if err := m.save(ctx); err != nil {
		return err
	}
	m.notifier.Notify(KindSuccess, fmt.Sprintf("Saved the simulation %s", m.Name()))
	return nil
}

func (m *Manager) save(ctx context.Context) error {
	if err := m.saveHistory(ctx); err != nil {
		return m.fail(fmt.Errorf("failed to save command history: %w", err))
	}

	name := m.Name()
	state := m.State()
	if err := m.sims.Set(ctx, name, state); err != nil {
		return m.fail(fmt.Errorf("failed to save simulation %s: %w", name, err))
	}
	m.markClean(state)

	m.logger.Info("simulation saved",
		zap.String("simulation", name),
		zap.Int("components", len(state.Components)),
		zap.Int("wires", len(state.Wires)))
	m.bus.Publish(Event{Type: EventSimulationSaved, Payload: name})
	return nil
}

// Refresh reloads the current simulation from storage, when one is stored,
// and rehydrates the command history. It reports success either way.
func (m *Manager) Refresh(ctx context.Context) error {
	name := m.Name()
	sim, ok, err := m.sims.Get(ctx, name)
	if err != nil {
		return m.fail(err)
	}

	var errs error
	if ok {
		errs = m.load(ctx, sim)
		m.markClean(sim)
	}
	errs = multierr.Append(errs, m.loadHistory(ctx))
	if errs != nil {
		return m.fail(errs)
	}

	m.logger.Info("simulation refreshed", zap.String("simulation", name), zap.Bool("stored", ok))
	m.notifier.Notify(KindSuccess, fmt.Sprintf("Successfully refreshed the simulation %s", name))
	return nil
}

// SilentRefresh rebuilds the canvas from its live state, re-deriving pins
// from the current templates. Unsaved work is kept and stays unsaved.
// Success is only reported when verbose is set.
func (m *Manager) SilentRefresh(ctx context.Context, verbose bool) error {
	name := m.Name()
	if err := m.load(ctx, m.State()); err != nil {
		return m.fail(err)
	}

	m.logger.Info("simulation rebuilt", zap.String("simulation", name))
	if verbose {
		m.notifier.Notify(KindSuccess, fmt.Sprintf("Successfully refreshed the simulation %s", name))
	}
	return nil
}

// Delete removes a stored simulation after confirmation. Deleting the current
// simulation first switches to another stored one, or to a new fallback
// simulation when none is left.
func (m *Manager) Delete(ctx context.Context, name string) error {
	exists, err := m.sims.Has(ctx, name)
	if err != nil {
		return m.fail(err)
	}
	if !exists {
		return m.fail(fmt.Errorf("%w: %s", ErrSimulationNotFound, name))
	}

	ok, err := m.dialog.Confirm(ctx, "Delete simulation",
		fmt.Sprintf("This will permanently delete the simulation %s. Continue?", name))
	if err != nil {
		return m.fail(fmt.Errorf("failed to confirm deletion of %s: %w", name, err))
	}
	if !ok {
		return nil
	}

	if name == m.Name() {
		if err := m.leave(ctx, name); err != nil {
			return err
		}
	}

	if err := m.sims.Delete(ctx, name); err != nil {
		return m.fail(fmt.Errorf("failed to delete simulation %s: %w", name, err))
	}
	m.logger.Info("simulation deleted", zap.String("simulation", name))
	m.bus.Publish(Event{Type: EventSimulationDeleted, Payload: name})
	m.notifier.Notify(KindSuccess, fmt.Sprintf("Deleted the simulation %s", name))
	return nil
}

// leave moves off name before it is deleted
func (m *Manager) leave(ctx context.Context, name string) error {
	names, err := m.sims.Ls(ctx)
	if err != nil {
		return m.fail(err)
	}
	for _, other := range names {
		if other != name {
			return m.SwitchTo(ctx, other)
		}
	}
	return m.create(ctx, fallbackName(m.opts.DefaultName, names), domain.EmptySimulation())
}

// fallbackName returns base, or base(n) with the smallest n not in taken
func fallbackName(base string, taken []string) string {
	used := make(map[string]bool, len(taken))
	for _, t := range taken {
		used[t] = true
	}
	if !used[base] {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s(%d)", base, i)
		if !used[candidate] {
			return candidate
		}
	}
}

// Rewind deletes every piece of locally persisted state after confirmation
// and starts over with an empty default simulation
func (m *Manager) Rewind(ctx context.Context) error {
	ok, err := m.dialog.Confirm(ctx, "Rewind",
		"This will delete all saved simulations, gates and history. Continue?")
	if err != nil {
		return m.fail(err)
	}
	if !ok {
		return nil
	}

	if err := m.backend.Clear(ctx); err != nil {
		return m.fail(fmt.Errorf("failed to clear storage: %w", err))
	}
	errs := multierr.Combine(
		m.sims.Reload(ctx),
		m.historyKV.Reload(ctx),
		m.templates.Reload(ctx),
	)
	if errs != nil {
		return m.fail(errs)
	}

	m.history.Restore(nil)
	m.load(ctx, domain.EmptySimulation())
	if err := m.current.Set(ctx, m.opts.DefaultName); err != nil {
		return m.fail(err)
	}
	if m.opts.SeedBuiltins {
		if _, err := m.templates.SeedBuiltins(ctx); err != nil {
			return m.fail(err)
		}
	}

	m.logger.Info("local state rewound")
	m.bus.Publish(Event{Type: EventStateRewound})
	return m.Save(ctx)
}

// Eval records line in the history and runs it. Unknown commands and
// handler failures are reported through the notifier.
func (m *Manager) Eval(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	m.history.Push(line)
	m.logger.Debug("eval", zap.String("line", line))
	return m.fail(m.interp.Eval(ctx, m, line))
}

// load replaces the canvas with sim. Components or wires that cannot be
// rebuilt are skipped and returned as a combined error.
func (m *Manager) load(ctx context.Context, sim domain.Simulation) error {
	m.loading = true
	m.wires.Dispose()
	_, errs := m.graph.Deserialize(ctx, sim.Components)
	errs = multierr.Append(errs, m.wires.Deserialize(sim.Wires, m.graph))
	m.viewport = sim.Viewport()
	m.loading = false

	m.bus.Publish(Event{Type: EventSimulationLoaded, Payload: m.Name()})
	m.changed()
	return errs
}

func (m *Manager) saveHistory(ctx context.Context) error {
	entries := m.history.Entries()
	for i, e := range entries {
		if err := m.historyKV.Set(ctx, strconv.Itoa(i), e); err != nil {
			return err
		}
	}

	keys, err := m.historyKV.Ls(ctx)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if i, err := strconv.Atoi(k); err != nil || i >= len(entries) {
			if err := m.historyKV.Delete(ctx, k); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Manager) loadHistory(ctx context.Context) error {
	keys, err := m.historyKV.Ls(ctx)
	if err != nil {
		return err
	}

	type indexed struct {
		i    int
		line string
	}
	var rows []indexed
	for _, k := range keys {
		i, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		line, ok, err := m.historyKV.Get(ctx, k)
		if err != nil {
			return err
		}
		if ok {
			rows = append(rows, indexed{i, line})
		}
	}
	sort.Slice(rows, func(a, b int) bool { return rows[a].i < rows[b].i })

	entries := make([]string, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.line)
	}
	m.history.Restore(entries)
	return nil
}
