package service

import (
	"context"
	"fmt"
	"strconv"

	"gatesim/internal/command"
	"gatesim/internal/domain"
)

type builtin struct {
	name  string
	usage string
	run   command.Handler[*Manager]
}

func builtins() []builtin {
	return []builtin{
		{"clear", "clear: remove every gate and wire", cmdClear},
		{"clean", "clean: remove gates without wires", cmdClean},
		{"save", "save: save the current simulation", cmdSave},
		{"ls", "ls: list saved simulations", cmdLs},
		{"help", "help: list commands", cmdHelp},
		{"refresh", "refresh: reload the current simulation", cmdRefresh},
		{"undo", "undo: go back to the last save", cmdRefresh},
		{"reload", "reload: rebuild the circuit from the current gates", cmdReload},
		{"rewind", "rewind: delete all saved state", cmdRewind},
		{"create", "create <name>: start a new simulation", cmdCreate},
		{"switch", "switch <name>: open a saved simulation", cmdSwitch},
		{"delete", "delete [name]: delete a simulation", cmdDelete},
		{"add", "add <gate> [x y]: place a gate", cmdAdd},
		{"rm", "rm <id>: remove a gate and its wires", cmdRm},
		{"top", "top <id>: draw a gate above the others", cmdTop},
		{"move", "move <id> <x> <y>: move a gate", cmdMove},
		{"connect", "connect <from> <output> <to> <input>: wire two gates", cmdConnect},
		{"wires", "wires: list wires", cmdWires},
		{"status", "status: show the current simulation", cmdStatus},
		{"show", "show: draw the canvas", cmdShow},
		{"gate", "gate new|edit|rm|ls [name]: manage gate templates", cmdGate},
		{"export", "export <path> [-json|-yaml]: write the simulation to a file", cmdExport},
		{"import", "import <path> [name]: load a simulation from a file", cmdImport},
	}
}

func registerBuiltins(in *command.Interpreter[*Manager]) {
	for _, b := range builtins() {
		in.Register(b.name, b.usage, b.run)
	}
}

func usage(m *Manager, name string) error {
	return fmt.Errorf("%w: %s", ErrUsage, m.interp.Describe(name))
}

func (m *Manager) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func cmdClear(_ context.Context, m *Manager, _, _ []string) error {
	m.Clear()
	return nil
}

func cmdClean(_ context.Context, m *Manager, _, _ []string) error {
	m.printf("removed %d gates\n", m.SmartClear())
	return nil
}

func cmdSave(ctx context.Context, m *Manager, _, _ []string) error {
	return m.Save(ctx)
}

func cmdLs(ctx context.Context, m *Manager, _, _ []string) error {
	names, err := m.Simulations(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		marker := " "
		if name == m.Name() {
			marker = "*"
		}
		m.printf("%s %s\n", marker, name)
	}
	return nil
}

func cmdHelp(_ context.Context, m *Manager, _, _ []string) error {
	for _, name := range m.interp.Names() {
		m.printf("  %s\n", m.interp.Describe(name))
	}
	return nil
}

func cmdRefresh(ctx context.Context, m *Manager, _, _ []string) error {
	return m.Refresh(ctx)
}

func cmdReload(ctx context.Context, m *Manager, _, _ []string) error {
	return m.SilentRefresh(ctx, true)
}

func cmdRewind(ctx context.Context, m *Manager, _, _ []string) error {
	return m.Rewind(ctx)
}

func cmdCreate(ctx context.Context, m *Manager, args, _ []string) error {
	if len(args) != 1 {
		return usage(m, "create")
	}
	return m.CreateSimulation(ctx, args[0])
}

func cmdSwitch(ctx context.Context, m *Manager, args, _ []string) error {
	if len(args) != 1 {
		return usage(m, "switch")
	}
	return m.SwitchTo(ctx, args[0])
}

func cmdDelete(ctx context.Context, m *Manager, args, _ []string) error {
	switch len(args) {
	case 0:
		return m.Delete(ctx, m.Name())
	case 1:
		return m.Delete(ctx, args[0])
	default:
		return usage(m, "delete")
	}
}

func cmdAdd(ctx context.Context, m *Manager, args, _ []string) error {
	switch len(args) {
	case 1:
		c, err := m.Add(ctx, args[0])
		if err != nil {
			return err
		}
		m.printf("added %s #%d at %s\n", c.Template, c.ID, c.Position)
		return nil
	case 3:
		pos, err := parseVec2(args[1], args[2])
		if err != nil {
			return err
		}
		c, err := m.AddAt(ctx, args[0], pos)
		if err != nil {
			return err
		}
		m.printf("added %s #%d at %s\n", c.Template, c.ID, c.Position)
		return nil
	default:
		return usage(m, "add")
	}
}

func cmdRm(_ context.Context, m *Manager, args, _ []string) error {
	ids, err := parseInts(args, 1)
	if err != nil {
		return usage(m, "rm")
	}
	return m.Remove(ids[0])
}

func cmdTop(_ context.Context, m *Manager, args, _ []string) error {
	ids, err := parseInts(args, 1)
	if err != nil {
		return usage(m, "top")
	}
	return m.BringToFront(ids[0])
}

func cmdMove(_ context.Context, m *Manager, args, _ []string) error {
	if len(args) != 3 {
		return usage(m, "move")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return usage(m, "move")
	}
	pos, err := parseVec2(args[1], args[2])
	if err != nil {
		return err
	}
	return m.MoveTo(id, pos)
}

func cmdConnect(_ context.Context, m *Manager, args, _ []string) error {
	n, err := parseInts(args, 4)
	if err != nil {
		return usage(m, "connect")
	}
	w, err := m.Connect(n[0], n[1], n[2], n[3])
	if err != nil {
		return err
	}
	m.printf("connected %s\n", w.Key())
	return nil
}

func cmdWires(_ context.Context, m *Manager, _, _ []string) error {
	for _, w := range m.Wires() {
		m.printf("%s\n", w.Key())
	}
	return nil
}

func cmdStatus(_ context.Context, m *Manager, _, _ []string) error {
	state := "saved"
	if m.Dirty() {
		state = "unsaved changes"
	}
	m.printf("%s: %d gates, %d wires, %s\n", m.Name(), len(m.Components()), len(m.Wires()), state)
	return nil
}

func cmdShow(_ context.Context, m *Manager, _, _ []string) error {
	frame := m.Frame()
	frame.Requested = true
	m.renderer.Render(frame)
	return nil
}

func cmdGate(ctx context.Context, m *Manager, args, _ []string) error {
	if len(args) == 0 {
		return usage(m, "gate")
	}
	if args[0] == "ls" {
		list, err := m.templates.List(ctx)
		if err != nil {
			return err
		}
		for _, t := range list {
			m.printf("  %-10s in=%d out=%d editable=%t\n", t.Name, t.Inputs, t.Outputs, t.Editable)
		}
		return nil
	}
	if len(args) != 2 {
		return usage(m, "gate")
	}

	name := args[1]
	switch args[0] {
	case "new":
		if _, err := m.templates.CreateEmpty(ctx, name, m.dialog); err != nil {
			return err
		}
		m.notifier.Notify(KindSuccess, fmt.Sprintf("Created gate %s", name))
	case "edit":
		_, ok, err := m.templates.Edit(ctx, name, m.dialog)
		if err != nil {
			return err
		}
		if ok {
			m.notifier.Notify(KindSuccess, fmt.Sprintf("Updated gate %s", name))
		}
	case "rm":
		if err := m.templates.Delete(ctx, name); err != nil {
			return err
		}
		m.notifier.Notify(KindSuccess, fmt.Sprintf("Deleted gate %s", name))
	default:
		return usage(m, "gate")
	}
	return nil
}

func cmdExport(ctx context.Context, m *Manager, args, flags []string) error {
	if len(args) != 1 {
		return usage(m, "export")
	}
	format := ""
	cmd := command.Command{Flags: flags}
	switch {
	case cmd.HasFlag(m.interp.Marker(), "yaml"):
		format = "yaml"
	case cmd.HasFlag(m.interp.Marker(), "json"):
		format = "json"
	}
	return m.ExportFile(ctx, args[0], format)
}

func cmdImport(ctx context.Context, m *Manager, args, _ []string) error {
	switch len(args) {
	case 1:
		return m.ImportFile(ctx, args[0], "")
	case 2:
		return m.ImportFile(ctx, args[0], args[1])
	default:
		return usage(m, "import")
	}
}

func parseInts(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, ErrUsage
	}
	out := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseVec2(x, y string) (domain.Vec2, error) {
	fx, err := strconv.ParseFloat(x, 64)
	if err != nil {
		return domain.Vec2{}, fmt.Errorf("invalid x coordinate %q", x)
	}
	fy, err := strconv.ParseFloat(y, 64)
	if err != nil {
		return domain.Vec2{}, fmt.Errorf("invalid y coordinate %q", y)
	}
	return domain.Vec2{fx, fy}, nil
}
