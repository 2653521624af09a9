package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gatesim/internal/command"
	"gatesim/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalBuildsCircuit(t *testing.T) {
	ctx := context.Background()
	m, f := newTestManager(t)

	for _, line := range []string{
		"add and",
		"add not 200 10",
		"connect 1 0 2 0",
		"wires",
	} {
		require.NoError(t, m.Eval(ctx, line), line)
	}

	assert.Equal(t, []string{"and", "not"}, templateNames(m.Components()))
	c, ok := m.Component(2)
	require.True(t, ok)
	assert.Equal(t, domain.Vec2{200, 10}, c.Position)
	assert.Contains(t, f.out.String(), "1:0->2:0")
}

func TestEvalUnknownCommand(t *testing.T) {
	ctx := context.Background()
	m, f := newTestManager(t)

	err := m.Eval(ctx, "explode now")
	assert.ErrorIs(t, err, command.ErrUnknownCommand)
	require.Len(t, f.notifier.errors(), 1)
	assert.Contains(t, f.notifier.errors()[0], "explode now")
	assert.Equal(t, []string{"explode now"}, m.History().Entries())
}

func TestEvalReportsOnce(t *testing.T) {
	ctx := context.Background()
	m, f := newTestManager(t)

	assert.Error(t, m.Eval(ctx, "switch ghost"))
	assert.Len(t, f.notifier.errors(), 1)
}

func TestEvalUsageErrors(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	for _, line := range []string{"create", "rm x", "connect 1 2", "move 1 2", "add", "gate", "gate frob x"} {
		t.Run(line, func(t *testing.T) {
			assert.ErrorIs(t, m.Eval(ctx, line), ErrUsage)
		})
	}
}

func TestHistoryBoundThroughEval(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	for i := 0; i < 20; i++ {
		_ = m.Eval(ctx, "status "+strings.Repeat("x", i))
	}
	assert.Equal(t, 10, m.History().Len())

	_ = m.Eval(ctx, "status "+strings.Repeat("x", 15))
	assert.Equal(t, 10, m.History().Len())
	assert.Equal(t, "status "+strings.Repeat("x", 19), m.History().Entries()[9])
}

func TestLsAndHelp(t *testing.T) {
	ctx := context.Background()
	m, f := newTestManager(t)
	require.NoError(t, m.CreateSimulation(ctx, "alpha"))

	f.out.Reset()
	require.NoError(t, m.Eval(ctx, "ls"))
	assert.Equal(t, "* alpha\n  default\n", f.out.String())

	f.out.Reset()
	require.NoError(t, m.Eval(ctx, "help"))
	for _, name := range m.Commands().Names() {
		assert.Contains(t, f.out.String(), name)
	}
}

func TestStatusReportsUnsavedChanges(t *testing.T) {
	ctx := context.Background()
	m, f := newTestManager(t)

	require.NoError(t, m.Eval(ctx, "status"))
	assert.Contains(t, f.out.String(), "saved")
	assert.NotContains(t, f.out.String(), "unsaved")

	require.NoError(t, m.Eval(ctx, "add or"))
	f.out.Reset()
	require.NoError(t, m.Eval(ctx, "status"))
	assert.Equal(t, "default: 1 gates, 0 wires, unsaved changes\n", f.out.String())
}

func TestGateCommands(t *testing.T) {
	ctx := context.Background()
	m, f := newTestManager(t)
	f.dialog.edit = true
	f.dialog.fields = domain.TemplateFields{Activation: "return [a]", Inputs: 2, Outputs: 3, Color: "teal"}

	require.NoError(t, m.Eval(ctx, "gate new adder"))
	tmpl, ok, err := m.Templates().Get(ctx, "adder")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, tmpl.Outputs)

	f.out.Reset()
	require.NoError(t, m.Eval(ctx, "gate ls"))
	assert.Contains(t, f.out.String(), "adder")

	require.NoError(t, m.Eval(ctx, "gate rm adder"))
	_, ok, err = m.Templates().Get(ctx, "adder")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Error(t, m.Eval(ctx, "gate edit and"))
}

func TestExportImportCommands(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "circuit.out")

	require.NoError(t, m.Eval(ctx, "add and"))
	require.NoError(t, m.Eval(ctx, "add not"))
	require.NoError(t, m.Eval(ctx, "connect 2 0 1 0"))
	require.NoError(t, m.Eval(ctx, "export "+path+" -yaml"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "components:")

	yamlPath := filepath.Join(dir, "circuit.yaml")
	require.NoError(t, os.WriteFile(yamlPath, data, 0o644))
	require.NoError(t, m.Eval(ctx, "import "+yamlPath+" copy"))

	assert.Equal(t, "copy", m.Name())
	assert.Equal(t, []string{"and", "not"}, templateNames(m.Components()))
	assert.Len(t, m.Wires(), 1)
}
