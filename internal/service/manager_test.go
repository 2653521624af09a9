package service

import (
	"context"
	"testing"

	"gatesim/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSavesDefaultOnFirstRun(t *testing.T) {
	ctx := context.Background()
	m, f := newTestManager(t)

	assert.Equal(t, "default", m.Name())
	names, err := m.Simulations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, names)
	assert.False(t, m.Dirty())
	assert.Empty(t, f.notifier.errors())
}

func TestNewRequiresBackend(t *testing.T) {
	_, err := New(context.Background(), Deps{}, DefaultOptions())
	assert.Error(t, err)
}

func TestNewRestoresPreviousSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	m := f.manager(t)

	require.NoError(t, m.Eval(ctx, "add and"))
	require.NoError(t, m.Eval(ctx, "add not"))
	require.NoError(t, m.Eval(ctx, "connect 1 0 2 0"))
	require.NoError(t, m.Save(ctx))

	reopened := f.manager(t)
	assert.Equal(t, []string{"and", "not"}, templateNames(reopened.Components()))
	assert.Len(t, reopened.Wires(), 1)
	assert.Equal(t, []string{"add and", "add not", "connect 1 0 2 0"}, reopened.History().Entries())
	assert.False(t, reopened.Dirty())
}

func TestCreateSimulation(t *testing.T) {
	ctx := context.Background()

	t.Run("new name needs no confirmation", func(t *testing.T) {
		m, f := newTestManager(t)
		_, err := m.Add(ctx, "and")
		require.NoError(t, err)

		require.NoError(t, m.CreateSimulation(ctx, "test"))
		assert.Empty(t, f.dialog.confirms)
		assert.Equal(t, "test", m.Name())
		assert.Empty(t, m.Components())

		stored, ok, err := m.sims.Get(ctx, "test")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, domain.EmptySimulation(), stored)

		previous, _, err := m.sims.Get(ctx, "default")
		require.NoError(t, err)
		assert.Len(t, previous.Components, 1)
	})

	t.Run("overwrite declined", func(t *testing.T) {
		m, f := newTestManager(t)
		require.NoError(t, m.CreateSimulation(ctx, "test"))
		require.NoError(t, m.SwitchTo(ctx, "default"))

		f.dialog.answers = []bool{false}
		require.NoError(t, m.CreateSimulation(ctx, "test"))
		assert.Equal(t, []string{"Overwrite simulation"}, f.dialog.confirms)
		assert.Equal(t, "default", m.Name())
	})

	t.Run("overwrite confirmed", func(t *testing.T) {
		m, f := newTestManager(t)
		require.NoError(t, m.CreateSimulation(ctx, "test"))
		_, err := m.Add(ctx, "not")
		require.NoError(t, err)
		require.NoError(t, m.Save(ctx))
		require.NoError(t, m.SwitchTo(ctx, "default"))

		f.dialog.answers = []bool{true}
		require.NoError(t, m.CreateSimulation(ctx, "test"))
		assert.Equal(t, "test", m.Name())
		assert.Empty(t, m.Components())
	})

	t.Run("recreating the current simulation discards it", func(t *testing.T) {
		m, f := newTestManager(t)
		_, err := m.Add(ctx, "not")
		require.NoError(t, err)

		f.dialog.answers = []bool{true}
		require.NoError(t, m.CreateSimulation(ctx, "default"))
		assert.Empty(t, m.Components())

		stored, _, err := m.sims.Get(ctx, "default")
		require.NoError(t, err)
		assert.Empty(t, stored.Components)
	})

	t.Run("blank name", func(t *testing.T) {
		m, f := newTestManager(t)
		assert.ErrorIs(t, m.CreateSimulation(ctx, "  "), ErrEmptyName)
		assert.Len(t, f.notifier.errors(), 1)
	})
}

func TestSwitchTo(t *testing.T) {
	ctx := context.Background()

	t.Run("loads stored state", func(t *testing.T) {
		m, _ := newTestManager(t)
		_, err := m.Add(ctx, "and")
		require.NoError(t, err)
		require.NoError(t, m.CreateSimulation(ctx, "other"))

		require.NoError(t, m.SwitchTo(ctx, "default"))
		assert.Equal(t, []string{"and"}, templateNames(m.Components()))
		assert.False(t, m.Dirty())
	})

	t.Run("missing name still changes selection", func(t *testing.T) {
		m, f := newTestManager(t)
		_, err := m.Add(ctx, "and")
		require.NoError(t, err)

		err = m.SwitchTo(ctx, "ghost")
		assert.ErrorIs(t, err, ErrSimulationNotFound)
		assert.Equal(t, "ghost", m.Name())
		assert.Empty(t, m.Components())
		assert.Len(t, f.notifier.errors(), 1)
	})
}

func TestSaveAndRefresh(t *testing.T) {
	ctx := context.Background()
	m, f := newTestManager(t)

	_, err := m.Add(ctx, "and")
	require.NoError(t, err)
	_, err = m.Add(ctx, "not")
	require.NoError(t, err)
	_, err = m.Connect(2, 0, 1, 1)
	require.NoError(t, err)
	assert.True(t, m.Dirty())

	require.NoError(t, m.Save(ctx))
	assert.False(t, m.Dirty())
	assert.Equal(t, notification{KindSuccess, "Saved the simulation default"}, f.notifier.got[len(f.notifier.got)-1])

	m.Clear()
	assert.True(t, m.Dirty())

	require.NoError(t, m.Refresh(ctx))
	assert.Len(t, m.Components(), 2)
	assert.Equal(t, []domain.Wire{{
		From: domain.PinRef{Owner: 2, Index: 0},
		To:   domain.PinRef{Owner: 1, Index: 1},
	}}, m.Wires())
	assert.False(t, m.Dirty())
}

func TestRefreshWithoutStoredState(t *testing.T) {
	ctx := context.Background()
	m, f := newTestManager(t)
	require.NoError(t, m.Eval(ctx, "ls"))
	require.NoError(t, m.Save(ctx))

	require.Error(t, m.SwitchTo(ctx, "ghost"))
	_, err := m.Add(ctx, "and")
	require.NoError(t, err)
	m.History().Restore([]string{"unsaved-only"})

	require.NoError(t, m.Refresh(ctx))
	assert.Len(t, m.Components(), 1)
	assert.Equal(t, []string{"ls"}, m.History().Entries())
	assert.Equal(t, notification{KindSuccess, "Successfully refreshed the simulation ghost"}, f.notifier.got[len(f.notifier.got)-1])
}

func TestSilentRefreshKeepsUnsavedWork(t *testing.T) {
	ctx := context.Background()
	m, f := newTestManager(t)
	require.NoError(t, m.Save(ctx))

	_, err := m.Add(ctx, "and")
	require.NoError(t, err)
	_, err = m.Add(ctx, "not")
	require.NoError(t, err)
	_, err = m.Connect(2, 0, 1, 0)
	require.NoError(t, err)
	m.History().Restore([]string{"unsaved-only"})
	before := len(f.notifier.got)

	require.NoError(t, m.SilentRefresh(ctx, false))
	assert.Equal(t, []string{"and", "not"}, templateNames(m.Components()))
	assert.Equal(t, []domain.Wire{{
		From: domain.PinRef{Owner: 2, Index: 0},
		To:   domain.PinRef{Owner: 1, Index: 0},
	}}, m.Wires())
	assert.True(t, m.Dirty())
	assert.Equal(t, []string{"unsaved-only"}, m.History().Entries())
	assert.Len(t, f.notifier.got, before)

	require.NoError(t, m.SilentRefresh(ctx, true))
	assert.Equal(t, notification{KindSuccess, "Successfully refreshed the simulation default"}, f.notifier.got[len(f.notifier.got)-1])
}

func TestSilentRefreshRederivesPins(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	_, err := m.Templates().CreateEmpty(ctx, "mux", nil)
	require.NoError(t, err)
	c, err := m.Add(ctx, "mux")
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx))

	_, err = m.Templates().Patch(ctx, "mux", domain.TemplateFields{Inputs: 3, Outputs: 1, Color: "red"})
	require.NoError(t, err)
	assert.Len(t, c.Inputs, 1)

	require.NoError(t, m.SilentRefresh(ctx, true))
	reloaded, ok := m.Component(c.ID)
	require.True(t, ok)
	assert.Len(t, reloaded.Inputs, 3)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("last simulation creates a fallback", func(t *testing.T) {
		m, f := newTestManager(t)
		f.dialog.answers = []bool{true}

		require.NoError(t, m.Delete(ctx, "default"))
		assert.Equal(t, "default(1)", m.Name())
		names, err := m.Simulations(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"default(1)"}, names)
	})

	t.Run("current switches to another simulation", func(t *testing.T) {
		m, f := newTestManager(t)
		_, err := m.Add(ctx, "and")
		require.NoError(t, err)
		require.NoError(t, m.CreateSimulation(ctx, "scratch"))

		f.dialog.answers = []bool{true}
		require.NoError(t, m.Delete(ctx, "scratch"))
		assert.Equal(t, "default", m.Name())
		assert.Len(t, m.Components(), 1)

		names, err := m.Simulations(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"default"}, names)
	})

	t.Run("other simulation keeps the canvas", func(t *testing.T) {
		m, f := newTestManager(t)
		require.NoError(t, m.CreateSimulation(ctx, "scratch"))
		_, err := m.Add(ctx, "not")
		require.NoError(t, err)

		f.dialog.answers = []bool{true}
		require.NoError(t, m.Delete(ctx, "default"))
		assert.Equal(t, "scratch", m.Name())
		assert.Len(t, m.Components(), 1)
	})

	t.Run("declined", func(t *testing.T) {
		m, f := newTestManager(t)
		require.NoError(t, m.Delete(ctx, "default"))
		assert.Equal(t, []string{"Delete simulation"}, f.dialog.confirms)

		names, err := m.Simulations(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"default"}, names)
	})

	t.Run("missing", func(t *testing.T) {
		m, f := newTestManager(t)
		assert.ErrorIs(t, m.Delete(ctx, "ghost"), ErrSimulationNotFound)
		assert.Empty(t, f.dialog.confirms)
	})
}

func TestFallbackName(t *testing.T) {
	tests := []struct {
		taken []string
		want  string
	}{
		{nil, "default"},
		{[]string{"other"}, "default"},
		{[]string{"default"}, "default(1)"},
		{[]string{"default", "default(1)", "default(3)"}, "default(2)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fallbackName("default", tt.taken))
	}
}

func TestRewind(t *testing.T) {
	ctx := context.Background()
	m, f := newTestManager(t)
	require.NoError(t, m.CreateSimulation(ctx, "a"))
	require.NoError(t, m.Eval(ctx, "add and"))
	_, err := m.Templates().CreateEmpty(ctx, "custom", nil)
	require.NoError(t, err)

	f.dialog.answers = []bool{true}
	require.NoError(t, m.Rewind(ctx))

	assert.Equal(t, "default", m.Name())
	assert.Empty(t, m.Components())
	assert.Empty(t, m.History().Entries())

	names, err := m.Simulations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, names)

	_, ok, err := m.Templates().Get(ctx, "custom")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = m.Templates().Get(ctx, "and")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSimulationListEvents(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	var lists [][]string
	m.Events().Subscribe(func(e Event) {
		if e.Type == EventSimulationsChanged {
			lists = append(lists, e.Payload.([]string))
		}
	})

	require.NoError(t, m.CreateSimulation(ctx, "b"))
	require.NotEmpty(t, lists)
	assert.Equal(t, []string{"b", "default"}, lists[0])
}

func TestLoadReportsMissingTemplates(t *testing.T) {
	ctx := context.Background()
	m, f := newTestManager(t)
	_, err := m.Templates().CreateEmpty(ctx, "tmp", nil)
	require.NoError(t, err)
	_, err = m.Add(ctx, "tmp")
	require.NoError(t, err)
	_, err = m.Add(ctx, "and")
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx))
	require.NoError(t, m.Templates().Delete(ctx, "tmp"))

	err = m.Refresh(ctx)
	assert.Error(t, err)
	assert.Equal(t, []string{"and"}, templateNames(m.Components()))
	assert.Len(t, f.notifier.errors(), 1)
}
