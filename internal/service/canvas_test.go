package service

import (
	"context"
	"testing"

	"gatesim/internal/circuit"
	"gatesim/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveDropsWires(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	for _, name := range []string{"not", "not", "not"} {
		_, err := m.Add(ctx, name)
		require.NoError(t, err)
	}
	_, err := m.Connect(1, 0, 2, 0)
	require.NoError(t, err)
	_, err = m.Connect(2, 0, 3, 0)
	require.NoError(t, err)

	require.NoError(t, m.Remove(2))
	assert.Empty(t, m.Wires())
	assert.Len(t, m.Components(), 2)

	assert.ErrorIs(t, m.Remove(2), circuit.ErrUnknownComponent)
}

func TestSmartClearKeepsConnectedGates(t *testing.T) {
	ctx := context.Background()
	m, f := newTestManager(t)

	for _, name := range []string{"and", "not", "or"} {
		_, err := m.Add(ctx, name)
		require.NoError(t, err)
	}
	_, err := m.Connect(2, 0, 1, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, m.SmartClear())
	assert.Equal(t, []string{"and", "not"}, templateNames(m.Components()))
	assert.Equal(t, notification{KindSuccess, "Successfully cleared 1 unconnected gates"}, f.notifier.got[len(f.notifier.got)-1])
	assert.Zero(t, m.SmartClear())
}

func TestClearNotifies(t *testing.T) {
	ctx := context.Background()
	m, f := newTestManager(t)

	require.NoError(t, m.Eval(ctx, "add and"))
	require.NoError(t, m.Eval(ctx, "clear"))

	assert.Empty(t, m.Components())
	assert.Equal(t, notification{KindSuccess, "Successfully cleared the simulation default"}, f.notifier.got[len(f.notifier.got)-1])
	assert.Empty(t, f.notifier.errors())
}

func TestPinInteraction(t *testing.T) {
	ctx := context.Background()
	m, f := newTestManager(t)
	a, err := m.Add(ctx, "and")
	require.NoError(t, err)
	b, err := m.Add(ctx, "and")
	require.NoError(t, err)

	m.PinDown(b.Inputs[1])
	assert.NotNil(t, m.Frame().Pending)
	assert.True(t, m.PinUp(a.Outputs[0]))
	assert.Equal(t, []domain.Wire{{From: a.Outputs[0].Ref(), To: b.Inputs[1].Ref()}}, m.Wires())

	t.Run("invalid attempts are silent", func(t *testing.T) {
		m.PinDown(a.Outputs[0])
		assert.False(t, m.PinUp(b.Outputs[0]))
		m.PinDown(a.Inputs[0])
		assert.False(t, m.PinUp(a.Outputs[0]))

		assert.Len(t, m.Wires(), 1)
		assert.Nil(t, m.Frame().Pending)
		assert.Empty(t, f.notifier.errors())
	})
}

func TestDrag(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	a, err := m.Add(ctx, "and")
	require.NoError(t, err)
	_, err = m.Add(ctx, "or")
	require.NoError(t, err)

	t.Run("pans when nothing is grabbed", func(t *testing.T) {
		m.Drag(10, -4)
		assert.Equal(t, domain.Vec2{10, -4}, m.Viewport().Position)
		assert.Equal(t, domain.Vec2{0, 0}, a.Position)
	})

	t.Run("moves the grabbed gate to the front", func(t *testing.T) {
		require.True(t, m.Press(a.ID))
		m.Drag(5, 5)
		m.Release()

		assert.Equal(t, domain.Vec2{5, 5}, a.Position)
		assert.Equal(t, domain.Vec2{10, -4}, m.Viewport().Position)
		assert.Equal(t, []string{"or", "and"}, templateNames(m.Components()))
	})
}

func TestRendererSeesChanges(t *testing.T) {
	ctx := context.Background()
	m, f := newTestManager(t)
	before := len(f.renderer.frames)

	_, err := m.Add(ctx, "xor")
	require.NoError(t, err)

	require.Len(t, f.renderer.frames, before+1)
	frame := f.renderer.frames[len(f.renderer.frames)-1]
	assert.Equal(t, "default", frame.Name)
	assert.Len(t, frame.Components, 1)
	assert.True(t, frame.Dirty)
}

func TestMoveTo(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	c, err := m.AddAt(ctx, "not", domain.Vec2{3, 4})
	require.NoError(t, err)

	require.NoError(t, m.MoveTo(c.ID, domain.Vec2{-7, 8.5}))
	assert.Equal(t, domain.Vec2{-7, 8.5}, c.Position)
	assert.ErrorIs(t, m.MoveTo(42, domain.Vec2{}), circuit.ErrUnknownComponent)
}

func TestShowRequestsFrame(t *testing.T) {
	ctx := context.Background()
	m, f := newTestManager(t)

	require.NoError(t, m.Eval(ctx, "show"))
	frame := f.renderer.frames[len(f.renderer.frames)-1]
	assert.True(t, frame.Requested)
	assert.Equal(t, "default", frame.Name)
}
