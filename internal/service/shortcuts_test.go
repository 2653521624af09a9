package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleInput(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		keys string
		want InputMode
	}{
		{"ctrl+shift+p", ModePalette},
		{"ctrl+m", ModeCreate},
		{"ctrl+s", ModeNone},
		{"f12", ModeNone},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			m, _ := newTestManager(t)
			got, err := m.HandleInput(ctx, InputEvents{tt.keys: true})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShortcutActions(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	_, err := m.Add(ctx, "and")
	require.NoError(t, err)
	_, err = m.HandleInput(ctx, InputEvents{"ctrl+s": true})
	require.NoError(t, err)
	assert.False(t, m.Dirty())

	_, err = m.Add(ctx, "or")
	require.NoError(t, err)
	_, err = m.HandleInput(ctx, InputEvents{"ctrl+z": true})
	require.NoError(t, err)
	assert.Len(t, m.Components(), 1)

	_, err = m.HandleInput(ctx, InputEvents{"delete": true})
	require.NoError(t, err)
	assert.Empty(t, m.Components())

	_, err = m.Add(ctx, "or")
	require.NoError(t, err)
	_, err = m.HandleInput(ctx, InputEvents{"shift+delete": true, "delete": false})
	require.NoError(t, err)
	assert.Empty(t, m.Components())
}

func TestShortcutPrecedence(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	got, err := m.HandleInput(ctx, InputEvents{"ctrl+m": true, "ctrl+shift+p": true})
	require.NoError(t, err)
	assert.Equal(t, ModePalette, got)
	assert.Equal(t, "palette", got.String())
}
