package prompt

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"gatesim/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesReadLine(t *testing.T) {
	var out bytes.Buffer
	l := NewLines(strings.NewReader("  ls \nsave"), &out)

	in, err := l.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "ls", in.Line)

	in, err = l.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "save", in.Line)

	_, err = l.ReadLine("> ")
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "> > > ", out.String())
}

func TestLinesConfirm(t *testing.T) {
	ctx := context.Background()
	l := NewLines(strings.NewReader("y\nno\nYES\n"), io.Discard)

	for _, want := range []bool{true, false, true, false} {
		ok, err := l.Confirm(ctx, "Delete simulation", "Delete x?")
		require.NoError(t, err)
		assert.Equal(t, want, ok)
	}
}

func TestLinesPromptEdit(t *testing.T) {
	ctx := context.Background()
	fields := domain.TemplateFields{Inputs: 1, Outputs: 1, Color: "blue"}

	l := NewLines(strings.NewReader("3\n\nred\nreturn [inputs[0]]\n"), io.Discard)
	got, ok, err := l.PromptEdit(ctx, "mygate", fields)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.TemplateFields{Inputs: 3, Outputs: 1, Color: "red", Activation: "return [inputs[0]]"}, got)
}

func TestLinesPromptEditCancelled(t *testing.T) {
	fields := domain.TemplateFields{Inputs: 1, Outputs: 1, Color: "blue"}
	l := NewLines(strings.NewReader("3\n"), io.Discard)

	got, ok, err := l.PromptEdit(context.Background(), "mygate", fields)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, fields, got)
}

func TestLinesPromptEditInvalid(t *testing.T) {
	fields := domain.TemplateFields{Inputs: 1, Outputs: 1}
	l := NewLines(strings.NewReader("-2\n\n\n\n"), io.Discard)

	_, ok, err := l.PromptEdit(context.Background(), "mygate", fields)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestParseFields(t *testing.T) {
	f, err := parseFields(" 2", "1 ", " green ", "return [true]")
	require.NoError(t, err)
	assert.Equal(t, domain.TemplateFields{Inputs: 2, Outputs: 1, Color: "green", Activation: "return [true]"}, f)

	_, err = parseFields("x", "1", "", "")
	assert.ErrorContains(t, err, "inputs")
	_, err = parseFields("1", "-1", "", "")
	assert.ErrorContains(t, err, "outputs")
}
