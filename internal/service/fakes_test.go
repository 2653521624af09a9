package service

import (
	"bytes"
	"context"
	"testing"

	"gatesim/internal/domain"
	"gatesim/internal/repository"
	"gatesim/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

type scriptedDialog struct {
	answers  []bool
	confirms []string
	fields   domain.TemplateFields
	edit     bool
}

func (d *scriptedDialog) Confirm(_ context.Context, title, _ string) (bool, error) {
	d.confirms = append(d.confirms, title)
	if len(d.answers) == 0 {
		return false, nil
	}
	answer := d.answers[0]
	d.answers = d.answers[1:]
	return answer, nil
}

func (d *scriptedDialog) PromptEdit(_ context.Context, _ string, fields domain.TemplateFields) (domain.TemplateFields, bool, error) {
	if !d.edit {
		return fields, false, nil
	}
	return d.fields, true, nil
}

type notification struct {
	kind    Kind
	message string
}

type recordingNotifier struct {
	got []notification
}

func (n *recordingNotifier) Notify(kind Kind, message string) {
	n.got = append(n.got, notification{kind, message})
}

func (n *recordingNotifier) errors() []string {
	var out []string
	for _, g := range n.got {
		if g.kind == KindError {
			out = append(out, g.message)
		}
	}
	return out
}

type recordingRenderer struct {
	frames []Frame
}

func (r *recordingRenderer) Render(f Frame) {
	r.frames = append(r.frames, f)
}

type fixture struct {
	backend  repository.Backend
	dialog   *scriptedDialog
	notifier *recordingNotifier
	renderer *recordingRenderer
	out      *bytes.Buffer
}

func newFixture() *fixture {
	return &fixture{
		backend:  memory.New(),
		dialog:   &scriptedDialog{},
		notifier: &recordingNotifier{},
		renderer: &recordingRenderer{},
		out:      &bytes.Buffer{},
	}
}

func (f *fixture) manager(t *testing.T) *Manager {
	t.Helper()
	m, err := New(context.Background(), Deps{
		Backend:  f.backend,
		Dialog:   f.dialog,
		Notifier: f.notifier,
		Renderer: f.renderer,
		Output:   f.out,
	}, DefaultOptions())
	require.NoError(t, err)
	return m
}

func newTestManager(t *testing.T) (*Manager, *fixture) {
	t.Helper()
	f := newFixture()
	return f.manager(t), f
}

func templateNames(components []*domain.Component) []string {
	out := make([]string, 0, len(components))
	for _, c := range components {
		out = append(out, c.Template)
	}
	return out
}
