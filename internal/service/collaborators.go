package service

import (
	"context"

	"gatesim/internal/domain"
	"gatesim/internal/templates"
)

// Kind classifies a notification
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notifier shows short messages to the user
type Notifier interface {
	Notify(kind Kind, message string)
}

// Dialog asks the user for decisions. Both methods block until the user
// answers.
type Dialog interface {
	Confirm(ctx context.Context, title, content string) (bool, error)
	templates.Editor
}

// Frame is everything a renderer needs to draw the canvas
type Frame struct {
	Name       string
	Components []*domain.Component
	Wires      []domain.Wire
	Pending    *domain.Pin
	Viewport   domain.Viewport
	Dirty      bool
	// Requested is set when the user asked to see the canvas
	Requested bool
}

// Renderer draws frames
type Renderer interface {
	Render(frame Frame)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Kind, string) {}

type nopRenderer struct{}

func (nopRenderer) Render(Frame) {}

// denyDialog declines every request
type denyDialog struct{}

func (denyDialog) Confirm(context.Context, string, string) (bool, error) {
	return false, nil
}

func (denyDialog) PromptEdit(_ context.Context, _ string, fields domain.TemplateFields) (domain.TemplateFields, bool, error) {
	return fields, false, nil
}
