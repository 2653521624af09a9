package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gatesim/internal/domain"

	"github.com/charmbracelet/huh"
)

// Forms asks questions with interactive terminal forms
type Forms struct {
	accessible bool
}

// NewForms creates a form based dialog. Accessible mode replaces the
// widgets with plain prompts for screen readers.
func NewForms(accessible bool) *Forms {
	return &Forms{accessible: accessible}
}

func (f *Forms) run(ctx context.Context, groups ...*huh.Group) (bool, error) {
	err := huh.NewForm(groups...).
		WithAccessible(f.accessible).
		RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Confirm asks a yes/no question
func (f *Forms) Confirm(ctx context.Context, title, content string) (bool, error) {
	var ok bool
	confirm := huh.NewConfirm().
		Title(title).
		Description(content).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)

	answered, err := f.run(ctx, huh.NewGroup(confirm))
	if err != nil || !answered {
		return false, err
	}
	return ok, nil
}

// PromptEdit shows the editable fields of a template in one form
func (f *Forms) PromptEdit(ctx context.Context, name string, fields domain.TemplateFields) (domain.TemplateFields, bool, error) {
	inputs := strconv.Itoa(fields.Inputs)
	outputs := strconv.Itoa(fields.Outputs)
	color := fields.Color
	activation := fields.Activation

	group := huh.NewGroup(
		huh.NewInput().Title("Inputs").Value(&inputs).Validate(validatePinCount),
		huh.NewInput().Title("Outputs").Value(&outputs).Validate(validatePinCount),
		huh.NewInput().Title("Color").Value(&color),
		huh.NewText().Title("Activation").Value(&activation),
	).Title(fmt.Sprintf("Edit %s", name))

	answered, err := f.run(ctx, group)
	if err != nil || !answered {
		return fields, false, err
	}
	edited, err := parseFields(inputs, outputs, color, activation)
	if err != nil {
		return fields, false, err
	}
	return edited, true, nil
}

func validatePinCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	if n < 0 {
		return fmt.Errorf("pin count cannot be negative")
	}
	return nil
}

func parseFields(inputs, outputs, color, activation string) (domain.TemplateFields, error) {
	if err := validatePinCount(inputs); err != nil {
		return domain.TemplateFields{}, fmt.Errorf("inputs: %w", err)
	}
	if err := validatePinCount(outputs); err != nil {
		return domain.TemplateFields{}, fmt.Errorf("outputs: %w", err)
	}
	in, _ := strconv.Atoi(strings.TrimSpace(inputs))
	out, _ := strconv.Atoi(strings.TrimSpace(outputs))
	return domain.TemplateFields{
		Activation: activation,
		Inputs:     in,
		Outputs:    out,
		Color:      strings.TrimSpace(color),
	}, nil
}
