// Package templates stores gate templates keyed by name.
package templates

import (
	"context"
	"errors"
	"fmt"

	"gatesim/internal/circuit"
	"gatesim/internal/domain"
	"gatesim/internal/repository"
	"gatesim/internal/store"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	// ErrTemplateNotFound is returned when a named template is not stored
	ErrTemplateNotFound = circuit.ErrTemplateNotFound
	// ErrNotEditable is returned when editing a built-in template
	ErrNotEditable = errors.New("template is not editable")
)

// Editor opens a template's fields for editing. ok is false when the user
// cancelled.
type Editor interface {
	PromptEdit(ctx context.Context, name string, fields domain.TemplateFields) (patched domain.TemplateFields, ok bool, err error)
}

// Store is the gate template store
type Store struct {
	kv       *store.Store[domain.GateTemplate]
	validate *validator.Validate
	logger   *zap.Logger
}

// New opens the template namespace of backend
func New(ctx context.Context, backend repository.Backend, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	kv, err := store.NewJSON[domain.GateTemplate](ctx, backend, repository.NamespaceTemplates)
	if err != nil {
		return nil, err
	}
	return &Store{
		kv:       kv,
		validate: validator.New(),
		logger:   logger,
	}, nil
}

// Get returns the template stored under name
func (s *Store) Get(ctx context.Context, name string) (domain.GateTemplate, bool, error) {
	return s.kv.Get(ctx, name)
}

// Set validates and stores t under its name, replacing any previous value
func (s *Store) Set(ctx context.Context, t domain.GateTemplate) error {
	if err := s.Validate(t); err != nil {
		return err
	}
	if err := s.kv.Set(ctx, t.Name, t); err != nil {
		return fmt.Errorf("failed to save template %s: %w", t.Name, err)
	}
	s.logger.Debug("template saved", zap.String("name", t.Name))
	return nil
}

// Validate checks the structural constraints of a template
func (s *Store) Validate(t domain.GateTemplate) error {
	if err := s.validate.Struct(t); err != nil {
		return fmt.Errorf("invalid template %q: %w", t.Name, err)
	}
	return nil
}

// Delete removes a template. Components referencing it are left alone.
func (s *Store) Delete(ctx context.Context, name string) error {
	ok, err := s.kv.Has(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return s.kv.Delete(ctx, name)
}

// Ls returns the stored template names in order
func (s *Store) Ls(ctx context.Context) ([]string, error) {
	return s.kv.Ls(ctx)
}

// List returns every stored template
func (s *Store) List(ctx context.Context) ([]domain.GateTemplate, error) {
	names, err := s.kv.Ls(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.GateTemplate, 0, len(names))
	for _, name := range names {
		t, ok, err := s.kv.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// Reload re-reads the template names after the backend changed underneath
func (s *Store) Reload(ctx context.Context) error {
	return s.kv.Reload(ctx)
}

// OnChange registers a listener for the template name list
func (s *Store) OnChange(l store.Listener) func() {
	return s.kv.OnChange(l)
}

// CreateEmpty stores the default template under name and opens it in the
// editor. The default is kept when the edit is cancelled.
func (s *Store) CreateEmpty(ctx context.Context, name string, editor Editor) (domain.GateTemplate, error) {
	t := domain.NewGateTemplate(name)
	if err := s.Set(ctx, t); err != nil {
		return domain.GateTemplate{}, err
	}
	if editor == nil {
		return t, nil
	}
	edited, _, err := s.Edit(ctx, name, editor)
	if err != nil {
		return t, err
	}
	return edited, nil
}

// Edit fetches the template, lets the editor patch its fields and writes the
// result back. Concurrent edits are last-writer-wins.
func (s *Store) Edit(ctx context.Context, name string, editor Editor) (domain.GateTemplate, bool, error) {
	t, err := s.editable(ctx, name)
	if err != nil {
		return domain.GateTemplate{}, false, err
	}

	fields, ok, err := editor.PromptEdit(ctx, name, t.Fields())
	if err != nil {
		return t, false, fmt.Errorf("failed to edit template %s: %w", name, err)
	}
	if !ok {
		return t, false, nil
	}

	patched, err := s.Patch(ctx, name, fields)
	if err != nil {
		return t, false, err
	}
	return patched, true, nil
}

// Patch applies fields to the stored template
func (s *Store) Patch(ctx context.Context, name string, fields domain.TemplateFields) (domain.GateTemplate, error) {
	t, err := s.editable(ctx, name)
	if err != nil {
		return domain.GateTemplate{}, err
	}
	patched := t.WithFields(fields)
	if err := s.Set(ctx, patched); err != nil {
		return t, err
	}
	return patched, nil
}

func (s *Store) editable(ctx context.Context, name string) (domain.GateTemplate, error) {
	t, ok, err := s.kv.Get(ctx, name)
	if err != nil {
		return domain.GateTemplate{}, err
	}
	if !ok {
		return domain.GateTemplate{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	if !t.Editable {
		return domain.GateTemplate{}, fmt.Errorf("%w: %s", ErrNotEditable, name)
	}
	return t, nil
}

// Import stores every template, collecting the ones that fail validation
func (s *Store) Import(ctx context.Context, tmpls []domain.GateTemplate) (int, error) {
	var errs error
	n := 0
	for _, t := range tmpls {
		if t.Version == "" {
			t.Version = domain.DefaultTemplateVersion
		}
		if t.Material.Mode == "" {
			t.Material = domain.Material{Mode: domain.MaterialColor, Data: domain.DefaultTemplateColor}
		}
		if err := s.Set(ctx, t); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		n++
	}
	return n, errs
}
