package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"gatesim/internal/codec"
	"gatesim/internal/domain"

	"go.uber.org/zap"
)

// createFile opens export targets
var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// Export writes the current simulation and the templates it uses
func (m *Manager) Export(ctx context.Context, w io.Writer, format string) error {
	c, err := codec.ForFormat(format)
	if err != nil {
		return m.fail(err)
	}

	doc := &codec.Document{Name: m.Name(), Simulation: m.State()}
	seen := make(map[string]bool)
	for _, cs := range doc.Simulation.Components {
		if seen[cs.Template] {
			continue
		}
		seen[cs.Template] = true
		t, ok, err := m.templates.Get(ctx, cs.Template)
		if err != nil {
			return m.fail(err)
		}
		if ok {
			doc.Templates = append(doc.Templates, t)
		}
	}

	if err := c.Export(doc, w); err != nil {
		return m.fail(err)
	}
	return nil
}

// ExportFile writes the current simulation to path. An empty format picks
// one from the extension.
func (m *Manager) ExportFile(ctx context.Context, path, format string) error {
	if format == "" {
		format = codec.ForPath(path).Format()
	}
	f, err := createFile(path)
	if err != nil {
		return m.fail(fmt.Errorf("failed to create %s: %w", path, err))
	}

	if err := m.Export(ctx, f, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return m.fail(fmt.Errorf("failed to write %s: %w", path, err))
	}
	m.notifier.Notify(KindSuccess, fmt.Sprintf("Exported %s to %s", m.Name(), path))
	return nil
}

// Import reads an exported simulation, stores it under name (or the name in
// the document) and switches to it. Templates in the document are added
// when no template of that name exists yet.
func (m *Manager) Import(ctx context.Context, r io.Reader, format, name string) error {
	c, err := codec.ForFormat(format)
	if err != nil {
		return m.fail(err)
	}
	doc, err := c.Parse(r)
	if err != nil {
		return m.fail(err)
	}

	if name = strings.TrimSpace(name); name == "" {
		name = doc.Name
	}
	if name == "" {
		return m.fail(ErrEmptyName)
	}

	var missing []domain.GateTemplate
	for _, t := range doc.Templates {
		ok, err := m.hasTemplate(ctx, t.Name)
		if err != nil {
			return m.fail(err)
		}
		if !ok {
			missing = append(missing, t)
		}
	}
	if n, err := m.templates.Import(ctx, missing); err != nil {
		m.logger.Warn("some imported templates were rejected", zap.Int("imported", n), zap.Error(err))
	}

	ok, err := m.confirmOverwrite(ctx, name)
	if err != nil || !ok {
		return err
	}
	return m.create(ctx, name, doc.Simulation)
}

// ImportFile imports the simulation stored at path
func (m *Manager) ImportFile(ctx context.Context, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return m.fail(fmt.Errorf("failed to open %s: %w", path, err))
	}
	defer f.Close()

	return m.Import(ctx, f, codec.ForPath(path).Format(), name)
}

func (m *Manager) hasTemplate(ctx context.Context, name string) (bool, error) {
	_, ok, err := m.templates.Get(ctx, name)
	return ok, err
}
