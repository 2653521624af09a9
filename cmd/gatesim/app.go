package main

import (
	"context"
	"fmt"
	"os"

	"gatesim/internal/circuit"
	"gatesim/internal/config"
	"gatesim/internal/domain"
	"gatesim/internal/loader"
	"gatesim/internal/logging"
	"gatesim/internal/notify"
	"gatesim/internal/prompt"
	"gatesim/internal/render"
	"gatesim/internal/repository"
	badgerrepo "gatesim/internal/repository/badger"
	"gatesim/internal/repository/memory"
	"gatesim/internal/repository/sqlite"
	"gatesim/internal/service"
	"gatesim/internal/templates"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// app is one opened editor: config, storage and the manager on top
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	backend  repository.Backend
	manager  *service.Manager
	notifier *notify.Console
	lines    *prompt.Lines
	dialog   service.Dialog
}

func openApp(ctx context.Context) (*app, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, path, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded", zap.String("path", path), zap.String("backend", cfg.Storage.Backend))

	backend, err := openBackend(cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		backend:  backend,
		notifier: notify.NewConsole(os.Stderr, logger),
		lines:    prompt.NewLines(os.Stdin, os.Stderr),
	}
	a.dialog = a.lines
	if prompt.IsTerminal(os.Stdin) {
		a.dialog = prompt.NewForms(accessible)
	}

	tmpls, err := templates.New(ctx, backend, logger.Named("templates"))
	if err != nil {
		a.close()
		return nil, err
	}

	opts := service.DefaultOptions()
	opts.DefaultName = cfg.Simulation.DefaultName
	opts.FlagMarker = cfg.Commands.FlagMarker
	opts.SeedBuiltins = cfg.Templates.ShouldSeedBuiltins()
	opts.Canvas = circuit.Options{Offset: cfg.Canvas.Offset, Scale: domain.Vec2(cfg.Canvas.Scale)}

	// the library goes in before the manager loads so its gates resolve
	if lib := cfg.Templates.Library; lib != "" {
		if err := importInto(ctx, tmpls, lib, logger); err != nil {
			a.notifier.Notify(service.KindError, err.Error())
		}
	}

	a.manager, err = service.New(ctx, service.Deps{
		Backend:   backend,
		Templates: tmpls,
		Dialog:    a.dialog,
		Notifier:  a.notifier,
		Renderer:  render.New(os.Stdout, frames),
		Output:    os.Stdout,
		Logger:    logger,
	}, opts)
	if err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func openBackend(cfg config.StorageConfig, logger *zap.Logger) (repository.Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendBadger:
		bc := badgerrepo.DefaultConfig(cfg.Path)
		bc.Logger = logger.Named("badger")
		repo, err := badgerrepo.New(bc)
		if err != nil {
			return nil, fmt.Errorf("open badger store %s: %w", cfg.Path, err)
		}
		return repo, nil
	default:
		repo, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store %s: %w", cfg.Path, err)
		}
		return repo, nil
	}
}

// importLibrary loads a YAML gate library into the running manager
func (a *app) importLibrary(ctx context.Context, path string) error {
	if err := importInto(ctx, a.manager.Templates(), path, a.logger); err != nil {
		a.notifier.Notify(service.KindError, err.Error())
		return err
	}
	a.notifier.Notify(service.KindSuccess, fmt.Sprintf("Loaded gate library %s", path))
	return nil
}

func importInto(ctx context.Context, store *templates.Store, path string, logger *zap.Logger) error {
	tmpls, err := loader.LoadYAML(path)
	if err != nil && len(tmpls) == 0 {
		return fmt.Errorf("load gate library %s: %w", path, err)
	}
	if err != nil {
		logger.Warn("gate library has invalid entries", zap.String("path", path), zap.Error(err))
	}

	n, ierr := store.Import(ctx, tmpls)
	logger.Info("gate library imported", zap.String("path", path), zap.Int("gates", n))
	return multierr.Append(err, ierr)
}

func (a *app) close() error {
	err := a.backend.Close()
	// syncing stderr fails on most terminals
	if a.cfg.Log.File != "" {
		err = multierr.Append(err, a.logger.Sync())
	}
	if err != nil {
		a.logger.Warn("close failed", zap.Error(err))
	}
	return err
}
