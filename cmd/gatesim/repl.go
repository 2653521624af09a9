package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"gatesim/internal/prompt"
	"gatesim/internal/service"
	"gatesim/internal/watcher"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runRepl(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	var changes <-chan string
	if lib := a.cfg.Templates.Library; lib != "" && a.cfg.Templates.Watch {
		w := watcher.New(lib, a.logger.Named("watcher"))
		changes = w.Changes()
		go func() {
			if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn("gate library watcher stopped", zap.Error(err))
			}
		}()
	}

	var keys []string
	for _, s := range a.manager.Shortcuts() {
		keys = append(keys, s.Keys)
	}
	reader := prompt.NewReader(a.manager.History(), keys, a.lines)
	interactive := prompt.IsTerminal(os.Stdin)

	if interactive {
		fmt.Fprintf(os.Stderr, "gatesim: editing %s. Type help for commands, exit to quit.\n", a.manager.Name())
	}

	for {
		drain(ctx, a, changes)

		in, err := reader.ReadLine(fmt.Sprintf("%s> ", a.manager.Name()))
		if errors.Is(err, io.EOF) {
			if interactive && !confirmQuit(ctx, a) {
				continue
			}
			return nil
		}
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}

		if in.Shortcut != "" {
			shortcut(ctx, a, reader, in.Shortcut)
			continue
		}
		switch in.Line {
		case "":
			continue
		case "exit", "quit":
			if !interactive || confirmQuit(ctx, a) {
				return nil
			}
			continue
		}
		if err := a.manager.Eval(ctx, in.Line); err != nil {
			a.logger.Debug("command failed", zap.String("line", in.Line), zap.Error(err))
		}
	}
}

// drain re-imports the gate library for every pending change
func drain(ctx context.Context, a *app, changes <-chan string) {
	for {
		select {
		case path := <-changes:
			if err := a.importLibrary(ctx, path); err != nil {
				a.logger.Debug("gate library reload failed", zap.String("path", path), zap.Error(err))
			}
		default:
			return
		}
	}
}

func shortcut(ctx context.Context, a *app, reader prompt.LineReader, keys string) {
	mode, err := a.manager.HandleInput(ctx, service.InputEvents{keys: true})
	if err != nil {
		a.logger.Debug("shortcut failed", zap.String("keys", keys), zap.Error(err))
		return
	}
	if mode != service.ModeCreate {
		return
	}

	in, err := reader.ReadLine("new simulation name: ")
	if err != nil || in.Line == "" {
		return
	}
	if err := a.manager.CreateSimulation(ctx, in.Line); err != nil {
		a.logger.Debug("create failed", zap.String("name", in.Line), zap.Error(err))
	}
}

func confirmQuit(ctx context.Context, a *app) bool {
	if !a.manager.Dirty() {
		return true
	}
	ok, err := a.dialog.Confirm(ctx, "Unsaved changes",
		fmt.Sprintf("%s has unsaved changes. Quit anyway?", a.manager.Name()))
	if err != nil {
		a.logger.Warn("quit confirmation failed", zap.Error(err))
		return true
	}
	return ok
}
