// Package command parses text commands, dispatches them to registered
// handlers and keeps a bounded history of submitted lines.
package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownCommand is returned by Eval when no handler is registered for the
// command name
var ErrUnknownCommand = errors.New("unknown command")

// DefaultFlagMarker prefixes flag tokens
const DefaultFlagMarker = "-"

// Handler runs one command against target
type Handler[T any] func(ctx context.Context, target T, args, flags []string) error

// Command is a parsed input line
type Command struct {
	Name  string
	Args  []string
	Flags []string
}

// Parse splits a line into a command name, positional arguments and flags.
// Tokens starting with marker are flags. Relative order inside each group is
// kept.
func Parse(line, marker string) (Command, bool) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Command{}, false
	}

	cmd := Command{Name: tokens[0], Args: []string{}, Flags: []string{}}
	for _, tok := range tokens[1:] {
		if marker != "" && strings.HasPrefix(tok, marker) {
			cmd.Flags = append(cmd.Flags, tok)
		} else {
			cmd.Args = append(cmd.Args, tok)
		}
	}
	return cmd, true
}

// HasFlag reports whether flag was given, with or without the marker
func (c Command) HasFlag(marker, flag string) bool {
	for _, f := range c.Flags {
		if f == flag || strings.TrimPrefix(f, marker) == flag {
			return true
		}
	}
	return false
}

type entry[T any] struct {
	handler     Handler[T]
	description string
}

// Interpreter maps command names to handlers
type Interpreter[T any] struct {
	marker   string
	commands map[string]entry[T]
}

// NewInterpreter creates an interpreter with no commands. An empty marker
// selects DefaultFlagMarker.
func NewInterpreter[T any](marker string) *Interpreter[T] {
	if marker == "" {
		marker = DefaultFlagMarker
	}
	return &Interpreter[T]{
		marker:   marker,
		commands: make(map[string]entry[T]),
	}
}

// Register adds or replaces the handler for name
func (in *Interpreter[T]) Register(name, description string, h Handler[T]) {
	in.commands[name] = entry[T]{handler: h, description: description}
}

// Marker returns the flag marker
func (in *Interpreter[T]) Marker() string {
	return in.marker
}

// Names returns every registered command name, sorted
func (in *Interpreter[T]) Names() []string {
	names := make([]string, 0, len(in.commands))
	for name := range in.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the description registered for name
func (in *Interpreter[T]) Describe(name string) string {
	return in.commands[name].description
}

// Has reports whether name is registered
func (in *Interpreter[T]) Has(name string) bool {
	_, ok := in.commands[name]
	return ok
}

// Parse splits line using the interpreter's flag marker
func (in *Interpreter[T]) Parse(line string) (Command, bool) {
	return Parse(line, in.marker)
}

// Eval parses line and runs the matching handler. A blank line does nothing.
func (in *Interpreter[T]) Eval(ctx context.Context, target T, line string) error {
	cmd, ok := in.Parse(line)
	if !ok {
		return nil
	}

	e, ok := in.commands[cmd.Name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, strings.TrimSpace(line))
	}
	return e.handler(ctx, target, cmd.Args, cmd.Flags)
}
