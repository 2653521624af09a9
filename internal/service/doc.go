// Package service implements the circuit editor core for gatesim.
//
// The Manager composes a component graph, a wire manager and the persistent
// stores into named, switchable simulations. It owns the save, refresh and
// delete lifecycle and exposes the operations the command line and key
// bindings drive.
//
// # Collaborators
//
// Presentation concerns stay outside the package behind small interfaces:
// Dialog answers confirmations and template edits, Notifier shows success and
// error messages, and Renderer draws a Frame after every change to the canvas.
//
// # Commands
//
// Text commands are parsed by a command.Interpreter bound to the Manager. The
// built-in set covers the canvas (add, rm, connect, clear, clean), the
// simulation lifecycle (save, refresh, create, switch, delete, rewind), gate
// templates and import/export. Every submitted line is recorded in a bounded
// history that is persisted with the simulation on save.
//
// # Event System
//
// The Manager publishes events on an EventBus. Subscribers are called
// synchronously in registration order before the publishing operation
// returns.
//
// # Design Principles
//
// - One explicitly constructed Manager per process, no globals
// - All mutation happens on the caller's goroutine
// - Failures are reported to the Notifier and returned, never fatal
package service
