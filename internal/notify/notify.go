// Package notify prints user notifications to a terminal.
package notify

import (
	"fmt"
	"io"
	"sync"

	"gatesim/internal/service"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Console writes one styled line per notification and mirrors it to the
// logger
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	logger  *zap.Logger
	success lipgloss.Style
	failure lipgloss.Style
}

// NewConsole creates a Console writing to out. Colors follow the terminal
// capabilities of out.
func NewConsole(out io.Writer, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := lipgloss.NewRenderer(out)
	return &Console{
		out:     out,
		logger:  logger.Named("notify"),
		success: r.NewStyle().Foreground(lipgloss.Color("42")),
		failure: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

// Notify implements service.Notifier
func (c *Console) Notify(kind service.Kind, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch kind {
	case service.KindError:
		c.logger.Debug("error notification", zap.String("message", message))
		fmt.Fprintln(c.out, c.failure.Render("✗ "+message))
	default:
		c.logger.Debug("notification", zap.String("kind", string(kind)), zap.String("message", message))
		fmt.Fprintln(c.out, c.success.Render("✓ "+message))
	}
}

var _ service.Notifier = (*Console)(nil)
