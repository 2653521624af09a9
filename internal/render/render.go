// Package render draws simulation frames as text.
package render

import (
	"fmt"
	"io"
	"strings"

	"gatesim/internal/service"

	"github.com/charmbracelet/lipgloss"
)

// Text writes a listing of the canvas for every frame. When Auto is false it
// only draws frames the user asked for.
type Text struct {
	out  io.Writer
	auto bool

	title lipgloss.Style
	dirty lipgloss.Style
	dim   lipgloss.Style
	gate  lipgloss.Style
}

// New creates a text renderer writing to out
func New(out io.Writer, auto bool) *Text {
	r := lipgloss.NewRenderer(out)
	return &Text{
		out:   out,
		auto:  auto,
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		dirty: r.NewStyle().Foreground(lipgloss.Color("214")),
		dim:   r.NewStyle().Foreground(lipgloss.Color("241")),
		gate:  r.NewStyle().Foreground(lipgloss.Color("212")),
	}
}

// Render implements service.Renderer
func (t *Text) Render(frame service.Frame) {
	if !t.auto && !frame.Requested {
		return
	}
	io.WriteString(t.out, t.Format(frame))
}

// Format returns the listing for frame
func (t *Text) Format(frame service.Frame) string {
	var b strings.Builder

	b.WriteString(t.title.Render(frame.Name))
	if frame.Dirty {
		b.WriteString(" " + t.dirty.Render("*"))
	}
	b.WriteString("\n")

	if len(frame.Components) == 0 {
		b.WriteString(t.dim.Render("  (empty)") + "\n")
	}
	for _, c := range frame.Components {
		line := fmt.Sprintf("  #%-3d %s %s in=%d out=%d",
			c.ID, t.gate.Render(fmt.Sprintf("%-8s", c.Template)), c.Position, len(c.Inputs), len(c.Outputs))
		if c.IsOnTop {
			line += t.dim.Render(" (top)")
		}
		b.WriteString(line + "\n")
	}

	if len(frame.Wires) > 0 {
		b.WriteString(t.dim.Render("  wires") + "\n")
		for _, w := range frame.Wires {
			fmt.Fprintf(&b, "    %s\n", w.Key())
		}
	}
	if frame.Pending != nil {
		fmt.Fprintf(&b, "  %s %s\n", t.dim.Render("pending"), frame.Pending)
	}
	fmt.Fprintf(&b, "  %s %s x%s\n", t.dim.Render("view"), frame.Viewport.Position, frame.Viewport.Scale)
	return b.String()
}

var _ service.Renderer = (*Text)(nil)
