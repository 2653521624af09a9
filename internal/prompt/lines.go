package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gatesim/internal/domain"
)

// Lines reads plain lines. It serves as both reader and dialog when stdin
// is piped, so that answers and commands come from the same stream.
type Lines struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLines creates a line reader over in. Prompts are written to out.
func NewLines(in io.Reader, out io.Writer) *Lines {
	return &Lines{in: bufio.NewReader(in), out: out}
}

func (l *Lines) readLine() (string, error) {
	line, err := l.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadLine implements LineReader
func (l *Lines) ReadLine(prompt string) (Input, error) {
	fmt.Fprint(l.out, prompt)
	line, err := l.readLine()
	if err != nil {
		return Input{}, err
	}
	return Input{Line: line}, nil
}

// Confirm asks a yes/no question. End of input counts as no.
func (l *Lines) Confirm(_ context.Context, title, content string) (bool, error) {
	fmt.Fprintf(l.out, "%s\n%s [y/N] ", title, content)
	answer, err := l.readLine()
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// PromptEdit asks for each field in turn. An empty answer keeps the current
// value; end of input cancels the edit.
func (l *Lines) PromptEdit(_ context.Context, name string, fields domain.TemplateFields) (domain.TemplateFields, bool, error) {
	fmt.Fprintf(l.out, "Editing %s\n", name)

	values := []string{
		strconv.Itoa(fields.Inputs),
		strconv.Itoa(fields.Outputs),
		fields.Color,
		fields.Activation,
	}
	labels := []string{"inputs", "outputs", "color", "activation"}
	for i, label := range labels {
		fmt.Fprintf(l.out, "%s [%s]: ", label, values[i])
		answer, err := l.readLine()
		if errors.Is(err, io.EOF) {
			return fields, false, nil
		}
		if err != nil {
			return fields, false, err
		}
		if answer != "" {
			values[i] = answer
		}
	}

	edited, err := parseFields(values[0], values[1], values[2], values[3])
	if err != nil {
		return fields, false, err
	}
	return edited, true, nil
}
