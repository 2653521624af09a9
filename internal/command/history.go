package command

import "slices"

// DefaultHistorySize is the number of lines kept by NewHistory(0)
const DefaultHistorySize = 10

// History is a bounded list of submitted lines, oldest first. A line already
// present anywhere in the list is not appended again.
type History struct {
	max     int
	entries []string

	// navigation state
	cursor int
	draft  string
}

// NewHistory creates an empty history holding at most max entries
func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultHistorySize
	}
	h := &History{max: max}
	h.Reset()
	return h
}

// Push appends line. Blank lines and lines already in the history are
// ignored. It reports whether the history changed.
func (h *History) Push(line string) bool {
	defer h.Reset()

	if line == "" || slices.Contains(h.entries, line) {
		return false
	}
	h.entries = append(h.entries, line)
	if over := len(h.entries) - h.max; over > 0 {
		h.entries = slices.Delete(h.entries, 0, over)
	}
	return true
}

// Entries returns a copy of the history, oldest first
func (h *History) Entries() []string {
	return slices.Clone(h.entries)
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.entries)
}

// Restore replaces the history with entries, applying the same dedup and
// bound as Push
func (h *History) Restore(entries []string) {
	h.entries = nil
	for _, e := range entries {
		h.Push(e)
	}
	h.Reset()
}

// Reset leaves navigation mode and forgets the saved draft
func (h *History) Reset() {
	h.cursor = len(h.entries)
	h.draft = ""
}

// Navigating reports whether an entry is currently shown instead of the draft
func (h *History) Navigating() bool {
	return h.cursor < len(h.entries)
}

// Up moves toward older entries. current is the text in the input; it is
// saved as the draft when navigation starts. Up stops at the oldest entry.
func (h *History) Up(current string) string {
	if len(h.entries) == 0 {
		return current
	}
	if !h.Navigating() {
		h.draft = current
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor]
}

// Down moves toward newer entries. Moving past the newest entry restores the
// saved draft.
func (h *History) Down(current string) string {
	if !h.Navigating() {
		return current
	}
	h.cursor++
	if h.cursor == len(h.entries) {
		draft := h.draft
		h.draft = ""
		return draft
	}
	return h.entries[h.cursor]
}
