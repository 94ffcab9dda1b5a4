package sim

import (
	"fmt"
	"strings"
)

// tapePadding is the number of blank cells appended when a tape is created.
const tapePadding = 50

// Move is a head movement.
type Move string

const (
	MoveLeft  Move = "L"
	MoveRight Move = "R"
	MoveStay  Move = "S"
)

// parseMove accepts L, R or S in either case.
func parseMove(s string) (Move, error) {
	switch m := Move(strings.ToUpper(strings.TrimSpace(s))); m {
	case MoveLeft, MoveRight, MoveStay:
		return m, nil
	default:
		return "", fmt.Errorf("unknown head movement %q (expected L, R or S)", s)
	}
}

// Tape is a single TM tape that grows on demand in both directions. The head
// index is always non-negative: growing to the left shifts every cell instead.
type Tape struct {
	cells []string
	head  int
	blank string
}

// NewTape lays the input out from cell 0 and pads it with blanks.
func NewTape(input, blank string) *Tape {
	cells := splitSymbols(input)
	if len(cells) == 0 {
		cells = []string{blank}
	}
	for i := 0; i < tapePadding; i++ {
		cells = append(cells, blank)
	}
	return &Tape{cells: cells, blank: blank}
}

// Read returns the symbol under the head.
func (t *Tape) Read() string {
	return t.cells[t.head]
}

// Write replaces the symbol under the head.
func (t *Tape) Write(sym string) {
	t.cells[t.head] = sym
}

// Move shifts the head. Moving right past the end appends a blank; moving
// left from cell 0 inserts a blank in front and leaves the head on it.
func (t *Tape) Move(m Move) {
	switch m {
	case MoveRight:
		t.head++
		if t.head >= len(t.cells) {
			t.cells = append(t.cells, t.blank)
		}
	case MoveLeft:
		if t.head == 0 {
			t.cells = append([]string{t.blank}, t.cells...)
		} else {
			t.head--
		}
	}
}

// Head returns the head index.
func (t *Tape) Head() int {
	return t.head
}

// Len returns the number of allocated cells, padding included.
func (t *Tape) Len() int {
	return len(t.cells)
}

// lastUsed returns the index of the last non-blank cell, or -1.
func (t *Tape) lastUsed() int {
	for i := len(t.cells) - 1; i >= 0; i-- {
		if t.cells[i] != t.blank {
			return i
		}
	}
	return -1
}

// Visible returns the cells up to the last non-blank cell or the head,
// whichever is further right.
func (t *Tape) Visible() []string {
	end := max(t.lastUsed(), t.head) + 1
	out := make([]string, end)
	copy(out, t.cells[:end])
	return out
}

// String returns the tape contents with trailing blanks trimmed. An all-blank
// tape is reported as a single blank.
func (t *Tape) String() string {
	end := t.lastUsed() + 1
	if end == 0 {
		return t.blank
	}
	return strings.Join(t.cells[:end], "")
}

// Window renders the cells within margin of the head and a caret line
// pointing at the head.
func (t *Tape) Window(margin int) (string, string) {
	return TapeWindow(t.cells, t.head, margin)
}

// TapeWindow renders cells[head-margin..head+margin] and a caret line under
// the head. It works on snapshots as well as on live tapes.
func TapeWindow(cells []string, head, margin int) (string, string) {
	if head < 0 || head >= len(cells) {
		return strings.Join(cells, ""), ""
	}
	start := max(0, head-margin)
	end := min(len(cells), head+margin+1)
	offset := len([]rune(strings.Join(cells[start:head], "")))
	return strings.Join(cells[start:end], ""), strings.Repeat(" ", offset) + "↑"
}
