package sim

// Stack is the PDA store. It starts with the bottom marker.
type Stack struct {
	items []string // bottom first
}

// NewStack returns a stack holding only the bottom marker.
func NewStack(bottom string) *Stack {
	return &Stack{items: []string{bottom}}
}

// Top returns the top symbol, or Epsilon when the stack is empty.
func (s *Stack) Top() string {
	if len(s.items) == 0 {
		return Epsilon
	}
	return s.items[len(s.items)-1]
}

// Pop removes the top symbol. It reports false on an empty stack.
func (s *Stack) Pop() (string, bool) {
	if len(s.items) == 0 {
		return "", false
	}
	top := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return top, true
}

// Push places one symbol on top.
func (s *Stack) Push(sym string) {
	s.items = append(s.items, sym)
}

// PushString pushes the symbols of w right to left, so the first symbol of w
// ends on top.
func (s *Stack) PushString(w string) {
	syms := splitSymbols(w)
	for i := len(syms) - 1; i >= 0; i-- {
		s.Push(syms[i])
	}
}

// Len returns the number of symbols on the stack.
func (s *Stack) Len() int {
	return len(s.items)
}

// Items returns a copy of the contents, bottom first.
func (s *Stack) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
