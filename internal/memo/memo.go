// Package memo restores the cursor when retracing directory changes. Going
// down pushes onto the up stack; going up pushes onto the down stack; an
// unrelated jump clears both.
package memo

import "github.com/Paintersrp/fx/internal/cursor"

// Memo is the navigation state saved when leaving Dir.
type Memo struct {
	Dir    string
	Cursor cursor.State
	Row    int
}

type Stack struct {
	up   []Memo
	down []Memo
}

// Descend records current before entering target. The returned state is
// the memo saved when target was last left upward, or the zero state.
func (s *Stack) Descend(current Memo, target string) (cursor.State, bool) {
	s.up = append(s.up, current)

	m, ok := pop(&s.down)
	if ok && m.Dir == target {
		return m.Cursor, true
	}
	if ok {
		// The down history no longer leads here.
		s.down = s.down[:0]
	}
	return cursor.State{}, false
}

// Ascend records current before moving to parent. It returns the state
// parent was left with when it was descended from, if any.
func (s *Stack) Ascend(current Memo, parent string) (cursor.State, bool) {
	s.down = append(s.down, current)

	m, ok := pop(&s.up)
	if ok && m.Dir == parent {
		return m.Cursor, true
	}
	if ok {
		s.up = s.up[:0]
	}
	return cursor.State{}, false
}

// Jump forgets all history.
func (s *Stack) Jump() {
	s.up = nil
	s.down = nil
}

// Depths reports the sizes of the up and down stacks.
func (s *Stack) Depths() (int, int) {
	return len(s.up), len(s.down)
}

func pop(stack *[]Memo) (Memo, bool) {
	n := len(*stack)
	if n == 0 {
		return Memo{}, false
	}
	m := (*stack)[n-1]
	*stack = (*stack)[:n-1]
	return m, true
}
