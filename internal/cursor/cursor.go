// Package cursor tracks the selected row and scroll offset of a list
// against a viewport row budget supplied on every call.
package cursor

// State is the cursor position. Skip is the first visible row.
type State struct {
	Index int
	Skip  int
}

func normRows(rows int) int {
	if rows < 1 {
		return 1
	}
	return rows
}

// MoveDown advances one row; a no-op on the last row.
func (s *State) MoveDown(length, rows int) {
	rows = normRows(rows)
	if s.Index+1 >= length {
		return
	}
	s.Index++
	if s.Index >= s.Skip+rows {
		s.Skip = s.Index - rows + 1
	}
}

// MoveUp retreats one row; a no-op on the first row.
func (s *State) MoveUp(rows int) {
	if s.Index == 0 {
		return
	}
	s.Index--
	if s.Index < s.Skip {
		s.Skip = s.Index
	}
}

func (s *State) JumpTop() {
	s.Index = 0
	s.Skip = 0
}

// JumpBottom selects the last row and scrolls so it is the last visible one.
func (s *State) JumpBottom(length, rows int) {
	rows = normRows(rows)
	if length == 0 {
		s.Reset()
		return
	}
	s.Index = length - 1
	if length > rows {
		s.Skip = length - rows
	} else {
		s.Skip = 0
	}
}

func (s *State) Reset() {
	*s = State{}
}

// Clamp restores the invariants after the list shrank or the viewport
// changed size.
func (s *State) Clamp(length, rows int) {
	rows = normRows(rows)
	if length == 0 {
		s.Reset()
		return
	}
	if s.Index >= length {
		s.Index = length - 1
	}
	if s.Index < 0 {
		s.Index = 0
	}
	if s.Skip > s.Index {
		s.Skip = s.Index
	}
	if s.Index >= s.Skip+rows {
		s.Skip = s.Index - rows + 1
	}
	if s.Skip < 0 {
		s.Skip = 0
	}
}

// Focus moves the cursor to index, scrolling by the minimal amount that
// keeps it visible.
func (s *State) Focus(index, length, rows int) {
	if index < 0 || index >= length {
		return
	}
	s.Index = index
	s.Clamp(length, rows)
}

// Window returns the half-open range of visible rows.
func (s State) Window(length, rows int) (int, int) {
	rows = normRows(rows)
	start := s.Skip
	if start > length {
		start = length
	}
	end := start + rows
	if end > length {
		end = length
	}
	return start, end
}

// Valid reports whether the invariants hold for the given list and viewport.
func (s State) Valid(length, rows int) bool {
	rows = normRows(rows)
	if length == 0 {
		return s.Index == 0 && s.Skip == 0
	}
	return s.Index >= 0 && s.Index < length && s.Skip >= 0 && s.Skip <= s.Index && s.Index < s.Skip+rows
}
