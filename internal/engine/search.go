package engine

import (
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/unicode/norm"
)

// Search flags the items whose names fuzzy-match query and moves the
// cursor to the first match at or after it. An empty query clears the
// flags. Names and query are compared in NFC so decomposed names from
// some filesystems still match.
func (e *Engine) Search(query string) int {
	e.query = norm.NFC.String(query)
	n := e.markMatches()
	if n > 0 && !e.items[e.cur.Index].Matches {
		e.NextMatch()
	}
	return n
}

func (e *Engine) markMatches() int {
	for i := range e.items {
		e.items[i].Matches = false
	}
	if e.query == "" {
		return 0
	}

	names := make([]string, len(e.items))
	for i, item := range e.items {
		names[i] = norm.NFC.String(item.Name)
	}

	matches := fuzzy.Find(e.query, names)
	for _, m := range matches {
		e.items[m.Index].Matches = true
	}
	return len(matches)
}

// ClearSearch drops the query and the match flags.
func (e *Engine) ClearSearch() {
	e.query = ""
	e.markMatches()
}

// NextMatch moves to the next matching item, wrapping around.
func (e *Engine) NextMatch() bool {
	return e.seekMatch(1)
}

// PrevMatch moves to the previous matching item, wrapping around.
func (e *Engine) PrevMatch() bool {
	return e.seekMatch(-1)
}

func (e *Engine) seekMatch(step int) bool {
	n := len(e.items)
	if n == 0 {
		return false
	}
	for i := 1; i <= n; i++ {
		idx := ((e.cur.Index+step*i)%n + n) % n
		if e.items[idx].Matches {
			e.cur.Focus(idx, n, e.rows)
			e.sel.Extend(e.items, e.cur.Index)
			return true
		}
	}
	return false
}
