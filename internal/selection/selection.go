// Package selection tracks multi-select flags over catalog items. Range mode
// selects every row between an anchor and the cursor; marks toggle single
// rows.
package selection

import "github.com/Paintersrp/fx/internal/catalog"

type Model struct {
	active bool
	anchor int
}

// Active reports whether range mode is on.
func (m *Model) Active() bool {
	return m.active
}

// Anchor is the row range mode started from.
func (m *Model) Anchor() int {
	return m.anchor
}

// Toggle turns range mode on anchored at cursor, or off. Turning it off
// keeps the flags already set.
func (m *Model) Toggle(items []catalog.Item, cursor int) {
	if m.active {
		m.active = false
		return
	}
	if len(items) == 0 {
		return
	}
	m.active = true
	m.anchor = cursor
	m.Extend(items, cursor)
}

// Extend recomputes the range flags after the cursor moved. It is a no-op
// outside range mode.
func (m *Model) Extend(items []catalog.Item, cursor int) {
	if !m.active {
		return
	}
	lo, hi := m.anchor, cursor
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := range items {
		items[i].Selected = i >= lo && i <= hi
	}
}

// Mark flips the flag on one row.
func (m *Model) Mark(items []catalog.Item, index int) {
	if index < 0 || index >= len(items) {
		return
	}
	items[index].Selected = !items[index].Selected
}

// Clear leaves range mode and drops every flag.
func (m *Model) Clear(items []catalog.Item) {
	m.active = false
	m.anchor = 0
	for i := range items {
		items[i].Selected = false
	}
}

// Reset forgets range mode without touching items; used when the catalog is
// rebuilt and flags are gone anyway.
func (m *Model) Reset() {
	m.active = false
	m.anchor = 0
}

// Selected returns the flagged items in catalog order.
func Selected(items []catalog.Item) []catalog.Item {
	var out []catalog.Item
	for _, item := range items {
		if item.Selected {
			out = append(out, item)
		}
	}
	return out
}

// Count returns how many items are flagged.
func Count(items []catalog.Item) int {
	n := 0
	for _, item := range items {
		if item.Selected {
			n++
		}
	}
	return n
}

// Targets returns the selected items, or the item at cursor when nothing is
// selected.
func Targets(items []catalog.Item, cursor int) []catalog.Item {
	if sel := Selected(items); len(sel) > 0 {
		return sel
	}
	if cursor < 0 || cursor >= len(items) {
		return nil
	}
	return []catalog.Item{items[cursor]}
}
