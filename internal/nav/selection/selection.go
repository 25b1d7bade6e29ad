// Package selection owns the active index of the nav bar. Every write goes
// through Apply with a tagged Change so callers can tell a visitor's explicit
// choice apart from a passive sync with the router.
package selection

import "github.com/atomicstack/gooeynav/internal/menu"

// Source tags where a selection change originated.
type Source int

const (
	// SourceExplicit is a selection made directly by the visitor.
	SourceExplicit Source = iota
	// SourceExternal is a selection derived from the observed location.
	SourceExternal
)

func (s Source) String() string {
	switch s {
	case SourceExplicit:
		return "explicit"
	case SourceExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Change is a requested transition of the active index.
type Change struct {
	Source Source
	Index  int
}

// ExplicitSelect builds a change for a visitor selecting index.
func ExplicitSelect(index int) Change {
	return Change{Source: SourceExplicit, Index: index}
}

// ExternalSync builds a change for a location-derived index.
func ExternalSync(index int) Change {
	return Change{Source: SourceExternal, Index: index}
}

// Outcome describes what a Change did and which side effects the caller owes.
type Outcome struct {
	Index    int
	Previous int
	Changed  bool
	// Navigate is set for every explicit selection, including re-selecting
	// the item that is already active.
	Navigate bool
	// Burst is set only when an explicit selection moved the index.
	Burst  bool
	Target menu.Item
	Source Source
}

// Holder is the single source of truth for the active item.
type Holder struct {
	items  []menu.Item
	active int
}

// New constructs a holder positioned on initial, clamped to a valid index.
func New(items []menu.Item, initial int) *Holder {
	h := &Holder{items: items}
	h.active = h.clamp(initial)
	return h
}

// Items returns the sequence the holder currently indexes into.
func (h *Holder) Items() []menu.Item {
	return h.items
}

// Len reports the number of items.
func (h *Holder) Len() int {
	return len(h.items)
}

// Active returns the active index, or -1 when there are no items.
func (h *Holder) Active() int {
	if len(h.items) == 0 {
		return -1
	}
	return h.active
}

// ActiveItem returns the active item when one exists.
func (h *Holder) ActiveItem() (menu.Item, bool) {
	if len(h.items) == 0 {
		return menu.Item{}, false
	}
	return h.items[h.active], true
}

// SetItems swaps the item sequence and re-validates the active index.
func (h *Holder) SetItems(items []menu.Item) {
	h.items = items
	h.active = h.clamp(h.active)
}

// Apply performs change and reports the side effects it requires.
func (h *Holder) Apply(change Change) Outcome {
	out := Outcome{Source: change.Source, Previous: h.Active(), Index: h.Active()}
	if len(h.items) == 0 {
		return out
	}
	next := h.clamp(change.Index)
	out.Changed = next != h.active
	h.active = next
	out.Index = next
	out.Target = h.items[next]
	if change.Source == SourceExplicit {
		out.Navigate = true
		out.Burst = out.Changed
	}
	return out
}

// clamp maps out-of-range requests to 0. Indices come from best-effort route
// matching, so a bad value falls back to the first item instead of failing.
func (h *Holder) clamp(index int) int {
	if index < 0 || index >= len(h.items) {
		return 0
	}
	return index
}
