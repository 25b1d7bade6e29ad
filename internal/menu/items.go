package menu

import "strings"

// Item represents a single navigation entry. Items are immutable once handed
// to the nav bar; their order defines the index used by the selection state.
type Item struct {
	Label  string `toml:"label"`
	Target string `toml:"target"`
}

// DefaultItems returns the portal sections shown when no item list is configured.
func DefaultItems() []Item {
	return []Item{
		{Label: "Home", Target: "/"},
		{Label: "Profile", Target: "/profile"},
		{Label: "Projects", Target: "/projects"},
		{Label: "Mentorship", Target: "/mentorship"},
		{Label: "Blog", Target: "/blog"},
	}
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}

// Labels returns the item labels in order.
func Labels(items []Item) []string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	return labels
}

// Targets returns the item targets in order.
func Targets(items []Item) []string {
	targets := make([]string, len(items))
	for i, item := range items {
		targets[i] = item.Target
	}
	return targets
}

// NormalizeTarget trims whitespace and guarantees a leading slash.
func NormalizeTarget(target string) string {
	trimmed := strings.TrimSpace(target)
	if trimmed == "" {
		return "/"
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return trimmed
}

// SameSequence reports whether a and b are the same backing sequence rather
// than merely equal contents. A new slice handed to the nav bar counts as a
// new item source even when its entries match the old one.
func SameSequence(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return (a == nil) == (b == nil)
	}
	return &a[0] == &b[0]
}
