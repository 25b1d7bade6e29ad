// Package routesync derives the active nav index from the router's current
// location. It only ever produces ExternalSync changes.
package routesync

import (
	"strings"

	"github.com/atomicstack/gooeynav/internal/menu"
	"github.com/atomicstack/gooeynav/internal/nav/selection"
)

// Resolve returns the index of the first item whose target equals location,
// or failing that the first item whose target is a parent path of location.
// A location matching nothing resolves to 0.
func Resolve(items []menu.Item, location string) int {
	loc := normalize(location)
	for i, item := range items {
		if normalize(item.Target) == loc {
			return i
		}
	}
	for i, item := range items {
		target := normalize(item.Target)
		if target == "/" {
			continue
		}
		if strings.HasPrefix(loc, target+"/") {
			return i
		}
	}
	return 0
}

// Matches reports whether location selects target under the Resolve rules.
func Matches(target, location string) bool {
	t := normalize(target)
	loc := normalize(location)
	if t == loc {
		return true
	}
	return t != "/" && strings.HasPrefix(loc, t+"/")
}

func normalize(path string) string {
	p := strings.TrimSpace(path)
	if idx := strings.IndexAny(p, "?#"); idx >= 0 {
		p = p[:idx]
	}
	p = menu.NormalizeTarget(p)
	for len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// Adapter reconciles the selection with the location whenever the location or
// the item sequence changes.
type Adapter struct {
	items    []menu.Item
	location string
	seen     bool
}

// Location returns the last observed location.
func (a *Adapter) Location() string {
	return a.location
}

// Observe records location and items. It returns an ExternalSync change and
// true when either differs from the previous observation.
func (a *Adapter) Observe(location string, items []menu.Item) (selection.Change, bool) {
	if a.seen && location == a.location && menu.SameSequence(items, a.items) {
		return selection.Change{}, false
	}
	a.seen = true
	a.location = location
	a.items = items
	return selection.ExternalSync(Resolve(items, location)), true
}

// Refresh re-resolves against the last observed location for a new item
// sequence. It reports false when no location has been observed yet.
func (a *Adapter) Refresh(items []menu.Item) (selection.Change, bool) {
	if !a.seen {
		a.items = items
		return selection.Change{}, false
	}
	return a.Observe(a.location, items)
}
