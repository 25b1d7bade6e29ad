package state

import (
	"testing"

	"github.com/atomicstack/gooeynav/internal/menu"
)

func TestFilterItemsMatchesTargetsAndLabels(t *testing.T) {
	items := menu.DefaultItems()
	got := FilterItems(items, "proj")
	if len(got) != 1 || got[0].Target != "/projects" {
		t.Fatalf("expected only /projects, got %#v", got)
	}
	got = FilterItems(items, "Mentor")
	if len(got) != 1 || got[0].Label != "Mentorship" {
		t.Fatalf("expected Mentorship by label, got %#v", got)
	}
	if got := FilterItems(items, "zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %#v", got)
	}
	if got := FilterItems(items, "  "); len(got) != len(items) {
		t.Fatalf("blank query must keep every item")
	}
}

func TestFilterItemsPrefersCloserMatches(t *testing.T) {
	items := []menu.Item{
		{Label: "Blog archive", Target: "/blog/archive"},
		{Label: "Blog", Target: "/blog"},
	}
	got := FilterItems(items, "/blog")
	if len(got) != 2 || got[0].Target != "/blog" {
		t.Fatalf("expected exact target first, got %#v", got)
	}
}

func TestSuggestionsCursor(t *testing.T) {
	s := NewSuggestions(menu.DefaultItems())
	if sel, ok := s.Selected(); !ok || sel.Target != "/" {
		t.Fatalf("expected first item selected, got %#v", sel)
	}
	if !s.MoveCursor(-1) {
		t.Fatalf("expected cursor to wrap")
	}
	if sel, _ := s.Selected(); sel.Target != "/blog" {
		t.Fatalf("expected wrap to last item, got %#v", sel)
	}
	s.SetQuery("/pro")
	if sel, ok := s.Selected(); !ok || sel.Target != "/profile" {
		t.Fatalf("expected /profile as best match, got %#v", sel)
	}
	s.SetQuery("nothing-here")
	if _, ok := s.Selected(); ok {
		t.Fatalf("expected nothing selected without matches")
	}
	if s.MoveCursor(1) {
		t.Fatalf("moving an empty list must report no change")
	}
}

func TestUpdateCandidatesKeepsQuery(t *testing.T) {
	s := NewSuggestions(nil)
	s.SetQuery("blog")
	s.UpdateCandidates(menu.DefaultItems())
	if len(s.Items) != 1 || s.Items[0].Target != "/blog" {
		t.Fatalf("expected query re-applied to new candidates, got %#v", s.Items)
	}
}

func TestLimitKeepsCursorOnShownRows(t *testing.T) {
	s := NewSuggestions(menu.DefaultItems())
	s.SetLimit(3)
	if len(s.Items) != 3 {
		t.Fatalf("expected 3 shown suggestions, got %d", len(s.Items))
	}
	s.MoveCursor(-1)
	if sel, _ := s.Selected(); sel.Target != "/projects" {
		t.Fatalf("expected wrap to the last shown row, got %#v", sel)
	}
	s.MoveCursor(1)
	if s.Cursor != 0 {
		t.Fatalf("expected wrap back to the first row, got cursor %d", s.Cursor)
	}
}
