package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatPadsColumns(t *testing.T) {
	rows := [][]string{
		{"/", "Home"},
		{"/mentorship", "Mentorship"},
		{"/blog"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignLeft})
	want := []string{
		"/            Home",
		"/mentorship  Mentorship",
		"/blog        ",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatRightAlign(t *testing.T) {
	rows := [][]string{{"a", "1"}, {"b", "100"}}
	got := Format(rows, []Alignment{AlignLeft, AlignRight})
	want := []string{"a    1", "b  100"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatMeasuresWideRunes(t *testing.T) {
	got := Format([][]string{{"日本", "x"}, {"ab", "y"}}, nil)
	want := []string{"日本  x", "ab    y"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil, nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
