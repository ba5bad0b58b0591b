package models

import (
	"errors"
	"strings"
	"testing"
)

func entries(done ...bool) []Entry {
	out := make([]Entry, len(done))
	for i, d := range done {
		out[i] = Entry{ID: int64(i + 1), Done: d}
	}
	return out
}

func TestList_IsDone(t *testing.T) {
	cases := []struct {
		name string
		list List
		want bool
	}{
		{"empty", List{}, false},
		{"all done", List{Entries: entries(true, true)}, true},
		{"partial", List{Entries: entries(true, false)}, false},
		{"none done", List{Entries: entries(false)}, false},
	}
	for _, tc := range cases {
		if got := tc.list.IsDone(); got != tc.want {
			t.Errorf("%s: IsDone=%v want %v", tc.name, got, tc.want)
		}
	}
}

func TestList_HasUndoneEntriesAndDoneCount(t *testing.T) {
	l := List{Entries: entries(true, false, true)}
	if !l.HasUndoneEntries() {
		t.Fatalf("expected undone entries")
	}
	if l.DoneCount() != 2 {
		t.Fatalf("DoneCount=%d want 2", l.DoneCount())
	}
	empty := List{}
	if empty.HasUndoneEntries() {
		t.Fatalf("empty list has no undone entries")
	}
}

func TestPartitionByCompletion_StableOrder(t *testing.T) {
	in := []List{
		{Title: "Apple"},
		{Title: "banana", Entries: entries(true, false)},
		{Title: "cherry", Entries: entries(true, true)},
		{Title: "date", Entries: entries(true)},
		{Title: "elder", Entries: entries(false)},
	}
	got := PartitionByCompletion(in)
	want := []string{"Apple", "banana", "elder", "cherry", "date"}
	if len(got) != len(want) {
		t.Fatalf("len=%d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Title != want[i] {
			t.Fatalf("position %d: got %q want %q (all=%v)", i, got[i].Title, want[i], got)
		}
	}
	// input must not be reordered
	if in[2].Title != "cherry" {
		t.Fatalf("input mutated: %v", in)
	}
}

func TestNormalizeTitle(t *testing.T) {
	if got, err := NormalizeTitle("  Legs Day  "); err != nil || got != "Legs Day" {
		t.Fatalf("NormalizeTitle trim: %q %v", got, err)
	}
	if _, err := NormalizeTitle("   "); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if _, err := NormalizeTitle(strings.Repeat("x", MaxTitleLength)); err != nil {
		t.Fatalf("100 chars should be accepted: %v", err)
	}
	if _, err := NormalizeTitle(strings.Repeat("é", MaxTitleLength+1)); !errors.Is(err, ErrTitleTooLong) {
		t.Fatalf("expected ErrTitleTooLong, got %v", err)
	}
}

func TestList_SummaryAndDetail(t *testing.T) {
	l := List{ID: 7, Title: "Legs", Entries: entries(true, false)}
	s := l.Summary()
	if s.ID != 7 || s.Title != "Legs" || s.EntryCount != 2 || s.DoneCount != 1 || s.IsDone {
		t.Fatalf("summary: %+v", s)
	}
	d := l.Detail()
	if d.IsDone || !d.HasUndoneEntries || len(d.Entries) != 2 {
		t.Fatalf("detail: %+v", d)
	}
	empty := List{ID: 8}
	if ed := empty.Detail(); ed.Entries == nil || ed.IsDone {
		t.Fatalf("empty detail: %+v", ed)
	}
	if got := Summaries([]List{l, empty}); len(got) != 2 || got[1].ID != 8 {
		t.Fatalf("summaries: %+v", got)
	}
}
