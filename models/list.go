package models

// List is a named, per-owner collection of entries.
// Entries is populated by the repository and is not stored in the lists table.
type List struct {
	ID      int64   `db:"id" json:"id"`
	Title   string  `db:"title" json:"title"`
	Owner   string  `db:"owner" json:"owner"`
	Entries []Entry `db:"-" json:"entries"`
}

// IsDone reports whether the list has at least one entry and all of its entries are done.
// A list with no entries is never done.
func (l *List) IsDone() bool {
	if len(l.Entries) == 0 {
		return false
	}
	for _, e := range l.Entries {
		if !e.Done {
			return false
		}
	}
	return true
}

// HasUndoneEntries reports whether any entry is not done.
func (l *List) HasUndoneEntries() bool {
	for _, e := range l.Entries {
		if !e.Done {
			return true
		}
	}
	return false
}

// DoneCount returns the number of done entries.
func (l *List) DoneCount() int {
	n := 0
	for _, e := range l.Entries {
		if e.Done {
			n++
		}
	}
	return n
}

// PartitionByCompletion returns a new slice with every incomplete list ahead of
// every complete list. Relative order within each partition is preserved.
func PartitionByCompletion(lists []List) []List {
	out := make([]List, 0, len(lists))
	var done []List
	for i := range lists {
		if lists[i].IsDone() {
			done = append(done, lists[i])
			continue
		}
		out = append(out, lists[i])
	}
	return append(out, done...)
}
