package models

// ListSummary is the per-list line of the lists overview.
type ListSummary struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	EntryCount int    `json:"entry_count"`
	DoneCount  int    `json:"done_count"`
	IsDone     bool   `json:"is_done"`
}

// ListDetail is a single list with its entries and derived state.
type ListDetail struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Entries          []Entry `json:"entries"`
	IsDone           bool    `json:"is_done"`
	HasUndoneEntries bool    `json:"has_undone_entries"`
}

// Summary computes the overview line for l.
func (l *List) Summary() ListSummary {
	return ListSummary{
		ID:         l.ID,
		Title:      l.Title,
		EntryCount: len(l.Entries),
		DoneCount:  l.DoneCount(),
		IsDone:     l.IsDone(),
	}
}

// Detail computes the detail view of l. Derived state is taken from l.Entries,
// so callers that want sorted entries replace them first.
func (l *List) Detail() ListDetail {
	entries := l.Entries
	if entries == nil {
		entries = []Entry{}
	}
	return ListDetail{
		ID:               l.ID,
		Title:            l.Title,
		Entries:          entries,
		IsDone:           l.IsDone(),
		HasUndoneEntries: l.HasUndoneEntries(),
	}
}

// Summaries maps Summary over lists, preserving order.
func Summaries(lists []List) []ListSummary {
	out := make([]ListSummary, 0, len(lists))
	for i := range lists {
		out = append(out, lists[i].Summary())
	}
	return out
}
