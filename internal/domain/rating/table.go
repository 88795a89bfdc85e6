package rating

// Entry is one participant and its current rating.
type Entry struct {
	ID     string
	Rating float64
}

// Table maps participant identifiers to ratings and remembers the order in
// which identifiers were first seen. It is owned by a single goroutine.
type Table struct {
	initial float64
	index   map[string]int
	entries []Entry
}

// NewTable creates an empty table whose new entries start at initial.
func NewTable(initial float64) *Table {
	return &Table{
		initial: initial,
		index:   make(map[string]int),
	}
}

// Initial returns the rating assigned to identifiers on first sight.
func (t *Table) Initial() float64 { return t.initial }

// Ensure inserts id at the initial rating if it is not present yet.
// It reports whether an entry was created.
func (t *Table) Ensure(id string) bool {
	if _, ok := t.index[id]; ok {
		return false
	}
	t.index[id] = len(t.entries)
	t.entries = append(t.entries, Entry{ID: id, Rating: t.initial})
	return true
}

// Get returns the stored rating for id.
func (t *Table) Get(id string) (float64, bool) {
	i, ok := t.index[id]
	if !ok {
		return 0, false
	}
	return t.entries[i].Rating, true
}

// Set overwrites the rating for id, appending it if unknown.
func (t *Table) Set(id string, r float64) {
	i, ok := t.index[id]
	if !ok {
		t.index[id] = len(t.entries)
		t.entries = append(t.entries, Entry{ID: id, Rating: r})
		return
	}
	t.entries[i].Rating = r
}

// Len returns the number of rated participants.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns a copy of all entries in first-seen order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}
