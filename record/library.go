package record

// Library is the in-memory, insertion-ordered collection of Records for one
// store. It owns no I/O; persistence and search operate on a Library that a
// caller passes in.
//
// Library performs no internal locking. A caller that mutates a Library from
// multiple goroutines must serialize access itself (the store façade does
// this for its own read-modify-write cycles).
type Library struct {
	records []Record
}

// NewLibrary creates an empty Library.
func NewLibrary() *Library {
	return &Library{}
}

// FromRecords creates a Library holding copies of the given records in order.
func FromRecords(records []Record) *Library {
	l := &Library{records: make([]Record, 0, len(records))}
	for _, r := range records {
		l.records = append(l.records, r.Clone())
	}
	return l
}

// Len returns the number of records.
func (l *Library) Len() int {
	return len(l.records)
}

// Get returns a copy of the record at index i.
// ok is false if i is out of range.
func (l *Library) Get(i int) (Record, bool) {
	if i < 0 || i >= len(l.records) {
		return Record{}, false
	}
	return l.records[i].Clone(), true
}

// Records returns a copy of the full collection in insertion order.
func (l *Library) Records() []Record {
	out := make([]Record, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, r.Clone())
	}
	return out
}

// Add appends a record.
func (l *Library) Add(r Record) {
	l.records = append(l.records, r.Clone())
}

// Insert places a record at index i, shifting later records right.
// Out-of-range indices clamp to the nearest end.
func (l *Library) Insert(i int, r Record) {
	if i < 0 {
		i = 0
	}
	if i > len(l.records) {
		i = len(l.records)
	}
	l.records = append(l.records, Record{})
	copy(l.records[i+1:], l.records[i:])
	l.records[i] = r.Clone()
}

// RemoveAt deletes the record at index i and reports whether it existed.
func (l *Library) RemoveAt(i int) bool {
	if i < 0 || i >= len(l.records) {
		return false
	}
	l.records = append(l.records[:i], l.records[i+1:]...)
	return true
}

// Remove deletes every record matching pred and returns how many were removed.
func (l *Library) Remove(pred func(Record) bool) int {
	out := l.records[:0]
	removed := 0
	for _, r := range l.records {
		if pred(r) {
			removed++
			continue
		}
		out = append(out, r)
	}
	l.records = out
	return removed
}

// Update replaces the record at index i. Updating an index that does not
// exist is a no-op, reported via the return value.
func (l *Library) Update(i int, r Record) bool {
	if i < 0 || i >= len(l.records) {
		return false
	}
	l.records[i] = r.Clone()
	return true
}

// Mutate applies fn to the record at index i in place. A missing index is a
// no-op. This avoids the copy round-trip of Get+Update for counters and
// timestamps.
func (l *Library) Mutate(i int, fn func(*Record)) bool {
	if i < 0 || i >= len(l.records) {
		return false
	}
	fn(&l.records[i])
	return true
}

// Clear removes all records.
func (l *Library) Clear() {
	l.records = nil
}

// Equal reports whether two libraries hold equal records in the same order.
func (l *Library) Equal(other *Library) bool {
	if other == nil || len(l.records) != len(other.records) {
		return false
	}
	for i := range l.records {
		if !l.records[i].Equal(other.records[i]) {
			return false
		}
	}
	return true
}

// each iterates records without copying; internal use only so callers
// cannot alias internal state.
func (l *Library) each(fn func(i int, r *Record)) {
	for i := range l.records {
		fn(i, &l.records[i])
	}
}
