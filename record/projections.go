package record

import (
	"sort"
	"strings"
)

// SortKey selects the ordering used by Library.SortBy.
type SortKey int

const (
	// SortNone leaves the insertion order untouched.
	SortNone SortKey = iota
	// SortByName orders records by Name, case-insensitively.
	SortByName
	// SortByDate orders records by CreatedAt, newest first.
	SortByDate
)

// FilterByTag returns all records carrying tag (case-insensitive), in
// insertion order.
func (l *Library) FilterByTag(tag string) []Record {
	return l.filter(func(r *Record) bool { return containsFold(r.Tags, tag) })
}

// FilterByMinRating returns records whose rating is at least min.
func (l *Library) FilterByMinRating(min float64) []Record {
	return l.filter(func(r *Record) bool { return r.Rating >= min })
}

// FilterByMinPriority returns records whose priority is at least min.
func (l *Library) FilterByMinPriority(min int) []Record {
	return l.filter(func(r *Record) bool { return r.Priority >= min })
}

// Favorites returns records marked favorite.
func (l *Library) Favorites() []Record {
	return l.filter(func(r *Record) bool { return r.Favorite })
}

// Archived returns records marked archived.
func (l *Library) Archived() []Record {
	return l.filter(func(r *Record) bool { return r.Archived })
}

// SharedWithUser returns records shared with the given collaborator
// identifier (case-insensitive).
func (l *Library) SharedWithUser(user string) []Record {
	return l.filter(func(r *Record) bool { return containsFold(r.SharedWith, user) })
}

// FindDuplicates returns every record whose URL appears on more than one
// record. Grouping is by exact URL; records with a unique URL are excluded.
// Order is insertion order.
func (l *Library) FindDuplicates() []Record {
	counts := make(map[string]int, len(l.records))
	for i := range l.records {
		counts[l.records[i].URL]++
	}
	return l.filter(func(r *Record) bool { return counts[r.URL] > 1 })
}

// SortBy returns a copy of the collection ordered by key. SortNone (and any
// unrecognized key) returns the insertion order unchanged. Sorts are stable.
func (l *Library) SortBy(key SortKey) []Record {
	out := l.Records()
	switch key {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case SortByDate:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

func (l *Library) filter(keep func(*Record) bool) []Record {
	var out []Record
	l.each(func(_ int, r *Record) {
		if keep(r) {
			out = append(out, r.Clone())
		}
	})
	return out
}
