// Package filter provides a bitmap-backed index over a Library for the
// attribute projections UI layers issue constantly (tag chips, favorites
// toggles, archived views).
//
// The Library's own projection methods remain the authoritative slice scans;
// this index is the accelerated path a caller can keep warm between
// mutations. Positions are library insertion indices, so materialized
// results preserve insertion order, and combining criteria is a bitmap
// intersection instead of repeated scans.
package filter

import (
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/picobrowse/markvault/record"
)

// Index holds one bitmap per lowercased tag plus bitmaps for the boolean
// attributes, keyed by record position in the source Library.
//
// An Index is a point-in-time view: rebuild it after mutating the Library.
// It is safe for concurrent readers once built.
type Index struct {
	tags      map[string]*roaring.Bitmap
	favorites *roaring.Bitmap
	archived  *roaring.Bitmap
	size      uint32
}

// New builds an Index over the current contents of lib.
func New(lib *record.Library) *Index {
	idx := &Index{
		tags:      make(map[string]*roaring.Bitmap),
		favorites: roaring.New(),
		archived:  roaring.New(),
	}
	idx.Rebuild(lib)
	return idx
}

// Rebuild discards all bitmaps and re-indexes lib.
func (idx *Index) Rebuild(lib *record.Library) {
	idx.tags = make(map[string]*roaring.Bitmap)
	idx.favorites.Clear()
	idx.archived.Clear()
	idx.size = 0
	if lib == nil {
		return
	}

	for i, r := range lib.Records() {
		pos := uint32(i)
		for _, tag := range r.Tags {
			key := strings.ToLower(tag)
			bm, ok := idx.tags[key]
			if !ok {
				bm = roaring.New()
				idx.tags[key] = bm
			}
			bm.Add(pos)
		}
		if r.Favorite {
			idx.favorites.Add(pos)
		}
		if r.Archived {
			idx.archived.Add(pos)
		}
		idx.size++
	}
}

// ByTag returns the positions of records carrying tag (case-insensitive),
// in ascending (= insertion) order.
func (idx *Index) ByTag(tag string) []uint32 {
	bm, ok := idx.tags[strings.ToLower(tag)]
	if !ok {
		return nil
	}
	return bm.ToArray()
}

// Favorites returns the positions of favorite records.
func (idx *Index) Favorites() []uint32 {
	return idx.favorites.ToArray()
}

// Archived returns the positions of archived records.
func (idx *Index) Archived() []uint32 {
	return idx.archived.ToArray()
}

// Tags returns every indexed (lowercased) tag with its record count.
func (idx *Index) Tags() map[string]uint64 {
	out := make(map[string]uint64, len(idx.tags))
	for tag, bm := range idx.tags {
		out[tag] = bm.GetCardinality()
	}
	return out
}

// Criteria selects bitmaps to intersect in And.
type Criteria struct {
	// Tags requires every listed tag (case-insensitive).
	Tags []string
	// Favorite requires the favorite flag.
	Favorite bool
	// Archived requires the archived flag.
	Archived bool
}

// And intersects the bitmaps selected by c and returns matching positions in
// ascending order. Empty criteria match every indexed record.
func (idx *Index) And(c Criteria) []uint32 {
	acc := roaring.New()
	acc.AddRange(0, uint64(idx.size))

	for _, tag := range c.Tags {
		bm, ok := idx.tags[strings.ToLower(tag)]
		if !ok {
			return nil
		}
		acc.And(bm)
	}
	if c.Favorite {
		acc.And(idx.favorites)
	}
	if c.Archived {
		acc.And(idx.archived)
	}
	return acc.ToArray()
}

// Select materializes positions (as returned by the query methods) into
// records from lib. Positions that fell out of range after a library
// mutation are skipped; rebuild the index to resynchronize.
func Select(lib *record.Library, positions []uint32) []record.Record {
	out := make([]record.Record, 0, len(positions))
	for _, pos := range positions {
		if r, ok := lib.Get(int(pos)); ok {
			out = append(out, r)
		}
	}
	return out
}
