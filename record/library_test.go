package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_SetRating_Clamps(t *testing.T) {
	var r Record

	r.SetRating(3.5)
	assert.Equal(t, 3.5, r.Rating)

	r.SetRating(-1)
	assert.Equal(t, 0.0, r.Rating)

	r.SetRating(9.9)
	assert.Equal(t, 5.0, r.Rating)
}

func TestRecord_TagDedupe_CaseInsensitive(t *testing.T) {
	var r Record

	require.True(t, r.AddTag("News"))
	require.False(t, r.AddTag("news"))
	require.False(t, r.AddTag("NEWS"))
	assert.Equal(t, []string{"News"}, r.Tags)

	assert.True(t, r.HasTag("nEwS"))
	assert.True(t, r.RemoveTag("NEWS"))
	assert.False(t, r.HasTag("news"))
	assert.Empty(t, r.Tags)
}

func TestRecord_SharedWithDedupe(t *testing.T) {
	var r Record

	require.True(t, r.AddSharedWith("alice@example.com"))
	require.False(t, r.AddSharedWith("Alice@Example.com"))
	assert.Len(t, r.SharedWith, 1)
	assert.True(t, r.IsSharedWith("ALICE@EXAMPLE.COM"))

	assert.True(t, r.RemoveSharedWith("alice@example.com"))
	assert.Empty(t, r.SharedWith)
}

func TestRecord_Touch(t *testing.T) {
	var r Record
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	r.Touch(now)
	r.Touch(now.Add(time.Hour))

	assert.Equal(t, 2, r.AccessCount)
	assert.Equal(t, now.Add(time.Hour), r.LastAccessed)
}

func TestRecord_Equal_EmptyVsNilCollections(t *testing.T) {
	a := Record{Name: "a", Tags: []string{}, SharedWith: nil}
	b := Record{Name: "a", Tags: nil, SharedWith: []string{}}
	assert.True(t, a.Equal(b))
}

func TestLibrary_CRUD(t *testing.T) {
	lib := NewLibrary()
	require.Equal(t, 0, lib.Len())

	lib.Add(New("Go", "https://go.dev"))
	lib.Add(New("Rust", "https://rust-lang.org"))
	lib.Insert(1, New("Zig", "https://ziglang.org"))
	require.Equal(t, 3, lib.Len())

	r, ok := lib.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Zig", r.Name)

	_, ok = lib.Get(99)
	assert.False(t, ok)

	// Update out of range is a no-op, not an error.
	assert.False(t, lib.Update(99, New("x", "y")))

	r.Name = "Ziglang"
	require.True(t, lib.Update(1, r))
	r, _ = lib.Get(1)
	assert.Equal(t, "Ziglang", r.Name)

	require.True(t, lib.RemoveAt(0))
	assert.Equal(t, 2, lib.Len())
	r, _ = lib.Get(0)
	assert.Equal(t, "Ziglang", r.Name)

	removed := lib.Remove(func(rec Record) bool { return rec.Name == "Rust" })
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, lib.Len())

	lib.Clear()
	assert.Equal(t, 0, lib.Len())
}

func TestLibrary_GetReturnsCopy(t *testing.T) {
	lib := NewLibrary()
	r := New("Go", "https://go.dev")
	r.AddTag("lang")
	lib.Add(r)

	got, _ := lib.Get(0)
	got.Tags[0] = "mutated"

	fresh, _ := lib.Get(0)
	assert.Equal(t, []string{"lang"}, fresh.Tags)
}

func TestLibrary_Mutate(t *testing.T) {
	lib := NewLibrary()
	lib.Add(New("Go", "https://go.dev"))

	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	require.True(t, lib.Mutate(0, func(r *Record) { r.Touch(now) }))
	assert.False(t, lib.Mutate(5, func(r *Record) { r.Touch(now) }))

	r, _ := lib.Get(0)
	assert.Equal(t, 1, r.AccessCount)
	assert.Equal(t, now, r.LastAccessed)
}

func TestLibrary_FindDuplicates(t *testing.T) {
	lib := NewLibrary()
	lib.Add(Record{Name: "Go homepage", URL: "https://go.dev"})
	lib.Add(Record{Name: "Unique", URL: "https://example.com"})
	lib.Add(Record{Name: "Golang", URL: "https://go.dev"})
	lib.Add(Record{Name: "Go again", URL: "https://go.dev"})

	dupes := lib.FindDuplicates()
	require.Len(t, dupes, 3)
	for _, d := range dupes {
		assert.Equal(t, "https://go.dev", d.URL)
	}
	// Insertion order preserved.
	assert.Equal(t, "Go homepage", dupes[0].Name)
	assert.Equal(t, "Golang", dupes[1].Name)
	assert.Equal(t, "Go again", dupes[2].Name)
}

func TestLibrary_Projections(t *testing.T) {
	mk := func(name string, fav, arch bool, rating float64, prio int, tags ...string) Record {
		r := Record{Name: name, URL: "https://" + name, Favorite: fav, Archived: arch, Priority: prio}
		r.SetRating(rating)
		for _, tag := range tags {
			r.AddTag(tag)
		}
		return r
	}

	lib := NewLibrary()
	lib.Add(mk("a", true, false, 4.5, 2, "news"))
	lib.Add(mk("b", false, true, 2.0, 5, "Tech"))
	lib.Add(mk("c", true, true, 5.0, 1, "news", "tech"))

	assert.Len(t, lib.Favorites(), 2)
	assert.Len(t, lib.Archived(), 2)
	assert.Len(t, lib.FilterByTag("NEWS"), 2)
	assert.Len(t, lib.FilterByTag("tech"), 2)
	assert.Empty(t, lib.FilterByTag("missing"))
	assert.Len(t, lib.FilterByMinRating(4.0), 2)
	assert.Len(t, lib.FilterByMinPriority(2), 2)
}

func TestLibrary_SharedWithUser(t *testing.T) {
	lib := NewLibrary()
	shared := New("Doc", "https://docs.example.com")
	shared.AddSharedWith("Bob")
	lib.Add(shared)
	lib.Add(New("Private", "https://private.example.com"))

	got := lib.SharedWithUser("bob")
	require.Len(t, got, 1)
	assert.Equal(t, "Doc", got[0].Name)
}

func TestLibrary_SortBy(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	lib := NewLibrary()
	lib.Add(Record{Name: "banana", CreatedAt: newer})
	lib.Add(Record{Name: "Apple", CreatedAt: older})

	byName := lib.SortBy(SortByName)
	assert.Equal(t, "Apple", byName[0].Name)

	byDate := lib.SortBy(SortByDate)
	assert.Equal(t, "banana", byDate[0].Name)

	// Unrecognized keys fall back to insertion order.
	passthrough := lib.SortBy(SortNone)
	assert.Equal(t, "banana", passthrough[0].Name)
	passthrough = lib.SortBy(SortKey(42))
	assert.Equal(t, "banana", passthrough[0].Name)

	// Sorting never mutates the library itself.
	first, _ := lib.Get(0)
	assert.Equal(t, "banana", first.Name)
}
