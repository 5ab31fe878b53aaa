// Package markvault is the bookmark/history persistence and search core of
// the picobrowse browser.
//
// It durably stores a growing, user-editable collection of named-URL
// records across two on-device formats with automatic fallback and
// corruption recovery, and answers fuzzy natural-language queries against
// the collection with relevance ranking.
//
// # Stores and Libraries
//
// A Store owns the on-disk representation of one collection; the in-memory
// collection is a record.Library that callers mutate and pass back in:
//
//	store, err := markvault.Open("./data", markvault.KindBookmarks)
//	if err != nil {
//	    panic(err)
//	}
//	defer store.Close()
//
//	lib := store.Load(ctx)            // never fails; recovery chain inside
//	lib.Add(record.New("Go", "https://go.dev"))
//	store.ScheduleSave(lib)           // coalesced background write
//
//	results := store.Search(lib, "golang")
//
// Two files exist per store: a structured text snapshot ("<name>.json") and
// a compact binary snapshot ("<name>.snap"). Load prefers the binary file,
// deletes it and falls back to the text file if it is corrupt, and as a last
// resort returns a default Library — seeded with a small starter set for a
// first-run bookmark store, empty for history.
//
// # Concurrency
//
// Load, Save and Search are synchronous; callers decide their execution
// context. Each store runs one background writer: ScheduleSave copies the
// records immediately, coalesces bursts, and serializes disk writes with
// synchronous Save, so overlapping writes to the same files cannot occur.
// The most recent scheduled snapshot is always flushed on Close.
//
// # Search
//
// Search combines exact, substring, token AND and bounded-window similarity
// signals into a composite score, drops weak candidates and orders exact
// matches first. See the search package for the full contract.
package markvault
