// Package record defines the data model of markvault: the Record entry and
// the Library collection.
//
// # Record
//
// A Record is one saved item (bookmark or history entry) with plain value
// semantics. No field is globally unique; duplicate URLs are surfaced by
// Library.FindDuplicates rather than prevented at insert time.
//
// # Library
//
// A Library is the insertion-ordered collection of Records for one store.
// It exposes CRUD operations plus the convenience projections consumed by
// UI layers: filter by tag/rating/priority, favorites, archived,
// shared-with, duplicate detection and stable sorting.
//
// The Library performs no I/O and no internal locking; persistence and
// serialization live in the persistence and codec packages, and the store
// façade provides the single-writer discipline.
package record
