// Package persistence implements the on-disk representations of a Library
// and the tiered reading strategy for text snapshots.
//
// Two artifacts exist per store: a structured text snapshot (codec-marshaled
// envelope with one named array-of-records field) and a compact binary
// snapshot (self-identifying container with magic, version, compression id,
// codec name and a CRC32-verified compressed payload).
//
// Binary decode failures of any kind wrap ErrCorruptSnapshot so callers can
// fail closed: delete the damaged file and regenerate it from the text tier.
package persistence
