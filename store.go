package markvault

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/picobrowse/markvault/codec"
	"github.com/picobrowse/markvault/persistence"
	"github.com/picobrowse/markvault/record"
	"github.com/picobrowse/markvault/search"
)

// Store is the persistence façade for one record collection. It coordinates
// the recovery chain on load, writes both snapshot formats on save, and owns
// the single background writer that serializes scheduled saves.
//
// A Store never surfaces persistence failures to the caller: Load always
// returns a usable Library and Save is best-effort, log-and-continue. The
// in-memory Library stays authoritative when a write fails.
type Store struct {
	dir         string
	name        string
	kind        Kind
	codec       codec.Codec
	compression persistence.Compression
	logger      *Logger
	clock       func() time.Time
	starters    []record.Record
	engine      search.Engine

	// mu serializes disk writes: the background writer and synchronous Save
	// never overlap on the same files.
	mu     sync.Mutex
	writer *writer

	closeOnce sync.Once
	closed    chan struct{}
}

// Open creates a Store persisting under dir. The directory is created if
// needed. Files are "<name>.json" (text snapshot) and "<name>.snap"
// (binary snapshot), with name defaulting per kind.
func Open(dir string, kind Kind, opts ...Option) (*Store, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, kind)
	}

	o := options{
		codec:       codec.Default,
		compression: persistence.CompressionZstd,
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = NewLogger(nil)
	}
	if o.fileName == "" {
		o.fileName = kind.defaultName()
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("markvault: create store directory: %w", err)
	}

	s := &Store{
		dir:         dir,
		name:        o.fileName,
		kind:        kind,
		codec:       o.codec,
		compression: o.compression,
		logger:      o.logger.WithStore(o.fileName),
		clock:       o.clock,
		starters:    o.starters,
		closed:      make(chan struct{}),
	}
	if kind == KindBookmarks && s.starters == nil {
		s.starters = starterBookmarks(s.clock())
	}
	s.writer = newWriter(s, o.saveInterval)
	return s, nil
}

// TextPath returns the path of the text snapshot.
func (s *Store) TextPath() string {
	return filepath.Join(s.dir, s.name+".json")
}

// BinaryPath returns the path of the binary snapshot.
func (s *Store) BinaryPath() string {
	return filepath.Join(s.dir, s.name+".snap")
}

// Load restores the Library from disk. It never fails: the recovery chain
// runs binary → text → default and the final fallback is always a usable
// (possibly seeded) Library.
//
//  1. If a binary snapshot decodes, it is persisted back out (self-healing)
//     and returned.
//  2. A corrupt binary snapshot is deleted so it cannot poison future
//     loads, and the text tier takes over.
//  3. A decodable text snapshot is returned after regenerating the binary
//     cache.
//  4. Otherwise the default Library is returned: the starter set for a
//     first-run bookmark store, empty for everything else.
func (s *Store) Load(ctx context.Context) *record.Library {
	return s.load(ctx, false)
}

// LoadBypassingBinary deletes any binary snapshot unconditionally and
// recovers from the text tier. Callers use it when the binary cache is
// suspected of recording a collection that was mutated mid-write.
func (s *Store) LoadBypassingBinary(ctx context.Context) *record.Library {
	return s.load(ctx, true)
}

func (s *Store) load(ctx context.Context, bypassBinary bool) *record.Library {
	binPath := s.BinaryPath()

	if bypassBinary {
		if err := os.Remove(binPath); err == nil {
			s.logger.Info("bypassing binary snapshot", "path", binPath)
		}
	} else if lib, ok := s.tryBinary(binPath); ok {
		// Self-healing write: a good binary load refreshes both artifacts.
		s.Save(ctx, lib)
		s.logger.LogLoad("binary", lib.Len(), nil)
		return lib
	}

	if lib, ok := s.tryText(ctx); ok {
		return lib
	}

	return s.defaultLibrary(ctx)
}

// tryBinary attempts the binary tier. A missing file reports (nil, false)
// silently; a corrupt file is deleted first.
func (s *Store) tryBinary(path string) (*record.Library, bool) {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.LogLoad("binary", 0, err)
		}
		return nil, false
	}
	lib, err := func() (*record.Library, error) {
		defer f.Close()
		return persistence.DecodeBinary(f, nil)
	}()
	if err != nil {
		s.logger.LogCorruptSnapshot(path, err)
		if rmErr := os.Remove(path); rmErr != nil {
			s.logger.Warn("could not delete corrupt snapshot", "path", path, "error", rmErr)
		}
		return nil, false
	}
	return lib, true
}

// tryText attempts the text tier via the size-tiered reader.
func (s *Store) tryText(ctx context.Context) (*record.Library, bool) {
	path := s.TextPath()
	text, err := persistence.ReadTiered(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.LogLoad("text", 0, err)
		}
		return nil, false
	}
	lib, err := persistence.DecodeText([]byte(text), s.codec)
	if err != nil {
		s.logger.LogLoad("text", 0, err)
		return nil, false
	}
	// Regenerate the binary cache from the recovered text.
	s.Save(ctx, lib)
	s.logger.LogLoad("text", lib.Len(), nil)
	return lib, true
}

// defaultLibrary is the last resort of the recovery chain. Seeding persists
// immediately so it happens once: subsequent loads take the snapshot path.
func (s *Store) defaultLibrary(ctx context.Context) *record.Library {
	if s.kind == KindBookmarks && len(s.starters) > 0 && !s.textExists() {
		lib := record.FromRecords(s.starters)
		s.logger.LogSeed(lib.Len())
		s.Save(ctx, lib)
		return lib
	}
	s.logger.LogLoad("default", 0, nil)
	return record.NewLibrary()
}

// textExists distinguishes "no snapshot was ever written" (seed) from
// "a snapshot exists but is currently unreadable" (do not clobber it).
func (s *Store) textExists() bool {
	_, err := os.Stat(s.TextPath())
	return err == nil
}

// Save writes both snapshot formats from lib. It is best-effort and never
// returns an error: each format is written independently, a failure in one
// does not block the other, and failures are logged. Writes to the same
// store are serialized internally, so Save is safe to call concurrently
// with the background writer.
func (s *Store) Save(ctx context.Context, lib *record.Library) {
	select {
	case <-s.closed:
		s.logger.Warn("save on closed store dropped")
		return
	default:
	}
	if err := ctx.Err(); err != nil {
		s.logger.Warn("save skipped", "error", err)
		return
	}

	// Snapshot the records once so both writers serialize identical state
	// even if the caller keeps mutating lib.
	snapshot := record.FromRecords(lib.Records())

	s.mu.Lock()
	defer s.mu.Unlock()

	var g errgroup.Group
	g.Go(func() error {
		err := persistence.SaveToFile(s.TextPath(), func(w io.Writer) error {
			data, err := persistence.EncodeText(snapshot, s.codec)
			if err != nil {
				return err
			}
			_, err = w.Write(data)
			return err
		})
		s.logger.LogSave(s.TextPath(), "text", err)
		return nil
	})
	g.Go(func() error {
		err := persistence.SaveToFile(s.BinaryPath(), func(w io.Writer) error {
			return persistence.EncodeBinary(w, snapshot, s.codec, s.compression)
		})
		s.logger.LogSave(s.BinaryPath(), "binary", err)
		return nil
	})
	_ = g.Wait()
}

// ScheduleSave hands lib to the background writer. The records are copied
// immediately, so the caller may keep mutating its Library; bursts coalesce
// into a single write and the most recent snapshot always reaches disk.
// An accepted snapshot survives a concurrent Close: the writer either takes
// it before its final flush or refuses it outright.
func (s *Store) ScheduleSave(lib *record.Library) {
	if !s.writer.schedule(record.FromRecords(lib.Records())) {
		s.logger.Warn("scheduled save on closed store dropped")
	}
}

// Search ranks the entries of lib against query, best match first. Pure
// in-memory computation; see the search package for the scoring contract.
func (s *Store) Search(lib *record.Library, query string) []record.Record {
	return s.engine.Search(lib, query)
}

// Close flushes any pending scheduled save and stops the background writer.
// The store must not be used afterwards.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.writer.stop()
		close(s.closed)
	})
	return nil
}
