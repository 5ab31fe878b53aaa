package markvault

import (
	"time"

	"github.com/picobrowse/markvault/codec"
	"github.com/picobrowse/markvault/persistence"
	"github.com/picobrowse/markvault/record"
)

// Kind selects what a store holds. Bookmarks and history stores are
// structurally identical; the kind only decides the default file name and
// whether a first run is seeded with the starter set.
type Kind int

const (
	// KindBookmarks stores user bookmarks. First run seeds the starter set.
	KindBookmarks Kind = iota
	// KindHistory stores visited-page records. First run starts empty.
	KindHistory
)

func (k Kind) valid() bool {
	return k == KindBookmarks || k == KindHistory
}

func (k Kind) defaultName() string {
	if k == KindHistory {
		return "history"
	}
	return "bookmarks"
}

type options struct {
	codec        codec.Codec
	compression  persistence.Compression
	logger       *Logger
	fileName     string
	starters     []record.Record
	saveInterval time.Duration
	clock        func() time.Time
}

// Option configures store construction.
type Option func(*options)

// WithCodec configures the codec used for both snapshot formats.
//
// If nil is passed, codec.Default is used. Existing binary snapshots are
// self-describing and decode with the codec named in their header regardless
// of this setting.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression selects the binary snapshot compression scheme.
// The default is zstd.
func WithCompression(c persistence.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithLogger replaces the default text logger. Pass NoopLogger() to silence
// the store.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFileName overrides the base name of the persisted files
// ("<name>.json" and "<name>.snap"). The default follows the store kind.
func WithFileName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.fileName = name
		}
	}
}

// WithStarterRecords replaces the built-in starter set seeded into a
// bookmark store on first run. Pass an empty slice to disable seeding.
func WithStarterRecords(records []record.Record) Option {
	return func(o *options) {
		o.starters = records
	}
}

// WithSaveInterval paces the background writer: scheduled saves coalesce
// and at most one disk write happens per interval, with the most recent
// snapshot always flushed on Close. Zero disables pacing.
func WithSaveInterval(d time.Duration) Option {
	return func(o *options) {
		o.saveInterval = d
	}
}

// WithClock replaces the time source. Test seam; defaults to time.Now.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}
