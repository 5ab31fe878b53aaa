package persistence

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/picobrowse/markvault/internal/mmap"
)

// ReadStrategy selects how a text snapshot is pulled off disk.
type ReadStrategy int

const (
	// StrategyWhole reads the entire file in one call.
	StrategyWhole ReadStrategy = iota
	// StrategyBuffered streams the file through a buffered reader.
	StrategyBuffered
	// StrategyMmap maps the file and copies out of the mapping. If mapping
	// fails it degrades to a line-by-line read instead of failing outright.
	StrategyMmap
)

const (
	wholeReadLimit    = 512 * 1024      // 0.5 MiB
	bufferedReadLimit = 5 * 1024 * 1024 // 5 MiB
)

// StrategyForSize picks the read strategy for a file of the given byte size.
// Small files are read whole, mid-sized files are streamed, and large files
// are memory-mapped to bound copy overhead and latency.
func StrategyForSize(size int64) ReadStrategy {
	switch {
	case size <= wholeReadLimit:
		return StrategyWhole
	case size <= bufferedReadLimit:
		return StrategyBuffered
	default:
		return StrategyMmap
	}
}

// ReadTiered reads the text snapshot at path, choosing the strategy from the
// file size. All strategies return identical content for identical files.
// I/O errors propagate; the recovery chain treats them as "no text snapshot".
func ReadTiered(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	switch StrategyForSize(fi.Size()) {
	case StrategyWhole:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case StrategyBuffered:
		var sb strings.Builder
		sb.Grow(int(fi.Size()))
		err := LoadFromFile(path, func(r io.Reader) error {
			_, err := io.Copy(&sb, r)
			return err
		})
		if err != nil {
			return "", err
		}
		return sb.String(), nil

	default:
		text, err := readMapped(path)
		if err != nil {
			// Mapping can fail under memory pressure; degrade to the slower
			// bounded-buffer path rather than failing the read.
			return readByLines(path, fi.Size())
		}
		return text, nil
	}
}

func readMapped(path string) (string, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return "", err
	}
	defer m.Close()
	return string(m.Bytes()), nil
}

// readByLines rebuilds the file content line by line. Delimiters are
// preserved, so the result is byte-identical to the other strategies.
func readByLines(path string, size int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sb strings.Builder
	sb.Grow(int(size))
	br := bufio.NewReader(f)
	for {
		line, err := br.ReadString('\n')
		sb.WriteString(line)
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
	}
}
