package persistence

import "errors"

var (
	// snapshotMagic identifies markvault binary snapshots (ASCII: "MVB1").
	snapshotMagic = [4]byte{'M', 'V', 'B', '1'}

	// snapshotFormatVersion is the current binary container version.
	snapshotFormatVersion = uint16(1)
)

// maxPayloadLen bounds the payload length read from a snapshot header. The
// field is untrusted until the checksum verifies, so it must never size an
// allocation larger than any legitimate on-device snapshot.
const maxPayloadLen = 256 << 20 // 256 MiB

var (
	// ErrInvalidMagic is returned when a file does not start with the
	// snapshot magic number.
	ErrInvalidMagic = errors.New("invalid magic number")

	// ErrInvalidVersion is returned for snapshots written by an
	// incompatible format version.
	ErrInvalidVersion = errors.New("unsupported snapshot version")

	// ErrUnknownCodec is returned when a snapshot names a codec this build
	// does not provide.
	ErrUnknownCodec = errors.New("unknown snapshot codec")

	// ErrUnknownCompression is returned for an unrecognized compression id.
	ErrUnknownCompression = errors.New("unknown snapshot compression")

	// ErrCorruptSnapshot wraps every binary decode failure. The recovery
	// chain checks for it, deletes the offending file and falls through to
	// the text tier, so corruption can never poison future loads.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)

// Compression identifies the compression applied to the snapshot payload.
// The id is recorded in the snapshot header so decoding never guesses.
type Compression uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = 0
	// CompressionZstd compresses the payload with zstandard (the default).
	CompressionZstd Compression = 1
	// CompressionLZ4 compresses the payload with the LZ4 frame format.
	CompressionLZ4 Compression = 2
)

// String returns the stable name of the compression scheme.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

func (c Compression) valid() bool {
	switch c {
	case CompressionNone, CompressionZstd, CompressionLZ4:
		return true
	default:
		return false
	}
}
