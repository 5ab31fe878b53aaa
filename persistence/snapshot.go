package persistence

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/picobrowse/markvault/codec"
	"github.com/picobrowse/markvault/record"
)

// Envelope is the serialized shape of a Library: a single named
// array-of-records field. Both the text and binary snapshot carry it.
type Envelope struct {
	Records []record.Record `json:"records"`
}

// EncodeBinary writes lib to w as a self-identifying binary snapshot.
//
// Container layout:
//
//	magic (4) | version (2, LE) | compression id (1) | codec name len (1)
//	codec name (n) | payload CRC32 (4, LE) | payload len (4, LE) | payload
//
// The payload is the codec-marshaled Envelope, compressed per comp.
func EncodeBinary(w io.Writer, lib *record.Library, c codec.Codec, comp Compression) error {
	if c == nil {
		c = codec.Default
	}
	if !comp.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(comp))
	}
	name := c.Name()
	if len(name) > 0xFF {
		return fmt.Errorf("codec name too long: %d", len(name))
	}

	plain, err := c.Marshal(Envelope{Records: lib.Records()})
	if err != nil {
		return fmt.Errorf("encode snapshot payload: %w", err)
	}
	payload, err := compress(plain, comp)
	if err != nil {
		return fmt.Errorf("compress snapshot payload: %w", err)
	}
	if len(payload) > maxPayloadLen {
		return fmt.Errorf("snapshot payload too large: %d bytes", len(payload))
	}

	hdr := make([]byte, 0, 8+len(name))
	hdr = append(hdr, snapshotMagic[:]...)
	hdr = binary.LittleEndian.AppendUint16(hdr, snapshotFormatVersion)
	hdr = append(hdr, byte(comp), byte(len(name)))
	hdr = append(hdr, name...)
	if _, err := w.Write(hdr); err != nil {
		return err
	}

	var trailer [8]byte
	binary.LittleEndian.PutUint32(trailer[0:4], ComputeChecksum(payload))
	binary.LittleEndian.PutUint32(trailer[4:8], uint32(len(payload)))
	if _, err := w.Write(trailer[:]); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

// DecodeBinary reads a binary snapshot from r and reconstructs the Library.
//
// If c is nil the codec is resolved from the snapshot header. Every failure
// (bad magic, version or compression mismatch, truncation, checksum
// mismatch, undecodable payload) wraps ErrCorruptSnapshot so the recovery
// chain can fail closed: delete the file and fall back to the text tier.
func DecodeBinary(r io.Reader, c codec.Codec) (*record.Library, error) {
	var fixed [8]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return nil, corrupt("read header: %w", err)
	}
	if !bytes.Equal(fixed[0:4], snapshotMagic[:]) {
		return nil, corrupt("%w: got %q", ErrInvalidMagic, fixed[0:4])
	}
	if v := binary.LittleEndian.Uint16(fixed[4:6]); v != snapshotFormatVersion {
		return nil, corrupt("%w: got %d", ErrInvalidVersion, v)
	}
	comp := Compression(fixed[6])
	if !comp.valid() {
		return nil, corrupt("%w: %d", ErrUnknownCompression, fixed[6])
	}

	name := make([]byte, fixed[7])
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, corrupt("read codec name: %w", err)
	}
	if c == nil {
		cc, ok := codec.ByName(string(name))
		if !ok {
			return nil, corrupt("%w: %q", ErrUnknownCodec, name)
		}
		c = cc
	} else if len(name) > 0 && c.Name() != string(name) {
		return nil, corrupt("%w: snapshot written with %q, decoding with %q", ErrUnknownCodec, name, c.Name())
	}

	var trailer [8]byte
	if _, err := io.ReadFull(r, trailer[:]); err != nil {
		return nil, corrupt("read payload header: %w", err)
	}
	wantSum := binary.LittleEndian.Uint32(trailer[0:4])
	payloadLen := binary.LittleEndian.Uint32(trailer[4:8])
	if payloadLen > maxPayloadLen {
		return nil, corrupt("payload length %d exceeds limit %d", payloadLen, maxPayloadLen)
	}

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, corrupt("read payload: %w", err)
	}
	if sum := ComputeChecksum(payload); sum != wantSum {
		return nil, corrupt("%w", &ChecksumMismatchError{Expected: wantSum, Actual: sum})
	}

	plain, err := decompress(payload, comp)
	if err != nil {
		return nil, corrupt("decompress payload: %w", err)
	}

	var env Envelope
	if err := c.Unmarshal(plain, &env); err != nil {
		return nil, corrupt("decode payload: %w", err)
	}
	return record.FromRecords(env.Records), nil
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrCorruptSnapshot}, args...)...)
}

func compress(data []byte, comp Compression) ([]byte, error) {
	switch comp {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		out := enc.EncodeAll(data, nil)
		return out, enc.Close()
	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(comp))
	}
}

func decompress(data []byte, comp Compression) ([]byte, error) {
	switch comp {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	case CompressionLZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(comp))
	}
}
