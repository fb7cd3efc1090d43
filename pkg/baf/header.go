package baf

import (
	"encoding/binary"
	"fmt"
)

// BAF file header constants.
const (
	// Magic bytes at the start of every archive.
	headerMagic = "BASICARC"

	// File format version. Exactly one version exists; anything else is
	// rejected.
	formatVersion = 1

	// Fixed header size in bytes. The first file table segment starts
	// right after.
	headerSize = 256
)

// encodeHeader serializes the fixed 256-byte archive header.
func encodeHeader() []byte {
	buf := make([]byte, headerSize)

	copy(buf, headerMagic)
	binary.LittleEndian.PutUint32(buf[len(headerMagic):], formatVersion)

	return buf
}

// decodeHeader reads and validates the header from the start of the stream,
// leaving the position at the first segment.
func decodeHeader(s *stream) error {
	s.setPos(0)

	buf := make([]byte, headerSize)
	if err := s.readFull(buf); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}

	if string(buf[:len(headerMagic)]) != headerMagic {
		return fmt.Errorf("bad magic %q: %w", buf[:len(headerMagic)], ErrInvalidHeader)
	}

	version := binary.LittleEndian.Uint32(buf[len(headerMagic):])
	if version != formatVersion {
		return fmt.Errorf("unknown version %d: %w", version, ErrInvalidHeader)
	}

	for _, b := range buf[len(headerMagic)+4:] {
		if b != 0 {
			return fmt.Errorf("non-zero byte in header padding: %w", ErrInvalidHeader)
		}
	}

	return nil
}
