package baf

import (
	"encoding/binary"
	"fmt"
)

// Segment header: next address (u64), dirs capacity (u32), files capacity
// (u32). Slots follow immediately, directories first.
const segmentHeaderSize = 16

// tableSegment is one fixed-capacity block of the file table chain, mirrored
// in memory. A nil slot is empty (all-zero bytes on disk).
type tableSegment struct {
	// next is the absolute address of the next segment; 0 ends the chain.
	next uint64

	dirs  []*Directory
	files []*File
}

// newEmptySegment builds an all-empty segment with the given capacities.
func newEmptySegment(dirs, files uint32) *tableSegment {
	return &tableSegment{
		dirs:  make([]*Directory, dirs),
		files: make([]*File, files),
	}
}

// encodedLen is the full on-disk span of the segment in bytes.
func (t *tableSegment) encodedLen() uint64 {
	return segmentHeaderSize +
		uint64(len(t.dirs))*dirEntrySize +
		uint64(len(t.files))*fileEntrySize
}

// dirSlotOffset is the offset of directory slot i from the segment base.
func (t *tableSegment) dirSlotOffset(i int) uint64 {
	return segmentHeaderSize + uint64(i)*dirEntrySize
}

// fileSlotOffset is the offset of file slot j from the segment base.
func (t *tableSegment) fileSlotOffset(j int) uint64 {
	return segmentHeaderSize + uint64(len(t.dirs))*dirEntrySize + uint64(j)*fileEntrySize
}

// encode serializes the whole segment, empty slots as zero bytes.
func (t *tableSegment) encode() []byte {
	buf := make([]byte, t.encodedLen())

	binary.LittleEndian.PutUint64(buf[0:], t.next)
	binary.LittleEndian.PutUint32(buf[8:], uint32(len(t.dirs)))
	binary.LittleEndian.PutUint32(buf[12:], uint32(len(t.files)))

	for i, d := range t.dirs {
		if d != nil {
			copy(buf[t.dirSlotOffset(i):], encodeDirectory(d))
		}
	}

	for j, f := range t.files {
		if f != nil {
			copy(buf[t.fileSlotOffset(j):], encodeFile(f))
		}
	}

	return buf
}

// decodeSegment reads the segment at addr. The stream must be positioned at
// addr already; entry addresses in errors are derived from it.
func decodeSegment(s *stream, addr uint64) (*tableSegment, error) {
	head := make([]byte, segmentHeaderSize)
	if err := s.readFull(head); err != nil {
		return nil, fmt.Errorf("segment header at %d: %w: %w", addr, ErrCorrupt, err)
	}

	next := binary.LittleEndian.Uint64(head[0:])
	dirCount := binary.LittleEndian.Uint32(head[8:])
	fileCount := binary.LittleEndian.Uint32(head[12:])

	if dirCount > maxSlotsPerSegment || fileCount > maxSlotsPerSegment {
		return nil, fmt.Errorf("segment at %d declares %d+%d slots: %w", addr, dirCount, fileCount, ErrCorrupt)
	}

	t := newEmptySegment(dirCount, fileCount)
	t.next = next

	buf := make([]byte, fileEntrySize)

	for i := range t.dirs {
		slotAddr := addr + t.dirSlotOffset(i)

		if err := s.readFull(buf[:dirEntrySize]); err != nil {
			return nil, &EntryError{Addr: slotAddr, IsDir: true, Err: err}
		}

		d, err := decodeDirectory(buf[:dirEntrySize])
		if err != nil {
			return nil, &EntryError{Addr: slotAddr, IsDir: true, Err: err}
		}

		t.dirs[i] = d
	}

	for j := range t.files {
		slotAddr := addr + t.fileSlotOffset(j)

		if err := s.readFull(buf[:fileEntrySize]); err != nil {
			return nil, &EntryError{Addr: slotAddr, Err: err}
		}

		f, err := decodeFile(buf[:fileEntrySize])
		if err != nil {
			return nil, &EntryError{Addr: slotAddr, Err: err}
		}

		t.files[j] = f
	}

	return t, nil
}
