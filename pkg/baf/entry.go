package baf

import (
	"encoding/binary"
	"fmt"
)

// ID identifies a directory or file within an archive, unique across both
// kinds for the lifetime of the handle. The zero value never identifies an
// item: on disk it marks empty slots, and in parent fields it stands for the
// root directory.
type ID uint64

// Root is the implicit top-level directory. It always exists and has no
// entry of its own.
const Root ID = 0

// Entry layout constants. Multi-byte integers are little-endian.
const (
	// Directory entry: id, parent, name, modTime.
	dirEntrySize = 280

	// File entry: directory entry fields plus contentAddr, contentLen and
	// a SHA3-256 checksum.
	fileEntrySize = 328

	// Offset of the name field inside either entry kind. Renames patch
	// only this region.
	entryNameOff = 16
)

// Directory is a directory's metadata record.
type Directory struct {
	ID      ID
	Parent  ID // Root or the ID of another directory
	Name    string
	ModTime uint64 // seconds since Unix epoch
}

// File is a file's metadata record.
type File struct {
	ID      ID
	Parent  ID
	Name    string
	ModTime uint64

	// ContentAddr is the absolute byte offset of the payload;
	// ContentLen its length in bytes.
	ContentAddr uint64
	ContentLen  uint64

	// Checksum is the SHA3-256 of the payload.
	Checksum [32]byte
}

// Item is an entry of either kind: *Directory or *File.
type Item interface {
	ItemID() ID
	ItemName() string
	ItemParent() ID
}

func (d *Directory) ItemID() ID       { return d.ID }
func (d *Directory) ItemName() string { return d.Name }
func (d *Directory) ItemParent() ID   { return d.Parent }

func (f *File) ItemID() ID       { return f.ID }
func (f *File) ItemName() string { return f.Name }
func (f *File) ItemParent() ID   { return f.Parent }

// encodeDirectory serializes d into a 280-byte entry.
func encodeDirectory(d *Directory) []byte {
	buf := make([]byte, dirEntrySize)

	binary.LittleEndian.PutUint64(buf[0:], uint64(d.ID))
	binary.LittleEndian.PutUint64(buf[8:], uint64(d.Parent))
	encodeName(buf[entryNameOff:], d.Name)
	binary.LittleEndian.PutUint64(buf[entryNameOff+nameFieldSize:], d.ModTime)

	return buf
}

// decodeDirectory parses a 280-byte entry. An entry whose id field is zero
// is an empty slot and decodes to nil.
func decodeDirectory(buf []byte) (*Directory, error) {
	_ = buf[dirEntrySize-1]

	id := binary.LittleEndian.Uint64(buf[0:])
	if id == 0 {
		return nil, nil
	}

	name, err := decodeName(buf[entryNameOff:])
	if err != nil {
		return nil, err
	}

	return &Directory{
		ID:      ID(id),
		Parent:  ID(binary.LittleEndian.Uint64(buf[8:])),
		Name:    name,
		ModTime: binary.LittleEndian.Uint64(buf[entryNameOff+nameFieldSize:]),
	}, nil
}

// encodeFile serializes f into a 328-byte entry.
func encodeFile(f *File) []byte {
	buf := make([]byte, fileEntrySize)

	binary.LittleEndian.PutUint64(buf[0:], uint64(f.ID))
	binary.LittleEndian.PutUint64(buf[8:], uint64(f.Parent))
	encodeName(buf[entryNameOff:], f.Name)
	binary.LittleEndian.PutUint64(buf[272:], f.ModTime)
	binary.LittleEndian.PutUint64(buf[280:], f.ContentAddr)
	binary.LittleEndian.PutUint64(buf[288:], f.ContentLen)
	copy(buf[296:], f.Checksum[:])

	return buf
}

// decodeFile parses a 328-byte entry. An entry whose id field is zero is an
// empty slot and decodes to nil.
func decodeFile(buf []byte) (*File, error) {
	_ = buf[fileEntrySize-1]

	id := binary.LittleEndian.Uint64(buf[0:])
	if id == 0 {
		return nil, nil
	}

	name, err := decodeName(buf[entryNameOff:])
	if err != nil {
		return nil, err
	}

	f := &File{
		ID:          ID(id),
		Parent:      ID(binary.LittleEndian.Uint64(buf[8:])),
		Name:        name,
		ModTime:     binary.LittleEndian.Uint64(buf[272:]),
		ContentAddr: binary.LittleEndian.Uint64(buf[280:]),
		ContentLen:  binary.LittleEndian.Uint64(buf[288:]),
	}
	copy(f.Checksum[:], buf[296:])

	return f, nil
}

// checkOverflow guards offset arithmetic on attacker-controlled values.
func checkOverflow(addr, length uint64) error {
	if addr+length < addr {
		return fmt.Errorf("range %d+%d overflows: %w", addr, length, ErrCorrupt)
	}

	return nil
}
