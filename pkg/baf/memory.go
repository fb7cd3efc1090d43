package baf

import (
	"errors"
	"fmt"
	"io"
)

// Memory is an in-memory [Stream] backed by a growable byte slice.
//
// Writes past the end grow the buffer, zero-filling any gap, matching the
// semantics of writing past the end of a file. The zero value is usable.
type Memory struct {
	buf []byte
	off int64
}

// NewMemory returns an empty in-memory stream.
func NewMemory() *Memory { return &Memory{} }

// MemoryFrom returns an in-memory stream over b. The slice is used directly,
// not copied.
func MemoryFrom(b []byte) *Memory { return &Memory{buf: b} }

// Bytes returns the current contents. The slice aliases the stream's buffer.
func (m *Memory) Bytes() []byte { return m.buf }

// Size returns the current length in bytes.
func (m *Memory) Size() int { return len(m.buf) }

func (m *Memory) Read(p []byte) (int, error) {
	if m.off >= int64(len(m.buf)) {
		return 0, io.EOF
	}

	n := copy(p, m.buf[m.off:])
	m.off += int64(n)

	return n, nil
}

func (m *Memory) Write(p []byte) (int, error) {
	if gap := m.off - int64(len(m.buf)); gap > 0 {
		m.buf = append(m.buf, make([]byte, gap)...)
	}

	n := copy(m.buf[m.off:], p)
	m.buf = append(m.buf, p[n:]...)
	m.off += int64(len(p))

	return len(p), nil
}

func (m *Memory) Seek(offset int64, whence int) (int64, error) {
	var abs int64

	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = m.off + offset
	case io.SeekEnd:
		abs = int64(len(m.buf)) + offset
	default:
		return 0, fmt.Errorf("memory stream: invalid seek whence %d", whence)
	}

	if abs < 0 {
		return 0, errors.New("memory stream: negative seek position")
	}

	m.off = abs

	return abs, nil
}
