package baf

import (
	"bytes"
	"testing"
)

func Test_Stream_Reads_Are_Buffered_And_Positional(t *testing.T) {
	t.Parallel()

	data := make([]byte, 1000)
	for i := range data {
		data[i] = byte(i)
	}

	s := newStream(MemoryFrom(data))

	buf := make([]byte, 10)

	s.setPos(100)

	if err := s.readFull(buf); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(buf, data[100:110]) {
		t.Fatalf("got %v, want %v", buf, data[100:110])
	}

	if got := s.position(); got != 110 {
		t.Fatalf("position = %d, want 110", got)
	}

	// Jump backwards; the read buffer must not leak stale bytes.
	s.setPos(0)

	if err := s.readFull(buf); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(buf, data[0:10]) {
		t.Fatalf("got %v, want %v", buf, data[0:10])
	}
}

func Test_Stream_Write_After_ReadAhead_Lands_At_The_Logical_Position(t *testing.T) {
	t.Parallel()

	m := MemoryFrom(make([]byte, 100))
	s := newStream(m)

	// Prime the read buffer: bufio reads ahead well past position 4.
	s.setPos(0)

	if err := s.readFull(make([]byte, 4)); err != nil {
		t.Fatal(err)
	}

	// A write at the logical position must ignore the read-ahead.
	if err := s.writeAll([]byte{0xAA, 0xBB}); err != nil {
		t.Fatal(err)
	}

	if m.Bytes()[4] != 0xAA || m.Bytes()[5] != 0xBB {
		t.Fatalf("write landed at the wrong offset: %v", m.Bytes()[:8])
	}

	// And a subsequent read observes the write.
	s.setPos(4)

	buf := make([]byte, 2)
	if err := s.readFull(buf); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(buf, []byte{0xAA, 0xBB}) {
		t.Fatalf("read back %v", buf)
	}
}

func Test_Stream_Length_Tracks_Growth(t *testing.T) {
	t.Parallel()

	s := newStream(NewMemory())

	n, err := s.length()
	if err != nil || n != 0 {
		t.Fatalf("empty length = (%d, %v)", n, err)
	}

	s.setPos(10)

	if err := s.writeAll([]byte("abc")); err != nil {
		t.Fatal(err)
	}

	n, err = s.length()
	if err != nil || n != 13 {
		t.Fatalf("grown length = (%d, %v), want 13", n, err)
	}
}
