package baf_test

import (
	"io"
	"testing"

	"github.com/bafarchive/baf/pkg/baf"
)

func Test_Memory_Write_Past_End_Zero_Fills_The_Gap(t *testing.T) {
	t.Parallel()

	m := baf.NewMemory()

	if _, err := m.Seek(4, io.SeekStart); err != nil {
		t.Fatal(err)
	}

	if _, err := m.Write([]byte{0xAA}); err != nil {
		t.Fatal(err)
	}

	want := []byte{0, 0, 0, 0, 0xAA}

	got := m.Bytes()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d: got %#x, want %#x", i, got[i], want[i])
		}
	}
}

func Test_Memory_Read_At_End_Returns_EOF(t *testing.T) {
	t.Parallel()

	m := baf.MemoryFrom([]byte("abc"))

	buf := make([]byte, 3)
	if _, err := io.ReadFull(m, buf); err != nil {
		t.Fatal(err)
	}

	if _, err := m.Read(buf); err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
}

func Test_Memory_Seek_Rejects_Negative_Positions(t *testing.T) {
	t.Parallel()

	m := baf.NewMemory()

	if _, err := m.Seek(-1, io.SeekStart); err == nil {
		t.Fatal("expected error")
	}
}

func Test_Memory_Overwrite_In_The_Middle(t *testing.T) {
	t.Parallel()

	m := baf.MemoryFrom([]byte("abcdef"))

	if _, err := m.Seek(2, io.SeekStart); err != nil {
		t.Fatal(err)
	}

	if _, err := m.Write([]byte("XY")); err != nil {
		t.Fatal(err)
	}

	if got := string(m.Bytes()); got != "abXYef" {
		t.Fatalf("got %q, want %q", got, "abXYef")
	}
}
