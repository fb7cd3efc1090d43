package baf

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func Test_Directory_Entry_Round_Trips(t *testing.T) {
	t.Parallel()

	d := &Directory{ID: 42, Parent: 7, Name: "docs", ModTime: 1_700_000_000}

	buf := encodeDirectory(d)
	if len(buf) != dirEntrySize {
		t.Fatalf("encoded length %d, want %d", len(buf), dirEntrySize)
	}

	got, err := decodeDirectory(buf)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(d, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	// encode(decode(bytes)) == bytes for well-formed input.
	if !bytes.Equal(encodeDirectory(got), buf) {
		t.Fatal("re-encoded bytes differ")
	}
}

func Test_File_Entry_Round_Trips(t *testing.T) {
	t.Parallel()

	f := &File{
		ID:          9,
		Parent:      0,
		Name:        "notes.txt",
		ModTime:     1_700_000_000,
		ContentAddr: 4096,
		ContentLen:  1234,
	}

	for i := range f.Checksum {
		f.Checksum[i] = byte(i)
	}

	buf := encodeFile(f)
	if len(buf) != fileEntrySize {
		t.Fatalf("encoded length %d, want %d", len(buf), fileEntrySize)
	}

	got, err := decodeFile(buf)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(f, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	if !bytes.Equal(encodeFile(got), buf) {
		t.Fatal("re-encoded bytes differ")
	}
}

func Test_Zeroed_Slots_Decode_As_Empty(t *testing.T) {
	t.Parallel()

	d, err := decodeDirectory(make([]byte, dirEntrySize))
	if err != nil || d != nil {
		t.Fatalf("zero directory slot: got (%v, %v), want (nil, nil)", d, err)
	}

	f, err := decodeFile(make([]byte, fileEntrySize))
	if err != nil || f != nil {
		t.Fatalf("zero file slot: got (%v, %v), want (nil, nil)", f, err)
	}
}
