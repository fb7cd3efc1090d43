package baf

import (
	"bytes"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/sha3"
)

// FileReader streams a file's content out of the archive, feeding every byte
// through SHA3-256 as it flows.
//
// Verification is end-of-stream only: intermediate reads return data without
// validation, and the final Read fails with [ErrChecksumMismatch] if the
// computed digest disagrees with the recorded one. Callers that stop early
// get no integrity assurance.
//
// The reader borrows the archive's stream: no other operation may run on the
// archive until the reader is exhausted or abandoned.
type FileReader struct {
	s         *stream
	remaining uint64
	size      uint64
	digest    hash.Hash
	want      [32]byte
	checked   bool
	verr      error
}

func newFileReader(s *stream, size uint64, want [32]byte) *FileReader {
	return &FileReader{
		s:         s,
		remaining: size,
		size:      size,
		digest:    sha3.New256(),
		want:      want,
	}
}

// Size returns the file's total content length in bytes.
func (r *FileReader) Size() uint64 { return r.size }

// Read serves at most min(len(p), remaining) bytes. When the final byte has
// been delivered it finalizes the digest; a zero-length file triggers the
// check on the first call and returns 0, io.EOF.
func (r *FileReader) Read(p []byte) (int, error) {
	if r.remaining == 0 {
		if err := r.verify(); err != nil {
			return 0, err
		}

		return 0, io.EOF
	}

	if len(p) == 0 {
		return 0, nil
	}

	n := len(p)
	if uint64(n) > r.remaining {
		n = int(r.remaining)
	}

	if err := r.s.readFull(p[:n]); err != nil {
		return 0, err
	}

	r.digest.Write(p[:n])
	r.remaining -= uint64(n)

	if r.remaining == 0 {
		if err := r.verify(); err != nil {
			return n, err
		}
	}

	return n, nil
}

func (r *FileReader) verify() error {
	if r.checked {
		return r.verr
	}

	r.checked = true

	got := r.digest.Sum(nil)
	if !bytes.Equal(got, r.want[:]) {
		r.verr = fmt.Errorf("expected %x, computed %x: %w", r.want, got, ErrChecksumMismatch)
	}

	return r.verr
}
