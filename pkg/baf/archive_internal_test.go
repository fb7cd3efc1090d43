package baf

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// The coverage map maintained incrementally across mutations must equal the
// one recomputed from scratch, exactly: header, every segment span, every
// live file's content range.
func Test_Incremental_Coverage_Equals_Recomputed_Coverage(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.FirstSegmentDirs = 2
	opts.FirstSegmentFiles = 2
	opts.DirsPerSegment = 2
	opts.FilesPerSegment = 2

	a, err := Create(NewMemory(), opts)
	if err != nil {
		t.Fatal(err)
	}

	d, err := a.CreateDir(Root, "d", 0)
	if err != nil {
		t.Fatal(err)
	}

	var fileIDs []ID

	// Enough files to overflow into a second segment.
	for _, name := range []string{"a", "b", "c"} {
		id, err := a.CreateFileBytes(d, name, 0, []byte(name+name+name))
		if err != nil {
			t.Fatal(err)
		}

		fileIDs = append(fileIDs, id)
	}

	if _, err := a.RemoveFile(fileIDs[1]); err != nil {
		t.Fatal(err)
	}

	if err := a.ReplaceContentBytes(fileIDs[0], 1, []byte("replaced content")); err != nil {
		t.Fatal(err)
	}

	snapshot := slices.Clone(a.cov.spans)

	if err := a.recomputeCoverage(); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(snapshot, a.cov.spans, cmp.AllowUnexported(span{})); diff != "" {
		t.Fatalf("incremental coverage drifted from recomputed (-incremental +recomputed):\n%s", diff)
	}
}

func Test_NextID_Is_Monotone_Within_A_Session(t *testing.T) {
	t.Parallel()

	a, err := Create(NewMemory(), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	first, err := a.CreateDir(Root, "d", 0)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := a.RemoveDir(first); err != nil {
		t.Fatal(err)
	}

	// The freed high-water-mark ID is not handed out again this session.
	second, err := a.CreateDir(Root, "d2", 0)
	if err != nil {
		t.Fatal(err)
	}

	if second <= first {
		t.Fatalf("second id %d not greater than removed first id %d", second, first)
	}
}

func Test_Open_Rejects_A_Looping_Segment_Chain(t *testing.T) {
	t.Parallel()

	m := NewMemory()

	a, err := Create(m, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := a.Close(); err != nil {
		t.Fatal(err)
	}

	// Point the first segment's next pointer back at itself.
	raw := m.Bytes()
	raw[256] = 0x00
	raw[257] = 0x01 // next = 256, little-endian

	if _, err := Open(m, DefaultOptions()); err == nil {
		t.Fatal("expected error on looping chain")
	}
}
