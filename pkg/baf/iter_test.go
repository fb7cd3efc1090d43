package baf_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/bafarchive/baf/pkg/baf"
)

func walkNames(t *testing.T, a *baf.Archive, seq baf.Seq) []string {
	t.Helper()

	var out []string

	for item := range seq {
		switch it := item.(type) {
		case *baf.Directory:
			p, err := a.DirPath(it.ID)
			require.NoError(t, err)
			out = append(out, p+"/")
		case *baf.File:
			p, err := a.FilePath(it.ID)
			require.NoError(t, err)
			out = append(out, p)
		}
	}

	return out
}

func Test_WalkOrdered_Sorts_Siblings_Dirs_First(t *testing.T) {
	t.Parallel()

	a, err := baf.Create(baf.NewMemory(), baf.DefaultOptions())
	require.NoError(t, err)

	// Created out of order on purpose.
	zebra, err := a.CreateDir(baf.Root, "zebra", 0)
	require.NoError(t, err)

	_, err = a.CreateFileBytes(baf.Root, "aardvark", 0, nil)
	require.NoError(t, err)

	alpha, err := a.CreateDir(baf.Root, "alpha", 0)
	require.NoError(t, err)

	_, err = a.CreateFileBytes(alpha, "inner", 0, nil)
	require.NoError(t, err)

	_, err = a.CreateFileBytes(zebra, "deep", 0, nil)
	require.NoError(t, err)

	want := []string{
		"alpha/",
		"alpha/inner",
		"zebra/",
		"zebra/deep",
		"aardvark",
	}

	got := walkNames(t, a, a.WalkOrdered())

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ordered walk mismatch (-want +got):\n%s", diff)
	}
}

func Test_Walk_Yields_Every_Entry_With_Dirs_Before_Their_Contents(t *testing.T) {
	t.Parallel()

	a, err := baf.Create(baf.NewMemory(), baf.DefaultOptions())
	require.NoError(t, err)

	d, err := a.CreateDir(baf.Root, "d", 0)
	require.NoError(t, err)

	_, err = a.CreateFileBytes(d, "f", 0, nil)
	require.NoError(t, err)

	seenDir := false

	count := 0
	for item := range a.Walk() {
		count++

		switch item.(type) {
		case *baf.Directory:
			seenDir = true
		case *baf.File:
			require.True(t, seenDir, "file yielded before its parent directory")
		}
	}

	require.Equal(t, 2, count)
}

func Test_ReadDir_Lists_Direct_Children_Only(t *testing.T) {
	t.Parallel()

	a, err := baf.Create(baf.NewMemory(), baf.DefaultOptions())
	require.NoError(t, err)

	d, err := a.CreateDir(baf.Root, "d", 0)
	require.NoError(t, err)

	_, err = a.CreateDir(d, "nested", 0)
	require.NoError(t, err)

	_, err = a.CreateFileBytes(baf.Root, "top", 0, nil)
	require.NoError(t, err)

	seq, err := a.ReadDir(baf.Root)
	require.NoError(t, err)

	names := map[string]bool{}
	for item := range seq {
		names[item.ItemName()] = true
	}

	require.Equal(t, map[string]bool{"d": true, "top": true}, names)

	_, err = a.ReadDir(baf.ID(404))
	require.ErrorIs(t, err, baf.ErrNotFound)
}
