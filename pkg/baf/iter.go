package baf

import (
	"fmt"
	"sort"
)

// Seq is the iterator type returned by ReadDir, Walk and WalkOrdered.
//
// It matches the shape of iter.Seq[Item] so callers can range over it
// directly or collect it with slices.Collect.
type Seq func(yield func(Item) bool)

// ReadDir iterates over a directory's direct children, in unspecified
// order. parent may be [Root].
func (a *Archive) ReadDir(parent ID) (Seq, error) {
	if parent != Root {
		if _, ok := a.dirs[parent]; !ok {
			return nil, fmt.Errorf("directory %d: %w", parent, ErrNotFound)
		}
	}

	set := a.children[parent]

	return func(yield func(Item) bool) {
		for id := range set.dirs {
			if !yield(a.dirs[id]) {
				return
			}
		}

		for id := range set.files {
			if !yield(a.files[id]) {
				return
			}
		}
	}, nil
}

// Walk iterates over every entry in the archive, yielding each directory
// before its contents. Sibling order is unspecified.
func (a *Archive) Walk() Seq {
	return func(yield func(Item) bool) {
		a.walkDir(Root, false, yield)
	}
}

// WalkOrdered is [Walk] with deterministic order: siblings sorted by name
// (byte-wise UTF-8 comparison), directories before files.
func (a *Archive) WalkOrdered() Seq {
	return func(yield func(Item) bool) {
		a.walkDir(Root, true, yield)
	}
}

func (a *Archive) walkDir(parent ID, ordered bool, yield func(Item) bool) bool {
	set := a.children[parent]

	dirs := make([]*Directory, 0, len(set.dirs))
	for id := range set.dirs {
		dirs = append(dirs, a.dirs[id])
	}

	files := make([]*File, 0, len(set.files))
	for id := range set.files {
		files = append(files, a.files[id])
	}

	if ordered {
		sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
		sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	}

	for _, d := range dirs {
		if !yield(d) {
			return false
		}

		if !a.walkDir(d.ID, ordered, yield) {
			return false
		}
	}

	for _, f := range files {
		if !yield(f) {
			return false
		}
	}

	return true
}
