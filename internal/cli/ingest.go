package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bafarchive/baf/pkg/baf"
)

// ingestItem is one filesystem item queued for addition to an archive.
type ingestItem struct {
	// rel is the '/'-separated path the item takes inside the archive.
	rel string

	// src is the filesystem path the content is read from (files only).
	src string

	isDir   bool
	modTime uint64
	size    uint64
}

// ingestSet is the full collection for one add invocation. Directories come
// before their contents, in filesystem walk order.
type ingestSet struct {
	items []ingestItem
	dirs  int
	files int
}

// collectItems walks the given filesystem paths. A file argument is queued
// under its base name; a directory argument is queued recursively.
func collectItems(paths []string) (ingestSet, error) {
	var set ingestSet

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return ingestSet{}, fmt.Errorf("no item found at path %s: %w", p, err)
		}

		if !info.IsDir() {
			set.add(ingestItem{
				rel:     filepath.Base(p),
				src:     p,
				modTime: uint64(info.ModTime().Unix()),
				size:    uint64(info.Size()),
			})

			continue
		}

		root := filepath.Base(p)

		err = filepath.WalkDir(p, func(sub string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			info, err := d.Info()
			if err != nil {
				return err
			}

			rel, err := filepath.Rel(p, sub)
			if err != nil {
				return err
			}

			item := ingestItem{
				src:     sub,
				isDir:   d.IsDir(),
				modTime: uint64(info.ModTime().Unix()),
			}

			if rel == "." {
				item.rel = root
			} else {
				item.rel = path.Join(root, filepath.ToSlash(rel))
			}

			if !d.IsDir() {
				item.size = uint64(info.Size())
			}

			set.add(item)

			return nil
		})
		if err != nil {
			return ingestSet{}, fmt.Errorf("walking %s: %w", p, err)
		}
	}

	return set, nil
}

func (s *ingestSet) add(item ingestItem) {
	s.items = append(s.items, item)

	if item.isDir {
		s.dirs++
	} else {
		s.files++
	}
}

// addAll writes the collected items into the archive, rooted under the
// given directory path ("" for the archive root).
func addAll(a *baf.Archive, set ingestSet, under string) error {
	for _, item := range set.items {
		rel := item.rel
		if under != "" {
			rel = path.Join(under, rel)
		}

		if item.isDir {
			if _, err := a.MkdirAll(rel, item.modTime); err != nil {
				return fmt.Errorf("adding directory %s: %w", rel, err)
			}

			continue
		}

		parent := baf.Root

		if dir := path.Dir(rel); dir != "." {
			id, err := a.MkdirAll(dir, item.modTime)
			if err != nil {
				return fmt.Errorf("adding %s: %w", rel, err)
			}

			parent = id
		}

		f, err := os.Open(item.src)
		if err != nil {
			return fmt.Errorf("opening %s: %w", item.src, err)
		}

		_, err = a.CreateFileFrom(parent, path.Base(rel), item.modTime, f, item.size)

		_ = f.Close()

		if err != nil {
			return fmt.Errorf("adding %s: %w", rel, err)
		}
	}

	return nil
}

// describe renders an ingest item line for detailed output.
func (item ingestItem) describe(under string) string {
	rel := item.rel
	if under != "" {
		rel = path.Join(under, rel)
	}

	if item.isDir {
		return "[Dir ] " + rel
	}

	return fmt.Sprintf("[File] %s (%d bytes)", rel, item.size)
}

// cleanUnder normalizes the --under flag value.
func cleanUnder(under string) string {
	return strings.Trim(path.Clean("/"+under), "/")
}
