package baf

import (
	"fmt"
	"strings"
)

// The path layer is a thin adapter over the ID-based API: it resolves a
// '/'-separated path to an item by walking directories, then delegates. It
// introduces no invariants of its own.

// SplitPath splits a path into validated components. Empty components and
// "." are skipped; ".." pops one component and never escapes root.
func SplitPath(path string) ([]string, error) {
	var out []string

	for _, comp := range strings.Split(path, "/") {
		switch comp {
		case "", ".":
			continue
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}

			continue
		}

		if err := CheckName(comp); err != nil {
			return nil, fmt.Errorf("path %q: component %q: %w", path, comp, err)
		}

		out = append(out, comp)
	}

	return out, nil
}

// ItemAt resolves a path to the item it names. An empty path (or one that
// normalizes to root) fails with [ErrInvalidPath]: root has no entry.
func (a *Archive) ItemAt(path string) (Item, error) {
	comps, err := SplitPath(path)
	if err != nil {
		return nil, err
	}

	if len(comps) == 0 {
		return nil, fmt.Errorf("path %q names the root: %w", path, ErrInvalidPath)
	}

	parent := Root

	for i, comp := range comps {
		item := a.childByName(parent, comp)
		if item == nil {
			return nil, fmt.Errorf("path %q: no item named %q: %w", path, comp, ErrNotFound)
		}

		if i == len(comps)-1 {
			return item, nil
		}

		d, ok := item.(*Directory)
		if !ok {
			return nil, fmt.Errorf("path %q: %q is a file: %w", path, comp, ErrNotADirectory)
		}

		parent = d.ID
	}

	// Unreachable: the loop always returns on the last component.
	return nil, fmt.Errorf("path %q: %w", path, ErrNotFound)
}

// DirAt resolves a path to a directory. A file at that path fails with
// [ErrNotADirectory].
func (a *Archive) DirAt(path string) (*Directory, error) {
	item, err := a.ItemAt(path)
	if err != nil {
		return nil, err
	}

	d, ok := item.(*Directory)
	if !ok {
		return nil, fmt.Errorf("path %q names a file: %w", path, ErrNotADirectory)
	}

	return d, nil
}

// FileAt resolves a path to a file.
func (a *Archive) FileAt(path string) (*File, error) {
	item, err := a.ItemAt(path)
	if err != nil {
		return nil, err
	}

	f, ok := item.(*File)
	if !ok {
		return nil, fmt.Errorf("path %q names a directory: %w", path, ErrNotFound)
	}

	return f, nil
}

// Exists reports whether any item lives at path.
func (a *Archive) Exists(path string) bool {
	_, err := a.ItemAt(path)

	return err == nil
}

// ReadDirAt iterates over the direct children of the directory at path.
// A path naming the root lists the top level.
func (a *Archive) ReadDirAt(path string) (Seq, error) {
	comps, err := SplitPath(path)
	if err != nil {
		return nil, err
	}

	if len(comps) == 0 {
		return a.ReadDir(Root)
	}

	d, err := a.DirAt(path)
	if err != nil {
		return nil, err
	}

	return a.ReadDir(d.ID)
}

// MkdirAll walks down path, creating missing directories with the given
// modification time, and returns the ID of the final one. An existing file
// anywhere along the path fails with [ErrNotADirectory]. A path naming the
// root returns [Root].
func (a *Archive) MkdirAll(path string, modTime uint64) (ID, error) {
	comps, err := SplitPath(path)
	if err != nil {
		return Root, err
	}

	parent := Root

	for _, comp := range comps {
		switch item := a.childByName(parent, comp).(type) {
		case *Directory:
			parent = item.ID
		case *File:
			return Root, fmt.Errorf("path %q: %q is a file: %w", path, comp, ErrNotADirectory)
		default:
			id, err := a.CreateDir(parent, comp, modTime)
			if err != nil {
				return Root, err
			}

			parent = id
		}
	}

	return parent, nil
}

// DirPath renders a directory's absolute path by walking parents up to root.
func (a *Archive) DirPath(id ID) (string, error) {
	d, ok := a.dirs[id]
	if !ok {
		return "", fmt.Errorf("directory %d: %w", id, ErrNotFound)
	}

	return a.pathOf(d.Parent, d.Name)
}

// FilePath renders a file's absolute path by walking parents up to root.
func (a *Archive) FilePath(id ID) (string, error) {
	f, ok := a.files[id]
	if !ok {
		return "", fmt.Errorf("file %d: %w", id, ErrNotFound)
	}

	return a.pathOf(f.Parent, f.Name)
}

func (a *Archive) pathOf(parent ID, name string) (string, error) {
	comps := []string{name}

	for parent != Root {
		d, ok := a.dirs[parent]
		if !ok {
			return "", fmt.Errorf("parent directory %d: %w", parent, ErrNotFound)
		}

		comps = append(comps, d.Name)
		parent = d.Parent
	}

	// Reverse: collected leaf-first.
	for i, j := 0, len(comps)-1; i < j; i, j = i+1, j-1 {
		comps[i], comps[j] = comps[j], comps[i]
	}

	return strings.Join(comps, "/"), nil
}

// childByName finds a direct child of parent by name, of either kind.
// Returns nil when absent.
func (a *Archive) childByName(parent ID, name string) Item {
	set, ok := a.children[parent]
	if !ok {
		return nil
	}

	if _, used := set.names[name]; !used {
		return nil
	}

	for id := range set.dirs {
		if a.dirs[id].Name == name {
			return a.dirs[id]
		}
	}

	for id := range set.files {
		if a.files[id].Name == name {
			return a.files[id]
		}
	}

	return nil
}
