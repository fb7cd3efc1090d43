package baf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/sha3"
)

// Archive is a handle to an open BAF archive.
//
// It keeps four structures consistent across every mutation: the raw byte
// stream, the in-memory segment chain, the per-directory name and child
// indices, and the free-space coverage map.
//
// An Archive must be obtained via [Create] or [Open]; the zero value is not
// usable. It is not safe for concurrent use.
type Archive struct {
	_ [0]func() // prevent external construction

	opts Options
	log  *zap.SugaredLogger

	s        *stream
	readOnly bool

	// The segment chain, with a parallel list of base addresses.
	segments []*tableSegment
	segAddrs []uint64

	dirs  map[ID]*Directory
	files map[ID]*File

	// children is keyed by parent directory: Root plus every live
	// directory ID. Names are unique across both child kinds.
	children map[ID]*childSet

	// nextID is the next identifier to hand out. Monotone within a
	// session; recomputed as max(live IDs)+1 on open, so a freed
	// high-water mark may reappear after a close/reopen cycle.
	nextID ID

	cov coverage
}

// childSet indexes one directory's direct children.
type childSet struct {
	dirs  map[ID]struct{}
	files map[ID]struct{}
	names map[string]struct{}
}

func newChildSet() *childSet {
	return &childSet{
		dirs:  make(map[ID]struct{}),
		files: make(map[ID]struct{}),
		names: make(map[string]struct{}),
	}
}

// Create writes a fresh archive onto s: the 256-byte header followed by an
// initial all-empty segment sized by the first-segment overrides.
func Create(s Stream, opts Options) (*Archive, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	dirCap, fileCap := opts.firstSegmentCapacities()
	seg := newEmptySegment(dirCap, fileCap)

	st := newStream(s)
	st.setPos(0)

	if err := st.writeAll(encodeHeader()); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	if err := st.writeAll(seg.encode()); err != nil {
		return nil, fmt.Errorf("writing initial segment: %w", err)
	}

	a := &Archive{
		opts:     opts,
		log:      opts.logger(),
		s:        st,
		segments: []*tableSegment{seg},
		segAddrs: []uint64{headerSize},
		dirs:     make(map[ID]*Directory),
		files:    make(map[ID]*File),
		children: map[ID]*childSet{Root: newChildSet()},
		nextID:   1,
	}

	size, err := st.length()
	if err != nil {
		return nil, err
	}

	a.cov = newCoverage(size)

	if err := a.recomputeCoverage(); err != nil {
		return nil, err
	}

	a.log.Debugw("archive created", "firstSegmentDirs", dirCap, "firstSegmentFiles", fileCap)

	return a, nil
}

// Open reads an existing archive from s: header, then the whole segment
// chain, populating the index and recomputing coverage. Integrity problems
// are collected and returned as a batch via [IntegrityError].
func Open(s Stream, opts Options) (*Archive, error) {
	return open(s, opts, false)
}

// OpenReadOnly is [Open] without write access: every mutating operation
// fails with [ErrReadOnly]. The stream is never written to.
func OpenReadOnly(s Stream, opts Options) (*Archive, error) {
	return open(s, opts, true)
}

func open(s Stream, opts Options, readOnly bool) (*Archive, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	st := newStream(s)

	if err := decodeHeader(st); err != nil {
		return nil, err
	}

	a := &Archive{
		opts:     opts,
		log:      opts.logger(),
		s:        st,
		readOnly: readOnly,
		dirs:     make(map[ID]*Directory),
		files:    make(map[ID]*File),
		children: map[ID]*childSet{Root: newChildSet()},
		nextID:   1,
	}

	// Walk the segment chain. Every hop is validated; a repeated address
	// means the chain loops.
	addr := uint64(headerSize)
	seen := map[uint64]struct{}{}

	for {
		if _, ok := seen[addr]; ok {
			return nil, fmt.Errorf("segment chain loops back to address %d: %w", addr, ErrCorrupt)
		}

		seen[addr] = struct{}{}

		st.setPos(addr)

		seg, err := decodeSegment(st, addr)
		if err != nil {
			return nil, err
		}

		a.segments = append(a.segments, seg)
		a.segAddrs = append(a.segAddrs, addr)

		if seg.next == 0 {
			break
		}

		addr = seg.next
	}

	if problems := a.populateIndex(); len(problems) > 0 {
		return nil, &IntegrityError{Problems: problems}
	}

	size, err := st.length()
	if err != nil {
		return nil, err
	}

	a.cov = newCoverage(size)

	if err := a.recomputeCoverage(); err != nil {
		return nil, err
	}

	a.log.Debugw("archive opened",
		"segments", len(a.segments), "dirs", len(a.dirs), "files", len(a.files), "readOnly", readOnly)

	return a, nil
}

// OpenFile opens the archive at path for reading and writing.
func OpenFile(path string, opts Options) (*Archive, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening archive at %s: %w", path, err)
	}

	a, err := Open(f, opts)
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	return a, nil
}

// OpenFileReadOnly opens the archive at path for reading.
func OpenFileReadOnly(path string, opts Options) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive at %s: %w", path, err)
	}

	a, err := OpenReadOnly(f, opts)
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	return a, nil
}

// CreateFile creates a new archive file at path. The file must not exist.
func CreateFile(path string, opts Options) (*Archive, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("creating archive at %s: %w", path, err)
	}

	a, err := Create(f, opts)
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	return a, nil
}

// populateIndex fills the entry maps and child sets from the decoded chain,
// collecting integrity problems instead of failing on the first.
func (a *Archive) populateIndex() []Problem {
	var problems []Problem

	// Child sets must exist for every directory before parents are
	// resolved, so directories go in first.
	for _, seg := range a.segments {
		for _, d := range seg.dirs {
			if d == nil {
				continue
			}

			if _, dup := a.dirs[d.ID]; dup {
				problems = append(problems, Problem{Kind: ProblemDuplicateID, ID: d.ID, IsDir: true})

				continue
			}

			a.dirs[d.ID] = d

			if _, ok := a.children[d.ID]; !ok {
				a.children[d.ID] = newChildSet()
			}
		}
	}

	for _, seg := range a.segments {
		for _, d := range seg.dirs {
			if d == nil || a.dirs[d.ID] != d {
				continue
			}

			set := a.childSetFor(d.Parent)

			if _, dup := set.names[d.Name]; dup {
				problems = append(problems, Problem{
					Kind: ProblemDuplicateName, ID: d.ID, Parent: d.Parent, Name: d.Name, IsDir: true,
				})

				continue
			}

			set.names[d.Name] = struct{}{}
			set.dirs[d.ID] = struct{}{}
		}

		for _, f := range seg.files {
			if f == nil {
				continue
			}

			if _, dup := a.files[f.ID]; dup {
				problems = append(problems, Problem{Kind: ProblemDuplicateID, ID: f.ID})

				continue
			}

			if _, dup := a.dirs[f.ID]; dup {
				problems = append(problems, Problem{Kind: ProblemDuplicateID, ID: f.ID})

				continue
			}

			set := a.childSetFor(f.Parent)

			if _, dup := set.names[f.Name]; dup {
				problems = append(problems, Problem{
					Kind: ProblemDuplicateName, ID: f.ID, Parent: f.Parent, Name: f.Name,
				})

				continue
			}

			a.files[f.ID] = f
			set.names[f.Name] = struct{}{}
			set.files[f.ID] = struct{}{}
		}
	}

	for id := range a.dirs {
		if id >= a.nextID {
			a.nextID = id + 1
		}
	}

	for id := range a.files {
		if id >= a.nextID {
			a.nextID = id + 1
		}
	}

	return problems
}

// childSetFor returns the child set for a parent, creating it on demand for
// parents that decoding has not seen as directories. Unknown parents stay
// tolerated here; lookups through the public API still fail on them.
func (a *Archive) childSetFor(parent ID) *childSet {
	set, ok := a.children[parent]
	if !ok {
		set = newChildSet()
		a.children[parent] = set
	}

	return set
}

// recomputeCoverage rebuilds the coverage map from scratch: the header,
// every segment's full span, and every live file's content range.
func (a *Archive) recomputeCoverage() error {
	a.cov.spans = a.cov.spans[:0]

	if err := a.cov.markUsed(0, headerSize); err != nil {
		return err
	}

	for i, seg := range a.segments {
		if err := a.cov.markUsed(a.segAddrs[i], seg.encodedLen()); err != nil {
			return err
		}
	}

	for _, f := range a.files {
		if err := checkOverflow(f.ContentAddr, f.ContentLen); err != nil {
			return err
		}

		if f.ContentAddr+f.ContentLen > a.cov.size {
			return fmt.Errorf("file %d content range %d+%d exceeds stream length %d: %w",
				f.ID, f.ContentAddr, f.ContentLen, a.cov.size, ErrCorrupt)
		}

		if err := a.cov.markUsed(f.ContentAddr, f.ContentLen); err != nil {
			return fmt.Errorf("file %d: %w", f.ID, err)
		}
	}

	return nil
}

// Dirs returns all directory entries, in unspecified order.
func (a *Archive) Dirs() []*Directory {
	out := make([]*Directory, 0, len(a.dirs))
	for _, d := range a.dirs {
		out = append(out, d)
	}

	return out
}

// Files returns all file entries, in unspecified order.
func (a *Archive) Files() []*File {
	out := make([]*File, 0, len(a.files))
	for _, f := range a.files {
		out = append(out, f)
	}

	return out
}

// Dir looks up a directory entry by ID.
func (a *Archive) Dir(id ID) (*Directory, bool) {
	d, ok := a.dirs[id]

	return d, ok
}

// File looks up a file entry by ID.
func (a *Archive) File(id ID) (*File, bool) {
	f, ok := a.files[id]

	return f, ok
}

// Stats summarize an archive's shape and space usage.
type Stats struct {
	Dirs     int
	Files    int
	Segments int

	// StreamLen is the logical length of the underlying stream.
	StreamLen uint64

	// WastedBytes is the total size of free zones inside the stream:
	// space that removals left behind and new writes may reuse.
	WastedBytes uint64
}

// Stats reports entry counts and space accounting.
func (a *Archive) Stats() Stats {
	return Stats{
		Dirs:        len(a.dirs),
		Files:       len(a.files),
		Segments:    len(a.segments),
		StreamLen:   a.cov.size,
		WastedBytes: a.cov.wastedBytes(),
	}
}

// Reader returns a checksum-verifying streaming reader over the file's
// content. The reader borrows the archive's stream; do not call any other
// method on the archive until it is exhausted or abandoned.
func (a *Archive) Reader(id ID) (*FileReader, error) {
	f, ok := a.files[id]
	if !ok {
		return nil, fmt.Errorf("file %d: %w", id, ErrNotFound)
	}

	a.s.setPos(f.ContentAddr)

	return newFileReader(a.s, f.ContentLen, f.Checksum), nil
}

// ReadAll reads a file's entire content into memory, verifying its checksum.
func (a *Archive) ReadAll(id ID) ([]byte, error) {
	r, err := a.Reader(id)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, r.Size())
	buf := make([]byte, contentChunkSize)

	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)

		if err == io.EOF {
			return out, nil
		}

		if err != nil {
			return nil, err
		}
	}
}

// CreateDir creates a directory under parent and returns its fresh ID.
func (a *Archive) CreateDir(parent ID, name string, modTime uint64) (ID, error) {
	if err := a.checkWritable(); err != nil {
		return 0, err
	}

	if err := a.checkNameFree(parent, name); err != nil {
		return 0, err
	}

	slot, err := a.allocSlot(true)
	if err != nil {
		return 0, err
	}

	d := &Directory{ID: a.nextID, Parent: parent, Name: name, ModTime: modTime}

	a.s.setPos(slot.addr)

	if err := a.s.writeAll(encodeDirectory(d)); err != nil {
		return 0, err
	}

	a.nextID++
	a.segments[slot.segment].dirs[slot.index] = d
	a.dirs[d.ID] = d
	a.children[parent].names[name] = struct{}{}
	a.children[parent].dirs[d.ID] = struct{}{}
	a.children[d.ID] = newChildSet()

	a.log.Debugw("directory created", "id", d.ID, "parent", parent, "name", name)

	return d.ID, nil
}

// CreateFileFrom creates a file under parent, streaming exactly size bytes
// of content from r in 4 KiB chunks, hashing as it flows. The content range
// is committed to coverage before the entry is written: a crash in between
// leaves an orphan data range that the next open reconciles as free.
func (a *Archive) CreateFileFrom(parent ID, name string, modTime uint64, r io.Reader, size uint64) (ID, error) {
	if err := a.checkWritable(); err != nil {
		return 0, err
	}

	if err := a.checkNameFree(parent, name); err != nil {
		return 0, err
	}

	slot, err := a.allocSlot(false)
	if err != nil {
		return 0, err
	}

	addr, sum, err := a.placeContent(r, size)
	if err != nil {
		return 0, err
	}

	f := &File{
		ID:          a.nextID,
		Parent:      parent,
		Name:        name,
		ModTime:     modTime,
		ContentAddr: addr,
		ContentLen:  size,
		Checksum:    sum,
	}

	a.s.setPos(slot.addr)

	if err := a.s.writeAll(encodeFile(f)); err != nil {
		return 0, err
	}

	a.nextID++
	a.segments[slot.segment].files[slot.index] = f
	a.files[f.ID] = f
	a.children[parent].names[name] = struct{}{}
	a.children[parent].files[f.ID] = struct{}{}

	a.log.Debugw("file created", "id", f.ID, "parent", parent, "name", name, "size", size)

	return f.ID, nil
}

// CreateFileBytes is [CreateFileFrom] over an in-memory content slice.
func (a *Archive) CreateFileBytes(parent ID, name string, modTime uint64, content []byte) (ID, error) {
	return a.CreateFileFrom(parent, name, modTime, bytes.NewReader(content), uint64(len(content)))
}

// ReplaceContent overwrites a file's content and modification time. The old
// content range is freed first, so best-fit may hand the same range back.
// Identity (ID, name, parent) is untouched.
func (a *Archive) ReplaceContent(id ID, modTime uint64, r io.Reader, size uint64) error {
	if err := a.checkWritable(); err != nil {
		return err
	}

	f, ok := a.files[id]
	if !ok {
		return fmt.Errorf("file %d: %w", id, ErrNotFound)
	}

	slot, err := a.findFileSlot(id)
	if err != nil {
		return err
	}

	if err := a.cov.markFree(f.ContentAddr, f.ContentLen); err != nil {
		return err
	}

	addr, sum, err := a.placeContent(r, size)
	if err != nil {
		return err
	}

	f.ContentAddr = addr
	f.ContentLen = size
	f.Checksum = sum
	f.ModTime = modTime

	a.s.setPos(slot.addr)

	if err := a.s.writeAll(encodeFile(f)); err != nil {
		return err
	}

	a.log.Debugw("file content replaced", "id", id, "size", size, "addr", addr)

	return nil
}

// ReplaceContentBytes is [ReplaceContent] over an in-memory content slice.
func (a *Archive) ReplaceContentBytes(id ID, modTime uint64, content []byte) error {
	return a.ReplaceContent(id, modTime, bytes.NewReader(content), uint64(len(content)))
}

// RenameDir gives a directory a new name, unique among its siblings.
// Renaming to the current name is a no-op.
func (a *Archive) RenameDir(id ID, name string) error {
	if err := a.checkWritable(); err != nil {
		return err
	}

	d, ok := a.dirs[id]
	if !ok {
		return fmt.Errorf("directory %d: %w", id, ErrNotFound)
	}

	if d.Name == name {
		return nil
	}

	slot, err := a.findDirSlot(id)
	if err != nil {
		return err
	}

	if err := a.renameCommon(slot, d.Parent, d.Name, name); err != nil {
		return err
	}

	d.Name = name

	return nil
}

// RenameFile gives a file a new name, unique among its siblings. Renaming to
// the current name is a no-op.
func (a *Archive) RenameFile(id ID, name string) error {
	if err := a.checkWritable(); err != nil {
		return err
	}

	f, ok := a.files[id]
	if !ok {
		return fmt.Errorf("file %d: %w", id, ErrNotFound)
	}

	if f.Name == name {
		return nil
	}

	slot, err := a.findFileSlot(id)
	if err != nil {
		return err
	}

	if err := a.renameCommon(slot, f.Parent, f.Name, name); err != nil {
		return err
	}

	f.Name = name

	return nil
}

// renameCommon checks the new name, patches the 256-byte name region of the
// entry on disk, and swaps the name in the parent's index.
func (a *Archive) renameCommon(slot slotRef, parent ID, oldName, newName string) error {
	if err := a.checkNameFree(parent, newName); err != nil {
		return err
	}

	field := make([]byte, nameFieldSize)
	encodeName(field, newName)

	a.s.setPos(slot.addr + entryNameOff)

	if err := a.s.writeAll(field); err != nil {
		return err
	}

	set := a.children[parent]
	delete(set.names, oldName)
	set.names[newName] = struct{}{}

	return nil
}

// RemoveDir removes a directory and, recursively, everything under it.
// Children are snapshotted before mutation so the recursion walks a stable
// view. Returns the removed entry.
func (a *Archive) RemoveDir(id ID) (Directory, error) {
	if err := a.checkWritable(); err != nil {
		return Directory{}, err
	}

	d, ok := a.dirs[id]
	if !ok {
		return Directory{}, fmt.Errorf("directory %d: %w", id, ErrNotFound)
	}

	slot, err := a.findDirSlot(id)
	if err != nil {
		return Directory{}, err
	}

	set := a.children[id]

	subDirs := make([]ID, 0, len(set.dirs))
	for child := range set.dirs {
		subDirs = append(subDirs, child)
	}

	subFiles := make([]ID, 0, len(set.files))
	for child := range set.files {
		subFiles = append(subFiles, child)
	}

	for _, child := range subDirs {
		if _, err := a.RemoveDir(child); err != nil {
			return Directory{}, err
		}
	}

	for _, child := range subFiles {
		if _, err := a.RemoveFile(child); err != nil {
			return Directory{}, err
		}
	}

	if err := a.zeroSlot(slot.addr, dirEntrySize); err != nil {
		return Directory{}, err
	}

	a.segments[slot.segment].dirs[slot.index] = nil
	delete(a.dirs, id)

	parentSet := a.children[d.Parent]
	delete(parentSet.names, d.Name)
	delete(parentSet.dirs, id)

	// The recursion above must have emptied this directory's child set.
	if len(set.names) != 0 {
		return Directory{}, fmt.Errorf("directory %d still has children after recursion: %w", id, ErrCorrupt)
	}

	delete(a.children, id)

	a.log.Debugw("directory removed", "id", id, "name", d.Name)

	return *d, nil
}

// RemoveFile removes a file, marks its content range free for reuse, and
// returns the removed entry. The stream is not shrunk.
func (a *Archive) RemoveFile(id ID) (File, error) {
	if err := a.checkWritable(); err != nil {
		return File{}, err
	}

	f, ok := a.files[id]
	if !ok {
		return File{}, fmt.Errorf("file %d: %w", id, ErrNotFound)
	}

	slot, err := a.findFileSlot(id)
	if err != nil {
		return File{}, err
	}

	if err := a.zeroSlot(slot.addr, fileEntrySize); err != nil {
		return File{}, err
	}

	a.segments[slot.segment].files[slot.index] = nil
	delete(a.files, id)

	parentSet := a.children[f.Parent]
	delete(parentSet.names, f.Name)
	delete(parentSet.files, id)

	if err := a.cov.markFree(f.ContentAddr, f.ContentLen); err != nil {
		return File{}, err
	}

	a.log.Debugw("file removed", "id", id, "name", f.Name, "freed", f.ContentLen)

	return *f, nil
}

// Flush persists buffered state to the underlying stream.
func (a *Archive) Flush() error {
	return a.s.flush()
}

// Close flushes and returns the underlying stream.
func (a *Archive) Close() (Stream, error) {
	if err := a.s.flush(); err != nil {
		return a.s.src, err
	}

	return a.s.src, nil
}

// checkWritable rejects mutations on read-only archives.
func (a *Archive) checkWritable() error {
	if a.readOnly {
		return ErrReadOnly
	}

	return nil
}

// checkNameFree verifies parent exists and name is valid and unused among
// the parent's children of either kind.
func (a *Archive) checkNameFree(parent ID, name string) error {
	if err := CheckName(name); err != nil {
		return err
	}

	if parent != Root {
		if _, ok := a.dirs[parent]; !ok {
			return fmt.Errorf("parent directory %d: %w", parent, ErrNotFound)
		}
	}

	if _, used := a.children[parent].names[name]; used {
		return fmt.Errorf("name %q in directory %d: %w", name, parent, ErrDuplicateName)
	}

	return nil
}

// slotRef locates one entry slot in the chain.
type slotRef struct {
	segment int
	index   int
	addr    uint64 // absolute address of the slot
}

// allocSlot finds the first empty slot of the required kind, scanning
// segments in chain order, appending a new segment when every slot is taken.
func (a *Archive) allocSlot(isDir bool) (slotRef, error) {
	for si, seg := range a.segments {
		if isDir {
			for i, d := range seg.dirs {
				if d == nil {
					return slotRef{segment: si, index: i, addr: a.segAddrs[si] + seg.dirSlotOffset(i)}, nil
				}
			}
		} else {
			for j, f := range seg.files {
				if f == nil {
					return slotRef{segment: si, index: j, addr: a.segAddrs[si] + seg.fileSlotOffset(j)}, nil
				}
			}
		}
	}

	si, err := a.appendSegment()
	if err != nil {
		return slotRef{}, err
	}

	seg := a.segments[si]

	if isDir {
		return slotRef{segment: si, index: 0, addr: a.segAddrs[si] + seg.dirSlotOffset(0)}, nil
	}

	return slotRef{segment: si, index: 0, addr: a.segAddrs[si] + seg.fileSlotOffset(0)}, nil
}

// appendSegment creates an all-empty segment of the default capacities,
// places it via the coverage policy, and links it to the chain tail both on
// disk and in memory.
func (a *Archive) appendSegment() (int, error) {
	seg := newEmptySegment(a.opts.DirsPerSegment, a.opts.FilesPerSegment)

	encoded := seg.encode()

	addr, _, err := a.placeContent(bytes.NewReader(encoded), uint64(len(encoded)))
	if err != nil {
		return 0, err
	}

	// Patch the previous tail's next pointer: an 8-byte write at the
	// segment's base address.
	tail := len(a.segments) - 1

	var next [8]byte

	binary.LittleEndian.PutUint64(next[:], addr)

	a.s.setPos(a.segAddrs[tail])

	if err := a.s.writeAll(next[:]); err != nil {
		return 0, err
	}

	a.segments[tail].next = addr
	a.segments = append(a.segments, seg)
	a.segAddrs = append(a.segAddrs, addr)

	a.log.Debugw("segment appended", "addr", addr,
		"dirs", a.opts.DirsPerSegment, "files", a.opts.FilesPerSegment)

	return len(a.segments) - 1, nil
}

// placeContent streams exactly size bytes from r into a free range chosen by
// the write placement policy: best-fit, falling back to appending at the end
// of the stream. Returns the chosen address and the SHA3-256 of the data.
func (a *Archive) placeContent(r io.Reader, size uint64) (uint64, [32]byte, error) {
	var (
		addr    uint64
		growing bool
		sum     [32]byte
	)

	if z, ok := a.cov.bestFit(size); ok {
		addr = z.start
	} else {
		addr = a.cov.nextWritableAddr()
		growing = true
	}

	a.s.setPos(addr)

	digest := sha3.New256()
	buf := make([]byte, contentChunkSize)

	var written uint64

	for written < size {
		n := uint64(contentChunkSize)
		if size-written < n {
			n = size - written
		}

		chunk := buf[:n]

		if _, err := io.ReadFull(r, chunk); err != nil {
			return 0, sum, fmt.Errorf("reading content: %w", err)
		}

		if err := a.s.writeAll(chunk); err != nil {
			return 0, sum, err
		}

		digest.Write(chunk)
		written += n
	}

	if growing {
		streamLen, err := a.s.length()
		if err != nil {
			return 0, sum, err
		}

		a.cov.growTo(streamLen)
	}

	if err := a.cov.markUsed(addr, size); err != nil {
		return 0, sum, err
	}

	digest.Sum(sum[:0])

	return addr, sum, nil
}

// findDirSlot locates the chain slot holding directory id.
func (a *Archive) findDirSlot(id ID) (slotRef, error) {
	for si, seg := range a.segments {
		for i, d := range seg.dirs {
			if d != nil && d.ID == id {
				return slotRef{segment: si, index: i, addr: a.segAddrs[si] + seg.dirSlotOffset(i)}, nil
			}
		}
	}

	return slotRef{}, fmt.Errorf("directory %d has no slot: %w", id, ErrNotFound)
}

// findFileSlot locates the chain slot holding file id.
func (a *Archive) findFileSlot(id ID) (slotRef, error) {
	for si, seg := range a.segments {
		for j, f := range seg.files {
			if f != nil && f.ID == id {
				return slotRef{segment: si, index: j, addr: a.segAddrs[si] + seg.fileSlotOffset(j)}, nil
			}
		}
	}

	return slotRef{}, fmt.Errorf("file %d has no slot: %w", id, ErrNotFound)
}

// zeroSlot overwrites a slot with zero bytes, marking it empty on disk.
func (a *Archive) zeroSlot(addr uint64, size int) error {
	a.s.setPos(addr)

	return a.s.writeAll(make([]byte, size))
}
