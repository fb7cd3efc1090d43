// Package baf implements BAF (Basic Archive Format), a single-file container
// for a hierarchical collection of files and directories.
//
// Unlike streaming formats such as tar, a BAF archive is random-access and
// mutable: items can be listed, read, added, renamed, replaced, and removed
// in place, without rewriting the whole file.
//
// # Basic Usage
//
//	a, err := baf.CreateFile("backup.baf", baf.DefaultOptions())
//	if err != nil {
//	    // handle error
//	}
//	defer a.Close()
//
//	dir, err := a.CreateDir(baf.Root, "docs", modTime)
//	id, err := a.CreateFileBytes(dir, "notes.txt", modTime, []byte("hello"))
//
//	// Read back with end-of-stream checksum verification.
//	data, err := a.ReadAll(id)
//
// Archives can also live entirely in memory via [Memory], which is handy for
// tests and for building an archive before writing it out.
//
// # Concurrency
//
// An [Archive] owns its [Stream] exclusively and is single-threaded: no two
// operations may run in parallel on the same handle. A [FileReader] borrows
// the stream for its lifetime; finish reading (or drop the reader) before
// calling any other method on the archive.
//
// # Error Handling
//
// Failures are classified by sentinel errors ([ErrCorrupt], [ErrNotFound],
// [ErrDuplicateName], ...) wrapped with context. Classify with [errors.Is].
// Integrity problems found while opening an archive are reported as a batch
// via [IntegrityError], not just the first finding.
package baf
