package cli

import (
	"io"

	"github.com/bafarchive/baf/pkg/baf"
)

// createArchive creates a new archive file at path.
func createArchive(path string, opts baf.Options) (*baf.Archive, error) {
	return baf.CreateFile(path, opts)
}

// closeArchive flushes the archive and closes its backing file.
func closeArchive(a *baf.Archive) error {
	s, err := a.Close()

	if c, ok := s.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}

	return err
}
