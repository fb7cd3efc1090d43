package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"

	"github.com/bafarchive/baf/pkg/baf"
)

func (app *App) addCommand() *Command {
	flags := flag.NewFlagSet("add", flag.ContinueOnError)
	under := flags.StringP("under", "u", "", "Add items under this `directory` inside the archive")
	detailed := flags.BoolP("detailed", "d", false, "Print each added item")

	return &Command{
		Flags: flags,
		Usage: "add <archive> <items...> [flags]",
		Short: "Add files and directories to an archive",
		Long: "Add filesystem items to the archive, creating it if it does not exist.\n" +
			"Directories are added recursively. A new archive is staged to a\n" +
			"temporary file and moved into place only after a successful ingest.",
		Exec: func(o *IO, args []string) error {
			if len(args) < 2 {
				return errors.New("expected an archive path and at least one item")
			}

			archivePath := args[0]

			set, err := collectItems(args[1:])
			if err != nil {
				return err
			}

			underDir := cleanUnder(*under)

			if err := app.ingestInto(archivePath, set, underDir); err != nil {
				return err
			}

			if *detailed || app.Config.Detailed {
				for _, item := range set.items {
					o.Println(item.describe(underDir))
				}
			}

			o.Printf("added %d directories and %d files\n", set.dirs, set.files)

			return nil
		},
	}
}

// ingestInto adds the collected items to the archive at path. A missing
// archive is built in a temporary file sized for the ingest set, then moved
// into place atomically.
func (app *App) ingestInto(path string, set ingestSet, under string) error {
	if _, err := os.Stat(path); err == nil {
		a, err := baf.OpenFile(path, app.archiveOptions())
		if err != nil {
			return err
		}

		if err := addAll(a, set, under); err != nil {
			_ = closeArchive(a)

			return err
		}

		if err := a.Flush(); err != nil {
			_ = closeArchive(a)

			return err
		}

		return closeArchive(a)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking archive path %s: %w", path, err)
	}

	// Fresh archive: size the first segment for the ingest set, plus
	// room for the --under chain and one spare slot of each kind.
	opts := app.archiveOptions()
	opts.FirstSegmentDirs = uint32(set.dirs + countComponents(under) + 1)
	opts.FirstSegmentFiles = uint32(set.files + 1)

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating staging file: %w", err)
	}

	tmpPath := tmp.Name()

	defer func() { _ = os.Remove(tmpPath) }()

	a, err := baf.Create(tmp, opts)
	if err != nil {
		_ = tmp.Close()

		return err
	}

	err = addAll(a, set, under)
	if err == nil {
		err = a.Flush()
	}

	if _, cerr := a.Close(); err == nil {
		err = cerr
	}

	if cerr := tmp.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return err
	}

	if err := atomic.ReplaceFile(tmpPath, path); err != nil {
		return fmt.Errorf("moving archive into place: %w", err)
	}

	return nil
}

func countComponents(under string) int {
	if under == "" {
		return 0
	}

	comps, err := baf.SplitPath(under)
	if err != nil {
		return 0
	}

	return len(comps)
}
