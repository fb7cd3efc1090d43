package cli

import (
	"errors"

	"github.com/dustin/go-humanize"
	flag "github.com/spf13/pflag"

	"github.com/bafarchive/baf/pkg/baf"
)

func (app *App) listCommand() *Command {
	flags := flag.NewFlagSet("list", flag.ContinueOnError)
	detailed := flags.BoolP("detailed", "d", false, "Show file sizes")

	return &Command{
		Flags:   flags,
		Usage:   "list <archive> [flags]",
		Aliases: []string{"ls"},
		Short:   "List an archive's contents",
		Long:    "Walk the archive in name order, each directory before its contents.",
		Exec: func(o *IO, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one archive path")
			}

			a, err := baf.OpenFileReadOnly(args[0], app.archiveOptions())
			if err != nil {
				return err
			}

			defer func() { _ = closeArchive(a) }()

			showSizes := *detailed || app.Config.Detailed

			for item := range a.WalkOrdered() {
				switch it := item.(type) {
				case *baf.Directory:
					path, err := a.DirPath(it.ID)
					if err != nil {
						return err
					}

					o.Printf("[Dir ] %s\n", path)
				case *baf.File:
					path, err := a.FilePath(it.ID)
					if err != nil {
						return err
					}

					if showSizes {
						o.Printf("[File] %s (%s)\n", path, humanize.IBytes(it.ContentLen))
					} else {
						o.Printf("[File] %s\n", path)
					}
				}
			}

			return nil
		},
	}
}
