package cli

import (
	"errors"

	"github.com/dustin/go-humanize"
	flag "github.com/spf13/pflag"

	"github.com/bafarchive/baf/pkg/baf"
)

func (app *App) statCommand() *Command {
	return &Command{
		Flags: flag.NewFlagSet("stat", flag.ContinueOnError),
		Usage: "stat <archive>",
		Short: "Show entry counts and space usage",
		Exec: func(o *IO, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one archive path")
			}

			a, err := baf.OpenFileReadOnly(args[0], app.archiveOptions())
			if err != nil {
				return err
			}

			defer func() { _ = closeArchive(a) }()

			stats := a.Stats()

			o.Printf("directories: %d\n", stats.Dirs)
			o.Printf("files:       %d\n", stats.Files)
			o.Printf("segments:    %d\n", stats.Segments)
			o.Printf("size:        %s\n", humanize.IBytes(stats.StreamLen))
			o.Printf("wasted:      %s\n", humanize.IBytes(stats.WastedBytes))

			return nil
		},
	}
}
