package cli

import (
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

func (app *App) createCommand() *Command {
	return &Command{
		Flags: flag.NewFlagSet("create", flag.ContinueOnError),
		Usage: "create <archive>",
		Short: "Create an empty archive",
		Long:  "Create an empty archive at the given path. Fails if the path already exists.",
		Exec: func(_ *IO, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one archive path")
			}

			path := args[0]

			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("path %s already exists", path)
			}

			a, err := createArchive(path, app.archiveOptions())
			if err != nil {
				return err
			}

			if err := a.Flush(); err != nil {
				return err
			}

			return closeArchive(a)
		},
	}
}
