package cli

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/bafarchive/baf/pkg/baf"
)

// Run is the main entry point. Returns exit code.
func Run(out io.Writer, errOut io.Writer, args []string) int {
	// Create fresh global flags for this invocation
	globalFlags := flag.NewFlagSet("baf", flag.ContinueOnError)
	globalFlags.SetInterspersed(false)
	globalFlags.Usage = func() {}
	globalFlags.SetOutput(&strings.Builder{})
	flagHelp := globalFlags.BoolP("help", "h", false, "Show help")
	flagConfig := globalFlags.StringP("config", "c", "", "Use specified config `file`")
	flagVerbose := globalFlags.BoolP("verbose", "v", false, "Enable debug logging")

	if err := globalFlags.Parse(args[1:]); err != nil {
		fprintln(errOut, "error:", err)
		printGlobalOptions(errOut)

		return 1
	}

	cfg, err := LoadConfig(*flagConfig)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	log := zap.NewNop().Sugar()

	if *flagVerbose {
		dev, err := zap.NewDevelopment()
		if err != nil {
			fprintln(errOut, "error:", err)

			return 1
		}

		defer func() { _ = dev.Sync() }()

		log = dev.Sugar()
	}

	app := &App{Config: cfg, Log: log}

	commands := []*Command{
		app.createCommand(),
		app.listCommand(),
		app.addCommand(),
		app.statCommand(),
	}

	commandMap := make(map[string]*Command, len(commands))

	for _, cmd := range commands {
		commandMap[cmd.Name()] = cmd

		for _, alias := range cmd.Aliases {
			commandMap[alias] = cmd
		}
	}

	commandAndArgs := globalFlags.Args()

	// Show help: explicit --help or bare `baf` with no args
	if *flagHelp || len(commandAndArgs) == 0 {
		printUsage(out, commands)

		return 0
	}

	cmdName := commandAndArgs[0]

	cmd, ok := commandMap[cmdName]
	if !ok {
		fprintln(errOut, "error: unknown command:", cmdName)
		printUsage(errOut, commands)

		return 1
	}

	return cmd.Run(NewIO(out, errOut), commandAndArgs[1:])
}

// App carries the resolved configuration and logger into command handlers.
type App struct {
	Config Config
	Log    *zap.SugaredLogger
}

// archiveOptions builds engine options from the CLI configuration.
func (app *App) archiveOptions() baf.Options {
	opts := baf.DefaultOptions()
	opts.Logger = app.Log

	if app.Config.DirsPerSegment != 0 {
		opts.DirsPerSegment = app.Config.DirsPerSegment
	}

	if app.Config.FilesPerSegment != 0 {
		opts.FilesPerSegment = app.Config.FilesPerSegment
	}

	return opts
}

func printUsage(w io.Writer, commands []*Command) {
	fprintln(w, "Usage: baf [global flags] <command> [args]")
	fprintln(w)
	fprintln(w, "Commands:")

	for _, cmd := range commands {
		fprintln(w, cmd.HelpLine())
	}

	fprintln(w)
	printGlobalOptions(w)
}

func printGlobalOptions(w io.Writer) {
	fprintln(w, "Global flags:")
	fprintln(w, "  -c, --config file   Use specified config file (default:", ConfigFileName+")")
	fprintln(w, "  -v, --verbose       Enable debug logging")
	fprintln(w, "  -h, --help          Show help")
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}
