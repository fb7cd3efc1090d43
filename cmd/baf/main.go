// Package main provides baf, a command-line tool for BAF archives.
package main

import (
	"os"

	"github.com/bafarchive/baf/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Stdout, os.Stderr, os.Args))
}
