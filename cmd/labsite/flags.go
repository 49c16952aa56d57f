package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// errUnexpectedArgs is returned when positional arguments are given.
var errUnexpectedArgs = errors.New("unexpected arguments")

// cliFlags holds the parsed command line.
type cliFlags struct {
	config   string
	root     string
	quiet    bool
	verbose  bool
	progress bool
	version  bool
}

// parseFlags parses args (without the program name). Returns pflag.ErrHelp
// when -h or --help is given.
func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{}

	fs := pflag.NewFlagSet("labsite", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.root, "root", "r", ".", "repository root")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log every rendered notebook")
	fs.BoolVar(&f.progress, "progress", false, "show a progress bar while rendering")
	fs.BoolVar(&f.version, "version", false, "show version information")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: %w: %s", errUsage, errUnexpectedArgs, strings.Join(fs.Args(), " "))
	}
	if f.quiet && f.verbose {
		return nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", errUsage)
	}

	return f, nil
}
