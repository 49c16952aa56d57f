package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: labsite [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build the course site from content/*.ipynb into site/.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>   Config file name or path (env: "+EnvConfig+")")
	fmt.Fprintln(w, "  -r, --root <dir>      Repository root (default: current directory)")
	fmt.Fprintln(w, "  -q, --quiet           Only show errors")
	fmt.Fprintln(w, "  -v, --verbose         Log every rendered notebook")
	fmt.Fprintln(w, "      --progress        Show a progress bar while rendering")
	fmt.Fprintln(w, "      --version         Show version information")
	fmt.Fprintln(w, "  -h, --help            Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0  success")
	fmt.Fprintln(w, "  1  unexpected error")
	fmt.Fprintln(w, "  2  invalid flags, config, or assets")
	fmt.Fprintln(w, "  3  missing content directory, read or write failure")
	fmt.Fprintln(w, "  4  notebook parse or render failure")
}
