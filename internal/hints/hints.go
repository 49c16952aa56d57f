// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/Uddiptaatwork/labsite/internal/fileutil"
)

// IsGitCheckout reports whether dir looks like the root of a git working tree.
var IsGitCheckout = func(dir string) bool {
	return fileutil.DirExists(filepath.Join(dir, ".git")) || fileutil.FileExists(filepath.Join(dir, ".git"))
}

// ForContentDir returns hints for a missing notebook directory. The build
// is usually run from the wrong directory, so the repository root is
// suggested when the current one is not a checkout.
func ForContentDir(root, contentDir string) string {
	var hints []string

	if !IsGitCheckout(root) {
		hints = append(hints, "run from the repository root or pass --root")
	}
	hints = append(hints, "notebooks are read from "+filepath.Join(root, contentDir)+"/*.ipynb")

	return formatHints(hints)
}

// ForNotebookParse returns a hint for notebooks that fail to load.
func ForNotebookParse() string {
	return format("re-save the notebook with Jupyter (nbformat 4) and check it is valid JSON")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/labsite/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/site.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/labsite/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check the site directory's parent exists and is writable")
}

// ForUnsafeOutput returns a hint when the site directory would wipe sources.
func ForUnsafeOutput() string {
	return format("paths.site must be a dedicated directory below the repository root")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
