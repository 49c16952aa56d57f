package main

import (
	"errors"
	"os"

	"github.com/Uddiptaatwork/labsite"
	"github.com/Uddiptaatwork/labsite/internal/config"
	"github.com/Uddiptaatwork/labsite/internal/fileutil"
	"github.com/Uddiptaatwork/labsite/internal/hints"
	"github.com/Uddiptaatwork/labsite/internal/notebook"
)

// hintFor returns an actionable hint for err, or "" when none applies.
// cfg may be nil when the config itself failed to load.
func hintFor(err error, root, configName string, cfg *config.Config) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(configName))
	case errors.Is(err, fileutil.ErrUnsafeOutputDir):
		return hints.ForUnsafeOutput()
	case errors.Is(err, labsite.ErrContentDir):
		content := config.DefaultConfig().Paths.Content
		if cfg != nil {
			content = cfg.Paths.Content
		}
		return hints.ForContentDir(root, content)
	case errors.Is(err, notebook.ErrParse), errors.Is(err, notebook.ErrUnsupportedFormat):
		return hints.ForNotebookParse()
	case errors.Is(err, os.ErrPermission) &&
		(errors.Is(err, labsite.ErrWriteAsset) ||
			errors.Is(err, labsite.ErrWritePage) ||
			errors.Is(err, labsite.ErrWriteIndex)):
		return hints.ForOutputDirectory()
	}
	return ""
}
