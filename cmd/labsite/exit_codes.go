package main

import (
	"errors"
	"os"

	"github.com/Uddiptaatwork/labsite"
	"github.com/Uddiptaatwork/labsite/internal/assets"
	"github.com/Uddiptaatwork/labsite/internal/config"
	"github.com/Uddiptaatwork/labsite/internal/fileutil"
	"github.com/Uddiptaatwork/labsite/internal/notebook"
	"github.com/Uddiptaatwork/labsite/internal/pipeline"
)

// Exit codes for the labsite CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Site built
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or assets
	ExitIO      = 3 // Missing content directory, read or write failure
	ExitRender  = 4 // Notebook parse or render failure
)

// errUsage marks command line errors.
var errUsage = errors.New("invalid usage")

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Parse/render errors (exit 4)
	if errors.Is(err, notebook.ErrParse) ||
		errors.Is(err, notebook.ErrUnsupportedFormat) ||
		errors.Is(err, labsite.ErrRenderNotebook) ||
		errors.Is(err, pipeline.ErrRender) ||
		errors.Is(err, pipeline.ErrHTMLConversion) ||
		errors.Is(err, pipeline.ErrTemplateRender) {
		return ExitRender
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, errUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, labsite.ErrInvalidConfig) ||
		errors.Is(err, labsite.ErrInvalidAssetPath) ||
		errors.Is(err, fileutil.ErrUnsafeOutputDir) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, labsite.ErrContentDir) ||
		errors.Is(err, labsite.ErrReadNotebook) ||
		errors.Is(err, labsite.ErrWritePage) ||
		errors.Is(err, labsite.ErrWriteIndex) ||
		errors.Is(err, labsite.ErrWriteAsset) ||
		errors.Is(err, assets.ErrAssetRead) {
		return ExitIO
	}

	return ExitGeneral
}
