package labsite

import "errors"

// Sentinel errors for site builds.
var (
	ErrContentDir       = errors.New("content directory not found")
	ErrReadNotebook     = errors.New("failed to read notebook")
	ErrRenderNotebook   = errors.New("failed to render notebook")
	ErrWritePage        = errors.New("failed to write lab page")
	ErrWriteIndex       = errors.New("failed to write index page")
	ErrWriteAsset       = errors.New("failed to write site asset")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrInvalidConfig    = errors.New("invalid configuration")
)
