package labsite

import (
	"fmt"

	"github.com/Uddiptaatwork/labsite/internal/assets"
)

// Names of the built-in assets.
const (
	// DefaultStyle is the stylesheet written to assets/style.css.
	DefaultStyle = assets.DefaultStyleName

	// PageTemplate wraps each rendered notebook.
	PageTemplate = assets.PageTemplateName

	// IndexTemplate is the landing page.
	IndexTemplate = assets.IndexTemplateName
)

// AssetLoader defines the contract for loading the site stylesheet and the
// page templates. Implementations may load from the filesystem, embedded
// assets, or anywhere else.
//
// Templates are html/template sources. The page template receives .Title,
// .ColabURL, .BadgeURL, .Body and .Course; the index template receives
// .Course, .Cards, .RepoSlug and .RepoURL.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory may contain:
//   - styles/site.css
//   - templates/page.html and templates/index.html
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return resolver, nil
}
