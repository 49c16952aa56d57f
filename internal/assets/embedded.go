package assets

import (
	"embed"
	"fmt"
	"path"
)

//go:embed styles/*.css templates/*.html
var builtin embed.FS

// EmbeddedLoader serves the stylesheet and templates compiled into the
// binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle returns styles/<name>.css.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return e.read(path.Join("styles", name+".css"), name, ErrStyleNotFound)
}

// LoadTemplate returns templates/<name>.html.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return e.read(path.Join("templates", name+".html"), name, ErrTemplateNotFound)
}

func (e *EmbeddedLoader) read(file, name string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	content, err := builtin.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}
	return string(content), nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
