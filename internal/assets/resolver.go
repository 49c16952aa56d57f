package assets

import (
	"errors"
)

// AssetResolver looks an asset up in a custom directory first and falls
// back to the embedded set when the directory does not provide it. Only
// not-found errors fall through; a bad name or an unreadable file in the
// custom directory is returned as is.
type AssetResolver struct {
	layers []AssetLoader // highest priority first; the embedded set is last
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath means
// embedded assets only. Returns ErrInvalidBasePath if customBasePath is set
// but is not a readable directory.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.layers = append(r.layers, fsLoader)
	}
	r.layers = append(r.layers, NewEmbeddedLoader())

	return r, nil
}

// LoadStyle returns the highest-priority stylesheet called name.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

// LoadTemplate returns the highest-priority template called name.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, layer := range r.layers {
		var content string
		content, err = load(layer)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrTemplateNotFound) {
			return "", err
		}
	}
	return "", err
}

// HasCustomLoader reports whether a custom asset directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.layers) > 1
}

var _ AssetLoader = (*AssetResolver)(nil)
