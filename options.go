package labsite

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/Uddiptaatwork/labsite/internal/config"
	"github.com/Uddiptaatwork/labsite/internal/pipeline"
)

// Option configures a Builder.
type Option func(*Builder)

// WithConfig replaces the compiled-in course configuration. The config is
// validated by NewBuilder. A nil config is ignored.
func WithConfig(cfg *config.Config) Option {
	return func(b *Builder) {
		if cfg != nil {
			b.cfg = cfg
		}
	}
}

// WithRoot sets the repository root that content and site paths are
// relative to. Defaults to the current directory.
func WithRoot(dir string) Option {
	return func(b *Builder) {
		if dir != "" {
			b.root = dir
		}
	}
}

// WithLogger sets the logger for build progress. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithAssetLoader sets a custom asset loader for the stylesheet and page
// templates. Takes precedence over the config's assets.basePath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(b *Builder) {
		b.loader = loader
	}
}

// WithRenderer replaces the notebook renderer.
func WithRenderer(r pipeline.Renderer) Option {
	return func(b *Builder) {
		b.renderer = r
	}
}

// WithStdout sets where the "Built site into" line is printed. Defaults to
// io.Discard.
func WithStdout(w io.Writer) Option {
	return func(b *Builder) {
		if w != nil {
			b.stdout = w
		}
	}
}

// WithProgress sets a callback run after each lab page is written, with the
// number of pages done and the number of notebooks found.
func WithProgress(fn func(done, total int)) Option {
	return func(b *Builder) {
		b.progress = fn
	}
}
