package labsite

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/Uddiptaatwork/labsite/internal/assets"
	"github.com/Uddiptaatwork/labsite/internal/config"
	"github.com/Uddiptaatwork/labsite/internal/fileutil"
	"github.com/Uddiptaatwork/labsite/internal/notebook"
	"github.com/Uddiptaatwork/labsite/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.Renderer      = (*pipeline.NotebookRenderer)(nil)
	_ assets.AssetLoader     = (AssetLoader)(nil)
)

// Output layout below the site directory.
const (
	LabsDir    = "labs"
	AssetsDir  = "assets"
	IndexFile  = "index.html"
	StyleFile  = "style.css"
	PageSuffix = ".html"
)

// Lab describes one generated lab page.
type Lab struct {
	Stem     string // notebook file name without extension
	Title    string // resolved title, as shown on the lab page
	Href     string // page path relative to the site directory
	ColabURL string
}

// Result describes a finished build.
type Result struct {
	SiteDir string // absolute path of the generated site
	Labs    []Lab  // in notebook file name order
}

// Builder turns the notebooks of a content directory into a static site.
// Create with NewBuilder, then call Build.
type Builder struct {
	cfg      *config.Config
	root     string
	logger   zerolog.Logger
	loader   AssetLoader
	renderer pipeline.Renderer
	stdout   io.Writer
	progress func(done, total int)

	pages *pipeline.PageComposer
	index *pipeline.IndexComposer
}

// NewBuilder creates a Builder using the compiled-in course configuration
// unless WithConfig is given. Returns an error if the configuration is
// invalid or the page templates cannot be loaded.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		cfg:    config.DefaultConfig(),
		root:   ".",
		logger: zerolog.Nop(),
		stdout: io.Discard,
	}

	for _, opt := range opts {
		opt(b)
	}

	if err := b.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if b.loader == nil {
		loader, err := NewAssetLoader(b.cfg.Assets.BasePath)
		if err != nil {
			return nil, err
		}
		b.loader = loader
	}

	if b.renderer == nil {
		b.renderer = pipeline.NewNotebookRenderer(nil)
	}

	var err error
	if b.pages, err = pipeline.NewPageComposer(b.loader); err != nil {
		return nil, fmt.Errorf("initializing page composer: %w", err)
	}
	if b.index, err = pipeline.NewIndexComposer(b.loader); err != nil {
		return nil, fmt.Errorf("initializing index composer: %w", err)
	}

	return b, nil
}

// ContentDir returns the absolute notebook directory.
func (b *Builder) ContentDir() (string, error) {
	return filepath.Abs(filepath.Join(b.root, b.cfg.Paths.Content))
}

// SiteDir returns the absolute output directory.
func (b *Builder) SiteDir() (string, error) {
	return filepath.Abs(filepath.Join(b.root, b.cfg.Paths.Site))
}

// Build regenerates the site from scratch: the site directory is deleted,
// the stylesheet is written, every notebook becomes labs/<stem>.html, and
// index.html lists them in file name order. The first error aborts the
// build and leaves a partial site behind.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	contentDir, err := b.ContentDir()
	if err != nil {
		return nil, eris.Wrap(err, "resolving content directory")
	}
	siteDir, err := b.SiteDir()
	if err != nil {
		return nil, eris.Wrap(err, "resolving site directory")
	}

	if !fileutil.DirExists(contentDir) {
		return nil, eris.Wrap(fmt.Errorf("%w: %s", ErrContentDir, contentDir), "checking inputs")
	}
	// Wiping the site must never take the notebooks with it.
	if fileutil.IsPathUnderDir(contentDir, siteDir) {
		return nil, eris.Wrap(fmt.Errorf("%w: %s contains the content directory", fileutil.ErrUnsafeOutputDir, siteDir), "checking outputs")
	}

	collection, err := notebook.Discover(contentDir)
	if err != nil {
		return nil, eris.Wrap(fmt.Errorf("%w: %w", ErrContentDir, err), "discovering notebooks")
	}
	b.logger.Debug().Str("dir", contentDir).Int("notebooks", collection.Len()).Msg("discovered notebooks")

	if err := b.prepareSite(siteDir); err != nil {
		return nil, eris.Wrapf(err, "preparing %s", siteDir)
	}

	var labs []Lab
	for doc, err := range collection.All() {
		if err != nil {
			return nil, eris.Wrap(fmt.Errorf("%w: %w", ErrReadNotebook, err), "reading notebook")
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lab, err := b.buildLab(ctx, siteDir, contentDir, doc)
		if err != nil {
			return nil, err
		}
		labs = append(labs, lab)
		if b.progress != nil {
			b.progress(len(labs), collection.Len())
		}
	}

	if len(labs) == 0 {
		b.logger.Warn().Str("dir", contentDir).Msg("no notebooks found, writing an empty index")
	}

	if err := b.writeIndex(ctx, siteDir, labs); err != nil {
		return nil, err
	}

	fmt.Fprintf(b.stdout, "Built site into: %s\n", siteDir)

	return &Result{SiteDir: siteDir, Labs: labs}, nil
}

// prepareSite recreates the site directory with its fixed layout and
// writes the stylesheet.
func (b *Builder) prepareSite(siteDir string) error {
	if err := fileutil.ResetDir(siteDir); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteAsset, err)
	}
	for _, dir := range []string{LabsDir, AssetsDir} {
		if err := os.MkdirAll(filepath.Join(siteDir, dir), fileutil.DirPermissions); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteAsset, err)
		}
	}

	css, err := b.loader.LoadStyle(DefaultStyle)
	if err != nil {
		return fmt.Errorf("%w: loading stylesheet: %w", ErrWriteAsset, err)
	}
	if err := fileutil.WriteFile(filepath.Join(siteDir, AssetsDir, StyleFile), []byte(css)); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteAsset, err)
	}
	return nil
}

func (b *Builder) buildLab(ctx context.Context, siteDir, contentDir string, doc *notebook.Document) (Lab, error) {
	title := ResolveTitle(doc.Notebook, doc.Stem)

	fragment, err := b.renderer.Render(ctx, doc.Notebook, contentDir)
	if err != nil {
		if ctx.Err() != nil {
			return Lab{}, ctx.Err()
		}
		return Lab{}, eris.Wrapf(fmt.Errorf("%w: %s: %w", ErrRenderNotebook, doc.Name, err), "rendering %s", doc.Stem)
	}

	lab := Lab{
		Stem:     doc.Stem,
		Title:    title,
		Href:     LabsDir + "/" + doc.Stem + PageSuffix,
		ColabURL: ColabURL(b.cfg.Repo.Slug, b.cfg.Repo.Branch, b.cfg.Repo.ContentPath, doc.Name),
	}

	page, err := b.pages.Compose(ctx, pipeline.PageData{
		Title:    title,
		ColabURL: lab.ColabURL,
		Body:     fragment,
		Course:   b.cfg.Course,
	})
	if err != nil {
		return Lab{}, eris.Wrapf(fmt.Errorf("%w: %s: %w", ErrRenderNotebook, doc.Name, err), "composing %s", doc.Stem)
	}

	path := filepath.Join(siteDir, LabsDir, doc.Stem+PageSuffix)
	if err := fileutil.WriteFile(path, []byte(page)); err != nil {
		return Lab{}, eris.Wrapf(fmt.Errorf("%w: %w", ErrWritePage, err), "writing %s", path)
	}

	b.logger.Info().Str("notebook", doc.Name).Str("title", title).Msg("rendered lab")
	return lab, nil
}

func (b *Builder) writeIndex(ctx context.Context, siteDir string, labs []Lab) error {
	cards := make([]pipeline.Card, 0, len(labs))
	for _, lab := range labs {
		cards = append(cards, pipeline.Card{
			Heading:     LabTitle(lab.Stem, lab.Title),
			Description: Description(b.cfg.Labs, lab.Stem),
			Href:        lab.Href,
			ColabURL:    lab.ColabURL,
		})
	}

	page, err := b.index.Compose(ctx, pipeline.IndexData{
		Course:   b.cfg.Course,
		RepoSlug: b.cfg.Repo.Slug,
		Cards:    cards,
	})
	if err != nil {
		return eris.Wrap(fmt.Errorf("%w: %w", ErrWriteIndex, err), "composing index")
	}

	path := filepath.Join(siteDir, IndexFile)
	if err := fileutil.WriteFile(path, []byte(page)); err != nil {
		return eris.Wrapf(fmt.Errorf("%w: %w", ErrWriteIndex, err), "writing %s", path)
	}
	return nil
}
