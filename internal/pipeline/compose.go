package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/Uddiptaatwork/labsite/internal/assets"
	"github.com/Uddiptaatwork/labsite/internal/config"
)

// ErrTemplateRender indicates a page template failed to parse or execute.
var ErrTemplateRender = errors.New("template rendering failed")

// ColabBadgeURL is the "Open in Colab" badge image.
const ColabBadgeURL = "https://colab.research.google.com/assets/colab-badge.svg"

// PageData holds the values of one lab page.
type PageData struct {
	Title    string // untrusted; escaped by the template
	ColabURL string
	Body     string // rendered fragment, inserted verbatim
	Course   config.CourseConfig
}

// pageView is what the page template sees.
type pageView struct {
	Title    string
	ColabURL string
	BadgeURL string
	Body     template.HTML
	Course   config.CourseConfig
}

// IndexData holds the values of the landing page.
type IndexData struct {
	Course   config.CourseConfig
	RepoSlug string
	Cards    []Card
}

// Card is one lab on the landing page.
type Card struct {
	Heading     string
	Description string
	Href        string // relative to the site root
	ColabURL    string
}

// indexView is what the index template sees.
type indexView struct {
	IndexData
	RepoURL string
}

// PageComposer wraps rendered fragments in the lab page shell.
type PageComposer struct {
	tmpl *template.Template
}

// NewPageComposer parses the page template provided by loader.
func NewPageComposer(loader assets.AssetLoader) (*PageComposer, error) {
	tmpl, err := parseTemplate(loader, assets.PageTemplateName)
	if err != nil {
		return nil, err
	}
	return &PageComposer{tmpl: tmpl}, nil
}

// Compose renders a complete lab page.
func (p *PageComposer) Compose(ctx context.Context, data PageData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	view := pageView{
		Title:    data.Title,
		ColabURL: data.ColabURL,
		BadgeURL: ColabBadgeURL,
		Body:     template.HTML(data.Body), // #nosec G203 -- fragment is produced by the renderer
		Course:   data.Course,
	}
	return execute(p.tmpl, view)
}

// IndexComposer renders the landing page.
type IndexComposer struct {
	tmpl *template.Template
}

// NewIndexComposer parses the index template provided by loader.
func NewIndexComposer(loader assets.AssetLoader) (*IndexComposer, error) {
	tmpl, err := parseTemplate(loader, assets.IndexTemplateName)
	if err != nil {
		return nil, err
	}
	return &IndexComposer{tmpl: tmpl}, nil
}

// Compose renders the landing page with one card per lab, in order.
func (c *IndexComposer) Compose(ctx context.Context, data IndexData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	view := indexView{
		IndexData: data,
		RepoURL:   "https://github.com/" + data.RepoSlug,
	}
	return execute(c.tmpl, view)
}

func parseTemplate(loader assets.AssetLoader, name string) (*template.Template, error) {
	content, err := loader.LoadTemplate(name)
	if err != nil {
		return nil, fmt.Errorf("loading %s template: %w", name, err)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s template: %v", ErrTemplateRender, name, err)
	}
	return tmpl, nil
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateRender, tmpl.Name(), err)
	}
	return buf.String(), nil
}
