package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Uddiptaatwork/labsite/internal/assets"
	"github.com/Uddiptaatwork/labsite/internal/config"
)

// stubLoader serves templates from a map.
type stubLoader map[string]string

func (s stubLoader) LoadStyle(name string) (string, error) {
	return "", assets.ErrStyleNotFound
}

func (s stubLoader) LoadTemplate(name string) (string, error) {
	content, ok := s[name]
	if !ok {
		return "", assets.ErrTemplateNotFound
	}
	return content, nil
}

func testCourse() config.CourseConfig {
	return config.DefaultConfig().Course
}

// ---------------------------------------------------------------------------
// TestPageComposer
// ---------------------------------------------------------------------------

func TestPageComposer_Compose(t *testing.T) {
	t.Parallel()

	composer, err := NewPageComposer(assets.NewEmbeddedLoader())
	if err != nil {
		t.Fatalf("NewPageComposer() error = %v", err)
	}

	colab := "https://colab.research.google.com/github/o/r/blob/main/content/00_x.ipynb"
	got, err := composer.Compose(context.Background(), PageData{
		Title:    "Redshift <z> & Distance",
		ColabURL: colab,
		Body:     `<div class="jp-Cell jp-MarkdownCell"><p>fragment</p></div>`,
		Course:   testCourse(),
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	for _, want := range []string{
		"<title>Redshift &lt;z&gt; &amp; Distance — Astro II SS2026</title>",
		"<h1>Redshift &lt;z&gt; &amp; Distance</h1>",
		`<div class="jp-Cell jp-MarkdownCell"><p>fragment</p></div>`,
		`href="../index.html"`,
		`href="../assets/style.css"`,
		`<a class="btn primary" href="` + colab + `"`,
		`src="` + ColabBadgeURL + `"`,
		"Open in Google Colab",
		"mathjax",
		testCourse().Footer,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Compose() missing %q", want)
		}
	}
	if strings.Contains(got, "<z>") {
		t.Error("Compose() left the title unescaped")
	}
	if n := strings.Count(got, colab); n != 2 {
		t.Errorf("Colab URL appears %d times, want 2 (button and badge)", n)
	}
}

func TestPageComposer_ColabHrefPercentEncoded(t *testing.T) {
	t.Parallel()

	composer, err := NewPageComposer(assets.NewEmbeddedLoader())
	if err != nil {
		t.Fatalf("NewPageComposer() error = %v", err)
	}

	got, err := composer.Compose(context.Background(), PageData{
		Title:    "My Lab",
		ColabURL: "https://colab.research.google.com/github/o/r/blob/main/content/03_my lab ü.ipynb",
		Course:   testCourse(),
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	want := `href="https://colab.research.google.com/github/o/r/blob/main/content/03_my%20lab%20%c3%bc.ipynb"`
	if !strings.Contains(got, want) {
		t.Errorf("Compose() missing %q", want)
	}
}

func TestPageComposer_ContextCancellation(t *testing.T) {
	t.Parallel()

	composer, err := NewPageComposer(assets.NewEmbeddedLoader())
	if err != nil {
		t.Fatalf("NewPageComposer() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := composer.Compose(ctx, PageData{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Compose() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestIndexComposer
// ---------------------------------------------------------------------------

func TestIndexComposer_Compose(t *testing.T) {
	t.Parallel()

	composer, err := NewIndexComposer(assets.NewEmbeddedLoader())
	if err != nil {
		t.Fatalf("NewIndexComposer() error = %v", err)
	}

	got, err := composer.Compose(context.Background(), IndexData{
		Course:   testCourse(),
		RepoSlug: "owner/repo",
		Cards: []Card{
			{Heading: "Lab 0: Hubble Reenactment", Description: "First.", Href: "labs/00_hubble_reenactment.html", ColabURL: "https://colab.example/00"},
			{Heading: "Fits & <Errors>", Description: "Second.", Href: "labs/05_fits.html", ColabURL: "https://colab.example/05"},
		},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	for _, want := range []string{
		"<h2>Lab 0: Hubble Reenactment</h2>",
		"<h2>Fits &amp; &lt;Errors&gt;</h2>",
		`href="labs/00_hubble_reenactment.html"`,
		`href="https://colab.example/05"`,
		"View (static)",
		`href="https://github.com/owner/repo"`,
		">owner/repo</a>",
		`href="assets/style.css"`,
		"How to use this site",
		testCourse().Maintainer,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Compose() missing %q", want)
		}
	}

	first := strings.Index(got, "Lab 0: Hubble Reenactment")
	second := strings.Index(got, "Fits &amp;")
	if first < 0 || second < 0 || first > second {
		t.Errorf("cards out of order: first=%d second=%d", first, second)
	}
}

func TestIndexComposer_NoCards(t *testing.T) {
	t.Parallel()

	composer, err := NewIndexComposer(assets.NewEmbeddedLoader())
	if err != nil {
		t.Fatalf("NewIndexComposer() error = %v", err)
	}

	got, err := composer.Compose(context.Background(), IndexData{Course: testCourse(), RepoSlug: "o/r"})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if strings.Contains(got, "View (static)") {
		t.Error("Compose() rendered a card for an empty lab list")
	}
	if !strings.Contains(got, `class="grid"`) {
		t.Error("Compose() should still render the grid container")
	}
}

// ---------------------------------------------------------------------------
// TestComposer errors
// ---------------------------------------------------------------------------

func TestNewComposers_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing template", func(t *testing.T) {
		t.Parallel()

		if _, err := NewPageComposer(stubLoader{}); !errors.Is(err, assets.ErrTemplateNotFound) {
			t.Errorf("NewPageComposer() error = %v, want ErrTemplateNotFound", err)
		}
		if _, err := NewIndexComposer(stubLoader{}); !errors.Is(err, assets.ErrTemplateNotFound) {
			t.Errorf("NewIndexComposer() error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("template syntax error", func(t *testing.T) {
		t.Parallel()

		loader := stubLoader{assets.PageTemplateName: "<p>{{.Title</p>"}
		if _, err := NewPageComposer(loader); !errors.Is(err, ErrTemplateRender) {
			t.Errorf("NewPageComposer() error = %v, want ErrTemplateRender", err)
		}
	})

	t.Run("unknown field at execution", func(t *testing.T) {
		t.Parallel()

		loader := stubLoader{assets.IndexTemplateName: "<p>{{.Nope}}</p>"}
		composer, err := NewIndexComposer(loader)
		if err != nil {
			t.Fatalf("NewIndexComposer() error = %v", err)
		}
		if _, err := composer.Compose(context.Background(), IndexData{}); !errors.Is(err, ErrTemplateRender) {
			t.Errorf("Compose() error = %v, want ErrTemplateRender", err)
		}
	})
}
