package pipeline

import (
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/Uddiptaatwork/labsite/internal/notebook"
)

// ErrRender indicates a notebook could not be turned into an HTML fragment.
var ErrRender = errors.New("failed to render notebook")

// OutputPriority lists the MIME types a rich output is rendered from, best
// first. The first type present in an output's data wins.
var OutputPriority = []string{
	"application/javascript",
	"text/html",
	"text/markdown",
	"image/svg+xml",
	"text/latex",
	"image/png",
	"image/jpeg",
	"text/plain",
}

// ansiEscape matches terminal colour and cursor sequences (CSI) that
// IPython writes into tracebacks and some stream output.
var ansiEscape = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]`)

// scriptClose is neutralised inside inlined JavaScript so the payload
// cannot end its own script element.
var scriptClose = regexp.MustCompile(`(?i)</script`)

// Renderer turns a parsed notebook into an HTML fragment.
type Renderer interface {
	Render(ctx context.Context, nb *notebook.Notebook, sourceDir string) (string, error)
}

// NotebookRenderer renders executed notebooks the way a reader sees them
// after "Run all": narrative and outputs only. Code input and execution
// prompts are never emitted, and images are embedded as data URIs.
type NotebookRenderer struct {
	md HTMLConverter
}

// NewNotebookRenderer creates a renderer using conv for markdown. A nil
// conv selects the Goldmark converter.
func NewNotebookRenderer(conv HTMLConverter) *NotebookRenderer {
	if conv == nil {
		conv = NewGoldmarkConverter()
	}
	return &NotebookRenderer{md: conv}
}

// Render produces the fragment for nb. sourceDir is the notebook's
// directory, used to resolve relative image paths.
func (r *NotebookRenderer) Render(ctx context.Context, nb *notebook.Notebook, sourceDir string) (string, error) {
	if nb == nil {
		return "", fmt.Errorf("%w: nil notebook", ErrRender)
	}

	var b strings.Builder
	for i := range nb.Cells {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		cell := &nb.Cells[i]
		var err error
		switch cell.Type {
		case notebook.CellMarkdown:
			err = r.renderMarkdownCell(ctx, &b, cell, sourceDir)
		case notebook.CellCode:
			err = r.renderCodeCell(ctx, &b, cell, sourceDir)
		case notebook.CellRaw:
			renderRawCell(&b, cell)
		}
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", fmt.Errorf("%w: cell %d: %w", ErrRender, i, err)
		}
	}

	return b.String(), nil
}

func (r *NotebookRenderer) renderMarkdownCell(ctx context.Context, b *strings.Builder, cell *notebook.Cell, sourceDir string) error {
	if strings.TrimSpace(cell.Source.String()) == "" {
		return nil
	}

	body, err := r.markdown(ctx, cell.Source.String(), sourceDir, cell.Attachments)
	if err != nil {
		return err
	}

	b.WriteString(`<div class="jp-Cell jp-MarkdownCell">` + "\n")
	b.WriteString(`<div class="jp-RenderedMarkdown">` + "\n")
	b.WriteString(body)
	b.WriteString("</div>\n</div>\n")
	return nil
}

// markdown converts a markdown source to HTML with math left intact and
// images inlined.
func (r *NotebookRenderer) markdown(ctx context.Context, src, sourceDir string, attachments map[string]notebook.MimeBundle) (string, error) {
	protected, spans := protectMath(normalizeLineEndings(src))

	out, err := r.md.ToHTML(ctx, protected)
	if err != nil {
		return "", err
	}

	return EmbedImages(spans.restore(out), sourceDir, attachments)
}

func (r *NotebookRenderer) renderCodeCell(ctx context.Context, b *strings.Builder, cell *notebook.Cell, sourceDir string) error {
	var outputs strings.Builder
	for j := range cell.Outputs {
		out := &cell.Outputs[j]

		body, class, err := r.renderOutput(ctx, out, sourceDir)
		if err != nil {
			return fmt.Errorf("output %d: %w", j, err)
		}
		if body == "" {
			continue
		}

		outputs.WriteString(`<div class="jp-OutputArea-output` + class + `">` + "\n")
		outputs.WriteString(body)
		outputs.WriteString("</div>\n")
	}

	if outputs.Len() == 0 {
		return nil
	}

	b.WriteString(`<div class="jp-Cell jp-CodeCell">` + "\n")
	b.WriteString(`<div class="jp-OutputArea">` + "\n")
	b.WriteString(outputs.String())
	b.WriteString("</div>\n</div>\n")
	return nil
}

// renderOutput returns the HTML for one output and any extra class for its
// wrapper. An empty body means the output has nothing to show.
func (r *NotebookRenderer) renderOutput(ctx context.Context, out *notebook.Output, sourceDir string) (string, string, error) {
	switch out.Type {
	case notebook.OutputStream:
		text := out.Text.String()
		if text == "" {
			return "", "", nil
		}
		class := ""
		if out.Name == "stderr" {
			class = " jp-mod-stderr"
		}
		return preformatted(text), class, nil

	case notebook.OutputDisplayData, notebook.OutputExecuteResult:
		body, err := r.renderRich(ctx, out.Data, sourceDir)
		return body, "", err

	case notebook.OutputError:
		var text strings.Builder
		if out.EName != "" || out.EValue != "" {
			text.WriteString(out.EName + ": " + out.EValue + "\n")
		}
		for _, line := range out.Traceback {
			text.WriteString(line + "\n")
		}
		return preformatted(text.String()), " jp-mod-error", nil
	}

	return "", "", nil
}

// renderRich renders the highest-priority representation in data.
func (r *NotebookRenderer) renderRich(ctx context.Context, data notebook.MimeBundle, sourceDir string) (string, error) {
	mime := selectMIME(data)
	if mime == "" {
		return "", nil
	}
	payload, _ := data.Text(mime)

	switch mime {
	case "application/javascript":
		js := scriptClose.ReplaceAllString(payload, `<\/script`)
		return `<script type="text/javascript">` + "\n" + js + "\n</script>\n", nil

	case "text/html":
		body, err := EmbedImages(payload, sourceDir, nil)
		if err != nil {
			return "", err
		}
		return `<div class="jp-RenderedHTML">` + "\n" + body + "\n</div>\n", nil

	case "text/markdown":
		body, err := r.markdown(ctx, payload, sourceDir, nil)
		if err != nil {
			return "", err
		}
		return `<div class="jp-RenderedMarkdown">` + "\n" + body + "</div>\n", nil

	case "image/svg+xml":
		return `<div class="jp-RenderedSVG">` + "\n" + payload + "\n</div>\n", nil

	case "text/latex":
		return `<div class="jp-RenderedLatex">` + html.EscapeString(payload) + "</div>\n", nil

	case "image/png", "image/jpeg":
		uri, err := base64DataURI(mime, payload)
		if err != nil {
			return "", err
		}
		return `<div class="jp-RenderedImage">` + "\n" + `<img src="` + uri + `" alt=""/>` + "\n</div>\n", nil

	default: // text/plain
		return preformatted(payload), nil
	}
}

// selectMIME returns the first type of OutputPriority present in data.
func selectMIME(data notebook.MimeBundle) string {
	for _, mime := range OutputPriority {
		if data.Has(mime) {
			return mime
		}
	}
	return ""
}

func preformatted(text string) string {
	return `<div class="jp-RenderedText">` + "\n<pre>" + html.EscapeString(stripANSI(text)) + "</pre>\n</div>\n"
}

func stripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// renderRawCell copies raw cells meant for HTML output; other raw formats
// (LaTeX, reST) have no place in a web page.
func renderRawCell(b *strings.Builder, cell *notebook.Cell) {
	if rawFormat(cell.Metadata) != "text/html" {
		return
	}
	b.WriteString(`<div class="jp-Cell jp-RawCell">` + "\n")
	b.WriteString(cell.Source.String())
	b.WriteString("\n</div>\n")
}

func rawFormat(metadata map[string]any) string {
	for _, key := range []string{"format", "raw_mimetype"} {
		if v, ok := metadata[key].(string); ok && v != "" {
			return strings.ToLower(v)
		}
	}
	return ""
}
