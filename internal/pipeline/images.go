package pipeline

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/Uddiptaatwork/labsite/internal/fileutil"
	"github.com/Uddiptaatwork/labsite/internal/notebook"
)

// attachmentPrefix marks image sources that refer to a cell attachment.
const attachmentPrefix = "attachment:"

// imageTypes maps file extensions to the MIME types inlined as data URIs.
// Files with other extensions keep their original src.
var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
}

// attachmentTypes is the preference order when an attachment carries more
// than one representation.
var attachmentTypes = []string{"image/png", "image/jpeg", "image/gif", "image/svg+xml", "image/webp"}

// EmbedImages inlines the images referenced by an HTML fragment so the page
// needs no files besides itself.
//
// Rewrites img[src] when it is:
//   - attachment:<name>, resolved from attachments
//   - a relative path, read from sourceDir
//
// Leaves unchanged:
//   - URLs, data URIs and absolute paths
//   - relative paths that leave sourceDir or do not exist
//   - files whose extension is not a known image type
//
// The fragment is returned untouched when nothing was rewritten.
func EmbedImages(fragment, sourceDir string, attachments map[string]notebook.MimeBundle) (string, error) {
	if !strings.Contains(fragment, "<img") && !strings.Contains(fragment, "<IMG") {
		return fragment, nil
	}

	var absSourceDir string
	if sourceDir != "" {
		abs, err := filepath.Abs(sourceDir)
		if err != nil {
			return "", err
		}
		absSourceDir = abs
	}

	doc, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}

	e := &embedder{sourceDir: absSourceDir, attachments: attachments}
	e.walk(doc)
	if e.err != nil {
		return "", e.err
	}
	if !e.changed {
		return fragment, nil
	}

	return renderFragment(doc)
}

// parseFragment parses content with body context to avoid wrapping, and
// hangs the resulting nodes under one container for uniform traversal.
func parseFragment(content string) (*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// renderFragment renders only the children of the container.
func renderFragment(doc *html.Node) (string, error) {
	var buf strings.Builder
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

type embedder struct {
	sourceDir   string
	attachments map[string]notebook.MimeBundle
	changed     bool
	err         error
}

func (e *embedder) walk(n *html.Node) {
	if e.err != nil {
		return
	}
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		e.rewriteSrc(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		e.walk(c)
	}
}

func (e *embedder) rewriteSrc(n *html.Node) {
	for i, attr := range n.Attr {
		if attr.Key != "src" {
			continue
		}

		var uri string
		var err error
		if name, ok := strings.CutPrefix(attr.Val, attachmentPrefix); ok {
			uri, err = e.fromAttachment(name)
		} else if isRelativePath(attr.Val) && e.sourceDir != "" {
			uri, err = e.fromFile(attr.Val)
		}
		if err != nil {
			e.err = err
			return
		}
		if uri != "" {
			n.Attr[i].Val = uri
			e.changed = true
		}
	}
}

func (e *embedder) fromAttachment(name string) (string, error) {
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	bundle, ok := e.attachments[name]
	if !ok {
		return "", nil
	}

	mime := pickAttachmentType(bundle)
	if mime == "" {
		return "", nil
	}
	data, _ := bundle.Text(mime)
	return base64DataURI(mime, data)
}

// pickAttachmentType returns the preferred image MIME type in bundle, or
// the alphabetically first image/* type when none of the preferred ones
// is present.
func pickAttachmentType(bundle notebook.MimeBundle) string {
	for _, mime := range attachmentTypes {
		if bundle.Has(mime) {
			return mime
		}
	}
	var others []string
	for mime := range bundle {
		if strings.HasPrefix(mime, "image/") {
			others = append(others, mime)
		}
	}
	if len(others) == 0 {
		return ""
	}
	sort.Strings(others)
	return others[0]
}

func (e *embedder) fromFile(src string) (string, error) {
	ref, err := url.Parse(src)
	if err != nil || ref.Path == "" {
		return "", nil
	}

	mime, ok := imageTypes[strings.ToLower(path.Ext(ref.Path))]
	if !ok {
		return "", nil
	}

	absPath := filepath.Join(e.sourceDir, filepath.FromSlash(ref.Path))
	if !fileutil.IsPathUnderDir(absPath, e.sourceDir) {
		return "", nil
	}
	// Symlinks inside sourceDir may still point elsewhere.
	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		base, err := filepath.EvalSymlinks(e.sourceDir)
		if err != nil || !fileutil.IsPathUnderDir(resolved, base) {
			return "", nil
		}
	}

	data, err := os.ReadFile(absPath) // #nosec G304 -- path is contained in sourceDir
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("%w: reading image %s: %v", ErrRender, src, err)
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// base64DataURI validates a notebook base64 payload and wraps it in a data
// URI. Jupyter line-wraps long payloads; the whitespace is dropped.
func base64DataURI(mime, payload string) (string, error) {
	clean := strings.Join(strings.Fields(payload), "")
	if _, err := base64.StdEncoding.DecodeString(clean); err != nil {
		return "", fmt.Errorf("%w: invalid base64 %s data: %v", ErrRender, mime, err)
	}
	return "data:" + mime + ";base64," + clean, nil
}

// isRelativePath returns true if the path should be resolved against the
// notebook directory.
func isRelativePath(p string) bool {
	if p == "" {
		return false
	}

	// Skip URLs (http, https, file, data, protocol-relative)
	if strings.HasPrefix(p, "//") || strings.HasPrefix(p, "#") {
		return false
	}
	if u, err := url.Parse(p); err == nil && u.Scheme != "" {
		return false
	}

	if filepath.IsAbs(p) || strings.HasPrefix(p, "/") {
		return false
	}

	return true
}
