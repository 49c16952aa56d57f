// Package notebook reads Jupyter notebooks (nbformat 4) from disk.
//
// Only the parts of the format needed to render executed outputs are
// modelled: cells, their sources and attachments, and code cell outputs.
// Unknown fields are ignored so notebooks written by newer Jupyter
// versions still load.
package notebook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Sentinel errors for notebook loading.
var (
	ErrParse             = errors.New("failed to parse notebook")
	ErrUnsupportedFormat = errors.New("unsupported notebook format")
)

// MinFormat is the oldest nbformat major version accepted.
const MinFormat = 4

// Cell types.
const (
	CellMarkdown = "markdown"
	CellCode     = "code"
	CellRaw      = "raw"
)

// Output types.
const (
	OutputStream        = "stream"
	OutputDisplayData   = "display_data"
	OutputExecuteResult = "execute_result"
	OutputError         = "error"
)

// Notebook is a parsed .ipynb document.
type Notebook struct {
	Metadata    map[string]any `json:"metadata"`
	Format      int            `json:"nbformat"`
	FormatMinor int            `json:"nbformat_minor"`
	Cells       []Cell         `json:"cells"`
}

// Cell is a single notebook cell.
type Cell struct {
	Type        string                `json:"cell_type"`
	Source      MultilineString       `json:"source"`
	Metadata    map[string]any        `json:"metadata"`
	Attachments map[string]MimeBundle `json:"attachments,omitempty"`
	Outputs     []Output              `json:"outputs,omitempty"`
}

// Output is one entry of a code cell's outputs.
type Output struct {
	Type      string          `json:"output_type"`
	Name      string          `json:"name,omitempty"` // stream: stdout or stderr
	Text      MultilineString `json:"text,omitempty"` // stream
	Data      MimeBundle      `json:"data,omitempty"` // display_data, execute_result
	EName     string          `json:"ename,omitempty"`
	EValue    string          `json:"evalue,omitempty"`
	Traceback []string        `json:"traceback,omitempty"`
}

// MultilineString is nbformat's string-or-list-of-strings encoding.
// List elements already carry their own newlines and are joined as-is.
type MultilineString string

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (m *MultilineString) UnmarshalJSON(data []byte) error {
	s, err := decodeMultiline(data)
	if err != nil {
		return err
	}
	*m = MultilineString(s)
	return nil
}

func (m MultilineString) String() string { return string(m) }

// MimeBundle maps a MIME type to its payload.
type MimeBundle map[string]json.RawMessage

// Has reports whether the bundle carries the MIME type.
func (b MimeBundle) Has(mime string) bool {
	_, ok := b[mime]
	return ok
}

// Text returns the payload for mime as a string. String and
// list-of-strings payloads are joined; any other JSON value (for example
// application/json data) is returned in compact JSON form.
func (b MimeBundle) Text(mime string) (string, bool) {
	raw, ok := b[mime]
	if !ok {
		return "", false
	}
	if s, err := decodeMultiline(raw); err == nil {
		return s, true
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw), true
	}
	return buf.String(), true
}

func decodeMultiline(data []byte) (string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}

	if trimmed[0] == '[' {
		var parts []string
		if err := json.Unmarshal(trimmed, &parts); err != nil {
			return "", err
		}
		return strings.Join(parts, ""), nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", err
	}
	return s, nil
}

// Title returns the notebook-level metadata title as written, or "" when
// it is absent, empty, or not a string. Whitespace is not trimmed.
func (nb *Notebook) Title() string {
	if nb == nil || nb.Metadata == nil {
		return ""
	}
	title, _ := nb.Metadata["title"].(string)
	return title
}

// Parse decodes a notebook from r.
func Parse(r io.Reader) (*Notebook, error) {
	var nb Notebook
	if err := json.NewDecoder(r).Decode(&nb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if nb.Format == 0 {
		return nil, fmt.Errorf("%w: missing nbformat version", ErrUnsupportedFormat)
	}
	if nb.Format < MinFormat {
		return nil, fmt.Errorf("%w: nbformat %d (need %d or later)", ErrUnsupportedFormat, nb.Format, MinFormat)
	}

	for i, c := range nb.Cells {
		switch c.Type {
		case CellMarkdown, CellCode, CellRaw:
		default:
			return nil, fmt.Errorf("%w: cell %d has unknown type %q", ErrParse, i, c.Type)
		}
	}

	return &nb, nil
}

// ReadFile opens and parses the notebook at path.
func ReadFile(path string) (*Notebook, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from directory discovery
	if err != nil {
		return nil, err
	}
	defer f.Close()

	nb, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nb, nil
}
