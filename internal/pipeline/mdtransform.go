package pipeline

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Math placeholders use Unicode Private Use Area characters.
// They pass through Goldmark unchanged, so TeX is never mangled by
// emphasis or escaping rules. restore swaps them back after conversion.
const (
	MathStartPlaceholder = "\uE000" // U+E000: Private Use Area
	MathEndPlaceholder   = "\uE001" // U+E001: Private Use Area
)

var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	mathPlaceholder = regexp.MustCompile(`\x{E000}([0-9]+)\x{E001}`)
)

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// mathSpans holds the TeX spans cut out of a markdown source, indexed by
// placeholder number.
type mathSpans []string

// protectMath replaces $$..$$, \[..\], \(..\) and $..$ spans with
// placeholders. Fenced code blocks, inline code spans, link destinations
// and autolinks are left alone.
func protectMath(content string) (string, mathSpans) {
	var out strings.Builder
	var spans mathSpans
	out.Grow(len(content))

	var chunk strings.Builder
	flush := func() {
		if chunk.Len() > 0 {
			out.WriteString(protectInline(chunk.String(), &spans))
			chunk.Reset()
		}
	}

	fence := ""
	for _, line := range strings.SplitAfter(content, "\n") {
		marker := fenceMarker(line)
		switch {
		case fence == "" && marker != "":
			flush()
			fence = marker
			out.WriteString(line)
		case fence != "":
			out.WriteString(line)
			if marker != "" && strings.HasPrefix(marker, fence[:1]) && len(marker) >= len(fence) {
				fence = ""
			}
		default:
			chunk.WriteString(line)
		}
	}
	flush()

	return out.String(), spans
}

// fenceMarker returns the run of backticks or tildes opening line when the
// line starts a fenced code block, or "".
func fenceMarker(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || len(trimmed) < 3 {
		return ""
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return ""
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}
	if n < 3 {
		return ""
	}
	return trimmed[:n]
}

func protectInline(s string, spans *mathSpans) string {
	var out strings.Builder
	out.Grow(len(s))

	emit := func(span string) {
		out.WriteString(MathStartPlaceholder)
		out.WriteString(strconv.Itoa(len(*spans)))
		out.WriteString(MathEndPlaceholder)
		*spans = append(*spans, span)
	}

	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			var closer string
			switch s[i+1] {
			case '[':
				closer = `\]`
			case '(':
				closer = `\)`
			}
			if closer != "" {
				if j := strings.Index(s[i+2:], closer); j >= 0 {
					end := i + 2 + j + len(closer)
					emit(s[i:end])
					i = end
					continue
				}
			}
			out.WriteString(s[i : i+2])
			i += 2

		case c == '`':
			n := 0
			for i+n < len(s) && s[i+n] == '`' {
				n++
			}
			run := s[i : i+n]
			if j := strings.Index(s[i+n:], run); j >= 0 {
				end := i + n + j + n
				out.WriteString(s[i:end])
				i = end
				continue
			}
			out.WriteString(run)
			i += n

		case c == ']' && i+1 < len(s) && s[i+1] == '(':
			if end := linkDestinationEnd(s, i+1); end > 0 {
				out.WriteString(s[i:end])
				i = end
				continue
			}
			out.WriteByte(c)
			i++

		case c == '<':
			if end := autolinkEnd(s, i); end > 0 {
				out.WriteString(s[i:end])
				i = end
				continue
			}
			out.WriteByte(c)
			i++

		case c == '$' && i+1 < len(s) && s[i+1] == '$':
			if j := strings.Index(s[i+2:], "$$"); j >= 0 {
				end := i + 2 + j + 2
				emit(s[i:end])
				i = end
				continue
			}
			out.WriteString("$$")
			i += 2

		case c == '$':
			if end := inlineMathEnd(s, i); end > 0 {
				emit(s[i:end])
				i = end
				continue
			}
			out.WriteByte(c)
			i++

		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// linkDestinationEnd returns the index just past the ")" closing a link
// destination opened at s[open], or 0. Parentheses nest, backslash escapes
// a character, and the destination stays on one line.
func linkDestinationEnd(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '\n':
			return 0
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return 0
}

// autolinkEnd returns the index just past the ">" of an autolink such as
// <https://x.org/$a$> opened at s[start], or 0.
func autolinkEnd(s string, start int) int {
	i := start + 1
	n := 0
	for i+n < len(s) && isSchemeChar(s[i+n], n == 0) {
		n++
	}
	if n < 2 || n > 32 || i+n >= len(s) || s[i+n] != ':' {
		return 0
	}
	for j := i + n + 1; j < len(s); j++ {
		switch s[j] {
		case '>':
			return j + 1
		case ' ', '\t', '\n', '<':
			return 0
		}
	}
	return 0
}

func isSchemeChar(c byte, first bool) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		return true
	case first:
		return false
	case '0' <= c && c <= '9', c == '+', c == '.', c == '-':
		return true
	}
	return false
}

// inlineMathEnd returns the index just past the closing $ of an inline span
// opened at s[start], or 0. The span stays on one line, is non-empty, and
// neither starts nor ends with a space, so prices like "$5 and $6" are
// left as text.
func inlineMathEnd(s string, start int) int {
	rest := s[start+1:]
	j := strings.IndexAny(rest, "$\n")
	if j <= 0 || rest[j] != '$' {
		return 0
	}
	body := rest[:j]
	if body[0] == ' ' || body[len(body)-1] == ' ' || body[len(body)-1] == '\\' {
		return 0
	}
	return start + 1 + j + 1
}

// restore puts the protected spans back, HTML-escaped so the browser shows
// the TeX source MathJax typesets.
func (m mathSpans) restore(content string) string {
	if len(m) == 0 {
		return content
	}
	return mathPlaceholder.ReplaceAllStringFunc(content, func(ph string) string {
		idx, err := strconv.Atoi(ph[len(MathStartPlaceholder) : len(ph)-len(MathEndPlaceholder)])
		if err != nil || idx >= len(m) {
			return ph
		}
		return html.EscapeString(m[idx])
	})
}
