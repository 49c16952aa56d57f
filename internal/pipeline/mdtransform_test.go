package pipeline

import (
	"strings"
	"testing"
)

// ph builds the placeholder for span index i.
func ph(i string) string {
	return MathStartPlaceholder + i + MathEndPlaceholder
}

func TestNormalizeLineEndings(t *testing.T) {
	t.Parallel()

	if got := normalizeLineEndings("a\r\nb\rc\n"); got != "a\nb\nc\n" {
		t.Errorf("normalizeLineEndings() = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestProtectMath
// ---------------------------------------------------------------------------

func TestProtectMath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		want      string
		wantSpans []string
	}{
		{
			name:      "inline dollars",
			input:     "Energy $E=mc^2$ here",
			want:      "Energy " + ph("0") + " here",
			wantSpans: []string{"$E=mc^2$"},
		},
		{
			name:      "display dollars across lines",
			input:     "Before\n$$\nH_0 = 70\n$$\nAfter",
			want:      "Before\n" + ph("0") + "\nAfter",
			wantSpans: []string{"$$\nH_0 = 70\n$$"},
		},
		{
			name:      "bracket delimiters",
			input:     `Inline \(a_1\) and display \[b^2\]`,
			want:      "Inline " + ph("0") + " and display " + ph("1"),
			wantSpans: []string{`\(a_1\)`, `\[b^2\]`},
		},
		{
			name:  "currency is not math",
			input: "Costs $5 and $6 today",
			want:  "Costs $5 and $6 today",
		},
		{
			name:  "escaped dollar",
			input: `Pay \$5 or \$6`,
			want:  `Pay \$5 or \$6`,
		},
		{
			name:  "inline code span untouched",
			input: "Use `$x$` literally",
			want:  "Use `$x$` literally",
		},
		{
			name:      "fenced code untouched",
			input:     "```python\nprice = \"$x$\"\n```\nThen $y$",
			want:      "```python\nprice = \"$x$\"\n```\nThen " + ph("0"),
			wantSpans: []string{"$y$"},
		},
		{
			name:  "unclosed display math",
			input: "Open $$ never closed",
			want:  "Open $$ never closed",
		},
		{
			name:  "link destination untouched",
			input: "[docs](https://x.org/$a$b) and [q](https://x.org/f(1)?v=$c$)",
			want:  "[docs](https://x.org/$a$b) and [q](https://x.org/f(1)?v=$c$)",
		},
		{
			name:      "link text still protected",
			input:     "[$H_0$](https://x.org/$a$b)",
			want:      "[" + ph("0") + "](https://x.org/$a$b)",
			wantSpans: []string{"$H_0$"},
		},
		{
			name:  "autolink untouched",
			input: "See <https://x.org/$a$b> now",
			want:  "See <https://x.org/$a$b> now",
		},
		{
			name:      "comparison is not an autolink",
			input:     "Where $x<y$ holds",
			want:      "Where " + ph("0") + " holds",
			wantSpans: []string{"$x<y$"},
		},
		{
			name:      "emphasis markers inside math",
			input:     "$a*b*c$ and $x_1 + y_2$",
			want:      ph("0") + " and " + ph("1"),
			wantSpans: []string{"$a*b*c$", "$x_1 + y_2$"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, spans := protectMath(tt.input)
			if got != tt.want {
				t.Errorf("protectMath() = %q, want %q", got, tt.want)
			}
			if strings.Join(spans, "|") != strings.Join(tt.wantSpans, "|") {
				t.Errorf("spans = %q, want %q", spans, tt.wantSpans)
			}
		})
	}
}

func TestMathSpans_Restore(t *testing.T) {
	t.Parallel()

	spans := mathSpans{"$a<b$", `\[x & y\]`}

	got := spans.restore("<p>" + ph("0") + " then " + ph("1") + " and " + ph("7") + "</p>")
	want := "<p>$a&lt;b$ then \\[x &amp; y\\] and " + ph("7") + "</p>"
	if got != want {
		t.Errorf("restore() = %q, want %q", got, want)
	}

	var empty mathSpans
	if got := empty.restore("plain"); got != "plain" {
		t.Errorf("empty restore() = %q", got)
	}
}
