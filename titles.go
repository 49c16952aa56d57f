package labsite

import (
	"strings"
	"unicode"

	"github.com/Uddiptaatwork/labsite/internal/notebook"
)

// DefaultDescription is shown on cards for notebooks without a configured
// description.
const DefaultDescription = "Interactive lab notebook."

// labPrefixes maps the numbering prefix of a stem to its card label and to
// the text the derived title starts with.
var labPrefixes = []struct {
	stem  string
	title string
	label string
}{
	{"00_", "00 ", "Lab 0: "},
	{"01_", "01 ", "Lab 1: "},
	{"02_", "02 ", "Lab 2: "},
}

// TitleFromStem derives a display title from a file stem: underscores
// become spaces, then each word is capitalised. Hyphens are kept.
//
//	TitleFromStem("00_hubble_reenactment") == "00 Hubble Reenactment"
func TitleFromStem(stem string) string {
	return titleCase(strings.ReplaceAll(stem, "_", " "))
}

// titleCase upper-cases every cased letter that follows an uncased rune and
// lower-cases every other cased letter, so "o'neil's x2y" becomes
// "O'Neil'S X2Y". Digits, punctuation and letters without case (中) count
// as uncased.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevCased := false
	for _, r := range s {
		cased := isCased(r)
		switch {
		case cased && !prevCased:
			b.WriteRune(unicode.ToTitle(r))
		case cased:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevCased = cased
	}
	return b.String()
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}

// ResolveTitle returns the notebook's metadata title, or the title derived
// from stem when the metadata has none.
func ResolveTitle(nb *notebook.Notebook, stem string) string {
	if title := nb.Title(); title != "" {
		return title
	}
	return TitleFromStem(stem)
}

// LabTitle returns the heading of a landing page card. Stems numbered 00
// to 02 get a "Lab N: " label with the number removed from the title;
// other titles are returned as is.
func LabTitle(stem, title string) string {
	for _, p := range labPrefixes {
		if strings.HasPrefix(stem, p.stem) {
			return p.label + strings.ReplaceAll(title, p.title, "")
		}
	}
	return title
}

// Description returns the card text for stem from descriptions, or
// DefaultDescription.
func Description(descriptions map[string]string, stem string) string {
	if desc, ok := descriptions[stem]; ok && desc != "" {
		return desc
	}
	return DefaultDescription
}
