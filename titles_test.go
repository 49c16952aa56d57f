package labsite

import (
	"testing"

	"github.com/Uddiptaatwork/labsite/internal/notebook"
)

func TestTitleFromStem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stem string
		want string
	}{
		{"00_hubble_reenactment", "00 Hubble Reenactment"},
		{"01_comoving_coordinates", "01 Comoving Coordinates"},
		{"02_cosmic_fate", "02 Cosmic Fate"},
		{"dark-energy_fits", "Dark-Energy Fits"},
		{"01-intro-notes", "01-Intro-Notes"},
		{"中x_notes", "中X Notes"},
		{"ǆemal_ǈubo", "ǅemal ǈubo"},
		{"ALL_CAPS", "All Caps"},
		{"o'neil's_notes", "O'Neil'S Notes"},
		{"x2y_3d", "X2Y 3D"},
		{"élan_vital", "Élan Vital"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.stem, func(t *testing.T) {
			t.Parallel()

			if got := TitleFromStem(tt.stem); got != tt.want {
				t.Errorf("TitleFromStem(%q) = %q, want %q", tt.stem, got, tt.want)
			}
		})
	}
}

func TestResolveTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		nb   *notebook.Notebook
		want string
	}{
		{"metadata title wins", &notebook.Notebook{Metadata: map[string]any{"title": "Measuring H0"}}, "Measuring H0"},
		{"blank metadata title kept", &notebook.Notebook{Metadata: map[string]any{"title": "  "}}, "  "},
		{"empty metadata title falls back", &notebook.Notebook{Metadata: map[string]any{"title": ""}}, "00 Hubble Reenactment"},
		{"no metadata falls back", &notebook.Notebook{}, "00 Hubble Reenactment"},
		{"nil notebook falls back", nil, "00 Hubble Reenactment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolveTitle(tt.nb, "00_hubble_reenactment"); got != tt.want {
				t.Errorf("ResolveTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLabTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stem  string
		title string
		want  string
	}{
		{"lab 0 derived title", "00_hubble_reenactment", "00 Hubble Reenactment", "Lab 0: Hubble Reenactment"},
		{"lab 1 derived title", "01_comoving_coordinates", "01 Comoving Coordinates", "Lab 1: Comoving Coordinates"},
		{"lab 2 derived title", "02_cosmic_fate", "02 Cosmic Fate", "Lab 2: Cosmic Fate"},
		{"metadata title without number", "00_hubble_reenactment", "Measuring H0", "Lab 0: Measuring H0"},
		{"every occurrence removed", "01_x", "01 Part 01 Two", "Lab 1: Part Two"},
		{"unlisted prefix unchanged", "03_dark_energy", "03 Dark Energy", "03 Dark Energy"},
		{"no prefix unchanged", "appendix", "Appendix", "Appendix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := LabTitle(tt.stem, tt.title); got != tt.want {
				t.Errorf("LabTitle(%q, %q) = %q, want %q", tt.stem, tt.title, got, tt.want)
			}
		})
	}
}

func TestDescription(t *testing.T) {
	t.Parallel()

	descriptions := map[string]string{
		"00_hubble_reenactment": "Fit H0.",
		"04_blank":              "",
	}

	tests := []struct {
		stem string
		want string
	}{
		{"00_hubble_reenactment", "Fit H0."},
		{"99_unknown", DefaultDescription},
		{"04_blank", DefaultDescription},
	}
	for _, tt := range tests {
		if got := Description(descriptions, tt.stem); got != tt.want {
			t.Errorf("Description(%q) = %q, want %q", tt.stem, got, tt.want)
		}
	}

	if got := Description(nil, "x"); got != "Interactive lab notebook." {
		t.Errorf("Description(nil) = %q", got)
	}
}

func TestColabURL(t *testing.T) {
	t.Parallel()

	got := ColabURL("Uddiptaatwork/astro-ii-ss2026-ethz", "main", "content", "00_hubble_reenactment.ipynb")
	want := "https://colab.research.google.com/github/Uddiptaatwork/astro-ii-ss2026-ethz/blob/main/content/00_hubble_reenactment.ipynb"
	if got != want {
		t.Errorf("ColabURL() = %q, want %q", got, want)
	}

	// Parts are not escaped.
	if got := ColabURL("o/r", "dev", "labs/extra", "a b.ipynb"); got != ColabBaseURL+"/o/r/blob/dev/labs/extra/a b.ipynb" {
		t.Errorf("ColabURL() = %q", got)
	}
}
