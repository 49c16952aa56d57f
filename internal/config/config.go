package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Uddiptaatwork/labsite/internal/fileutil"
	"github.com/Uddiptaatwork/labsite/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config field")
)

// Field length limits.
const (
	MaxSlugLength        = 140  // owner (39) + "/" + repository (100)
	MaxBranchLength      = 255  // git ref name limit
	MaxPathLength        = 4096 // PATH_MAX
	MaxTitleLength       = 200
	MaxTextLength        = 500
	MaxDescriptionLength = 1000
	MaxStemLength        = 255
)

// Config holds everything the site build reads besides the notebooks.
type Config struct {
	Repo   RepoConfig        `yaml:"repo"`
	Paths  PathsConfig       `yaml:"paths"`
	Assets AssetsConfig      `yaml:"assets"`
	Course CourseConfig      `yaml:"course"`
	Labs   map[string]string `yaml:"labs"` // stem -> card description
}

// RepoConfig identifies where Colab fetches notebooks from.
type RepoConfig struct {
	Slug        string `yaml:"slug"`        // "owner/repository"
	Branch      string `yaml:"branch"`      // branch the links point at
	ContentPath string `yaml:"contentPath"` // notebook directory inside the repository
}

// PathsConfig locates input and output relative to the build root.
type PathsConfig struct {
	Content string `yaml:"content"`
	Site    string `yaml:"site"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// CourseConfig holds the fixed texts of the page shell and landing page.
type CourseConfig struct {
	Title       string `yaml:"title"`     // landing page heading
	Subtitle    string `yaml:"subtitle"`  // landing page <title> suffix
	ShortName   string `yaml:"shortName"` // lab page <title> suffix
	Tagline     string `yaml:"tagline"`
	Maintainer  string `yaml:"maintainer"`
	Institution string `yaml:"institution"`
	Footer      string `yaml:"footer"` // lab page footer
}

// DefaultConfig returns the compiled-in course configuration.
func DefaultConfig() *Config {
	return &Config{
		Repo: RepoConfig{
			Slug:        "Uddiptaatwork/astro-ii-ss2026-ethz",
			Branch:      "main",
			ContentPath: "content",
		},
		Paths: PathsConfig{
			Content: "content",
			Site:    "site",
		},
		Course: CourseConfig{
			Title:       "Astro II — SS2026 (ETH Zürich)",
			Subtitle:    "Interactive Cosmology Labs",
			ShortName:   "Astro II SS2026",
			Tagline:     "Interactive cosmology labs (static web pages + one-click Google Colab notebooks).",
			Maintainer:  "Uddipta Bhardwaj",
			Institution: "ETH Zürich",
			Footer:      "Astro II (SS2026), ETH Zürich — maintained by Uddipta Bhardwaj.",
		},
		Labs: map[string]string{
			"00_hubble_reenactment":  "Recreate the logic behind the first Hubble diagram by computing redshifts and distances from observables, then fitting H₀ and exploring systematics.",
			"01_comoving_coordinates": "Build intuition for comoving vs proper coordinates, Hubble flow, and peculiar velocity using interactive visualisations.",
			"02_cosmic_fate":          "Explore Friedmann cosmology by numerically evolving a(t) under different Ω parameters and classifying the Universe’s fate.",
		},
	}
}

// Validate checks required fields and field lengths.
func (c *Config) Validate() error {
	if err := validateSlug(c.Repo.Slug); err != nil {
		return err
	}
	if err := validateToken("repo.branch", c.Repo.Branch, MaxBranchLength); err != nil {
		return err
	}
	if err := validateToken("repo.contentPath", c.Repo.ContentPath, MaxPathLength); err != nil {
		return err
	}

	if err := validateRequired("paths.content", c.Paths.Content, MaxPathLength); err != nil {
		return err
	}
	if err := validateRequired("paths.site", c.Paths.Site, MaxPathLength); err != nil {
		return err
	}
	if filepath.Clean(c.Paths.Content) == filepath.Clean(c.Paths.Site) {
		return fmt.Errorf("%w: paths.site must differ from paths.content (%q)", ErrInvalidField, c.Paths.Site)
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	course := []struct {
		field string
		value string
		max   int
	}{
		{"course.title", c.Course.Title, MaxTitleLength},
		{"course.subtitle", c.Course.Subtitle, MaxTitleLength},
		{"course.shortName", c.Course.ShortName, MaxTitleLength},
		{"course.tagline", c.Course.Tagline, MaxTextLength},
		{"course.maintainer", c.Course.Maintainer, MaxTitleLength},
		{"course.institution", c.Course.Institution, MaxTitleLength},
		{"course.footer", c.Course.Footer, MaxTextLength},
	}
	for _, f := range course {
		if err := validateFieldLength(f.field, f.value, f.max); err != nil {
			return err
		}
	}

	for stem, desc := range c.Labs {
		if err := validateRequired("labs key", stem, MaxStemLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("labs[%s]", stem), desc, MaxDescriptionLength); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateRequired(fieldName, value string, maxLength int) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidField, fieldName)
	}
	return validateFieldLength(fieldName, value, maxLength)
}

// validateToken checks a value that is pasted into a URL path verbatim.
func validateToken(fieldName, value string, maxLength int) error {
	if err := validateRequired(fieldName, value, maxLength); err != nil {
		return err
	}
	if strings.ContainsAny(value, " \t\r\n?#") {
		return fmt.Errorf("%w: %s must not contain whitespace, '?' or '#': %q", ErrInvalidField, fieldName, value)
	}
	return nil
}

func validateSlug(slug string) error {
	if err := validateToken("repo.slug", slug, MaxSlugLength); err != nil {
		return err
	}
	owner, name, ok := strings.Cut(slug, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("%w: repo.slug must be \"owner/repository\", got %q", ErrInvalidField, slug)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name and
// layers it over DefaultConfig. Empty fields in the file keep their
// defaults; a labs section replaces the default descriptions entirely.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fromFile Config
	if err := yamlutil.UnmarshalStrict(data, &fromFile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	cfg := DefaultConfig()
	cfg.overlay(&fromFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// overlay copies every non-empty field of o onto c.
func (c *Config) overlay(o *Config) {
	set := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}

	set(&c.Repo.Slug, o.Repo.Slug)
	set(&c.Repo.Branch, o.Repo.Branch)
	set(&c.Repo.ContentPath, o.Repo.ContentPath)
	set(&c.Paths.Content, o.Paths.Content)
	set(&c.Paths.Site, o.Paths.Site)
	set(&c.Assets.BasePath, o.Assets.BasePath)
	set(&c.Course.Title, o.Course.Title)
	set(&c.Course.Subtitle, o.Course.Subtitle)
	set(&c.Course.ShortName, o.Course.ShortName)
	set(&c.Course.Tagline, o.Course.Tagline)
	set(&c.Course.Maintainer, o.Course.Maintainer)
	set(&c.Course.Institution, o.Course.Institution)
	set(&c.Course.Footer, o.Course.Footer)

	if o.Labs != nil {
		c.Labs = o.Labs
	}
}

// SearchPaths returns the locations LoadConfig tries for a config name,
// in order: current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "labsite", name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
