package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Repo.Slug != "Uddiptaatwork/astro-ii-ss2026-ethz" {
		t.Errorf("Repo.Slug = %q", cfg.Repo.Slug)
	}
	if cfg.Repo.Branch != "main" {
		t.Errorf("Repo.Branch = %q, want main", cfg.Repo.Branch)
	}
	if cfg.Repo.ContentPath != "content" {
		t.Errorf("Repo.ContentPath = %q, want content", cfg.Repo.ContentPath)
	}
	if cfg.Paths.Content != "content" || cfg.Paths.Site != "site" {
		t.Errorf("Paths = %+v, want content/site", cfg.Paths)
	}
	if cfg.Assets.BasePath != "" {
		t.Errorf("Assets.BasePath = %q, want empty", cfg.Assets.BasePath)
	}
	if len(cfg.Labs) != 3 {
		t.Errorf("len(Labs) = %d, want 3", len(cfg.Labs))
	}
	if !strings.Contains(cfg.Labs["00_hubble_reenactment"], "Hubble diagram") {
		t.Errorf("Labs[00_hubble_reenactment] = %q", cfg.Labs["00_hubble_reenactment"])
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestDefaultConfig_Independent(t *testing.T) {
	a := DefaultConfig()
	a.Labs["00_hubble_reenactment"] = "changed"

	b := DefaultConfig()
	if b.Labs["00_hubble_reenactment"] == "changed" {
		t.Error("DefaultConfig() shares its Labs map between calls")
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit returns error", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing slug",
			mutate:  func(c *Config) { c.Repo.Slug = "" },
			wantErr: ErrInvalidField,
		},
		{
			name:    "slug without owner",
			mutate:  func(c *Config) { c.Repo.Slug = "repository" },
			wantErr: ErrInvalidField,
		},
		{
			name:    "slug with extra segment",
			mutate:  func(c *Config) { c.Repo.Slug = "a/b/c" },
			wantErr: ErrInvalidField,
		},
		{
			name:    "slug with whitespace",
			mutate:  func(c *Config) { c.Repo.Slug = "a/b c" },
			wantErr: ErrInvalidField,
		},
		{
			name:    "slug too long",
			mutate:  func(c *Config) { c.Repo.Slug = "o/" + strings.Repeat("r", MaxSlugLength) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "missing branch",
			mutate:  func(c *Config) { c.Repo.Branch = " " },
			wantErr: ErrInvalidField,
		},
		{
			name:    "branch with fragment",
			mutate:  func(c *Config) { c.Repo.Branch = "main#x" },
			wantErr: ErrInvalidField,
		},
		{
			name:    "missing content path",
			mutate:  func(c *Config) { c.Paths.Content = "" },
			wantErr: ErrInvalidField,
		},
		{
			name:    "site equals content",
			mutate:  func(c *Config) { c.Paths.Site = "./content" },
			wantErr: ErrInvalidField,
		},
		{
			name:    "course title too long",
			mutate:  func(c *Config) { c.Course.Title = strings.Repeat("x", MaxTitleLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "description too long",
			mutate:  func(c *Config) { c.Labs["03_extra"] = strings.Repeat("x", MaxDescriptionLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "empty lab stem",
			mutate:  func(c *Config) { c.Labs[""] = "orphan" },
			wantErr: ErrInvalidField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("file overlays defaults", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "site.yaml")
		content := `repo:
  slug: "someone/other-course"
  branch: "dev"
course:
  title: "Other Course"
`
		if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Repo.Slug != "someone/other-course" {
			t.Errorf("Repo.Slug = %q", cfg.Repo.Slug)
		}
		if cfg.Repo.Branch != "dev" {
			t.Errorf("Repo.Branch = %q", cfg.Repo.Branch)
		}
		if cfg.Repo.ContentPath != "content" {
			t.Errorf("Repo.ContentPath = %q, want default content", cfg.Repo.ContentPath)
		}
		if cfg.Course.Title != "Other Course" {
			t.Errorf("Course.Title = %q", cfg.Course.Title)
		}
		if cfg.Course.Maintainer != DefaultConfig().Course.Maintainer {
			t.Errorf("Course.Maintainer = %q, want default", cfg.Course.Maintainer)
		}
		if len(cfg.Labs) != 3 {
			t.Errorf("len(Labs) = %d, want default 3", len(cfg.Labs))
		}
	})

	t.Run("labs section replaces descriptions", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "site.yaml")
		content := "labs:\n  10_dark_energy: \"Fit w from supernovae.\"\n"
		if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if len(cfg.Labs) != 1 || cfg.Labs["10_dark_energy"] != "Fit w from supernovae." {
			t.Errorf("Labs = %v, want only 10_dark_energy", cfg.Labs)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown name returns ErrConfigNotFound with tried paths", func(t *testing.T) {
		_, err := LoadConfig("labsite-config-that-does-not-exist-xyz")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "labsite-config-that-does-not-exist-xyz.yaml") {
			t.Errorf("error %q should list tried paths", err)
		}
	})

	t.Run("unknown key returns ErrConfigParse", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "site.yaml")
		if err := os.WriteFile(configPath, []byte("repo:\n  slugg: a/b\n"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid values fail validation", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "site.yaml")
		if err := os.WriteFile(configPath, []byte("repo:\n  slug: no-owner\n"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidField) {
			t.Errorf("error = %v, want ErrInvalidField", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	paths := SearchPaths("site")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() returned %d paths, want >= 2", len(paths))
	}
	if paths[0] != "site.yaml" || paths[1] != "site.yml" {
		t.Errorf("SearchPaths() starts with %v, want local site.yaml/site.yml", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, filepath.Join("labsite", "site")) {
			t.Errorf("user path %q should live under labsite/", p)
		}
	}
}
