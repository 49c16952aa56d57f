// Package assets provides the stylesheet and HTML page templates for the
// generated site.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in site)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in stylesheet and the page and index
// templates, embedded at compile time.
//
// FilesystemLoader lets a course override any of them from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver is the loader used by the site builder. It tries the
// custom FilesystemLoader first, falling back to EmbeddedLoader if the asset
// is not found, so a course can override only the index template and keep
// everything else.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── site.css          # Shared stylesheet
//	└── templates/
//	    ├── page.html         # Lab page shell (html/template)
//	    └── index.html        # Landing page (html/template)
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
