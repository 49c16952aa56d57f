// Package pipeline implements the notebook-to-HTML stages of the site build.
//
// This package handles rendering and page composition:
//   - Markdown cells to HTML via Goldmark, with TeX spans protected for MathJax
//   - Code cell outputs selected by MIME priority (code input is never shown)
//   - Image inlining as data URIs from attachments and the notebook directory
//   - Lab page and landing page composition from html/template assets
//
// File output is handled by the root labsite package. This package only
// produces strings, so every stage can be tested without touching disk
// except image inlining, which reads from the notebook directory.
package pipeline
