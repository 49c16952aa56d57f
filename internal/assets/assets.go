package assets

// Names of the built-in assets.
const (
	// DefaultStyleName is the stylesheet written to assets/style.css.
	DefaultStyleName = "site"

	// PageTemplateName is the template wrapping each rendered notebook.
	PageTemplateName = "page"

	// IndexTemplateName is the template for the landing page.
	IndexTemplateName = "index"
)
