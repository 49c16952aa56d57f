// Package labsite builds a static course website from executed Jupyter
// notebooks, with a Google Colab link for every lab.
//
// # Quick Start
//
// Build ./content into ./site with the compiled-in course settings:
//
//	b, err := labsite.NewBuilder(labsite.WithStdout(os.Stdout))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := b.Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(result.Labs), "labs")
//
// # Build Pipeline
//
// A build runs these stages in order, on one goroutine:
//
//  1. Discovery of content/*.ipynb, sorted by file name
//  2. Site reset: site/ is deleted and recreated, assets/style.css written
//  3. Per notebook: title resolution, rendering (code input hidden, images
//     inlined), page composition, write to labs/<stem>.html
//  4. Landing page with one card per lab, written to index.html
//
// Same inputs produce a byte-identical site.
//
// # Titles
//
// A lab's title is the notebook's metadata title when set, otherwise the
// file stem in title case ("00_hubble_reenactment" becomes
// "00 Hubble Reenactment"). Landing page cards for stems numbered 00 to 02
// read "Lab N: ..." instead.
//
// # Custom Assets
//
// Override the stylesheet or templates with a directory laid out like the
// embedded assets:
//
//	assets/
//	├── styles/
//	│   └── site.css
//	└── templates/
//	    ├── page.html
//	    └── index.html
//
//	loader, err := labsite.NewAssetLoader("/path/to/assets")
//	b, err := labsite.NewBuilder(labsite.WithAssetLoader(loader))
//
// Missing files fall back to the embedded defaults.
package labsite
