package main

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// progressReporter draws a bar on w while notebooks render. The bar is
// created on the first update, once the notebook count is known.
type progressReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func newProgressReporter(w io.Writer) *progressReporter {
	return &progressReporter{w: w}
}

func (p *progressReporter) update(done, total int) {
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionSetDescription("rendering notebooks"),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprint(p.w, "\n")
			}),
		)
	}
	_ = p.bar.Set(done)
}
