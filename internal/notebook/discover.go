package notebook

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension is the file extension of notebook documents.
const Extension = ".ipynb"

// Document is a notebook together with where it came from.
type Document struct {
	Path     string // full path on disk
	Name     string // file name, e.g. "00_hubble_reenactment.ipynb"
	Stem     string // file name without extension
	Notebook *Notebook
}

// Collection is the sorted set of notebooks found in one directory.
type Collection struct {
	dir   string
	names []string
}

// Discover lists the notebooks directly under dir, sorted by file name.
// Subdirectories are not searched.
func Discover(dir string) (*Collection, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() && e.Type()&os.ModeSymlink == 0 {
			continue
		}
		if filepath.Ext(e.Name()) != Extension {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	return &Collection{dir: dir, names: names}, nil
}

// Dir returns the directory the collection was discovered in.
func (c *Collection) Dir() string { return c.dir }

// Len returns the number of notebooks.
func (c *Collection) Len() int { return len(c.names) }

// Names returns the notebook file names in order.
func (c *Collection) Names() []string {
	return append([]string(nil), c.names...)
}

// All yields each notebook in file name order, reading it from disk only
// when reached. The sequence can be ranged over again; each pass re-reads
// the files. The first read or parse error is yielded and ends the pass.
func (c *Collection) All() iter.Seq2[*Document, error] {
	return func(yield func(*Document, error) bool) {
		for _, name := range c.names {
			path := filepath.Join(c.dir, name)

			nb, err := ReadFile(path)
			if err != nil {
				yield(nil, err)
				return
			}

			doc := &Document{
				Path:     path,
				Name:     name,
				Stem:     strings.TrimSuffix(name, Extension),
				Notebook: nb,
			}
			if !yield(doc, nil) {
				return
			}
		}
	}
}
