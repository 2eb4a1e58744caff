// Package nbappend appends authored cells to notebook documents.
package nbappend

import "github.com/ukaji3/nbappend-go/pkg/nbappend/template"

// DefaultNotebookPath is the notebook updated when no path is given.
const DefaultNotebookPath = "acp_et_clustering_v2.ipynb"

// DefaultIndent is the number of spaces per indentation level on write.
const DefaultIndent = 1

// Options configures an append run.
type Options struct {
	// Indent is the number of spaces per nesting level in the written document.
	// If nil, DefaultIndent is used.
	Indent *int
	// Atomic writes to a temporary file in the same directory and renames it
	// over the notebook. When false the notebook is overwritten in place.
	Atomic bool
	// DryRun computes the result without writing anything.
	DryRun bool
	// Template is the cell set to append. If nil, template.Default() is used.
	Template *template.Template
}

// DefaultOptions returns default append options.
func DefaultOptions() Options {
	return Options{}
}

// IndentWidth returns the indentation to write with.
func (o Options) IndentWidth() int {
	if o.Indent != nil {
		return *o.Indent
	}
	return DefaultIndent
}

// CellTemplate returns the template to append.
func (o Options) CellTemplate() *template.Template {
	if o.Template != nil {
		return o.Template
	}
	return template.Default()
}
