// Package render turns a tabular document into a downloadable file.
package render

import "fmt"

// Document is a titled grid. Numeric marks columns holding amounts; it may be
// shorter than Columns.
type Document struct {
	Title   string
	Columns []string
	Rows    [][]string
	Numeric []bool
}

func (d Document) numeric(col int) bool {
	return col < len(d.Numeric) && d.Numeric[col]
}

type Renderer interface {
	Format() string
	ContentType() string
	Render(doc Document) ([]byte, error)
}

// RenderError reports a document that could not be produced. No partial
// output accompanies it.
type RenderError struct {
	Format string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Format, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
