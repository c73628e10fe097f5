// Package tables is the key-value tabular store the payroll data lives in.
// A collection is a named sheet: a header row followed by positional data rows.
package tables

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrRowNotFound = errors.New("row not found")

// Row maps raw header cells to cell values.
type Row map[string]string

type Table struct {
	Header []string
	Rows   []Row
}

// RowHandle points at one data row. Ref is backend specific.
type RowHandle struct {
	Collection string
	Ref        int64
}

type Provider interface {
	EnsureCollection(ctx context.Context, name string, header []string) error
	GetAllRows(ctx context.Context, collection string) (Table, error)
	AppendRow(ctx context.Context, collection string, values []string) error
	FindRow(ctx context.Context, collection, column, key string) (RowHandle, bool, error)
	DeleteRow(ctx context.Context, handle RowHandle) error
	ReplaceRows(ctx context.Context, collection string, header []string, rows [][]string) error
	Ping(ctx context.Context) error
}

// ConnectionError reports that the backing store could not be reached or
// rejected the configured credentials.
type ConnectionError struct {
	Op         string
	Collection string
	Err        error
}

func (e *ConnectionError) Error() string {
	if e.Collection == "" {
		return fmt.Sprintf("table store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("table store %s %q: %v", e.Op, e.Collection, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

func wrap(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	var connErr *ConnectionError
	if errors.As(err, &connErr) || errors.Is(err, ErrRowNotFound) {
		return err
	}
	return &ConnectionError{Op: op, Collection: collection, Err: err}
}

// buildTable zips raw cell rows against the header. Short rows are padded
// with blanks; cells beyond the header are dropped.
func buildTable(header []string, cells [][]string) Table {
	table := Table{Header: append([]string(nil), header...), Rows: make([]Row, 0, len(cells))}
	for _, values := range cells {
		row := make(Row, len(header))
		for i, column := range header {
			if i < len(values) {
				row[column] = values[i]
			} else {
				row[column] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// columnIndex finds column in header, ignoring surrounding whitespace on both sides.
func columnIndex(header []string, column string) int {
	want := strings.TrimSpace(column)
	for i, name := range header {
		if strings.TrimSpace(name) == want {
			return i
		}
	}
	return -1
}

func cellMatches(values []string, idx int, key string) bool {
	if idx < 0 || idx >= len(values) {
		return false
	}
	return strings.TrimSpace(values[idx]) == strings.TrimSpace(key)
}
