// Package export renders catalog data as CSV reports and as a page-oriented
// document model that a PDF renderer draws.
package export

import (
	"bytes"
	"io"
	"strings"
)

// Cell is one CSV data field.
type Cell struct {
	Value  string
	Quoted bool
}

// Str is a text cell; it is always double-quoted.
func Str(s string) Cell { return Cell{Value: s, Quoted: true} }

// Num is a preformatted numeric cell written bare.
func Num(s string) Cell { return Cell{Value: s} }

// Table is a CSV report: a bare header line followed by data rows.
type Table struct {
	Header []string
	Rows   [][]Cell
}

// WriteTo writes the table with "\n" row separators and no trailing newline.
func (t Table) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(t.Header, ","))
	for _, row := range t.Rows {
		buf.WriteByte('\n')
		for i, c := range row {
			if i > 0 {
				buf.WriteByte(',')
			}
			if c.Quoted {
				buf.WriteByte('"')
				buf.WriteString(strings.ReplaceAll(c.Value, `"`, `""`))
				buf.WriteByte('"')
			} else {
				buf.WriteString(c.Value)
			}
		}
	}
	return buf.WriteTo(w)
}

// Bytes returns the encoded table.
func (t Table) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = t.WriteTo(&buf)
	return buf.Bytes()
}
