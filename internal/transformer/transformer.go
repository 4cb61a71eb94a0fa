// Package transformer defines the row transformation stage that sits between
// parsing and SQL generation.
package transformer

import "tsv2sql/pkg/records"

// Row couples a parsed record with its source line number so later stages can
// report diagnostics against the original file. The header is line 1; the
// first data row is line 2.
type Row struct {
	Line int
	Rec  records.Record
}

// Transformer rewrites or filters a batch of rows. Implementations may
// mutate records in place and may return a slice sharing the input's backing
// array.
type Transformer interface {
	Apply([]Row) []Row
}

// Chain is an ordered list of transformers applied left to right.
type Chain []Transformer

func (c Chain) Apply(in []Row) []Row {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}
