// Package parser defines the parsing stage contract shared by the concrete
// format parsers.
package parser

import (
	"io"

	"tsv2sql/internal/transformer"
)

// Parser turns raw input into line-numbered rows. The second return value is
// the number of rows that were skipped because they could not be parsed;
// parse-level skips are soft failures and never abort the run.
type Parser interface {
	Parse(r io.Reader) ([]transformer.Row, int, error)
}
