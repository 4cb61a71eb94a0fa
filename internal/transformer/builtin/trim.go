package builtin

import (
	"strings"

	"tsv2sql/internal/transformer"
)

// Trim removes leading and trailing whitespace from every value in place.
// Unicode spaces (including NBSP, common in spreadsheet exports) are covered
// by strings.TrimSpace.
type Trim struct{}

func (Trim) Apply(in []transformer.Row) []transformer.Row {
	for _, row := range in {
		for k, v := range row.Rec {
			row.Rec[k] = strings.TrimSpace(v)
		}
	}
	return in
}
