package builtin

import (
	"strings"

	"tsv2sql/internal/transformer"
)

// Require removes any row missing a value for one of the specified fields.
// A field is missing when the column is absent or its value is empty; run
// Require after Trim so whitespace-only values count as missing.
type Require struct {
	Fields []string

	// Reject, when non-nil, receives one RejectedRow per dropped row.
	Reject func(RejectedRow)
}

// Apply returns a filtered slice containing only rows that have all required
// fields present and non-empty. Surviving rows keep their original order.
func (r Require) Apply(in []transformer.Row) []transformer.Row {
	out := in[:0]
	for _, row := range in {
		var missing []string
		for _, f := range r.Fields {
			if row.Rec.Get(f) == "" {
				missing = append(missing, f)
			}
		}
		if len(missing) == 0 {
			out = append(out, row)
			continue
		}
		if r.Reject != nil {
			r.Reject(RejectedRow{
				Line:   row.Line,
				Raw:    row.Rec,
				Reason: "missing required fields: " + strings.Join(missing, ", "),
				Stage:  "require",
			})
		}
	}
	return out
}
