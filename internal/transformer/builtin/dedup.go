package builtin

import (
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"

	"tsv2sql/internal/transformer"
	"tsv2sql/pkg/records"
)

// DeDup collapses duplicate rows by a configured key and chooses a winner
// according to a policy:
//
//   - "keep-first" : keep the earliest occurrence in the batch (default)
//   - "keep-last"  : keep the latest occurrence in the batch
//
// Keys are hashed with xxh3 over the concatenated key fields. Rows missing a
// key field are passed through untouched. This runs in-memory on a single
// batch; it is opt-in and off by default, since duplicate source rows are
// normally left for the database's own constraints to arbitrate.
type DeDup struct {
	// Keys are the field names that form the business key,
	// e.g. ["discord_id","vrchat_id"].
	Keys []string

	// Policy selects the winner among duplicates: "keep-first" or
	// "keep-last". Empty means "keep-first".
	Policy string

	// Reject, when non-nil, receives one RejectedRow per dropped duplicate.
	Reject func(RejectedRow)
}

// Apply returns the rows with losing duplicates removed, preserving the
// original order of the surviving rows.
func (d DeDup) Apply(in []transformer.Row) []transformer.Row {
	if len(in) == 0 || len(d.Keys) == 0 {
		return in
	}

	policy := strings.ToLower(strings.TrimSpace(d.Policy))
	if policy == "" {
		policy = "keep-first"
	}

	// First pass: decide the winning input index (and its line) per key.
	type slot struct {
		index int
		line  int
	}
	winner := make(map[uint64]slot, len(in))
	for i, row := range in {
		key, ok := d.keyOf(row.Rec)
		if !ok {
			continue
		}
		if _, seen := winner[key]; !seen || policy == "keep-last" {
			winner[key] = slot{index: i, line: row.Line}
		}
	}

	// Second pass: emit winners and pass-through rows in original order.
	out := in[:0]
	for i, row := range in {
		key, ok := d.keyOf(row.Rec)
		if !ok || winner[key].index == i {
			out = append(out, row)
			continue
		}
		if d.Reject != nil {
			d.Reject(RejectedRow{
				Line:   row.Line,
				Raw:    row.Rec,
				Reason: "duplicate of row " + strconv.Itoa(winner[key].line) + " by " + strings.Join(d.Keys, "+"),
				Stage:  "dedup",
			})
		}
	}
	return out
}

// keyOf hashes the key fields into a single xxh3 value. The second return is
// false when any key field is absent, which removes the row from the
// de-duplication domain entirely.
func (d DeDup) keyOf(rec records.Record) (uint64, bool) {
	var b strings.Builder
	for i, k := range d.Keys {
		v, ok := rec[k]
		if !ok {
			return 0, false
		}
		if i > 0 {
			b.WriteByte('\x1f') // unlikely separator
		}
		b.WriteString(v)
	}
	return xxh3.HashString(b.String()), true
}
