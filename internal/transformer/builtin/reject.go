// Package builtin contains simple, reusable transformers for the conversion
// pipeline.
package builtin

import "tsv2sql/pkg/records"

// RejectedRow describes a row dropped by a transformer. It is delivered to
// the optional Reject sink a transformer carries, so the caller can surface
// per-row diagnostics without the transformer knowing about logging.
type RejectedRow struct {
	Line   int
	Raw    records.Record
	Reason string
	Stage  string
}
