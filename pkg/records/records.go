// Package records defines the row representation shared by the parser and
// transformer stages.
package records

// Record is one parsed input row, keyed by normalized column name. Columns
// absent from a short row are simply missing from the map; Get treats them
// as empty strings so callers do not need to distinguish the two cases.
type Record map[string]string

// Get returns the value stored under key, or "" when the column is absent.
func (r Record) Get(key string) string { return r[key] }
