// Package sqlgen defines a small, backend-agnostic model for SQL values and
// helpers to render batch INSERT statements from that model.
//
// The goal of this package is to stay generic: it does not assume any
// specific SQL dialect beyond standard single-quote literal escaping. In
// particular, it:
//
//   - Does not quote identifiers; it emits table and column names as-is.
//   - Treats Raw values as raw SQL tokens (the caller is responsible for
//     safety and dialect correctness).
//   - Delegates literal escaping to a pluggable Escaper so dialects with
//     stricter rules (e.g. Postgres backslash handling) can swap it out.
package sqlgen

import (
	"fmt"
	"strings"
)

// Value is a single SQL value to embed in a statement: either a string
// literal, quoted and escaped at render time, or a raw token emitted
// verbatim (CURRENT_TIMESTAMP, TRUE, numeric constants).
type Value struct {
	s   string
	raw bool
}

// String returns a Value rendered as an escaped string literal.
func String(s string) Value { return Value{s: s} }

// Raw returns a Value emitted verbatim, without quoting.
func Raw(token string) Value { return Value{s: token, raw: true} }

// Render produces the SQL text for the value using esc for literals.
// A nil esc falls back to QuoteLiteral.
func (v Value) Render(esc Escaper) string {
	if v.raw {
		return v.s
	}
	if esc == nil {
		esc = QuoteLiteral
	}
	return esc(v.s)
}

// BuildInsertSQL renders a multi-row INSERT statement.
//
// Rules:
//
//   - table must be non-empty; it is emitted verbatim as the table name.
//   - columns must be non-empty; each name is emitted on its own line,
//     indented four spaces.
//   - Every row must have exactly len(columns) values; a width mismatch is
//     an error, not a silent pad.
//   - At least one row is required; callers decide what an empty batch means
//     before rendering.
//
// The resulting statement has the form:
//
//	INSERT INTO <table> (
//	    <col1>,
//	    <col2>,
//	    ...
//	) VALUES
//	(<row1>),
//	(<row2>);
func BuildInsertSQL(table string, columns []string, rows [][]Value, esc Escaper) (string, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return "", fmt.Errorf("sqlgen: table name must not be empty")
	}
	if len(columns) == 0 {
		return "", fmt.Errorf("sqlgen: at least one column is required")
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("sqlgen: at least one row is required")
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(table)
	sb.WriteString(" (\n")
	for i, c := range columns {
		name := strings.TrimSpace(c)
		if name == "" {
			return "", fmt.Errorf("sqlgen: column %d has an empty name", i)
		}
		sb.WriteString("    ")
		sb.WriteString(name)
		if i < len(columns)-1 {
			sb.WriteByte(',')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(") VALUES\n")

	for i, row := range rows {
		if len(row) != len(columns) {
			return "", fmt.Errorf("sqlgen: row %d has %d values, want %d", i, len(row), len(columns))
		}
		sb.WriteByte('(')
		for j, v := range row {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(v.Render(esc))
		}
		sb.WriteByte(')')
		if i < len(rows)-1 {
			sb.WriteString(",\n")
		}
	}
	sb.WriteByte(';')

	return sb.String(), nil
}
