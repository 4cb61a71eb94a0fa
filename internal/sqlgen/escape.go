package sqlgen

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Escaper renders a raw string as a SQL literal. Implementations must map
// the empty string to the bare token NULL, never to ''.
type Escaper func(string) string

// QuoteLiteral implements the quoting rule used by the generated seed files:
// empty values become NULL, everything else is wrapped in single quotes with
// embedded single quotes doubled.
func QuoteLiteral(v string) string {
	if v == "" {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// QuoteLiteralPostgres quotes via lib/pq, which additionally escapes
// backslashes (emitting E'...' strings when needed). Empty values still map
// to NULL so the two escapers agree on absent data.
func QuoteLiteralPostgres(v string) string {
	if v == "" {
		return "NULL"
	}
	return pq.QuoteLiteral(v)
}

// ForDialect returns the Escaper for a dialect name. The zero value selects
// the standard escaper.
func ForDialect(name string) (Escaper, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "standard":
		return QuoteLiteral, nil
	case "postgres", "postgresql":
		return QuoteLiteralPostgres, nil
	default:
		return nil, fmt.Errorf("sqlgen: unknown dialect %q", name)
	}
}
