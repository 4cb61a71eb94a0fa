package tsv

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\ufeff"

// stripHeaderBOM removes a UTF-8 BOM from the first header cell if present.
func stripHeaderBOM(headers []string) []string {
	if len(headers) == 0 {
		return headers
	}
	headers[0] = strings.TrimPrefix(headers[0], utf8BOM)
	return headers
}

// NormalizeFieldName converts arbitrary header text into a lowercase ASCII
// identifier so column lookup tolerates export quirks ("Discord ID",
// "discord-id" and "discord_id" all normalize the same way):
//  1. lowercase
//  2. strip accents (NFD → remove Mn → NFC)
//  3. keep [a-z0-9_]; convert space/dash/dot to underscore; drop others
//  4. fallback to "col" if empty
func NormalizeFieldName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	// Decompose → remove nonspacing marks (accents) → recompose.
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	ascii, _, _ := transform.String(t, s)

	var b strings.Builder
	prevUnderscore := false
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			prevUnderscore = false
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		case r == '_' || r == ' ' || r == '-' || r == '.':
			if !prevUnderscore {
				b.WriteRune('_')
				prevUnderscore = true
			}
		default:
			// drop anything else
		}
	}
	name := strings.Trim(b.String(), "_")
	if name == "" {
		return "col"
	}
	return name
}

// normalizeHeaders applies BOM stripping, field-name normalization, and the
// optional user-supplied header map. Mapping is keyed on the raw trimmed
// header first, then on the normalized name, so either form works in config.
func normalizeHeaders(raw []string, headerMap map[string]string) []string {
	raw = stripHeaderBOM(raw)
	out := make([]string, len(raw))
	for i, h := range raw {
		trimmed := strings.TrimSpace(h)
		name := NormalizeFieldName(trimmed)
		if headerMap != nil {
			if mapped, ok := headerMap[trimmed]; ok && mapped != "" {
				name = mapped
			} else if mapped, ok := headerMap[name]; ok && mapped != "" {
				name = mapped
			}
		}
		out[i] = name
	}
	return out
}
