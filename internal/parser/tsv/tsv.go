// Package tsv implements a streaming tab-separated parser tolerant of the
// quirks of real-world spreadsheet exports: UTF-8 BOMs, header label drift,
// stray quotes, and rows that are shorter or longer than the header.
package tsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"

	"tsv2sql/internal/transformer"
	"tsv2sql/pkg/records"
)

// Options configures the TSV parser behavior. All fields are optional;
// sensible defaults are applied when a field is zero.
type Options struct {
	// Comma specifies the field delimiter. When zero, '\t' is used.
	Comma rune

	// HeaderMap maps source header names (raw or normalized form) to
	// canonical keys, overriding the built-in normalization.
	HeaderMap map[string]string
}

// Parser parses tab-separated input according to Options. It is safe to
// reuse across inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// skipLogLimit caps per-row skip diagnostics so a badly broken file cannot
// flood the console.
const skipLogLimit = 400

// Parse consumes rows from r and returns them with their source line numbers
// along with the number of rows skipped due to parse errors. The first row
// is the header (line 1); data rows are reported as line 2 onward.
//
// Width mismatches are not an error here: short rows leave the missing
// columns absent from the record, long rows have their extra cells dropped.
// Validation of content is the transformer stage's job.
func (p *Parser) Parse(r io.Reader) ([]transformer.Row, int, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	// TSV exports rarely quote; tolerate stray quote characters and variable
	// widths rather than aborting mid-file.
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	h, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, 0, fmt.Errorf("read header: empty input")
		}
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	headers := normalizeHeaders(h, p.opt.HeaderMap)

	var out []transformer.Row
	var skipped int

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Soft-fail this row and continue.
			if skipped < skipLogLimit {
				log.Printf("Skipping row %d: %v", line, err)
			}
			skipped++
			continue
		}

		rec := make(records.Record, len(headers))
		for i, key := range headers {
			if i >= len(row) {
				break
			}
			rec[key] = row[i]
		}
		out = append(out, transformer.Row{Line: line, Rec: rec})
	}

	return out, skipped, nil
}
