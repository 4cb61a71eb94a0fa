// Package probe samples the first bytes of a TSV file and reports its
// normalized header names with inferred SQL-like types, plus which of the
// profile columns the converter needs are present. It exists to answer "will
// this export convert?" before running the conversion.
package probe

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"tsv2sql/internal/parser/tsv"
	"tsv2sql/internal/schema"
)

// Options configures a probe run.
type Options struct {
	// Path is the local TSV file to sample.
	Path string

	// MaxBytes limits how much of the file is read. When zero, 20000 is used.
	MaxBytes int

	// Delimiter is the field separator. When zero, '\t' is used.
	Delimiter rune
}

// Column describes one sampled column.
type Column struct {
	Name     string // normalized field name
	Raw      string // original header text
	SQLType  string // TEXT, BIGINT, DOUBLE PRECISION, DATE, TIMESTAMP, BOOLEAN
	Required bool   // true when the converter requires this column
}

// Result holds the probe findings.
type Result struct {
	Columns []Column

	// Missing lists required profile columns absent from the header.
	Missing []string

	// SampledRows is the number of data rows inspected for type inference.
	SampledRows int
}

// Probe samples the file and infers column information. Rows whose width
// differs from the header are padded or truncated to fit; a trimmed sample
// may end mid-row, so the final row is dropped when the read was cut short.
func Probe(opt Options) (Result, error) {
	if opt.MaxBytes <= 0 {
		opt.MaxBytes = 20000
	}
	if opt.Delimiter == 0 {
		opt.Delimiter = '\t'
	}

	data, truncated, err := readFirstBytes(opt.Path, opt.MaxBytes)
	if err != nil {
		return Result{}, err
	}

	headers, rows, err := readSample(data, opt.Delimiter)
	if err != nil {
		return Result{}, err
	}
	if truncated && len(rows) > 0 {
		rows = rows[:len(rows)-1]
	}

	required := make(map[string]bool, len(schema.RequiredColumns))
	for _, c := range schema.RequiredColumns {
		required[c] = false
	}

	res := Result{SampledRows: len(rows)}
	for i, raw := range headers {
		name := tsv.NormalizeFieldName(raw)
		col := Column{
			Name:    name,
			Raw:     strings.TrimSpace(raw),
			SQLType: inferTypeForColumn(columnValues(rows, i)),
		}
		if _, ok := required[name]; ok {
			required[name] = true
			col.Required = true
		}
		res.Columns = append(res.Columns, col)
	}
	for _, c := range schema.RequiredColumns {
		if !required[c] {
			res.Missing = append(res.Missing, c)
		}
	}
	return res, nil
}

// Render formats the result as the probe's console report.
func (r Result) Render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d column(s), %d sampled row(s)\n", len(r.Columns), r.SampledRows)
	for _, c := range r.Columns {
		marker := " "
		if c.Required {
			marker = "*"
		}
		fmt.Fprintf(&sb, "%s %-20s %-16s (from %q)\n", marker, c.Name, c.SQLType, c.Raw)
	}
	if len(r.Missing) > 0 {
		fmt.Fprintf(&sb, "missing required column(s): %s\n", strings.Join(r.Missing, ", "))
	}
	return sb.String()
}

// readFirstBytes reads up to n bytes from path. The second return reports
// whether the file had more data than was read.
func readFirstBytes(path string, n int) ([]byte, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	buf := make([]byte, n+1)
	read, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}
	if read > n {
		return buf[:n], true, nil
	}
	return buf[:read], false, nil
}

// readSample parses sample bytes and returns headers plus data rows, each
// fitted to the header width. Malformed rows are skipped.
func readSample(data []byte, delim rune) ([]string, [][]string, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	headers, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, fmt.Errorf("empty sample: no header row")
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}

	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		rows = append(rows, fitRowToWidth(row, len(headers)))
	}
	return headers, rows, nil
}

// fitRowToWidth pads or truncates row to exactly n cells.
func fitRowToWidth(row []string, n int) []string {
	if len(row) == n {
		return row
	}
	out := make([]string, n)
	copy(out, row)
	return out
}

func columnValues(rows [][]string, idx int) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if idx < len(r) {
			out = append(out, r[idx])
		}
	}
	return out
}

// inferTypeForColumn maps sampled values onto a SQL-like type. Empty samples
// and all-empty columns fall back to TEXT.
func inferTypeForColumn(values []string) string {
	vals := nonEmptyTrimmed(values)
	if len(vals) == 0 {
		return "TEXT"
	}
	switch {
	case allMatch(vals, isBool):
		return "BOOLEAN"
	case allMatch(vals, isInt):
		return "BIGINT"
	case allMatch(vals, isFloat):
		return "DOUBLE PRECISION"
	}
	if ok, hasTime := allDates(vals); ok {
		if hasTime {
			return "TIMESTAMP"
		}
		return "DATE"
	}
	return "TEXT"
}

func nonEmptyTrimmed(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func allMatch(vals []string, fn func(string) bool) bool {
	for _, v := range vals {
		if !fn(v) {
			return false
		}
	}
	return true
}

func isBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false", "t", "f", "yes", "no":
		return true
	}
	return false
}

func isInt(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func isFloat(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// dateLayouts are the formats seen in real exports, most specific first.
var dateLayouts = []struct {
	layout  string
	hasTime bool
}{
	{time.RFC3339, true},
	{"2006-01-02 15:04:05", true},
	{"2006-01-02", false},
	{"02.01.2006", false},
	{"01/02/2006", false},
}

func allDates(vals []string) (ok bool, hasTime bool) {
	for _, dl := range dateLayouts {
		match := true
		for _, v := range vals {
			if _, err := time.Parse(dl.layout, v); err != nil {
				match = false
				break
			}
		}
		if match {
			return true, dl.hasTime
		}
	}
	return false, false
}
