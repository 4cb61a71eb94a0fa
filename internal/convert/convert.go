// Package convert wires the conversion pipeline together: open the input,
// parse it, validate and transform the rows, render the batch INSERT, and
// write the seed file.
package convert

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"tsv2sql/internal/config"
	"tsv2sql/internal/datasource"
	"tsv2sql/internal/datasource/file"
	"tsv2sql/internal/datasource/httpds"
	"tsv2sql/internal/metrics"
	"tsv2sql/internal/parser/tsv"
	"tsv2sql/internal/schema"
	"tsv2sql/internal/sqlgen"
	"tsv2sql/internal/transformer"
	"tsv2sql/internal/transformer/builtin"
)

// Result summarizes one conversion run.
type Result struct {
	// Records is the number of row tuples written to the output file.
	Records int

	// ParseErrors counts rows the parser could not read at all.
	ParseErrors int

	// MissingFields counts rows dropped for lacking a required field.
	MissingFields int

	// Deduped counts rows dropped as duplicates (only when dedup is enabled).
	Deduped int

	// Output is the path of the written SQL file; empty when no file was
	// written because no valid records were found.
	Output string
}

// Run executes one conversion job. Per-row problems are logged and skipped;
// only input/output level failures return an error. When zero rows survive,
// Run reports success with Records == 0 and writes no output file.
func Run(ctx context.Context, job config.Job) (Result, error) {
	var res Result

	var src datasource.Source
	if datasource.IsURL(job.Input) {
		src = httpds.NewURL(job.Input, httpds.Config{})
	} else {
		src = file.NewLocal(job.Input)
	}

	rc, err := src.Open(ctx)
	if err != nil {
		return res, err
	}
	defer rc.Close()

	p := tsv.NewParser(tsv.Options{HeaderMap: job.HeaderMap})
	rows, parseErrors, err := p.Parse(rc)
	if err != nil {
		return res, fmt.Errorf("read %s: %w", job.Input, err)
	}
	res.ParseErrors = parseErrors

	chain := transformer.Chain{
		builtin.Trim{},
		builtin.Require{
			Fields: schema.RequiredColumns,
			Reject: func(rr builtin.RejectedRow) {
				res.MissingFields++
				log.Printf("Warning: Row %d skipped due to missing required fields", rr.Line)
			},
		},
	}
	if job.Dedup.Enabled {
		chain = append(chain, builtin.DeDup{
			Keys:   []string{schema.ColDiscordID, schema.ColVRChatID},
			Policy: job.Dedup.Policy,
			Reject: func(rr builtin.RejectedRow) {
				res.Deduped++
				log.Printf("Warning: Row %d skipped: %s", rr.Line, rr.Reason)
			},
		})
	}
	rows = chain.Apply(rows)

	metrics.RecordRows(job.Name, "parse_errors", int64(res.ParseErrors))
	metrics.RecordRows(job.Name, "missing_fields", int64(res.MissingFields))
	metrics.RecordRows(job.Name, "deduped", int64(res.Deduped))

	if len(rows) == 0 {
		log.Printf("No valid records found to convert")
		return res, nil
	}

	values := make([][]sqlgen.Value, 0, len(rows))
	for _, row := range rows {
		p := schema.FromRecord(row.Rec, job.AdminID, job.GroupID)
		values = append(values, p.Values())
	}

	esc, err := sqlgen.ForDialect(job.Dialect)
	if err != nil {
		return res, err
	}
	stmt, err := sqlgen.BuildInsertSQL(schema.Table, schema.Columns, values, esc)
	if err != nil {
		return res, err
	}

	if err := writeFile(job.Output, stmt); err != nil {
		return res, err
	}
	res.Records = len(values)
	res.Output = job.Output
	metrics.RecordRows(job.Name, "converted", int64(res.Records))

	log.Printf("Success! Generated INSERT statement with %d records", res.Records)
	log.Printf("Output saved to: %s", res.Output)
	return res, nil
}

// writeFile writes the statement to path, creating or truncating it.
func writeFile(path, stmt string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if _, err := w.WriteString(stmt); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
