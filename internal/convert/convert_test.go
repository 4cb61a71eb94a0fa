package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tsv2sql/internal/config"
)

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func jobFor(input, output string) config.Job {
	j := config.Default()
	j.Input = input
	j.Output = output
	return j
}

// TestRun_EndToEnd runs the canonical two-row example: one valid row, one
// row with an empty discord_id. The valid row must produce exactly the
// expected tuple; the invalid row is skipped without aborting the run.
func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	in := writeInput(t, "data.tsv",
		"discord_id\tvrchat_id\tvrchat_name\tadded_at\n"+
			"111\tusr_aaa\tAl'ice\t2024-01-01\n"+
			"\tusr_bbb\tBob\t2024-01-02\n")
	out := filepath.Join(t.TempDir(), "out.sql")

	res, err := Run(context.Background(), jobFor(in, out))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, want := res.Records, 1; got != want {
		t.Fatalf("Records = %d, want %d", got, want)
	}
	if got, want := res.MissingFields, 1; got != want {
		t.Fatalf("MissingFields = %d, want %d", got, want)
	}
	if res.Output != out {
		t.Fatalf("Output = %q, want %q", res.Output, out)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "INSERT INTO profiles (\n" +
		"    discord_id,\n" +
		"    vrchat_id,\n" +
		"    vrchat_name,\n" +
		"    added_at,\n" +
		"    updated_at,\n" +
		"    created_by,\n" +
		"    updated_by,\n" +
		"    is_verified,\n" +
		"    verification_id,\n" +
		"    verified_at,\n" +
		"    verified_from,\n" +
		"    verified_by\n" +
		") VALUES\n" +
		"('111', 'usr_aaa', 'Al''ice', '2024-01-01', CURRENT_TIMESTAMP, " +
		"'111', '356253258613915663', TRUE, 1, '2024-01-01', " +
		"'1392882468704489552', '356253258613915663');"
	if string(data) != want {
		t.Fatalf("output mismatch\n got: %q\nwant: %q", data, want)
	}
}

func TestRun_WhitespaceOnlyFieldIsMissing(t *testing.T) {
	t.Parallel()

	in := writeInput(t, "data.tsv",
		"discord_id\tvrchat_id\tvrchat_name\tadded_at\n"+
			"  \tusr_aaa\tAlice\t2024-01-01\n"+
			"222\t usr_bbb \t Bob \t 2024-01-02 \n")
	out := filepath.Join(t.TempDir(), "out.sql")

	res, err := Run(context.Background(), jobFor(in, out))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Records != 1 || res.MissingFields != 1 {
		t.Fatalf("Records=%d MissingFields=%d, want 1/1", res.Records, res.MissingFields)
	}

	data, _ := os.ReadFile(out)
	if !strings.Contains(string(data), "('222', 'usr_bbb', 'Bob', '2024-01-02',") {
		t.Fatalf("trimmed row not found in output: %q", data)
	}
}

func TestRun_NoValidRecordsWritesNothing(t *testing.T) {
	t.Parallel()

	in := writeInput(t, "data.tsv",
		"discord_id\tvrchat_id\tvrchat_name\tadded_at\n"+
			"\tusr_aaa\tAlice\t2024-01-01\n")
	out := filepath.Join(t.TempDir(), "out.sql")

	res, err := Run(context.Background(), jobFor(in, out))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Records != 0 || res.Output != "" {
		t.Fatalf("res = %+v, want zero records and no output path", res)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("output file should not exist, stat err = %v", err)
	}
}

func TestRun_MissingInputFile(t *testing.T) {
	t.Parallel()

	j := jobFor(filepath.Join(t.TempDir(), "nope.tsv"), filepath.Join(t.TempDir(), "out.sql"))
	if _, err := Run(context.Background(), j); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}

func TestRun_HeaderOrderIndependent(t *testing.T) {
	t.Parallel()

	in := writeInput(t, "data.tsv",
		"added_at\tvrchat_name\tdiscord_id\tvrchat_id\textra\n"+
			"2024-01-01\tAlice\t111\tusr_aaa\tjunk\n")
	out := filepath.Join(t.TempDir(), "out.sql")

	res, err := Run(context.Background(), jobFor(in, out))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Records != 1 {
		t.Fatalf("Records = %d, want 1", res.Records)
	}
	data, _ := os.ReadFile(out)
	if !strings.Contains(string(data), "('111', 'usr_aaa', 'Alice', '2024-01-01',") {
		t.Fatalf("reordered columns not mapped correctly: %q", data)
	}
}

func TestRun_DedupEnabled(t *testing.T) {
	t.Parallel()

	in := writeInput(t, "data.tsv",
		"discord_id\tvrchat_id\tvrchat_name\tadded_at\n"+
			"111\tusr_aaa\tAlice\t2024-01-01\n"+
			"111\tusr_aaa\tAlice Renamed\t2024-02-02\n")
	out := filepath.Join(t.TempDir(), "out.sql")

	j := jobFor(in, out)
	j.Dedup = config.Dedup{Enabled: true}

	res, err := Run(context.Background(), j)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Records != 1 || res.Deduped != 1 {
		t.Fatalf("Records=%d Deduped=%d, want 1/1", res.Records, res.Deduped)
	}
	data, _ := os.ReadFile(out)
	if !strings.Contains(string(data), "'Alice'") || strings.Contains(string(data), "Renamed") {
		t.Fatalf("keep-first should keep the earliest row: %q", data)
	}
}

func TestRun_DedupDisabledKeepsDuplicates(t *testing.T) {
	t.Parallel()

	in := writeInput(t, "data.tsv",
		"discord_id\tvrchat_id\tvrchat_name\tadded_at\n"+
			"111\tusr_aaa\tAlice\t2024-01-01\n"+
			"111\tusr_aaa\tAlice\t2024-01-01\n")
	out := filepath.Join(t.TempDir(), "out.sql")

	res, err := Run(context.Background(), jobFor(in, out))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Records != 2 {
		t.Fatalf("Records = %d, want 2 (no dedup by default)", res.Records)
	}
}

func TestRun_UnknownDialect(t *testing.T) {
	t.Parallel()

	in := writeInput(t, "data.tsv",
		"discord_id\tvrchat_id\tvrchat_name\tadded_at\n"+
			"111\tusr_aaa\tAlice\t2024-01-01\n")
	j := jobFor(in, filepath.Join(t.TempDir(), "out.sql"))
	j.Dialect = "oracle"

	if _, err := Run(context.Background(), j); err == nil {
		t.Fatalf("expected error for unknown dialect")
	}
}
