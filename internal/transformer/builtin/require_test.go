package builtin

import (
	"testing"

	"tsv2sql/internal/transformer"
	"tsv2sql/pkg/records"
)

func row(line int, kv ...string) transformer.Row {
	rec := make(records.Record, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		rec[kv[i]] = kv[i+1]
	}
	return transformer.Row{Line: line, Rec: rec}
}

/*
TestRequireApply verifies the filtering behavior of Require:
  - rows with all required fields present and non-empty survive,
  - absent columns and empty values both count as missing,
  - dropped rows invoke the Reject sink with line number, stage, and a
    reason naming every missing field,
  - output preserves the original order of surviving rows.
*/
func TestRequireApply(t *testing.T) {
	t.Parallel()

	var rejects []RejectedRow
	r := Require{
		Fields: []string{"discord_id", "vrchat_id"},
		Reject: func(rr RejectedRow) { rejects = append(rejects, rr) },
	}

	in := []transformer.Row{
		row(2, "discord_id", "111", "vrchat_id", "usr_a"),
		row(3, "discord_id", "", "vrchat_id", "usr_b"), // empty value
		row(4, "vrchat_id", "usr_c"),                   // absent column
		row(5, "discord_id", "555", "vrchat_id", "usr_d"),
	}
	out := r.Apply(in)

	if got, want := len(out), 2; got != want {
		t.Fatalf("len(out) = %d, want %d", got, want)
	}
	if out[0].Line != 2 || out[1].Line != 5 {
		t.Fatalf("surviving lines = %d,%d, want 2,5", out[0].Line, out[1].Line)
	}

	if got, want := len(rejects), 2; got != want {
		t.Fatalf("len(rejects) = %d, want %d", got, want)
	}
	if rejects[0].Line != 3 || rejects[1].Line != 4 {
		t.Fatalf("rejected lines = %d,%d, want 3,4", rejects[0].Line, rejects[1].Line)
	}
	for _, rr := range rejects {
		if rr.Stage != "require" {
			t.Fatalf("stage = %q, want require", rr.Stage)
		}
	}
	if got, want := rejects[0].Reason, "missing required fields: discord_id"; got != want {
		t.Fatalf("reason = %q, want %q", got, want)
	}
}

func TestRequireApply_NoReject(t *testing.T) {
	t.Parallel()

	// A nil Reject sink must not panic.
	r := Require{Fields: []string{"a"}}
	out := r.Apply([]transformer.Row{row(2, "b", "x")})
	if len(out) != 0 {
		t.Fatalf("len(out) = %d, want 0", len(out))
	}
}

func TestTrimApply(t *testing.T) {
	t.Parallel()

	in := []transformer.Row{row(2, "a", "  x \t", "b", " y ", "c", "")}
	out := Trim{}.Apply(in)

	if got := out[0].Rec.Get("a"); got != "x" {
		t.Fatalf("a = %q, want x", got)
	}
	if got := out[0].Rec.Get("b"); got != "y" {
		t.Fatalf("b = %q, want y (NBSP trimmed)", got)
	}
	if got := out[0].Rec.Get("c"); got != "" {
		t.Fatalf("c = %q, want empty", got)
	}
}
