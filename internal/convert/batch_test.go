package convert

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tsv2sql/internal/config"
)

const validTSV = "discord_id\tvrchat_id\tvrchat_name\tadded_at\n" +
	"111\tusr_aaa\tAlice\t2024-01-01\n"

func TestRunDir_ConvertsEachFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"a.tsv", "b.tsv"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(validTSV), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	// Non-TSV files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	results, err := RunDir(context.Background(), config.Default(), dir, 2)
	if err != nil {
		t.Fatalf("RunDir: %v", err)
	}
	if got, want := len(results), 2; got != want {
		t.Fatalf("len(results) = %d, want %d", got, want)
	}
	for _, fr := range results {
		if fr.Err != nil {
			t.Fatalf("%s: %v", fr.Input, fr.Err)
		}
		if fr.Result.Records != 1 {
			t.Fatalf("%s: Records = %d, want 1", fr.Input, fr.Result.Records)
		}
		want := strings.TrimSuffix(fr.Input, ".tsv") + ".sql"
		if fr.Result.Output != want {
			t.Fatalf("%s: Output = %q, want %q", fr.Input, fr.Result.Output, want)
		}
		if _, err := os.Stat(want); err != nil {
			t.Fatalf("%s: output missing: %v", fr.Input, err)
		}
	}
	// Sorted by input path.
	if !strings.HasSuffix(results[0].Input, "a.tsv") || !strings.HasSuffix(results[1].Input, "b.tsv") {
		t.Fatalf("results not sorted: %q, %q", results[0].Input, results[1].Input)
	}
}

func TestRunDir_FileFailureIsIsolated(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "good.tsv"), []byte(validTSV), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	// Empty file: the parser fails on the missing header.
	if err := os.WriteFile(filepath.Join(dir, "bad.tsv"), nil, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	results, err := RunDir(context.Background(), config.Default(), dir, 0)
	if err != nil {
		t.Fatalf("RunDir: %v", err)
	}
	var goodOK, badFailed bool
	for _, fr := range results {
		switch {
		case strings.HasSuffix(fr.Input, "good.tsv"):
			goodOK = fr.Err == nil && fr.Result.Records == 1
		case strings.HasSuffix(fr.Input, "bad.tsv"):
			badFailed = fr.Err != nil
		}
	}
	if !goodOK {
		t.Fatalf("good.tsv should convert despite bad.tsv failing: %+v", results)
	}
	if !badFailed {
		t.Fatalf("bad.tsv should report an error: %+v", results)
	}
}

func TestRunDir_EmptyDir(t *testing.T) {
	t.Parallel()

	if _, err := RunDir(context.Background(), config.Default(), t.TempDir(), 1); err == nil {
		t.Fatalf("expected error for directory without TSV files")
	}
}

func TestRunDir_MissingDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nope")
	if _, err := RunDir(context.Background(), config.Default(), dir, 1); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
