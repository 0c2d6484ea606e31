package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_PreservesColumnsAndRows(t *testing.T) {
	input := "topic,institution,amount\noncology,Corewell,1200000\ncardiology,Henry Ford,450000\nneurology,Kaiser,980000\n"
	table, err := Parse(strings.NewReader(input), "grants.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.Name != "grants" {
		t.Errorf("expected name %q, got %q", "grants", table.Name)
	}
	wantCols := []string{"topic", "institution", "amount"}
	if len(table.Columns) != len(wantCols) {
		t.Fatalf("expected %d columns, got %d", len(wantCols), len(table.Columns))
	}
	for i, c := range wantCols {
		if table.Columns[i] != c {
			t.Errorf("column %d: expected %q, got %q", i, c, table.Columns[i])
		}
	}
	if len(table.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table.Rows))
	}
	if table.Rows[1][1] != "Henry Ford" {
		t.Errorf("unexpected cell: %q", table.Rows[1][1])
	}
}

func TestParse_Empty(t *testing.T) {
	table, err := Parse(strings.NewReader(""), "empty.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Columns) != 0 || len(table.Rows) != 0 {
		t.Errorf("expected empty table, got %d columns %d rows", len(table.Columns), len(table.Rows))
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	table, err := Parse(strings.NewReader("a,b,c\n"), "h.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Columns) != 3 {
		t.Errorf("expected 3 columns, got %d", len(table.Columns))
	}
	if len(table.Rows) != 0 {
		t.Errorf("expected 0 rows, got %d", len(table.Rows))
	}
}

func TestParse_MalformedFails(t *testing.T) {
	// Ragged rows are a parse error surfaced to the caller.
	input := "a,b\n1,2,3\n"
	if _, err := Parse(strings.NewReader(input), "bad.csv"); err == nil {
		t.Error("expected error for ragged csv")
	}
}

func TestLoad_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t1, err := Load(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	t2, err := Load(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(t1.Rows) != len(t2.Rows) || t1.Rows[0][0] != t2.Rows[0][0] {
		t.Error("expected identical content across loads")
	}
}

func TestLoad_SizeLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2\n3,4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, 4); !errors.Is(err, ErrTableTooLarge) {
		t.Errorf("expected ErrTableTooLarge, got %v", err)
	}
	if _, err := Load(path, 1<<20); err != nil {
		t.Errorf("unexpected error under limit: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv"), 0); err == nil {
		t.Error("expected error for missing file")
	}
}
