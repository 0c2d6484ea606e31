package report

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInventory_MissingDirIsEmpty(t *testing.T) {
	reports, err := Inventory(filepath.Join(t.TempDir(), "reports"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("expected empty inventory, got %d", len(reports))
	}
}

func TestInventory_SkipsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"data.csv", "notes.txt", "chart.html"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	reports, err := Inventory(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("expected no reports, got %d", len(reports))
	}
}

func TestInventory_UnparseableFileStillListed(t *testing.T) {
	// A corrupt deliverable must still appear so the downloads page can
	// offer the raw bytes.
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Capstone_Final.pdf"), []byte("not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Appendix.docx"), []byte("not a docx"), 0o644); err != nil {
		t.Fatal(err)
	}

	reports, err := Inventory(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	// Sorted by filename.
	if reports[0].File != "Appendix.docx" || reports[1].File != "Capstone_Final.pdf" {
		t.Errorf("unexpected order: %s, %s", reports[0].File, reports[1].File)
	}
	for _, r := range reports {
		if r.Err == "" {
			t.Errorf("%s: expected parse error to be recorded", r.File)
		}
		if r.SizeBytes == 0 {
			t.Errorf("%s: expected size", r.File)
		}
	}
	if reports[1].Title != "Capstone_Final" {
		t.Errorf("expected filename title, got %q", reports[1].Title)
	}
	if reports[1].Kind != "pdf" || reports[0].Kind != "docx" {
		t.Errorf("unexpected kinds: %s, %s", reports[1].Kind, reports[0].Kind)
	}
}

func TestFirstLine(t *testing.T) {
	cases := []struct{ in, want string }{
		{"NIH Research Grants Analysis\nCapstone Report\n", "NIH Research Grants Analysis"},
		{"\n\n  Title after blanks\nmore", "Title after blanks"},
		{"", ""},
		{"   \n\t\n", ""},
	}
	for _, c := range cases {
		if got := firstLine(c.in); got != c.want {
			t.Errorf("firstLine(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
