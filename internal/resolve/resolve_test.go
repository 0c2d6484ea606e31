package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// newSite builds a minimal site layout and returns its root.
func newSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, d := range []string{"pages", "pages/plotly_charts", "pages/csv_tables", "Streamlit_data"} {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestNew_RequiresPagesDir(t *testing.T) {
	if _, err := New(t.TempDir()); !errors.Is(err, ErrRootNotFound) {
		t.Errorf("expected ErrRootNotFound, got %v", err)
	}
}

func TestResourceDir_PageLocalFirst(t *testing.T) {
	root := newSite(t)
	// Same name in both locations: page-local wins.
	if err := os.Mkdir(filepath.Join(root, "plotly_charts"), 0o755); err != nil {
		t.Fatal(err)
	}
	r, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	got, err := r.ResourceDir("plotly_charts")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, "pages", "plotly_charts")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestResourceDir_RootFallback(t *testing.T) {
	root := newSite(t)
	r, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	got, err := r.ResourceDir("Streamlit_data")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(root, "Streamlit_data") {
		t.Errorf("unexpected dir %q", got)
	}
}

func TestResourceDir_Missing(t *testing.T) {
	root := newSite(t)
	r, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.ResourceDir("images"); !errors.Is(err, ErrResourceDirNotFound) {
		t.Errorf("expected ErrResourceDirNotFound, got %v", err)
	}
}

func TestResolution_IndependentOfWorkingDirectory(t *testing.T) {
	root := newSite(t)
	r, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	before, err := r.ResourceDir("csv_tables")
	if err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})

	after, err := r.ResourceDir("csv_tables")
	if err != nil {
		t.Fatal(err)
	}
	if before != after {
		t.Errorf("resolution changed with cwd: %q vs %q", before, after)
	}
}

func TestRootFromPage(t *testing.T) {
	root := newSite(t)
	pagePath := filepath.Join(root, "pages", "3_Q1_Research_Themes.md")
	if err := os.WriteFile(pagePath, []byte("# q1"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := RootFromPage(pagePath)
	if err != nil {
		t.Fatal(err)
	}
	if got != root {
		t.Errorf("expected root %q, got %q", root, got)
	}
}

func TestRootFromPage_NotASite(t *testing.T) {
	stray := filepath.Join(t.TempDir(), "sub", "file.md")
	if err := os.MkdirAll(filepath.Dir(stray), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := RootFromPage(stray); !errors.Is(err, ErrRootNotFound) {
		t.Errorf("expected ErrRootNotFound, got %v", err)
	}
}

func TestResourceFile_OK(t *testing.T) {
	root := newSite(t)
	file := filepath.Join(root, "pages", "csv_tables", "disease_03_table.csv")
	if err := os.WriteFile(file, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	got, err := r.ResourceFile("csv_tables", "disease_03_table.csv")
	if err != nil {
		t.Fatal(err)
	}
	if got != file {
		t.Errorf("expected %q, got %q", file, got)
	}
}

func TestResourceFile_Missing(t *testing.T) {
	root := newSite(t)
	r, err := New(root)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.ResourceFile("csv_tables", "nope.csv"); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}

func TestResourceFile_RejectsTraversal(t *testing.T) {
	root := newSite(t)
	r, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"..", "../secret", "a/b.csv", `a\b.csv`, ""} {
		if _, err := r.ResourceFile("csv_tables", name); !errors.Is(err, ErrPathEscapesRoot) {
			t.Errorf("file %q: expected ErrPathEscapesRoot, got %v", name, err)
		}
	}
	if _, err := r.ResourceDir(".."); !errors.Is(err, ErrPathEscapesRoot) {
		t.Errorf("dir ..: expected ErrPathEscapesRoot, got %v", err)
	}
}
