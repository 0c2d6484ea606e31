// Package report builds the downloads inventory for the site's reports
// directory: PDF and DOCX deliverables shipped alongside the dashboard.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fumiama/go-docx"
	pdflib "github.com/ledongthuc/pdf"
)

// Report describes one downloadable deliverable.
type Report struct {
	File      string   `json:"file"`
	Title     string   `json:"title"`
	Kind      string   `json:"kind"` // "pdf" or "docx"
	Pages     int      `json:"pages,omitempty"`
	Sections  []string `json:"sections,omitempty"`
	SizeBytes int64    `json:"size_bytes"`
	Err       string   `json:"error,omitempty"`
}

// Inventory describes every PDF and DOCX file in dir, sorted by filename.
// A missing directory yields an empty inventory, not an error; a file that
// fails to parse is listed with its error so the downloads page can still
// offer the raw bytes.
func Inventory(dir string) ([]Report, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read reports dir: %w", err)
	}

	var reports []Report
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".pdf" && ext != ".docx" {
			continue
		}

		r := Report{
			File:  e.Name(),
			Title: strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			Kind:  strings.TrimPrefix(ext, "."),
		}
		if info, err := e.Info(); err == nil {
			r.SizeBytes = info.Size()
		}

		path := filepath.Join(dir, e.Name())
		var derr error
		switch ext {
		case ".pdf":
			derr = describePDF(path, &r)
		case ".docx":
			derr = describeDOCX(path, &r)
		}
		if derr != nil {
			r.Err = derr.Error()
		}
		reports = append(reports, r)
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].File < reports[j].File })
	return reports, nil
}

// describePDF fills in the page count and, when the first page yields text,
// a title taken from its first line.
func describePDF(path string, r *Report) error {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	r.Pages = reader.NumPage()

	if r.Pages > 0 {
		page := reader.Page(1)
		if !page.V.IsNull() {
			if text, err := page.GetPlainText(nil); err == nil {
				if line := firstLine(text); line != "" {
					r.Title = line
				}
			}
		}
	}
	return nil
}

// describeDOCX fills in heading-styled sections; the first level-1 heading
// becomes the title.
func describeDOCX(path string, r *Report) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open docx: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat docx: %w", err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return fmt.Errorf("parse docx: %w", err)
	}

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		level := headingLevel(para)
		if level == 0 {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			continue
		}
		if level == 1 && r.Title == strings.TrimSuffix(r.File, filepath.Ext(r.File)) {
			r.Title = text
		}
		r.Sections = append(r.Sections, text)
	}
	return nil
}

func headingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if !strings.HasPrefix(style, "heading") {
		return 0
	}
	switch strings.TrimPrefix(style, "heading") {
	case "1":
		return 1
	case "2":
		return 2
	case "3":
		return 3
	case "4":
		return 4
	case "5":
		return 5
	case "6":
		return 6
	}
	return 0
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}
