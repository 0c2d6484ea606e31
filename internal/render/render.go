// Package render turns loaded content into HTML: markdown page bodies via
// goldmark, parsed tables into <table> markup, and the outer page shell.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	highlighting "github.com/yuin/goldmark-highlighting/v2"

	"github.com/dgallion1/grantboard/internal/dataset"
)

// Renderer is stateless beyond its configured goldmark instance and layout
// template; it is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	layout *template.Template
}

func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithRendererOptions(
			// Page bodies are trusted site content and embed directives
			// expand to raw HTML before conversion.
			goldmarkhtml.WithUnsafe(),
		),
	)
	return &Renderer{
		md:     md,
		layout: template.Must(template.New("layout").Parse(layoutTemplate)),
	}
}

// Markdown converts a markdown page body to an HTML fragment.
func (r *Renderer) Markdown(body []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// TableHTML renders a parsed table as an HTML fragment. Numeric cells get a
// right-aligned class; that is a display heuristic only, the underlying data
// stays untyped.
func (r *Renderer) TableHTML(t *dataset.Table) template.HTML {
	var b strings.Builder
	b.WriteString(`<table class="data-table">`)

	b.WriteString("<thead><tr>")
	for _, col := range t.Columns {
		b.WriteString("<th>")
		b.WriteString(template.HTMLEscapeString(col))
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead>")

	b.WriteString("<tbody>")
	for _, row := range t.Rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			if isNumeric(cell) {
				b.WriteString(`<td class="num">`)
			} else {
				b.WriteString("<td>")
			}
			b.WriteString(template.HTMLEscapeString(cell))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return template.HTML(b.String())
}

// ErrorBlock renders an inline, page-local error. Used for failed embeds so
// the rest of the page still renders.
func ErrorBlock(msg string) template.HTML {
	return template.HTML(`<div class="embed-error">` + template.HTMLEscapeString(msg) + `</div>`)
}

// isNumeric reports whether a cell reads as a number once currency symbols,
// thousands separators and percent signs are stripped.
func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
