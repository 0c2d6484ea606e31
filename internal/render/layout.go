package render

import (
	"fmt"
	"html/template"
	"io"
)

// NavItem is one sidebar entry.
type NavItem struct {
	Slug     string
	Title    string
	Icon     string
	Active   bool
	Degraded bool
}

// LayoutData feeds the outer page shell.
type LayoutData struct {
	SiteTitle string
	Title     string
	Nav       []NavItem
	Content   template.HTML

	// Problems lists the page's unresolved resource directories; rendered
	// as a banner above the content.
	Problems []string
}

// Layout writes the full page document.
func (r *Renderer) Layout(w io.Writer, d LayoutData) error {
	if err := r.layout.Execute(w, d); err != nil {
		return fmt.Errorf("render layout: %w", err)
	}
	return nil
}

const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{if .Title}}{{.Title}} — {{end}}{{.SiteTitle}}</title>
<style>
body { margin: 0; font-family: system-ui, sans-serif; color: #262730; }
.wrap { display: flex; min-height: 100vh; }
nav { width: 260px; background: #f0f2f6; padding: 1.5rem 0; flex-shrink: 0; }
nav a { display: block; padding: .5rem 1.5rem; color: #262730; text-decoration: none; }
nav a:hover { background: #e6e9ef; }
nav a.active { background: #fff; border-left: 4px solid #1f77b4; font-weight: 600; }
nav a.degraded::after { content: " ⚠"; color: #d62728; }
main { flex: 1; padding: 2rem 3rem; max-width: 1100px; }
h1 { color: #1f77b4; }
h2 { color: #2ca02c; }
h3 { color: #d62728; }
.banner { background: #fff3cd; border-left: 5px solid #d62728; padding: .75rem 1rem; margin-bottom: 1rem; }
.embed-error { background: #fdecea; border-left: 5px solid #d62728; padding: .75rem 1rem; margin: 1rem 0; }
.data-table { border-collapse: collapse; margin: 1rem 0; }
.data-table th, .data-table td { border: 1px solid #d6d6d6; padding: .4rem .8rem; }
.data-table th { background: #f0f2f6; }
.data-table td.num { text-align: right; font-variant-numeric: tabular-nums; }
iframe.chart { border: 0; width: 100%; }
img.figure { max-width: 100%; }
</style>
</head>
<body>
<div class="wrap">
<nav>
{{range .Nav}}<a href="/pages/{{.Slug}}"{{if or .Active .Degraded}} class="{{if .Active}}active{{end}}{{if and .Active .Degraded}} {{end}}{{if .Degraded}}degraded{{end}}"{{end}}>{{if .Icon}}{{.Icon}} {{end}}{{.Title}}</a>
{{end}}</nav>
<main>
{{range .Problems}}<div class="banner">Resource directory not found: {{.}}</div>
{{end}}{{.Content}}
</main>
</div>
</body>
</html>
`
