package render

import (
	"fmt"
	"regexp"
	"strconv"
)

// Embed directives replace the original dashboard's inline chart, table and
// image calls. A directive occupies its own line inside a page body:
//
//	{{chart plotly_charts/01_disease_top_level_count.html 500}}
//	{{table csv_tables/disease_03_table.csv}}
//	{{image images/Feature_importance_Overall.png}}
//
// The trailing number on chart directives is the iframe height in pixels.
type Directive struct {
	Kind   string // "chart", "table" or "image"
	Dir    string
	File   string
	Height int
}

const defaultChartHeight = 600

var directiveRe = regexp.MustCompile(`(?m)^\{\{(chart|table|image)\s+([^/\s}]+)/([^\s}]+)(?:\s+(\d+))?\}\}[ \t]*$`)

// ExpandDirectives replaces every embed directive in body with the HTML that
// expand returns for it. An expansion error becomes an inline error block;
// the surrounding page keeps rendering.
func ExpandDirectives(body []byte, expand func(Directive) (string, error)) []byte {
	return directiveRe.ReplaceAllFunc(body, func(match []byte) []byte {
		parts := directiveRe.FindSubmatch(match)
		d := Directive{
			Kind:   string(parts[1]),
			Dir:    string(parts[2]),
			File:   string(parts[3]),
			Height: defaultChartHeight,
		}
		if len(parts[4]) > 0 {
			if h, err := strconv.Atoi(string(parts[4])); err == nil && h > 0 {
				d.Height = h
			}
		}
		out, err := expand(d)
		if err != nil {
			return []byte(ErrorBlock(fmt.Sprintf("%s %s/%s: %v", d.Kind, d.Dir, d.File, err)))
		}
		return []byte(out)
	})
}
