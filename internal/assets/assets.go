// Package assets loads static page resources: PNG/JPEG figures and
// pre-rendered, self-contained HTML chart documents (Plotly exports).
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

var ErrNotChartDocument = errors.New("not an html chart document")

// Image is a static figure with its sniffed content type.
type Image struct {
	Data        []byte
	ContentType string
}

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
}

// LoadImage reads an image file. The content type comes from the extension
// when recognized, otherwise from content sniffing.
func LoadImage(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	ct, ok := imageTypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		ct = http.DetectContentType(data)
	}
	return &Image{Data: data, ContentType: ct}, nil
}

// ChartDoc is a pre-rendered interactive chart document, served whole for
// iframe embedding.
type ChartDoc struct {
	Title string
	HTML  []byte
}

// LoadChart reads a chart document and verifies it is an HTML document. The
// <title> is extracted for listings; an untitled document keeps its
// filename as title.
func LoadChart(path string) (*ChartDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chart: %w", err)
	}
	if !looksLikeHTML(data) {
		return nil, fmt.Errorf("%w: %s", ErrNotChartDocument, filepath.Base(path))
	}

	doc := &ChartDoc{
		Title: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		HTML:  data,
	}
	if root, err := html.Parse(bytes.NewReader(data)); err == nil {
		if t := findTitle(root); t != "" {
			doc.Title = t
		}
	}
	return doc, nil
}

// looksLikeHTML checks for an HTML document prefix. Plotly exports start
// with either a doctype or a bare <html> tag.
func looksLikeHTML(data []byte) bool {
	head := bytes.ToLower(bytes.TrimSpace(data))
	if len(head) > 256 {
		head = head[:256]
	}
	return bytes.HasPrefix(head, []byte("<!doctype html")) ||
		bytes.HasPrefix(head, []byte("<html")) ||
		bytes.Contains(head, []byte("<html"))
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}
