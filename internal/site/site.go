// Package site builds the page registry: the sidebar-ordered list of
// dashboard pages discovered under the site root.
package site

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/dgallion1/grantboard/internal/resolve"
)

// ResourceKind classifies a resource directory's contents.
type ResourceKind string

const (
	KindTable ResourceKind = "table"
	KindChart ResourceKind = "chart"
	KindImage ResourceKind = "image"
)

// ResourceRef is a page's declared dependency on a resource directory.
type ResourceRef struct {
	Dir  string       `yaml:"dir"`
	Kind ResourceKind `yaml:"kind"`
}

// frontMatter is the optional YAML block at the top of a page file.
type frontMatter struct {
	Title     string        `yaml:"title"`
	Icon      string        `yaml:"icon"`
	Resources []ResourceRef `yaml:"resources"`
}

// Page is one sidebar entry. Pages are immutable after Load.
type Page struct {
	Order     int
	Slug      string
	Title     string
	Icon      string
	Path      string // absolute path of the markdown file
	Body      []byte // markdown body with front matter stripped
	Resources []ResourceRef

	// Missing lists declared resource dirs that failed to resolve. A page
	// with missing resources still renders; only its embeds degrade.
	Missing []string
}

// Degraded reports whether any declared resource dir failed to resolve.
func (p *Page) Degraded() bool { return len(p.Missing) > 0 }

// Registry holds the loaded pages in sidebar order, Home first.
type Registry struct {
	pages  []*Page
	bySlug map[string]*Page
}

const homeFile = "Home.md"

// Load scans the pages directory, parses each page file and verifies its
// declared resource directories. Duplicate numeric prefixes are a load
// error; a missing resource directory is not (the page is marked degraded).
func Load(res *resolve.Resolver) (*Registry, error) {
	entries, err := os.ReadDir(res.PagesDir())
	if err != nil {
		return nil, fmt.Errorf("read pages dir: %w", err)
	}

	reg := &Registry{bySlug: make(map[string]*Page)}
	seen := make(map[int]string)

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		order, rest, ok := splitPrefix(e.Name())
		if !ok {
			continue // not a numbered page file
		}
		if prev, dup := seen[order]; dup {
			return nil, fmt.Errorf("duplicate page prefix %d: %s and %s", order, prev, e.Name())
		}
		seen[order] = e.Name()

		page, err := loadPage(res, filepath.Join(res.PagesDir(), e.Name()), order, rest)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", e.Name(), err)
		}
		reg.pages = append(reg.pages, page)
	}

	sort.Slice(reg.pages, func(i, j int) bool { return reg.pages[i].Order < reg.pages[j].Order })

	// Home.md lives at the site root and is always the first sidebar entry.
	homePath := filepath.Join(res.Root(), homeFile)
	if _, err := os.Stat(homePath); err == nil {
		home, err := loadPage(res, homePath, 0, "Home")
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", homeFile, err)
		}
		home.Slug = "home"
		reg.pages = append([]*Page{home}, reg.pages...)
	}

	for _, p := range reg.pages {
		if other, dup := reg.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("duplicate page slug %q: %s and %s", p.Slug, other.Path, p.Path)
		}
		reg.bySlug[p.Slug] = p
	}
	return reg, nil
}

// Pages returns all pages in sidebar order.
func (r *Registry) Pages() []*Page { return r.pages }

// Get looks up a page by slug.
func (r *Registry) Get(slug string) (*Page, bool) {
	p, ok := r.bySlug[slug]
	return p, ok
}

// Home returns the index page, or nil if the site has no Home.md.
func (r *Registry) Home() *Page {
	if p, ok := r.bySlug["home"]; ok {
		return p
	}
	return nil
}

func loadPage(res *resolve.Resolver, path string, order int, rest string) (*Page, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fmBytes, body := splitFrontMatter(src)
	var fm frontMatter
	if len(fmBytes) > 0 {
		if err := yaml.Unmarshal(fmBytes, &fm); err != nil {
			return nil, fmt.Errorf("front matter: %w", err)
		}
	}

	title := fm.Title
	if title == "" {
		title = strings.ReplaceAll(rest, "_", " ")
	}

	page := &Page{
		Order:     order,
		Slug:      Slugify(rest),
		Title:     title,
		Icon:      fm.Icon,
		Path:      path,
		Body:      body,
		Resources: fm.Resources,
	}

	for _, ref := range fm.Resources {
		if _, err := res.ResourceDir(ref.Dir); err != nil {
			page.Missing = append(page.Missing, ref.Dir)
		}
	}
	return page, nil
}

// splitPrefix parses "3_Q1_Research_Themes.md" into (3, "Q1_Research_Themes").
func splitPrefix(name string) (order int, rest string, ok bool) {
	base := strings.TrimSuffix(name, ".md")
	num, rest, found := strings.Cut(base, "_")
	if !found || num == "" || rest == "" {
		return 0, "", false
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 0 {
		return 0, "", false
	}
	return n, rest, true
}

// Slugify lowercases a page name segment and joins words with hyphens:
// "Q1_Research_Themes" -> "q1-research-themes".
func Slugify(s string) string {
	var b strings.Builder
	prevHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

var fmDelim = []byte("---")

// splitFrontMatter splits a leading "---" delimited YAML block from the
// markdown body. Returns a nil front matter slice when none is present.
func splitFrontMatter(src []byte) (fm, body []byte) {
	trimmed := bytes.TrimPrefix(src, []byte("\xef\xbb\xbf")) // strip BOM
	if !bytes.HasPrefix(trimmed, fmDelim) {
		return nil, src
	}
	after := trimmed[len(fmDelim):]
	if len(after) == 0 || (after[0] != '\n' && !bytes.HasPrefix(after, []byte("\r\n"))) {
		return nil, src
	}
	idx := bytes.Index(after, []byte("\n---"))
	if idx < 0 {
		return nil, src
	}
	fm = after[:idx]
	rest := after[idx+len("\n---"):]
	// Skip the delimiter's trailing newline.
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[i+1:]
	} else {
		rest = nil
	}
	return fm, rest
}
