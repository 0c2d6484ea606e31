package api

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/grantboard/internal/render"
	"github.com/dgallion1/grantboard/internal/site"
)

// handleHome renders the index page, or a plain page listing when the site
// ships no Home.md.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if home := s.registry.Home(); home != nil {
		s.renderPage(w, home)
		return
	}
	content := template.HTML("<h1>" + template.HTMLEscapeString(siteTitle) + "</h1><p>Select a page from the sidebar.</p>")
	s.writeLayout(w, http.StatusOK, render.LayoutData{
		SiteTitle: siteTitle,
		Nav:       s.nav(""),
		Content:   content,
	})
}

// handlePage renders one dashboard page by slug.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	page, ok := s.registry.Get(slug)
	if !ok {
		s.writeLayout(w, http.StatusNotFound, render.LayoutData{
			SiteTitle: siteTitle,
			Title:     "Not Found",
			Nav:       s.nav(""),
			Content:   render.ErrorBlock("no such page: " + slug),
		})
		return
	}
	s.renderPage(w, page)
}

// renderPage expands embed directives, converts the body and writes the full
// document. Embed failures degrade to inline error blocks; only a markdown
// conversion failure aborts the page.
func (s *Server) renderPage(w http.ResponseWriter, page *site.Page) {
	body := render.ExpandDirectives(page.Body, func(d render.Directive) (string, error) {
		return s.expandDirective(d)
	})

	content, err := s.renderer.Markdown(body)
	if err != nil {
		s.log.Error("render page", "slug", page.Slug, "error", err)
		s.writeLayout(w, http.StatusInternalServerError, render.LayoutData{
			SiteTitle: siteTitle,
			Title:     page.Title,
			Nav:       s.nav(page.Slug),
			Content:   render.ErrorBlock("page failed to render: " + err.Error()),
		})
		return
	}

	s.writeLayout(w, http.StatusOK, render.LayoutData{
		SiteTitle: siteTitle,
		Title:     page.Title,
		Nav:       s.nav(page.Slug),
		Content:   content,
		Problems:  page.Missing,
	})
}

// expandDirective turns an embed directive into HTML. Charts and images
// expand to references served by the resource handlers; tables are loaded
// and rendered inline so the data appears in the document itself.
func (s *Server) expandDirective(d render.Directive) (string, error) {
	switch d.Kind {
	case "chart":
		if _, err := s.resolver.ResourceFile(d.Dir, d.File); err != nil {
			return "", err
		}
		return fmt.Sprintf(`<iframe class="chart" src="/charts/%s/%s" height="%d" loading="lazy"></iframe>`,
			d.Dir, d.File, d.Height), nil
	case "image":
		if _, err := s.resolver.ResourceFile(d.Dir, d.File); err != nil {
			return "", err
		}
		return fmt.Sprintf(`<img class="figure" src="/images/%s/%s" alt="%s">`,
			d.Dir, d.File, template.HTMLEscapeString(d.File)), nil
	case "table":
		path, err := s.resolver.ResourceFile(d.Dir, d.File)
		if err != nil {
			return "", err
		}
		t, err := s.cache.Load(path)
		if err != nil {
			return "", err
		}
		return string(s.renderer.TableHTML(t)), nil
	default:
		return "", fmt.Errorf("unknown embed kind %q", d.Kind)
	}
}

func (s *Server) writeLayout(w http.ResponseWriter, status int, d render.LayoutData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.renderer.Layout(w, d); err != nil {
		s.log.Error("write layout", "error", err)
	}
}

// nav builds the sidebar in registry order.
func (s *Server) nav(activeSlug string) []render.NavItem {
	pages := s.registry.Pages()
	items := make([]render.NavItem, 0, len(pages))
	for _, p := range pages {
		items = append(items, render.NavItem{
			Slug:     p.Slug,
			Title:    p.Title,
			Icon:     p.Icon,
			Active:   p.Slug == activeSlug,
			Degraded: p.Degraded(),
		})
	}
	return items
}

// handleListPages returns the sidebar listing as JSON.
func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Order    int    `json:"order"`
		Slug     string `json:"slug"`
		Title    string `json:"title"`
		Icon     string `json:"icon,omitempty"`
		Degraded bool   `json:"degraded"`
	}
	pages := s.registry.Pages()
	out := make([]entry, 0, len(pages))
	for _, p := range pages {
		out = append(out, entry{
			Order:    p.Order,
			Slug:     p.Slug,
			Title:    p.Title,
			Icon:     p.Icon,
			Degraded: p.Degraded(),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"pages": out})
}
