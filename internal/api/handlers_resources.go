package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/grantboard/internal/assets"
	"github.com/dgallion1/grantboard/internal/report"
)

const reportsDirName = "reports"

// handleChart serves a pre-rendered chart document for iframe embedding.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	path, err := s.resolver.ResourceFile(chi.URLParam(r, "dir"), chi.URLParam(r, "file"))
	if err != nil {
		jsonError(w, err.Error(), statusForResolveErr(err))
		return
	}
	doc, err := assets.LoadChart(path)
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(doc.HTML)
}

// handleImage serves a static figure.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	path, err := s.resolver.ResourceFile(chi.URLParam(r, "dir"), chi.URLParam(r, "file"))
	if err != nil {
		jsonError(w, err.Error(), statusForResolveErr(err))
		return
	}
	img, err := assets.LoadImage(path)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.Write(img.Data)
}

// handleTable serves a CSV table as JSON (default) or as an HTML fragment
// (?format=html).
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	path, err := s.resolver.ResourceFile(chi.URLParam(r, "dir"), chi.URLParam(r, "file"))
	if err != nil {
		jsonError(w, err.Error(), statusForResolveErr(err))
		return
	}
	t, err := s.cache.Load(path)
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"name":    t.Name,
			"columns": t.Columns,
			"rows":    t.Rows,
		})
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, s.renderer.TableHTML(t))
	default:
		jsonError(w, "unknown format: "+r.URL.Query().Get("format"), http.StatusBadRequest)
	}
}

// handleListReports returns the reports inventory as JSON. An absent
// reports directory yields an empty inventory.
func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	dir, err := s.resolver.ResourceDir(reportsDirName)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"reports":[]}`))
		return
	}
	reports, err := report.Inventory(dir)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if reports == nil {
		reports = []report.Report{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"reports": reports})
}

// handleReportDownload serves a report file as an attachment.
func (s *Server) handleReportDownload(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	path, err := s.resolver.ResourceFile(reportsDirName, file)
	if err != nil {
		jsonError(w, err.Error(), statusForResolveErr(err))
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+file+`"`)
	http.ServeFile(w, r, path)
}
