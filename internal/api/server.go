package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/grantboard/internal/config"
	"github.com/dgallion1/grantboard/internal/dataset"
	"github.com/dgallion1/grantboard/internal/render"
	"github.com/dgallion1/grantboard/internal/resolve"
	"github.com/dgallion1/grantboard/internal/site"
)

const siteTitle = "Research Grants Analysis"

// Server is the dashboard HTTP server.
type Server struct {
	router   chi.Router
	registry *site.Registry
	resolver *resolve.Resolver
	cache    *dataset.Cache
	renderer *render.Renderer
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(reg *site.Registry, res *resolve.Resolver, cache *dataset.Cache, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		registry: reg,
		resolver: res,
		cache:    cache,
		renderer: render.New(),
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	// Rendered pages.
	r.Get("/", s.handleHome)
	r.Get("/pages/{slug}", s.handlePage)

	// Raw resources.
	r.Get("/charts/{dir}/{file}", s.handleChart)
	r.Get("/images/{dir}/{file}", s.handleImage)
	r.Get("/tables/{dir}/{file}", s.handleTable)
	r.Get("/reports/{file}", s.handleReportDownload)

	// JSON listings.
	r.Get("/api/pages", s.handleListPages)
	r.Get("/api/reports", s.handleListReports)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// statusForResolveErr maps resolver failures onto HTTP status codes: a
// traversal attempt is a bad request, everything missing is a 404.
func statusForResolveErr(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, resolve.ErrPathEscapesRoot):
		return http.StatusBadRequest
	default:
		return http.StatusNotFound
	}
}
