// Package server exposes the business-date panel over HTTP. A single
// resource, /api/v1/panel, builds (or serves from cache) the panel for a
// requested date range as JSON or CSV; /healthz and /metrics cover liveness
// and Prometheus scraping.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apierrors "ustpanel/internal/errors"
	"ustpanel/internal/exporter"
	"ustpanel/internal/metrics"
	"ustpanel/internal/middleware"
	"ustpanel/internal/panel"
)

const dateLayout = "2006-01-02"

// PanelProvider is the slice of the service layer the server needs.
type PanelProvider interface {
	Panel(ctx context.Context, start, end time.Time, force bool) ([]panel.Row, error)
}

// Server wires the router, the panel service and the HTTP listener.
type Server struct {
	provider       PanelProvider
	logger         *slog.Logger
	validate       *validator.Validate
	httpSrv        *http.Server
	requestTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithTimeouts sets the listener read, write and idle timeouts.
func WithTimeouts(read, write, idle time.Duration) Option {
	return func(s *Server) {
		s.httpSrv.ReadTimeout = read
		s.httpSrv.WriteTimeout = write
		s.httpSrv.IdleTimeout = idle
	}
}

// WithRequestTimeout bounds each /api/v1 request.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.requestTimeout = d
	}
}

// New creates a Server listening on addr.
func New(addr string, provider PanelProvider, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		provider:       provider,
		logger:         logger.With(slog.String("component", "server")),
		validate:       validator.New(),
		requestTimeout: 4 * time.Minute,
	}
	s.httpSrv = &http.Server{
		Addr:        addr,
		ReadTimeout: 15 * time.Second,
		// Panel builds over long ranges can take a while.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.httpSrv.Handler = s.Router()
	return s
}

// Router assembles the middleware chain and routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StructuredLogger(s.logger))
	r.Use(middleware.Recoverer(s.logger))
	r.Use(middleware.Compress(5))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(s.requestTimeout))
		r.Get("/panel", s.handlePanel)
	})

	return r
}

// ListenAndServe starts the HTTP listener and blocks until it stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("listening", "addr", s.httpSrv.Addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// panelRequest carries the parsed query parameters for GET /api/v1/panel.
type panelRequest struct {
	Start  string `validate:"required,datetime=2006-01-02"`
	End    string `validate:"required,datetime=2006-01-02"`
	Format string `validate:"oneof=json csv"`
	Force  bool
}

// panelResponse is the JSON envelope for a panel build.
type panelResponse struct {
	Start string      `json:"start"`
	End   string      `json:"end"`
	Rows  int         `json:"rows"`
	Panel []panel.Row `json:"panel"`
}

func (s *Server) handlePanel(w http.ResponseWriter, r *http.Request) {
	req, apiErr := s.parsePanelRequest(r)
	if apiErr != nil {
		s.renderError(w, r, apiErr)
		return
	}

	start, _ := time.Parse(dateLayout, req.Start)
	end, _ := time.Parse(dateLayout, req.End)

	rows, err := s.provider.Panel(r.Context(), start, end, req.Force)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "panel build failed",
			slog.String("error", err.Error()),
			slog.String("start", req.Start),
			slog.String("end", req.End),
		)
		s.renderError(w, r, apierrors.FromDomain(err))
		return
	}

	status := strconv.Itoa(http.StatusOK)
	metrics.HTTPRequests.WithLabelValues("/api/v1/panel", status).Inc()

	if req.Format == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="panel_%s_%s.csv"`, req.Start, req.End))
		if err := exporter.WriteCSV(w, rows); err != nil {
			s.logger.ErrorContext(r.Context(), "csv write failed", slog.String("error", err.Error()))
		}
		return
	}

	render.JSON(w, r, panelResponse{
		Start: req.Start,
		End:   req.End,
		Rows:  len(rows),
		Panel: rows,
	})
}

func (s *Server) parsePanelRequest(r *http.Request) (panelRequest, *apierrors.APIError) {
	q := r.URL.Query()
	req := panelRequest{
		Start:  q.Get("start"),
		End:    q.Get("end"),
		Format: q.Get("format"),
	}
	if req.Format == "" {
		req.Format = "json"
	}
	if v := q.Get("force"); v != "" {
		force, err := strconv.ParseBool(v)
		if err != nil {
			return req, apierrors.NewWithDetails(http.StatusBadRequest,
				"VALIDATION_FAILED", "Request validation failed",
				fmt.Sprintf("force: invalid boolean %q", v))
		}
		req.Force = force
	}

	if err := s.validate.Struct(req); err != nil {
		return req, apierrors.NewWithDetails(http.StatusBadRequest,
			"VALIDATION_FAILED", "Request validation failed", err.Error())
	}
	return req, nil
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, apiErr *apierrors.APIError) {
	metrics.HTTPRequests.WithLabelValues(r.URL.Path, strconv.Itoa(apiErr.StatusCode)).Inc()
	if err := render.Render(w, r, apiErr); err != nil {
		s.logger.ErrorContext(r.Context(), "render error response failed",
			slog.String("error", err.Error()))
	}
}
