package app

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/acm-pccoer/events-site/internal/catalog"
	"github.com/acm-pccoer/events-site/internal/config"
	"github.com/acm-pccoer/events-site/internal/counter"
	"github.com/acm-pccoer/events-site/internal/visibility"
)

// Server serves the events site for one catalog.
type Server struct {
	catalog  *catalog.Catalog
	cfg      *config.Config
	observer *visibility.Observer
	loc      *time.Location
	etag     string

	events   *template.Template
	detail   *template.Template
	notFound *template.Template

	static fs.FS
	clock  counter.Clock
	newID  func() string
}

// Option configures a Server.
type Option func(*Server)

// WithStatic serves files from fsys under /static/. fsys is expected to
// contain a top-level "static" directory, like an embed.FS of static/*.
func WithStatic(fsys fs.FS) Option {
	return func(s *Server) {
		s.static = fsys
	}
}

// WithClock replaces the wall clock driving counter streams.
func WithClock(clock counter.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// WithIDs replaces the generator of counter ids embedded in pages.
func WithIDs(newID func() string) Option {
	return func(s *Server) {
		s.newID = newID
	}
}

// NewServer parses the page templates and prepares the catalog ETag.
func NewServer(c *catalog.Catalog, cfg *config.Config, opts ...Option) (*Server, error) {
	if c == nil {
		return nil, errors.New("nil catalog")
	}
	if cfg == nil {
		cfg = config.Defaults()
	}

	s := &Server{
		catalog:  c,
		cfg:      cfg,
		observer: visibility.NewObserver(cfg.Counter.Threshold),
		loc:      cfg.Location(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	if s.events, err = parsePage("events", tmplEvents); err != nil {
		return nil, err
	}
	if s.detail, err = parsePage("detail", tmplDetail); err != nil {
		return nil, err
	}
	if s.notFound, err = parsePage("notfound", tmplNotFound); err != nil {
		return nil, err
	}
	if s.etag, err = catalogETag(c); err != nil {
		return nil, err
	}
	return s, nil
}

// Observer exposes the visibility observer fed by /api/counters/{id}/visible.
func (s *Server) Observer() *visibility.Observer {
	return s.observer
}

// Routes returns the site's handler with request logging applied.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.ServeEvents)
	mux.HandleFunc("/events/", s.ServeEventDetail)
	mux.HandleFunc("/api/events", s.HandleEvents)
	mux.HandleFunc("/api/events/", s.HandleEventDetail)
	mux.HandleFunc("/api/download", s.HandleDownload)
	mux.HandleFunc("/api/subscribe", s.HandleSubscribe)
	mux.HandleFunc("/api/counters/", s.HandleCounter)
	mux.HandleFunc("/healthz", HandleHealth)

	if s.static != nil {
		mux.Handle("/static/", http.FileServer(http.FS(s.static)))
	}
	return logRequests(mux)
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("🚀 Starting ACM events site", "addr", "http://localhost"+srv.Addr, "events", len(s.catalog.Upcoming)+len(s.catalog.Past))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("🛑 Shutting down", "timeout", s.cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("✅ Server stopped")
	return nil
}

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer so
// counter streams can flush.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}
