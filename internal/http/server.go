package http

import (
	"context"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"budgety/internal/app"
	"budgety/internal/log"
	"budgety/internal/middleware/security"
	"budgety/internal/middleware/trace"
	appweb "budgety/web"
)

var errTemplatesNotLoaded = errors.New("templates not loaded")

// Server is the web front end of one budget.
type Server struct {
	http.Server
	templates *template.Template
	ctrl      *app.Controller
	currency  string
	logger    *log.Logger
	tracer    *trace.Middleware
	started   time.Time

	shutdownOnce sync.Once
}

// Options tunes the underlying http.Server. Zero values keep net/http
// defaults.
type Options struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// NewServer configures routes and templates, returning a ready-to-run server.
// Amounts are displayed in the given ISO currency.
func NewServer(addr string, ctrl *app.Controller, currency string, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Discard()
	}
	mux := http.NewServeMux()

	s := &Server{
		ctrl:     ctrl,
		currency: currency,
		logger:   logger.WithComponent(log.ComponentHTTP),
		started:  time.Now(),
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates",
			log.FieldError, err,
			log.FieldComponent, log.ComponentTemplate)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/entries", s.handleAddEntry)
	mux.HandleFunc("/entries/delete", s.handleDeleteEntry)
	mux.HandleFunc("/ui/budget", s.handleBudgetPartial)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)

	s.tracer = trace.NewMiddleware(s.logger, security.ClientIP)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	s.Server = http.Server{
		Addr:         addr,
		Handler:      s.tracer.Middleware(headers.Middleware(mux)),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  opts.IdleTimeout,
	}
	return s
}

// Shutdown gracefully shuts down the server. Later calls return nil.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.logger.Info("Shutting down HTTP server", log.FieldOperation, log.OpShutdown)
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
