// Package site serves the portfolio page and the per-view theme and reveal endpoints.
package site

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/metrics"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// StatsSource supplies aggregate counters for /api/stats.
type StatsSource interface {
	Stats(ctx context.Context) (*metrics.Stats, error)
}

// Options wires a Server's collaborators. Zero values disable the optional parts.
type Options struct {
	Site     *content.Site
	Log      *logger.Logger
	ViewTTL  time.Duration
	MaxViews int
	Recorder metrics.Recorder
	Stats    StatsSource
}

// Server renders the page and owns the registry of live views.
type Server struct {
	engine   *gin.Engine
	layout   *Layout
	views    *Views
	recorder metrics.Recorder
	stats    StatsSource
	log      *logger.Logger
	now      func() time.Time
}

// New builds the gin engine with every route registered.
func New(opts Options) (*Server, error) {
	if opts.Site == nil {
		return nil, errors.New("site content is required")
	}
	if opts.ViewTTL <= 0 {
		opts.ViewTTL = 2 * time.Hour
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.Discard{}
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}

	s := &Server{
		engine:   gin.New(),
		layout:   NewLayout(opts.Site),
		views:    NewViews(opts.MaxViews, opts.ViewTTL),
		recorder: opts.Recorder,
		stats:    opts.Stats,
		log:      opts.Log,
		now:      time.Now,
	}

	r := s.engine
	r.Use(gin.Recovery(), s.log.Middleware())
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(static))

	r.GET("/", s.visitorTracking(), s.handleIndex)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	views := r.Group("/views/:id")
	views.POST("/theme", s.handleToggleTheme)
	views.POST("/reveal/:block", s.handleReveal)
	views.POST("/fail-open", s.handleFailOpen)

	if s.stats != nil {
		r.GET("/api/stats", s.handleStats)
	}
	return s, nil
}

// Handler exposes the engine for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Views exposes the live view registry.
func (s *Server) Views() *Views {
	return s.views
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.With("addr", addr).Info("portfolio listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleIndex(c *gin.Context) {
	v := s.views.Create(s.layout.Blocks())
	c.Set(viewKey, v.ID)
	c.HTML(http.StatusOK, "index.html", s.layout.Page(v, s.now()))
}

func (s *Server) view(c *gin.Context) (*View, bool) {
	v, err := s.views.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return v, true
}

func (s *Server) handleToggleTheme(c *gin.Context) {
	v, ok := s.view(c)
	if !ok {
		return
	}
	state := v.ToggleTheme()
	c.JSON(http.StatusOK, gin.H{"theme": state.String(), "class": state.Class()})
}

func (s *Server) handleReveal(c *gin.Context) {
	v, ok := s.view(c)
	if !ok {
		return
	}
	block := c.Param("block")
	fired, known := v.Reveal(block)
	if !known {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown block"})
		return
	}
	if fired {
		if err := s.recorder.RecordReveal(c.Request.Context(), v.ID, block); err != nil {
			s.log.With("block", block).Error(err, "record reveal")
		}
	}
	c.JSON(http.StatusOK, gin.H{"fired": fired, "state": v.RevealState(block).String()})
}

func (s *Server) handleFailOpen(c *gin.Context) {
	v, ok := s.view(c)
	if !ok {
		return
	}
	v.FailOpen()
	c.Status(http.StatusNoContent)
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.stats.Stats(c.Request.Context())
	if err != nil {
		s.log.Error(err, "load stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
