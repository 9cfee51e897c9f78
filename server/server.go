// Package server serves a presentation over HTTP and keeps the navigation state on the server.
package server

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/k1LoW/mdshow"
)

// Server is the HTTP presentation surface.
type Server struct {
	router chi.Router
	logger *slog.Logger

	mu           sync.RWMutex
	presentation *mdshow.Presentation
	nav          *mdshow.Navigator
	notice       string
}

type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a Server with nothing to show. Call Update or SetNotice before serving.
func New(opts ...Option) *Server {
	s := &Server{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

// Update replaces the presentation. The current position is kept, wrapped to the new slide count.
func (s *Server) Update(p *mdshow.Presentation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := 0
	if s.nav != nil {
		current = s.nav.State().Current
	}
	nav := mdshow.NewNavigator(p.Slides, s.logger)
	state := nav.Goto(current)
	s.presentation = p
	s.nav = nav
	s.notice = ""
	s.logger.Info("presentation updated", slog.String("revision", p.Revision), slog.Int("slides", state.Total), slog.Int("current", state.Current))
}

// SetNotice drops the presentation and shows only notice.
func (s *Server) SetNotice(notice string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presentation = nil
	s.nav = nil
	s.notice = notice
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))

	r.Get("/", s.handlePage)
	r.Get("/health", s.handleHealth)
	r.Get("/state", s.handleState)
	r.Get("/slides/{index}", s.handleSlide)
	r.Post("/next", s.handleNext)
	r.Post("/prev", s.handlePrev)
	r.Post("/goto/{index}", s.handleGoto)

	s.router = r
}

// current returns the presentation and navigator under the read lock. Both are nil when showing a notice.
func (s *Server) current() (*mdshow.Presentation, *mdshow.Navigator, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.presentation, s.nav, s.notice
}
