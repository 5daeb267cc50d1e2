package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/isnorttestingpipelines/txm-web/internal/authapi"
	"github.com/isnorttestingpipelines/txm-web/internal/config"
	"github.com/isnorttestingpipelines/txm-web/internal/executor"
	"github.com/isnorttestingpipelines/txm-web/internal/logger"
	"github.com/isnorttestingpipelines/txm-web/internal/quotes"
	"github.com/isnorttestingpipelines/txm-web/internal/session"
	"github.com/isnorttestingpipelines/txm-web/internal/trading"
)

// Server is the JSON API the dashboard views talk to. It owns no state of
// its own: it reads the stores and dispatches user intents into them.
type Server struct {
	httpServer *http.Server
	sessions   *session.Store
	store      *trading.Store
	source     *quotes.Source
	auth       *authapi.Client
	executor   *executor.Executor
	config     *config.Config
	logger     *logger.Logger
}

func NewServer(
	sessions *session.Store,
	store *trading.Store,
	source *quotes.Source,
	auth *authapi.Client,
	exec *executor.Executor,
	cfg *config.Config,
	log *logger.Logger,
) *Server {
	s := &Server{
		sessions: sessions,
		store:    store,
		source:   source,
		auth:     auth,
		executor: exec,
		config:   cfg,
		logger:   log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)
	mux.HandleFunc("GET /api/session", s.handleSession)
	mux.HandleFunc("POST /api/session/apikey", s.requireAuth(s.handleAttachAPIKey))
	mux.HandleFunc("GET /api/setup", s.requireAuth(s.handleSetupStatus))
	mux.HandleFunc("POST /api/setup/complete", s.requireAuth(s.handleSetupComplete))

	mux.HandleFunc("GET /api/portfolio", s.requireAuth(s.handlePortfolio))
	mux.HandleFunc("GET /api/quotes/{symbol}", s.requireAuth(s.handleQuote))
	mux.HandleFunc("GET /api/quotes/{symbol}/intraday", s.requireAuth(s.handleIntraday))
	mux.HandleFunc("GET /api/quotes/{symbol}/daily", s.requireAuth(s.handleDaily))
	mux.HandleFunc("GET /api/watchlist", s.requireAuth(s.handleWatchlist))
	mux.HandleFunc("POST /api/watchlist", s.requireAuth(s.handleWatchlistAdd))
	mux.HandleFunc("DELETE /api/watchlist/{symbol}", s.requireAuth(s.handleWatchlistRemove))
	mux.HandleFunc("GET /api/selection", s.requireAuth(s.handleSelection))
	mux.HandleFunc("PUT /api/selection", s.requireAuth(s.handleSelect))
	mux.HandleFunc("DELETE /api/selection", s.requireAuth(s.handleClearSelection))
	mux.HandleFunc("POST /api/orders", s.requireAuth(s.handlePlaceOrder))
	mux.HandleFunc("POST /api/orders/{id}/cancel", s.requireAuth(s.handleCancelOrder))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Web.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return s
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	s.logger.Info("web server starting", "port", s.config.Web.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.sessions.IsAuthenticated() {
			writeError(w, http.StatusUnauthorized, fmt.Errorf("not authenticated"))
			return
		}
		next(w, r)
	}
}
