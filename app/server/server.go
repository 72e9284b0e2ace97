// Package server provides HTTP server for the login and greeting flow.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/greet/app/server/auth"
)

// Server represents the HTTP server.
type Server struct {
	Deps
	Config
}

// Config holds server configuration. Zero limits and shutdown timeout are replaced
// with defaults by New.
type Config struct {
	Address  string
	Version  string
	BaseURL  string // mount prefix, e.g. /greet, empty for root
	PageFile string // html page for visitors without a login, rendered per request

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	BodySizeLimit  int64   // bytes
	RequestsPerSec float64 // per client ip, also used as burst
	MaxConcurrent  int64   // in-flight requests

	AuditEnabled bool
}

// Deps holds server dependencies.
type Deps struct {
	Auth *auth.Service
}

// New makes a Server for the given auth service and page file.
func New(deps Deps, cfg Config) (*Server, error) {
	if deps.Auth == nil {
		return nil, errors.New("auth service is required")
	}
	if cfg.PageFile == "" {
		return nil, errors.New("page file is required")
	}
	cfg.ShutdownTimeout = orDefault(cfg.ShutdownTimeout, 5*time.Second)
	cfg.BodySizeLimit = orDefault(cfg.BodySizeLimit, 64*1024)
	cfg.RequestsPerSec = orDefault(cfg.RequestsPerSec, 100)
	cfg.MaxConcurrent = orDefault(cfg.MaxConcurrent, 1000)
	return &Server{Deps: deps, Config: cfg}, nil
}

// Run starts the HTTP server and blocks until context is canceled.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.Address,
		Handler:           s.handler(),
		ReadHeaderTimeout: s.ReadTimeout,
		WriteTimeout:      s.WriteTimeout,
		IdleTimeout:       s.IdleTimeout,
	}

	// graceful shutdown
	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] shutdown error: %v", err)
		}
	}()

	listener, err := net.Listen("tcp", s.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Address, err)
	}

	port := s.Address
	if addr, ok := listener.Addr().(*net.TCPAddr); ok {
		port = fmt.Sprintf("%d", addr.Port)
	}
	log.Printf("[INFO] server is running on port %s, mode %s", port, s.Auth.Mode())

	if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// handler mounts routes under BaseURL. The bare prefix redirects to the prefix with a slash.
func (s *Server) handler() http.Handler {
	if s.BaseURL == "" {
		return s.routes()
	}
	mux := http.NewServeMux()
	mux.Handle(s.BaseURL, http.RedirectHandler(s.url("/"), http.StatusMovedPermanently))
	mux.Handle(s.url("/"), http.StripPrefix(s.BaseURL, s.routes()))
	return mux
}

// routes builds the router. Every path goes to dispatch.
func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())
	router.Use(
		rest.Recoverer(log.Default()),
		rest.RealIP, // sets RemoteAddr, limiter keys on it
		limitByIP(s.RequestsPerSec),
		rest.Throttle(s.MaxConcurrent),
		rest.Trace,
		rest.SizeLimit(s.BodySizeLimit),
		rest.AppInfo("greet", "umputun", s.Version),
		s.Auth.UserMiddleware,
		s.auditMiddleware,
	)
	router.HandleFunc("/", s.dispatch)
	return router
}

// limitByIP allows rps requests per second from each client ip.
func limitByIP(rps float64) func(http.Handler) http.Handler {
	lmt := tollbooth.NewLimiter(rps, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr"})
	lmt.SetBurst(int(rps))
	return func(next http.Handler) http.Handler {
		return tollbooth.LimitHandler(lmt, next)
	}
}

// url prefixes path with the base URL.
func (s *Server) url(path string) string {
	return s.BaseURL + path
}

func orDefault[T int64 | float64 | time.Duration](v, def T) T {
	if v > 0 {
		return v
	}
	return def
}
