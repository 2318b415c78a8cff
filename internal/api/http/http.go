// Package httpapi serves the backoffice JSON API: a public health probe,
// the operator login endpoint and the JWT-gated dashboard snapshot.
package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"

	"github.com/smashlab/racquet-manager/internal/apisrv/auth"
	"github.com/smashlab/racquet-manager/internal/entity"
	"github.com/smashlab/racquet-manager/internal/middleware"
)

// Config is the configuration for the http server
type Config struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SnapshotProvider hands out dashboard snapshots; in production it is the
// TTL cache over the snapshot builder.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*entity.Snapshot, error)
}

// Pinger reports storage liveness for the health probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the http server
type Server struct {
	hs    *http.Server
	c     *Config
	auth  *auth.Service
	snaps SnapshotProvider
	db    Pinger
	done  chan struct{}
}

// New creates a new server
func New(c *Config, authSvc *auth.Service, snaps SnapshotProvider, db Pinger) *Server {
	return &Server{
		c:     c,
		auth:  authSvc,
		snaps: snaps,
		db:    db,
		done:  make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.ClientIdentifier)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.c.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Use(httprate.Limit(
		60,          // requests
		time.Minute, // per duration
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
		}),
	))

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(s.auth.JWT()))
		r.Use(jwtauth.Authenticator)

		r.Get("/api/admin/dashboard", s.handleDashboard)
	})

	return r
}

// Start starts the server. It returns once the listener is up; the Done
// channel closes when the server exits.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:              addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Default().InfoContext(ctx, "racquet-manager listening",
			slog.String("addr", addr),
		)
		err := s.hs.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			slog.Default().ErrorContext(ctx, "http server exited",
				slog.String("err", err.Error()),
			)
		}
		close(s.done)
	}()

	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	return s.hs.Shutdown(ctx)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Default().InfoContext(r.Context(), "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.String("ip", middleware.GetClientIP(r.Context())),
			slog.Duration("took", time.Since(start)),
		)
	})
}
