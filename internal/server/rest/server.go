// Package rest exposes the user management API over HTTP using chi.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/usermgmt/internal/logging"
	"github.com/dmitrijs2005/usermgmt/internal/server/models"
	"github.com/dmitrijs2005/usermgmt/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

// UserService is the subset of services.UserService the handlers use.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	UpdateByID(ctx context.Context, id string, in services.UpdateInput) (*models.User, error)
	DeleteByID(ctx context.Context, id string) (*models.User, error)
}

// AuthService is the subset of services.AuthService the handlers use.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
}

type HTTPServer struct {
	address    string
	users      UserService
	auth       AuthService
	userGuard  *Guard
	adminGuard *Guard
	logger     logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, us UserService, as AuthService, v TokenVerifier) *HTTPServer {
	logger := l.With("module", "http_server")
	return &HTTPServer{
		address:    a,
		users:      us,
		auth:       as,
		userGuard:  UserGuard(v, logger),
		adminGuard: AdminGuard(v, logger),
		logger:     logger,
	}
}

// Router builds the route tree.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(recoveryMiddleware(s.logger))
	r.Use(loggingMiddleware(s.logger))

	r.Get("/healthz", s.health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", s.login)

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", s.register)

			r.Group(func(r chi.Router) {
				r.Use(s.userGuard.Middleware)
				r.Get("/me", s.me)
				r.Put("/", s.updateMe)
			})
		})

		r.Route("/admin/users", func(r chi.Router) {
			r.Use(s.adminGuard.Middleware)
			r.Get("/", s.listUsers)
			r.Put("/{id}", s.updateUser)
			r.Delete("/{id}", s.deleteUser)
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *HTTPServer) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-done
	return nil
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
