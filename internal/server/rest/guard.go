package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/usermgmt/internal/common"
	"github.com/dmitrijs2005/usermgmt/internal/logging"
	"github.com/dmitrijs2005/usermgmt/internal/server/auth"
	"github.com/dmitrijs2005/usermgmt/internal/server/models"
)

type ctxKey string

const authUserKey ctxKey = "authUser"

// WithAuthUser returns a copy of ctx carrying user.
func WithAuthUser(ctx context.Context, user models.AuthUser) context.Context {
	return context.WithValue(ctx, authUserKey, user)
}

// AuthUserFromContext returns the identity a guard attached to the request.
func AuthUserFromContext(ctx context.Context) (models.AuthUser, bool) {
	user, ok := ctx.Value(authUserKey).(models.AuthUser)
	return user, ok
}

// TokenVerifier validates an Authorization header value.
type TokenVerifier interface {
	VerifyBearer(header string) (*auth.Claims, error)
}

// Guard decides whether a request may reach a protected handler.
//
// Outcomes:
//   - no Authorization header: denied, nil error
//   - header or token rejected: error wrapping common.ErrorForbidden
//   - identity incomplete or role not allowed: denied, nil error
//   - otherwise granted with the token's identity
type Guard struct {
	name     string
	verifier TokenVerifier
	allow    func(models.AuthUser) bool
	logger   logging.Logger
}

// UserGuard admits any holder of a valid token with a complete identity.
func UserGuard(v TokenVerifier, logger logging.Logger) *Guard {
	return &Guard{
		name:     "user",
		verifier: v,
		allow:    func(models.AuthUser) bool { return true },
		logger:   logger,
	}
}

// AdminGuard admits only tokens whose role is ADMIN.
func AdminGuard(v TokenVerifier, logger logging.Logger) *Guard {
	return &Guard{
		name:     "admin",
		verifier: v,
		allow:    func(u models.AuthUser) bool { return u.Role == models.RoleAdmin },
		logger:   logger,
	}
}

// Evaluate applies the guard to a raw Authorization header value.
func (g *Guard) Evaluate(header string) (models.AuthUser, bool, error) {
	if header == "" {
		return models.AuthUser{}, false, nil
	}

	claims, err := g.verifier.VerifyBearer(header)
	if err != nil {
		return models.AuthUser{}, false, fmt.Errorf("%w: %w", common.ErrorForbidden, err)
	}

	user := claims.AuthUser()
	if !user.Complete() {
		return models.AuthUser{}, false, nil
	}
	if !g.allow(user) {
		return models.AuthUser{}, false, nil
	}

	return user, true, nil
}

// Check evaluates the guard against r's Authorization header.
func (g *Guard) Check(r *http.Request) (models.AuthUser, bool, error) {
	return g.Evaluate(r.Header.Get(common.AuthorizationHeaderName))
}

// Middleware rejects requests the guard does not grant with 403 and stores the
// identity in the request context otherwise.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user, granted, err := g.Check(r)
		if err != nil {
			g.logger.Error(ctx, "access token rejected", "guard", g.name, "path", r.URL.Path, "error", err)
			writeError(w, http.StatusForbidden, "wrong access token")
			return
		}
		if !granted {
			g.logger.Warn(ctx, "access denied", "guard", g.name, "path", r.URL.Path)
			writeError(w, http.StatusForbidden, "forbidden resource")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithAuthUser(ctx, user)))
	})
}
