// Package services contains server-side business logic. This file implements
// AuthService, which exchanges credentials for a pair of signed tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/usermgmt/internal/common"
	"github.com/dmitrijs2005/usermgmt/internal/cryptox"
	"github.com/dmitrijs2005/usermgmt/internal/logging"
	"github.com/dmitrijs2005/usermgmt/internal/server/auth"
	"github.com/dmitrijs2005/usermgmt/internal/server/config"
	"github.com/dmitrijs2005/usermgmt/internal/server/models"
	"github.com/dmitrijs2005/usermgmt/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
// Both carry the same identity and differ only in expiry.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenIssuer signs an identity into a token valid for the given duration.
type TokenIssuer interface {
	Issue(user models.AuthUser, validity time.Duration) (string, error)
}

type AuthService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	hasher                       models.PasswordHasher
	issuer                       TokenIssuer
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	logger                       logging.Logger
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *AuthService {
	return &AuthService{
		db:                           db,
		repomanager:                  m,
		hasher:                       cryptox.NewHasher(cfg.SaltBits, cfg.KDFParams()),
		issuer:                       auth.NewIssuer([]byte(cfg.SecretKey)),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		logger:                       logger,
	}
}

// Login verifies email and password and returns a fresh TokenPair.
// An unknown email and a wrong password both yield common.ErrorNotFound.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "login failed: unknown email", "email", email)
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "login failed: user lookup", "email", email, "error", err)
		return nil, common.ErrorInternal
	}

	if !user.CheckPassword(s.hasher, password) {
		s.logger.Warn(ctx, "login failed: wrong password", "user_id", user.ID)
		return nil, common.ErrorNotFound
	}

	pair, err := s.generateTokenPair(user.AuthUser())
	if err != nil {
		s.logger.Error(ctx, "login failed: signing tokens", "user_id", user.ID, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return pair, nil
}

func (s *AuthService) generateTokenPair(identity models.AuthUser) (*TokenPair, error) {
	access, err := s.issuer.Issue(identity, s.accessTokenValidityDuration)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issuer.Issue(identity, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
