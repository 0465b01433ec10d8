package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/usermgmt/internal/common"
	"github.com/dmitrijs2005/usermgmt/internal/cryptox"
	"github.com/dmitrijs2005/usermgmt/internal/dbx"
	"github.com/dmitrijs2005/usermgmt/internal/logging"
	"github.com/dmitrijs2005/usermgmt/internal/server/config"
	"github.com/dmitrijs2005/usermgmt/internal/server/models"
	"github.com/dmitrijs2005/usermgmt/internal/server/repositories/repomanager"
)

// RegisterInput carries the fields accepted for a new account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// UpdateInput is a partial update; nil fields are left as they are.
type UpdateInput struct {
	Email    *string
	Name     *string
	Password *string
	Role     *models.Role
}

// UserService manages user records: registration, lookup, update and removal.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      models.PasswordHasher
	logger      logging.Logger
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      cryptox.NewHasher(cfg.SaltBits, cfg.KDFParams()),
		logger:      logger,
	}
}

// Register creates a USER account. A taken email yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	return s.create(ctx, in, models.RoleUser)
}

// CreateAdmin creates an ADMIN account. Used to bootstrap the first administrator.
func (s *UserService) CreateAdmin(ctx context.Context, in RegisterInput) (*models.User, error) {
	return s.create(ctx, in, models.RoleAdmin)
}

func (s *UserService) create(ctx context.Context, in RegisterInput, role models.Role) (*models.User, error) {
	user := models.NewUser(in.Email, in.Name, role)
	user.SetPassword(s.hasher, in.Password)

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user created", "user_id", u.ID, "role", string(u.Role))
	return u, nil
}

// FindByID returns the user or common.ErrorNotFound.
func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	u, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return u, nil
}

// FindAll lists every user, oldest first.
func (s *UserService) FindAll(ctx context.Context) ([]*models.User, error) {
	repo := s.repomanager.Users(s.db)
	list, err := repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return list, nil
}

// UpdateByID applies in to the user inside a transaction. A new salt and hash
// are derived only when a password is supplied.
func (s *UserService) UpdateByID(ctx context.Context, id string, in UpdateInput) (*models.User, error) {
	if in.Role != nil && !in.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", common.ErrorValidation, string(*in.Role))
	}

	var updated *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		u, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if in.Email != nil {
			u.Email = *in.Email
		}
		if in.Name != nil {
			u.Name = *in.Name
		}
		if in.Role != nil {
			u.Role = *in.Role
		}
		if in.Password != nil {
			u.SetPassword(s.hasher, *in.Password)
		}

		updated, err = repo.Update(ctx, u)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return nil, common.ErrorNotFound
		case errors.Is(err, common.ErrorAlreadyExists):
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	s.logger.Info(ctx, "user updated", "user_id", id)
	return updated, nil
}

// DeleteByID removes the user and returns the record as it was.
func (s *UserService) DeleteByID(ctx context.Context, id string) (*models.User, error) {
	var deleted *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		u, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		deleted = u
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error deleting user: %w", err)
	}

	s.logger.Info(ctx, "user deleted", "user_id", id)
	return deleted, nil
}
