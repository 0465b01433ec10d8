package users

import (
	"context"

	"github.com/dmitrijs2005/usermgmt/internal/server/models"
)

// Repository persists user records. Lookups that match nothing return
// common.ErrorNotFound; email collisions return common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
