package users

import (
	"context"

	"github.com/avasiliev/taskkeeper/internal/server/models"
)

// Repository is the user store. Mutating operations receive an already
// hashed password digest; plaintext never reaches this layer.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	UpdateByID(ctx context.Context, id int64, patch *models.UserPatch) (*models.User, error)
	DeleteByID(ctx context.Context, id int64) (*models.User, error)
}
