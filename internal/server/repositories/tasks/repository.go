package tasks

import (
	"context"

	"github.com/avasiliev/taskkeeper/internal/server/models"
)

// Repository is the task store. Owner-scoped mutations are single
// conditional statements: the id/owner match and the mutation happen
// atomically, never as a separate read followed by a write.
type Repository interface {
	Create(ctx context.Context, ownerID int64, title string) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	List(ctx context.Context) ([]*models.Task, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Task, error)
	UpdateWhereOwner(ctx context.Context, id, ownerID int64, patch *models.TaskPatch) (*models.Task, error)
	DeleteWhereOwner(ctx context.Context, id, ownerID int64) (*models.Task, error)
	DeleteByOwner(ctx context.Context, ownerID int64) (int64, error)
}
