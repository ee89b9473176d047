package services

import (
	"context"
	"database/sql"

	"github.com/avasiliev/taskkeeper/internal/server/models"
	"github.com/avasiliev/taskkeeper/internal/server/repositories/repomanager"
)

// TaskService provides task operations. Reads are public; every mutation is
// scoped to the owner taken from the verified token, so a caller can only
// touch their own tasks.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTaskService constructs a TaskService over the given repositories.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// ListTasks returns all tasks, or only those owned by *ownerFilter when the
// filter is set.
func (s *TaskService) ListTasks(ctx context.Context, ownerFilter *int64) ([]*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	if ownerFilter != nil {
		return repo.ListByOwner(ctx, *ownerFilter)
	}
	return repo.List(ctx)
}

// GetTask returns the task with the given id or common.ErrorNotFound.
func (s *TaskService) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	return repo.GetByID(ctx, id)
}

// CreateTask inserts a task owned by ownerID, which comes from the verified
// token rather than the request body.
func (s *TaskService) CreateTask(ctx context.Context, ownerID int64, title string) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	return repo.Create(ctx, ownerID, title)
}

// UpdateTask patches the task, matching id and owner in one statement. A
// task that is absent or owned by someone else comes back as
// common.ErrorNotFound either way.
func (s *TaskService) UpdateTask(ctx context.Context, id, ownerID int64, patch *models.TaskPatch) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	return repo.UpdateWhereOwner(ctx, id, ownerID, patch)
}

// DeleteTask removes the task, matching id and owner in one statement, with
// the same not-found collapsing as UpdateTask.
func (s *TaskService) DeleteTask(ctx context.Context, id, ownerID int64) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	return repo.DeleteWhereOwner(ctx, id, ownerID)
}
