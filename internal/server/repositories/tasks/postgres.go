// Package tasks provides the PostgreSQL-backed task repository.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avasiliev/taskkeeper/internal/common"
	"github.com/avasiliev/taskkeeper/internal/dbx"
	"github.com/avasiliev/taskkeeper/internal/server/models"
)

// PostgresRepository implements task storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a task stamped with ownerID. The owner comes from the
// authenticated identity; callers cannot choose it.
func (r *PostgresRepository) Create(ctx context.Context, ownerID int64, title string) (*models.Task, error) {

	query :=
		`INSERT INTO tasks (user_id, title)
		 VALUES ($1, $2)
		 RETURNING id, user_id, title, done, created_at, updated_at
		 `

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, ownerID, title).Scan(
		&task.ID, &task.UserID, &task.Title, &task.Done, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

// GetByID returns the task with the given id or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	query :=
		`SELECT id, user_id, title, done, created_at, updated_at FROM tasks
		 WHERE id = $1
		 `

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.UserID, &task.Title, &task.Done, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

// List returns all tasks ordered by id.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Task, error) {
	query :=
		`SELECT id, user_id, title, done, created_at, updated_at FROM tasks
		 ORDER BY id
		 `
	return r.queryTasks(ctx, query)
}

// ListByOwner returns all tasks owned by ownerID ordered by id.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Task, error) {
	query :=
		`SELECT id, user_id, title, done, created_at, updated_at FROM tasks
		 WHERE user_id = $1
		 ORDER BY id
		 `
	return r.queryTasks(ctx, query, ownerID)
}

// UpdateWhereOwner applies a partial update to the task only when both id
// and owner match, in one atomic statement. Zero matched rows surface as
// common.ErrorNotFound whether the id is absent or the task belongs to
// someone else; the two cases are indistinguishable on purpose.
func (r *PostgresRepository) UpdateWhereOwner(ctx context.Context, id, ownerID int64, patch *models.TaskPatch) (*models.Task, error) {
	query :=
		`UPDATE tasks
		 SET title = COALESCE($3, title),
		     done = COALESCE($4, done),
		     updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, done, created_at, updated_at
		 `

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID, patch.Title, patch.Done).Scan(
		&task.ID, &task.UserID, &task.Title, &task.Done, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

// DeleteWhereOwner deletes the task only when both id and owner match, in
// one atomic statement, and returns the removed record. Zero matched rows
// surface as common.ErrorNotFound, same as UpdateWhereOwner.
func (r *PostgresRepository) DeleteWhereOwner(ctx context.Context, id, ownerID int64) (*models.Task, error) {
	query :=
		`DELETE FROM tasks
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, done, created_at, updated_at
		 `

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&task.ID, &task.UserID, &task.Title, &task.Done, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

// DeleteByOwner removes every task owned by ownerID and reports how many
// rows went away. Used inside the account-deletion transaction.
func (r *PostgresRepository) DeleteByOwner(ctx context.Context, ownerID int64) (int64, error) {
	query := `DELETE FROM tasks WHERE user_id = $1`

	res, err := r.db.ExecContext(ctx, query, ownerID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) queryTasks(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Done, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
