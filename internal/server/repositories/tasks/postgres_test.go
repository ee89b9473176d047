package tasks

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avasiliev/taskkeeper/internal/common"
	"github.com/avasiliev/taskkeeper/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func taskRows(tasks ...*models.Task) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "done", "created_at", "updated_at"})
	for _, tk := range tasks {
		rows.AddRow(tk.ID, tk.UserID, tk.Title, tk.Done, tk.CreatedAt, tk.UpdatedAt)
	}
	return rows
}

func TestCreate_StampsOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	q := regexp.MustCompile(`INSERT INTO tasks \(user_id, title\)`)

	mock.ExpectQuery(q.String()).
		WithArgs(int64(7), "buy milk").
		WillReturnRows(taskRows(&models.Task{ID: 1, UserID: 7, Title: "buy milk", CreatedAt: now, UpdatedAt: now}))

	task, err := repo.Create(context.Background(), 7, "buy milk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != 1 || task.UserID != 7 || task.Done {
		t.Fatalf("unexpected task: %+v", task)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.MustCompile(`INSERT INTO tasks \(user_id, title\)`)

	mock.ExpectQuery(q.String()).
		WithArgs(int64(7), "buy milk").
		WillReturnError(errors.New("db is down"))

	_, err := repo.Create(context.Background(), 7, "buy milk")
	if err == nil || !regexp.MustCompile(`db error: .*db is down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	q := regexp.MustCompile(`SELECT id, user_id, title, done, created_at, updated_at FROM tasks\s+WHERE id = \$1`)

	mock.ExpectQuery(q.String()).
		WithArgs(int64(3)).
		WillReturnRows(taskRows(&models.Task{ID: 3, UserID: 7, Title: "t", Done: true, CreatedAt: now, UpdatedAt: now}))

	task, err := repo.GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != 3 || !task.Done {
		t.Fatalf("unexpected task: %+v", task)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.MustCompile(`SELECT id, user_id, title, done, created_at, updated_at FROM tasks\s+WHERE id = \$1`)

	mock.ExpectQuery(q.String()).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestList_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	q := regexp.MustCompile(`SELECT id, user_id, title, done, created_at, updated_at FROM tasks\s+ORDER BY id`)

	mock.ExpectQuery(q.String()).
		WillReturnRows(taskRows(
			&models.Task{ID: 1, UserID: 7, Title: "a", CreatedAt: now, UpdatedAt: now},
			&models.Task{ID: 2, UserID: 9, Title: "b", CreatedAt: now, UpdatedAt: now},
		))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[1].UserID != 9 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListByOwner_FiltersByOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	q := regexp.MustCompile(`SELECT id, user_id, title, done, created_at, updated_at FROM tasks\s+WHERE user_id = \$1\s+ORDER BY id`)

	mock.ExpectQuery(q.String()).
		WithArgs(int64(7)).
		WillReturnRows(taskRows(&models.Task{ID: 1, UserID: 7, Title: "a", CreatedAt: now, UpdatedAt: now}))

	got, err := repo.ListByOwner(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].UserID != 7 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListByOwner_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.MustCompile(`SELECT id, user_id, title, done, created_at, updated_at FROM tasks\s+WHERE user_id = \$1\s+ORDER BY id`)

	mock.ExpectQuery(q.String()).
		WithArgs(int64(7)).
		WillReturnRows(taskRows())

	got, err := repo.ListByOwner(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestUpdateWhereOwner_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	done := true

	q := regexp.MustCompile(`UPDATE tasks\s+SET title = COALESCE\(\$3, title\),\s+done = COALESCE\(\$4, done\),\s+updated_at = now\(\)\s+WHERE id = \$1 AND user_id = \$2\s+RETURNING`)

	mock.ExpectQuery(q.String()).
		WithArgs(int64(3), int64(7), (*string)(nil), &done).
		WillReturnRows(taskRows(&models.Task{ID: 3, UserID: 7, Title: "t", Done: true, CreatedAt: now, UpdatedAt: now}))

	task, err := repo.UpdateWhereOwner(context.Background(), 3, 7, &models.TaskPatch{Done: &done})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !task.Done || task.Title != "t" {
		t.Fatalf("unexpected task: %+v", task)
	}
}

func TestUpdateWhereOwner_WrongOwnerLooksAbsent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	done := true
	q := regexp.MustCompile(`UPDATE tasks\s+SET title = COALESCE`)

	mock.ExpectQuery(q.String()).
		WithArgs(int64(3), int64(8), (*string)(nil), &done).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateWhereOwner(context.Background(), 3, 8, &models.TaskPatch{Done: &done})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestDeleteWhereOwner_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	q := regexp.MustCompile(`DELETE FROM tasks\s+WHERE id = \$1 AND user_id = \$2\s+RETURNING`)

	mock.ExpectQuery(q.String()).
		WithArgs(int64(3), int64(7)).
		WillReturnRows(taskRows(&models.Task{ID: 3, UserID: 7, Title: "t", CreatedAt: now, UpdatedAt: now}))

	task, err := repo.DeleteWhereOwner(context.Background(), 3, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != 3 {
		t.Fatalf("unexpected task: %+v", task)
	}
}

func TestDeleteWhereOwner_WrongOwnerLooksAbsent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.MustCompile(`DELETE FROM tasks\s+WHERE id = \$1 AND user_id = \$2\s+RETURNING`)

	mock.ExpectQuery(q.String()).
		WithArgs(int64(3), int64(8)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.DeleteWhereOwner(context.Background(), 3, 8)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestDeleteByOwner_ReportsCount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.MustCompile(`DELETE FROM tasks WHERE user_id = \$1`)

	mock.ExpectExec(q.String()).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.DeleteByOwner(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 4 {
		t.Fatalf("want 4 rows, got %d", n)
	}
}

func TestDeleteByOwner_RowsAffectedError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.MustCompile(`DELETE FROM tasks WHERE user_id = \$1`)

	mock.ExpectExec(q.String()).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewErrorResult(errors.New("rows-err")))

	_, err := repo.DeleteByOwner(context.Background(), 7)
	if err == nil || !regexp.MustCompile(`rows affected error: .*rows-err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped rows affected error, got %v", err)
	}
}
