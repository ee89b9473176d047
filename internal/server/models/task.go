package models

import "time"

// Task is a task item owned by a single user.
type Task struct {
	ID        int64
	UserID    int64
	Title     string
	Done      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskPatch describes a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	Title *string
	Done  *bool
}
