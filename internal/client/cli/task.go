package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/avasiliev/taskkeeper/internal/client/api"
)

func printTasks(tasks []api.Task) {
	if len(tasks) == 0 {
		printlnFn("No tasks")
		return
	}
	for _, t := range tasks {
		mark := " "
		if t.Done {
			mark = "x"
		}
		printlnFn(fmt.Sprintf("[%s] %d (owner %d): %s", mark, t.ID, t.UserID, t.Title))
	}
}

func (a *App) promptTaskID() (int64, error) {
	raw, err := getSimpleText(a.reader, "Enter task id", os.Stdout)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		printlnFn("Not a valid id:", raw)
		return 0, err
	}
	return id, nil
}

// List prints every task on the server.
func (a *App) List(ctx context.Context) error {
	tasks, err := a.api.ListTasks(ctx, nil)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printTasks(tasks)
	return nil
}

// Mine prints only the tasks owned by the logged-in user.
func (a *App) Mine(ctx context.Context) error {
	identity, err := a.api.Status(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	tasks, err := a.api.ListTasks(ctx, &identity.ID)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printTasks(tasks)
	return nil
}

// Add prompts for a title and creates a task owned by the caller.
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter task title", os.Stdout)
	if err != nil {
		return err
	}

	task, err := a.api.CreateTask(ctx, title)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Created task", task.ID)
	return nil
}

// Done marks one of the caller's tasks as completed.
func (a *App) Done(ctx context.Context) error {
	id, err := a.promptTaskID()
	if err != nil {
		return err
	}

	done := true
	if _, err := a.api.UpdateTask(ctx, id, nil, &done); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Done!")
	return nil
}

// Remove deletes one of the caller's tasks.
func (a *App) Remove(ctx context.Context) error {
	id, err := a.promptTaskID()
	if err != nil {
		return err
	}

	if err := a.api.DeleteTask(ctx, id); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Removed")
	return nil
}
