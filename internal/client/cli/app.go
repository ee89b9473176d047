// Package cli implements the interactive TaskKeeper command-line client.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/avasiliev/taskkeeper/internal/client/api"
	"github.com/avasiliev/taskkeeper/internal/client/config"
)

// apiClient is the server API surface the CLI needs. The real api.Client
// satisfies it; tests can provide a stub.
type apiClient interface {
	IsLoggedIn() bool
	Logout()
	Register(ctx context.Context, email, password string) (*api.User, error)
	Login(ctx context.Context, email, password string) error
	Status(ctx context.Context) (*api.Identity, error)
	Me(ctx context.Context) (*api.User, error)
	UpdateProfile(ctx context.Context, email, password *string) (*api.User, error)
	DeleteAccount(ctx context.Context) error
	ListTasks(ctx context.Context, ownerID *int64) ([]api.Task, error)
	CreateTask(ctx context.Context, title string) (*api.Task, error)
	UpdateTask(ctx context.Context, id int64, title *string, done *bool) (*api.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

type App struct {
	config *config.Config
	api    apiClient
	reader *bufio.Reader
	email  string
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.New(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) isLoggedIn() bool {
	return a.api.IsLoggedIn()
}

func (a *App) getStatus() string {
	if a.email == "" {
		return ""
	}
	return "(" + a.email + ")"
}

func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to TaskKeeper CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
