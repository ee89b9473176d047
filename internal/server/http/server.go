// Package http exposes the TaskKeeper API over HTTP/JSON.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avasiliev/taskkeeper/internal/logging"
	"github.com/avasiliev/taskkeeper/internal/server/auth"
	"github.com/avasiliev/taskkeeper/internal/server/models"
	"github.com/avasiliev/taskkeeper/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

type userSvc interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateProfile(ctx context.Context, ownerID int64, patch *services.ProfilePatch) (*models.User, error)
	DeleteAccount(ctx context.Context, ownerID int64) (*models.User, error)
}

type taskSvc interface {
	ListTasks(ctx context.Context, ownerFilter *int64) ([]*models.Task, error)
	GetTask(ctx context.Context, id int64) (*models.Task, error)
	CreateTask(ctx context.Context, ownerID int64, title string) (*models.Task, error)
	UpdateTask(ctx context.Context, id, ownerID int64, patch *models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id, ownerID int64) (*models.Task, error)
}

type HTTPServer struct {
	address string
	users   userSvc
	tasks   taskSvc
	logger  logging.Logger
	tokens  *auth.TokenValidator
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, ts *services.TaskService, secretKey string) (*HTTPServer, error) {
	return &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		tasks:   ts,
		tokens:  auth.NewTokenValidator([]byte(secretKey)),
	}, nil
}

func (s *HTTPServer) newEcho() *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.OFF)

	e.Use(
		middleware.Recover(),
		middleware.RequestID(),
		s.logRequests(),
	)

	s.register(e)
	return e
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := s.newEcho()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
