package http

import (
	"net/http"
	"strconv"

	"github.com/avasiliev/taskkeeper/internal/server/auth"
	"github.com/avasiliev/taskkeeper/internal/server/models"
	"github.com/avasiliev/taskkeeper/internal/server/services"
	"github.com/labstack/echo/v4"
)

func (s *HTTPServer) register(e *echo.Echo) {
	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/login", s.login)
	authGroup.GET("/status", s.status, s.requireAuth)

	usersGroup := api.Group("/users")
	usersGroup.POST("", s.registerUser)
	usersGroup.GET("", s.listUsers)
	usersGroup.GET("/me", s.me, s.requireAuth)
	usersGroup.PATCH("/me", s.updateProfile, s.requireAuth)
	usersGroup.DELETE("/me", s.deleteAccount, s.requireAuth)
	usersGroup.GET("/:id", s.getUser)

	tasksGroup := api.Group("/tasks")
	tasksGroup.GET("", s.listTasks)
	tasksGroup.POST("", s.createTask, s.requireAuth)
	tasksGroup.GET("/:id", s.getTask)
	tasksGroup.PATCH("/:id", s.updateTask, s.requireAuth)
	tasksGroup.DELETE("/:id", s.deleteTask, s.requireAuth)
}

// identityFrom returns the identity placed on the context by requireAuth.
// A handler registered behind the middleware should never see the missing
// case; it is still a 401, never a default user.
func identityFrom(c echo.Context) (*auth.Identity, error) {
	identity, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return identity, nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// --- auth ---

func (s *HTTPServer) login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	token, err := s.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return translate(err)
	}

	return c.JSON(http.StatusOK, loginResponse{AccessToken: token})
}

func (s *HTTPServer) status(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identityResponse{ID: identity.ID, Email: identity.Email})
}

// --- users ---

func (s *HTTPServer) registerUser(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	u, err := s.users.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return translate(err)
	}

	s.logger.Info(c.Request().Context(), "user registered", "email", u.Email)
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

func (s *HTTPServer) listUsers(c echo.Context) error {
	us, err := s.users.ListUsers(c.Request().Context())
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, toUserResponses(us))
}

func (s *HTTPServer) getUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	u, err := s.users.GetUser(c.Request().Context(), id)
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

func (s *HTTPServer) me(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	u, err := s.users.GetUser(c.Request().Context(), identity.ID)
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

func (s *HTTPServer) updateProfile(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	var req profileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	u, err := s.users.UpdateProfile(c.Request().Context(), identity.ID, &services.ProfilePatch{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

func (s *HTTPServer) deleteAccount(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	if _, err := s.users.DeleteAccount(c.Request().Context(), identity.ID); err != nil {
		return translate(err)
	}

	s.logger.Info(c.Request().Context(), "account deleted", "id", identity.ID)
	return c.NoContent(http.StatusNoContent)
}

// --- tasks ---

func (s *HTTPServer) listTasks(c echo.Context) error {
	var ownerFilter *int64
	if raw := c.QueryParam("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
		}
		ownerFilter = &id
	}

	ts, err := s.tasks.ListTasks(c.Request().Context(), ownerFilter)
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, toTaskResponses(ts))
}

func (s *HTTPServer) getTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	task, err := s.tasks.GetTask(c.Request().Context(), id)
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

func (s *HTTPServer) createTask(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	task, err := s.tasks.CreateTask(c.Request().Context(), identity.ID, req.Title)
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusCreated, toTaskResponse(task))
}

func (s *HTTPServer) updateTask(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req taskUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	task, err := s.tasks.UpdateTask(c.Request().Context(), id, identity.ID, &models.TaskPatch{
		Title: req.Title,
		Done:  req.Done,
	})
	if err != nil {
		return translate(err)
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

func (s *HTTPServer) deleteTask(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if _, err := s.tasks.DeleteTask(c.Request().Context(), id, identity.ID); err != nil {
		return translate(err)
	}
	return c.NoContent(http.StatusNoContent)
}
