// Package api implements the HTTP client for the TaskKeeper server API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avasiliev/taskkeeper/internal/common"
)

// ErrUnavailable marks transport-level failures: the server could not be
// reached at all, as opposed to answering with an error status.
var ErrUnavailable = errors.New("server unavailable")

// User is the public user record as the server returns it.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Task mirrors the server task shape.
type Task struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Identity is the subject of the current access token.
type Identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Client talks to one TaskKeeper server. It remembers the access token from
// the last successful login and attaches it to subsequent requests. Not safe
// for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New builds a Client for the server at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// IsLoggedIn reports whether a login token is held. The token may still be
// expired; the server is the authority.
func (c *Client) IsLoggedIn() bool {
	return c.token != ""
}

// Logout drops the held token.
func (c *Client) Logout() {
	c.token = ""
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerSchemePrefix+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrorNotFound
	case resp.StatusCode == http.StatusConflict:
		return common.ErrorAlreadyExists
	case resp.StatusCode >= 400:
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, email, password string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPost, "/api/users", credentials{Email: email, Password: password}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login authenticates and stores the returned access token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", credentials{Email: email, Password: password}, &resp); err != nil {
		return err
	}
	c.token = resp.AccessToken
	return nil
}

// Status asks the server who the current token belongs to.
func (c *Client) Status(ctx context.Context) (*Identity, error) {
	var identity Identity
	if err := c.do(ctx, http.MethodGet, "/api/auth/status", nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// ListUsers returns all registered users.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var us []User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &us); err != nil {
		return nil, err
	}
	return us, nil
}

// GetUser fetches one user by id.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Me returns the caller's own profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

type profilePatch struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UpdateProfile changes the caller's own email and/or password.
func (c *Client) UpdateProfile(ctx context.Context, email, password *string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPatch, "/api/users/me", profilePatch{Email: email, Password: password}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteAccount removes the caller's account and drops the token.
func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/api/users/me", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// ListTasks returns tasks, optionally filtered to one owner.
func (c *Client) ListTasks(ctx context.Context, ownerID *int64) ([]Task, error) {
	path := "/api/tasks"
	if ownerID != nil {
		path = fmt.Sprintf("%s?user_id=%d", path, *ownerID)
	}
	var ts []Task
	if err := c.do(ctx, http.MethodGet, path, nil, &ts); err != nil {
		return nil, err
	}
	return ts, nil
}

// GetTask fetches one task by id.
func (c *Client) GetTask(ctx context.Context, id int64) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/tasks/%d", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

type createTaskRequest struct {
	Title string `json:"title"`
}

// CreateTask adds a task owned by the caller.
func (c *Client) CreateTask(ctx context.Context, title string) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", createTaskRequest{Title: title}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

type taskPatch struct {
	Title *string `json:"title,omitempty"`
	Done  *bool   `json:"done,omitempty"`
}

// UpdateTask patches one of the caller's own tasks.
func (c *Client) UpdateTask(ctx context.Context, id int64, title *string, done *bool) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/tasks/%d", id), taskPatch{Title: title, Done: done}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes one of the caller's own tasks.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), nil, nil)
}
