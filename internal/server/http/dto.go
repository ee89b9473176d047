package http

import (
	"time"

	"github.com/avasiliev/taskkeeper/internal/server/models"
)

// credentialsRequest is shared by registration and login.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type identityResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// userResponse is the public shape of a user. The password digest stays
// server-side; it has no field here at all.
type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(us []*models.User) []userResponse {
	result := make([]userResponse, 0, len(us))
	for _, u := range us {
		result = append(result, toUserResponse(u))
	}
	return result
}

type profileUpdateRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type taskResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toTaskResponse(t *models.Task) taskResponse {
	return taskResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		Title:     t.Title,
		Done:      t.Done,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toTaskResponses(ts []*models.Task) []taskResponse {
	result := make([]taskResponse, 0, len(ts))
	for _, t := range ts {
		result = append(result, toTaskResponse(t))
	}
	return result
}

type createTaskRequest struct {
	Title string `json:"title"`
}

type taskUpdateRequest struct {
	Title *string `json:"title"`
	Done  *bool   `json:"done"`
}
