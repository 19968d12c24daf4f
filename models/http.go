package models

import "time"

// Request and response payloads exchanged over the REST API. Every inbound
// payload carries go-playground/validator tags and is validated at the HTTP
// boundary before it reaches the service layer.

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the body of POST /api/auth/register and of the
// account-creation alias POST /api/users.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RefreshRequest is the body of POST /api/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// TokenResponse is returned by login and refresh. RefreshToken rotates on
// every refresh.
type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// MessageResponse is a generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserUpdateRequest is the body of PUT /api/users/{id}. An empty Password
// leaves the stored credential untouched.
type UserUpdateRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// TaskRequest is the body of POST /api/tasks and PUT /api/tasks/{id}.
// The owning user is always taken from the caller's token, never from the
// payload.
type TaskRequest struct {
	Title        string     `json:"title" validate:"required,max=200"`
	Description  *string    `json:"description,omitempty"`
	LocationName string     `json:"location_name" validate:"required,max=200"`
	Latitude     float64    `json:"latitude" validate:"min=-90,max=90"`
	Longitude    float64    `json:"longitude" validate:"min=-180,max=180"`
	TaskTime     time.Time  `json:"task_time" validate:"required"`
	IsCompleted  bool       `json:"is_completed"`
	Priority     *int       `json:"priority,omitempty"`
	Category     *string    `json:"category,omitempty"`
	ReminderTime *time.Time `json:"reminder_time,omitempty"`
}

// ToTask converts the request body to a Task entity. The caller fills in
// ID and UserID from the route and token respectively.
func (r TaskRequest) ToTask() Task {
	return Task{
		Title:        r.Title,
		Description:  r.Description,
		LocationName: r.LocationName,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		TaskTime:     r.TaskTime,
		IsCompleted:  r.IsCompleted,
		Priority:     r.Priority,
		Category:     r.Category,
		ReminderTime: r.ReminderTime,
	}
}

// TaskFilter narrows GET /api/tasks list results. Nil fields are ignored.
type TaskFilter struct {
	Completed *bool
	Category  *string
}
