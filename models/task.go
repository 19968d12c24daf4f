package models

import "time"

// Task is a scheduled activity bound to a geographic location, owned by a
// single user. All read and write paths check ownership: a task is only
// visible to the account whose ID matches UserID.
type Task struct {
	// ID is the internal unique identifier assigned by the persistence layer.
	ID int64 `json:"id"`

	// Title is the short human-readable name of the task.
	Title string `json:"title"`

	// Description is an optional free-form text.
	Description *string `json:"description,omitempty"`

	// LocationName is the display name of the place the task happens at.
	LocationName string `json:"location_name"`

	// Latitude and Longitude pin the task location for forecast lookups.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// TaskTime is when the task is scheduled to take place.
	TaskTime time.Time `json:"task_time"`

	// UserID is the owning account. Set from the caller's token subject on
	// creation and never writable through the API.
	UserID int64 `json:"user_id"`

	// IsCompleted marks the task as done.
	IsCompleted bool `json:"is_completed"`

	// CreatedAt is set by the database on insert; UpdatedAt is set on every
	// successful update and is nil for never-modified tasks.
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Priority is an optional ordering hint (smaller is more urgent).
	Priority *int `json:"priority,omitempty"`

	// Category is an optional user-defined grouping label.
	Category *string `json:"category,omitempty"`

	// ReminderTime is an optional moment to remind the user before TaskTime.
	ReminderTime *time.Time `json:"reminder_time,omitempty"`
}

// TableName returns the name of the database table
// associated with the Task model.
func (t Task) TableName() string {
	return "tasks"
}
