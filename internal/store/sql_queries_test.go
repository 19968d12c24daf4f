package store

import (
	"strings"
	"testing"

	"github.com/forecastflow/forecastflow/models"
)

func TestBuildUserUpdateQuery_WithoutCredentials(t *testing.T) {
	user := models.User{ID: 1, Username: "john", Email: "john@example.com"}

	query, args, err := buildUserUpdateQuery(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(query, "password_hash") {
		t.Errorf("expected no credential columns, got query: %s", query)
	}
	if len(args) != 3 {
		t.Errorf("expected 3 args (username, email, id), got %d", len(args))
	}
}

func TestBuildUserUpdateQuery_WithCredentials(t *testing.T) {
	user := models.User{
		ID:           1,
		Username:     "john",
		Email:        "john@example.com",
		PasswordHash: []byte("hash"),
		PasswordSalt: []byte("salt"),
	}

	query, args, err := buildUserUpdateQuery(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(query, "password_hash") || !strings.Contains(query, "password_salt") {
		t.Errorf("expected credential columns in query: %s", query)
	}
	if len(args) != 5 {
		t.Errorf("expected 5 args, got %d", len(args))
	}
}

func TestBuildTaskListQuery_NoFilter(t *testing.T) {
	query, args, err := buildTaskListQuery(7, models.TaskFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(query, "user_id = $1") {
		t.Errorf("expected owner predicate in query: %s", query)
	}
	if !strings.Contains(query, "ORDER BY task_time") {
		t.Errorf("expected task_time ordering in query: %s", query)
	}
	if len(args) != 1 {
		t.Errorf("expected 1 arg, got %d", len(args))
	}
}

func TestBuildTaskListQuery_WithFilters(t *testing.T) {
	completed := false
	category := "errands"

	query, args, err := buildTaskListQuery(7, models.TaskFilter{Completed: &completed, Category: &category})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(query, "is_completed") || !strings.Contains(query, "category") {
		t.Errorf("expected filter predicates in query: %s", query)
	}
	if len(args) != 3 {
		t.Errorf("expected 3 args, got %d", len(args))
	}
}

func TestBuildTaskUpdateQuery(t *testing.T) {
	task := models.Task{ID: 5, Title: "Updated"}

	query, args, err := buildTaskUpdateQuery(task)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(query, "updated_at = NOW()") {
		t.Errorf("expected updated_at stamp in query: %s", query)
	}
	if !strings.Contains(query, "task_id = ") {
		t.Errorf("expected primary-key predicate in query: %s", query)
	}
	// every mutable column plus the key, minus the NOW() expression
	if len(args) != 11 {
		t.Errorf("expected 11 args, got %d", len(args))
	}
}
