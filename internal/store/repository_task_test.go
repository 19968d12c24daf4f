package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/models"
)

func newTestTaskRepo(t *testing.T) (*taskRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &taskRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func taskColumns() []string {
	return []string{
		"task_id", "title", "description", "location_name", "latitude", "longitude",
		"task_time", "user_id", "is_completed", "created_at", "updated_at",
		"priority", "category", "reminder_time",
	}
}

func taskRow(id int64, title string, userID int64, now time.Time) []driver.Value {
	return []driver.Value{
		id, title, nil, "Riga", 56.9496, 24.1052,
		now, userID, false, now, nil, nil, nil, nil,
	}
}

func TestCreateTask_Success(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	task := models.Task{
		Title:        "Morning run",
		LocationName: "Riga",
		Latitude:     56.9496,
		Longitude:    24.1052,
		TaskTime:     now,
		UserID:       7,
	}

	rows := sqlmock.NewRows(taskColumns()).AddRow(taskRow(1, task.Title, task.UserID, now)...)

	mock.ExpectQuery("INSERT INTO tasks").
		WillReturnRows(rows)

	created, err := repo.CreateTask(ctx, task)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected ID=1, got %d", created.ID)
	}
	if created.UserID != task.UserID {
		t.Errorf("expected UserID=%d, got %d", task.UserID, created.UserID)
	}
}

func TestFindTaskByID_NotFound(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT task_id").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindTaskByID(ctx, 404)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestFindTasksByUserID_Success(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.NewRows(taskColumns()).
		AddRow(taskRow(1, "First", 7, now)...).
		AddRow(taskRow(2, "Second", 7, now.Add(time.Hour))...)

	mock.ExpectQuery("SELECT task_id").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	tasks, err := repo.FindTasksByUserID(ctx, 7, models.TaskFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "First" {
		t.Errorf("expected first task title First, got %s", tasks[0].Title)
	}
}

func TestFindTasksByUserID_CompletedFilter(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	ctx := context.Background()
	completed := true

	mock.ExpectQuery("SELECT task_id").
		WithArgs(int64(7), true).
		WillReturnRows(sqlmock.NewRows(taskColumns()))

	tasks, err := repo.FindTasksByUserID(ctx, 7, models.TaskFilter{Completed: &completed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(tasks))
	}
}

func TestUpdateTask_Success(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	ctx := context.Background()
	task := models.Task{ID: 1, Title: "Updated", LocationName: "Riga", TaskTime: time.Now()}

	mock.ExpectExec("UPDATE tasks").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateTask(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateTask_NotFound(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	ctx := context.Background()
	task := models.Task{ID: 404, Title: "Ghost", TaskTime: time.Now()}

	mock.ExpectExec("UPDATE tasks").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateTask(ctx, task); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestDeleteTask_Success(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM tasks").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteTask(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteTask_NotFound(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM tasks").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteTask(ctx, 404); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
