package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/forecastflow/forecastflow/models"
)

const (
	createUser = `INSERT INTO users (username, email, password_hash, password_salt, is_active)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING user_id, username, email, password_hash, password_salt, created_at, is_active;`

	findUserByUsername = `SELECT user_id, username, email, password_hash, password_salt, created_at, is_active
    FROM users
    WHERE username = $1;`

	findUserByID = `SELECT user_id, username, email, password_hash, password_salt, created_at, is_active
    FROM users
    WHERE user_id = $1;`

	getAllUsers = `SELECT user_id, username, email, password_hash, password_salt, created_at, is_active
    FROM users
    ORDER BY user_id;`

	deleteUser = `DELETE FROM users
    WHERE user_id = $1;`

	createTask = `INSERT INTO tasks (
        title,
        description,
        location_name,
        latitude,
        longitude,
        task_time,
        user_id,
        is_completed,
        priority,
        category,
        reminder_time
    ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    RETURNING task_id, title, description, location_name, latitude, longitude, task_time,
        user_id, is_completed, created_at, updated_at, priority, category, reminder_time;`

	findTaskByID = `SELECT task_id, title, description, location_name, latitude, longitude, task_time,
        user_id, is_completed, created_at, updated_at, priority, category, reminder_time
    FROM tasks
    WHERE task_id = $1;`

	deleteTask = `DELETE FROM tasks
    WHERE task_id = $1;`
)

// psql is the shared squirrel builder configured for PostgreSQL ($N)
// placeholders. Dynamic queries below are built with it; fixed-shape queries
// stay as plain constants.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildUserUpdateQuery builds the dynamic UPDATE for a user record. Username
// and email are always overwritten; the credential columns only when a new
// hash and salt were computed.
func buildUserUpdateQuery(user models.User) (string, []any, error) {
	builder := psql.Update(user.TableName()).
		Set("username", user.Username).
		Set("email", user.Email)

	if len(user.PasswordHash) > 0 && len(user.PasswordSalt) > 0 {
		builder = builder.
			Set("password_hash", user.PasswordHash).
			Set("password_salt", user.PasswordSalt)
	}

	return builder.Where(sq.Eq{"user_id": user.ID}).ToSql()
}

// buildTaskListQuery builds the SELECT for a user's task list, narrowed by
// the optional completed/category filters.
func buildTaskListQuery(userID int64, filter models.TaskFilter) (string, []any, error) {
	builder := psql.Select(
		"task_id", "title", "description", "location_name", "latitude", "longitude",
		"task_time", "user_id", "is_completed", "created_at", "updated_at",
		"priority", "category", "reminder_time",
	).
		From(models.Task{}.TableName()).
		Where(sq.Eq{"user_id": userID})

	if filter.Completed != nil {
		builder = builder.Where(sq.Eq{"is_completed": *filter.Completed})
	}
	if filter.Category != nil {
		builder = builder.Where(sq.Eq{"category": *filter.Category})
	}

	return builder.OrderBy("task_time").ToSql()
}

// buildTaskUpdateQuery builds the dynamic UPDATE for a task. Every mutable
// column is overwritten from the supplied model and updated_at is stamped.
func buildTaskUpdateQuery(task models.Task) (string, []any, error) {
	return psql.Update(task.TableName()).
		Set("title", task.Title).
		Set("description", task.Description).
		Set("location_name", task.LocationName).
		Set("latitude", task.Latitude).
		Set("longitude", task.Longitude).
		Set("task_time", task.TaskTime).
		Set("is_completed", task.IsCompleted).
		Set("priority", task.Priority).
		Set("category", task.Category).
		Set("reminder_time", task.ReminderTime).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"task_id": task.ID}).
		ToSql()
}
