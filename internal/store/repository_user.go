package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user account creation and lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new account and returns the fully populated
// [models.User] with server-assigned fields (ID, CreatedAt).
//
// The INSERT uses the [createUser] query which returns all columns via a
// RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUsernameTaken]. The unique
//     constraint on username is the authoritative duplicate check; the
//     service-layer pre-check only exists for a friendlier fast path.
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.Username, user.Email, user.PasswordHash, user.PasswordSalt, user.IsActive)

	var created models.User
	if err := row.Scan(&created.ID, &created.Username, &created.Email,
		&created.PasswordHash, &created.PasswordSalt, &created.CreatedAt, &created.IsActive); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: insert failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUsernameTaken
		case "":
			return models.User{}, err
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindUserByUsername retrieves a user record whose username matches exactly
// (case-sensitive, per the unique constraint collation).
//
// Error handling:
//   - sql.ErrNoRows → [ErrNoUserFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, findUserByUsername, username)
}

// FindUserByID retrieves a user record by its primary key.
//
// Error handling mirrors [userRepository.FindUserByUsername].
func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return r.findUser(ctx, findUserByID, id)
}

func (r *userRepository) findUser(ctx context.Context, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	row := r.db.QueryRowContext(ctx, query, arg)

	if err := row.Scan(&found.ID, &found.Username, &found.Email,
		&found.PasswordHash, &found.PasswordSalt, &found.CreatedAt, &found.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserFound
		}

		log.Err(err).Str("func", "*userRepository.findUser").Msg("error: lookup failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// GetAllUsers lists every account ordered by ID.
func (r *userRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getAllUsers)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetAllUsers").Msg("error: query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err = rows.Scan(&u.ID, &u.Username, &u.Email,
			&u.PasswordHash, &u.PasswordSalt, &u.CreatedAt, &u.IsActive); err != nil {
			log.Err(err).Str("func", "*userRepository.GetAllUsers").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// UpdateUser overwrites username and email and, when a new credential was
// computed, the hash and salt columns. The query is built dynamically with
// squirrel so untouched credential columns keep their stored values.
//
// Error handling:
//   - zero rows affected → [ErrNoUserFound].
//   - unique_violation on the new username → [ErrUsernameTaken].
func (r *userRepository) UpdateUser(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUserUpdateQuery(user)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error: update failed")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrUsernameTaken
		}
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNoUserFound
	}

	return nil
}

// DeleteUser removes an account by ID. Tasks owned by the account are removed
// by the ON DELETE CASCADE constraint.
func (r *userRepository) DeleteUser(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteUser, id)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error: delete failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNoUserFound
	}

	return nil
}
