package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameTaken is returned when an attempt to create a user fails
	// because an account with the same username already exists. It is
	// produced both by the pre-insert lookup in the service layer and by the
	// database unique constraint, which closes the check-then-insert race.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrNoUserFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserFound = errors.New("no user was found")

	// ErrTaskNotFound is returned when a query or update targets a task that
	// does not exist — or that exists but belongs to a different account.
	// Ownership mismatches deliberately collapse into this error so callers
	// cannot distinguish "absent" from "not yours".
	ErrTaskNotFound = errors.New("task was not found")

	// ErrLocalSessionNotFound is returned by the client session store when no
	// session row has been persisted yet.
	ErrLocalSessionNotFound = errors.New("local session not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. a dynamic update with no columns to set).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
