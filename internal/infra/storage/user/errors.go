package user

import "errors"

var (
	// ErrUserNotFound is returned when the user does not exist or is inactive
	ErrUserNotFound = errors.New("user.repository: user not found")

	// ErrBuildQuery is returned when building the SQL query fails
	ErrBuildQuery = errors.New("user.repository: failed to build query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("user.repository: failed to scan row")
)
