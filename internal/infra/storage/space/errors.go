package space

import "errors"

var (
	// ErrSpaceNotFound is returned when the space does not exist
	ErrSpaceNotFound = errors.New("space.repository: space not found")

	// ErrBuildQuery is returned when building the SQL query fails
	ErrBuildQuery = errors.New("space.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails
	ErrExecQuery = errors.New("space.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("space.repository: failed to scan row")
)
