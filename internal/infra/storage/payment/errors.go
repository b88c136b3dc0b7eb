package payment

import "errors"

var (
	// ErrPaymentNotFound is returned when the payment does not exist
	ErrPaymentNotFound = errors.New("payment.repository: payment not found")

	// ErrBuildQuery is returned when building the SQL query fails
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
