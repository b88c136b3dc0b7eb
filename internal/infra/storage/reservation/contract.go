package reservation

import "github.com/condoreservas/reservation-service/pkg/dbmetrics"

// DBExecutor is the query surface this repository needs
type DBExecutor = dbmetrics.DBExecutor
