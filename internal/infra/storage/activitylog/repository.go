// Package activitylog is the best-effort audit sink. Callers log failures
// and move on; an audit write must never fail the primary operation.
package activitylog

import (
	"context"
	"errors"
	"fmt"

	"github.com/condoreservas/reservation-service/internal/domain"
	"github.com/condoreservas/reservation-service/pkg/dbmetrics"
	"github.com/condoreservas/reservation-service/pkg/psqlbuilder"
)

var (
	// ErrBuildQuery is returned when building the SQL query fails
	ErrBuildQuery = errors.New("activitylog.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails
	ErrExecQuery = errors.New("activitylog.repository: failed to execute query")
)

// Repository appends activity-log facts
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates an activity-log repository
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Insert appends one fact. Deliberately called outside the admission
// transaction so a sink failure cannot roll back the primary write.
func (r *Repository) Insert(ctx context.Context, entry *domain.ActivityLog) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("activity_logs").
		Columns("actor_user_id", "action", "entity", "entity_id", "description", "occurred_at").
		Values(entry.ActorUserID, entry.Action, entry.Entity, entry.EntityID, entry.Description, entry.OccurredAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Insert - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}
