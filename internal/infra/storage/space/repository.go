package space

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/condoreservas/reservation-service/internal/domain"
	"github.com/condoreservas/reservation-service/pkg/dbmetrics"
	"github.com/condoreservas/reservation-service/pkg/psqlbuilder"
)

// Repository reads spaces, their type policies, availability rules and the
// add-on catalog.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a space repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var spaceColumns = []string{
	"s.id",
	"s.name",
	"s.type_id",
	"s.description",
	"s.capacity",
	"s.image_url",
	"s.active",
	"s.created_at",
	"s.updated_at",
	"t.id",
	"t.name",
	"t.description",
	"t.min_duration_minutes",
	"t.max_duration_minutes",
	"t.requires_payment",
	"t.reservation_price",
	"t.active",
}

// GetByID returns a space with its type policy
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(spaceColumns...).
		From("spaces s").
		Join("space_types t ON t.id = s.type_id").
		Where(squirrel.Eq{"s.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	space, err := scanSpace(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSpaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan space: %v", ErrScanRow, err)
	}

	return space, nil
}

// ListActive returns all active spaces with their type policies
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Space, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(spaceColumns...).
		From("spaces s").
		Join("space_types t ON t.id = s.type_id").
		Where(squirrel.Eq{"s.active": true}).
		OrderBy("s.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	spaces := make([]*domain.Space, 0)
	for rows.Next() {
		space, err := scanSpace(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan space: %v", ErrScanRow, err)
		}
		spaces = append(spaces, space)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return spaces, nil
}

// ListRules returns the recurring availability rules of a space
func (r *Repository) ListRules(ctx context.Context, spaceID int64) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"space_id",
		"day_of_week",
		"start_time",
		"end_time",
		"available",
	).
		From("availability_rules").
		Where(squirrel.Eq{"space_id": spaceID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.AvailabilityRule, 0)
	for rows.Next() {
		var rule domain.AvailabilityRule
		if err := rows.Scan(
			&rule.ID,
			&rule.SpaceID,
			&rule.DayOfWeek,
			&rule.StartTime,
			&rule.EndTime,
			&rule.Available,
		); err != nil {
			return nil, fmt.Errorf("%w: ListRules - scan rule: %v", ErrScanRow, err)
		}
		rules = append(rules, &rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// ListAddOns returns the active add-on catalog of a space
func (r *Repository) ListAddOns(ctx context.Context, spaceID int64) ([]*domain.AddOnItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"space_id",
		"name",
		"description",
		"unit_price",
		"total_quantity",
		"active",
	).
		From("add_on_items").
		Where(squirrel.Eq{"space_id": spaceID, "active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAddOns - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAddOns - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	addOns := make([]*domain.AddOnItem, 0)
	for rows.Next() {
		var item domain.AddOnItem
		if err := rows.Scan(
			&item.ID,
			&item.SpaceID,
			&item.Name,
			&item.Description,
			&item.UnitPrice,
			&item.TotalQuantity,
			&item.Active,
		); err != nil {
			return nil, fmt.Errorf("%w: ListAddOns - scan add-on: %v", ErrScanRow, err)
		}
		addOns = append(addOns, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAddOns - rows error: %v", ErrScanRow, err)
	}

	return addOns, nil
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSpace(row rowScanner) (*domain.Space, error) {
	var (
		space     domain.Space
		spaceType domain.SpaceType
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&space.ID,
		&space.Name,
		&space.TypeID,
		&space.Description,
		&space.Capacity,
		&space.ImageURL,
		&space.Active,
		&createdAt,
		&updatedAt,
		&spaceType.ID,
		&spaceType.Name,
		&spaceType.Description,
		&spaceType.MinDurationMinutes,
		&spaceType.MaxDurationMinutes,
		&spaceType.RequiresPayment,
		&spaceType.ReservationPrice,
		&spaceType.Active,
	)
	if err != nil {
		return nil, err
	}

	space.CreatedAt = createdAt.Time
	space.UpdatedAt = updatedAt.Time
	space.Type = &spaceType

	return &space, nil
}
