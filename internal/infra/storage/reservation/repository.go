package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/condoreservas/reservation-service/internal/domain"
	"github.com/condoreservas/reservation-service/pkg/dbmetrics"
	"github.com/condoreservas/reservation-service/pkg/psqlbuilder"
)

// Repository persists reservations and their line items
type Repository struct {
	db DBExecutor
}

// NewRepository creates a reservation repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var reservationColumns = []string{
	"id",
	"user_id",
	"space_id",
	"starts_at",
	"ends_at",
	"status",
	"requires_payment",
	"total_price",
	"notes",
	"created_at",
	"updated_at",
}

// Create inserts a reservation together with its line items. The caller is
// expected to run it inside a transaction so the reservation and its items
// commit or fail as one.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"user_id",
			"space_id",
			"starts_at",
			"ends_at",
			"status",
			"requires_payment",
			"total_price",
			"notes",
		).
		Values(
			res.UserID,
			res.SpaceID,
			res.StartsAt,
			res.EndsAt,
			res.Status,
			res.RequiresPayment,
			res.TotalPrice,
			res.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	for _, item := range res.Items {
		item.ReservationID = res.ID
		if err := r.createItem(ctx, executor, item); err != nil {
			return nil, err
		}
	}

	return res, nil
}

func (r *Repository) createItem(ctx context.Context, executor DBExecutor, item *domain.ReservationItem) error {
	query, args, err := psqlbuilder.Insert("reservation_items").
		Columns("reservation_id", "add_on_id", "quantity", "unit_price", "line_total").
		Values(item.ReservationID, item.AddOnID, item.Quantity, item.UnitPrice, item.LineTotal).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: createItem - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return fmt.Errorf("%w: createItem - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// GetByID returns a reservation with its line items
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	if err := r.loadItems(ctx, executor, res); err != nil {
		return nil, err
	}
	return res, nil
}

// ListByUser returns a user's reservations, newest first, with line items
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("starts_at DESC")

	return r.list(ctx, executor, builder, true)
}

// ListBySpace returns a space's reservations ordered by start, oldest first
func (r *Repository) ListBySpace(ctx context.Context, spaceID int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"space_id": spaceID}).
		OrderBy("starts_at ASC")

	return r.list(ctx, executor, builder, false)
}

// ListActiveBySpaceOverlapping returns the non-cancelled reservations of a
// space whose intervals intersect the half-open window [from, to).
// Inside a transaction the rows are locked with FOR UPDATE: this is the read
// half of the admission decision and must stay stable until the insert
// commits.
func (r *Repository) ListActiveBySpaceOverlapping(ctx context.Context, spaceID int64, from, to time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"space_id": spaceID}).
		Where(squirrel.Eq{"status": domain.ActiveReservationStatuses}).
		Where(squirrel.Lt{"starts_at": to}).
		Where(squirrel.Gt{"ends_at": from}).
		OrderBy("starts_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.list(ctx, executor, builder, false)
}

// ListActiveBetween returns all non-cancelled reservations, across spaces,
// intersecting the half-open window [from, to). Used by the availability
// listing.
func (r *Repository) ListActiveBetween(ctx context.Context, from, to time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"status": domain.ActiveReservationStatuses}).
		Where(squirrel.Lt{"starts_at": to}).
		Where(squirrel.Gt{"ends_at": from}).
		OrderBy("space_id ASC, starts_at ASC")

	return r.list(ctx, executor, builder, false)
}

// UpdateStatus sets a reservation's status
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *Repository) list(ctx context.Context, executor DBExecutor, builder squirrel.SelectBuilder, withItems bool) ([]*domain.Reservation, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: list - scan reservation: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows error: %v", ErrScanRow, err)
	}

	if withItems {
		for _, res := range reservations {
			if err := r.loadItems(ctx, executor, res); err != nil {
				return nil, err
			}
		}
	}

	return reservations, nil
}

func (r *Repository) loadItems(ctx context.Context, executor DBExecutor, res *domain.Reservation) error {
	query, args, err := psqlbuilder.Select(
		"id",
		"reservation_id",
		"add_on_id",
		"quantity",
		"unit_price",
		"line_total",
	).
		From("reservation_items").
		Where(squirrel.Eq{"reservation_id": res.ID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.ReservationItem, 0)
	for rows.Next() {
		var item domain.ReservationItem
		if err := rows.Scan(
			&item.ID,
			&item.ReservationID,
			&item.AddOnID,
			&item.Quantity,
			&item.UnitPrice,
			&item.LineTotal,
		); err != nil {
			return fmt.Errorf("%w: loadItems - scan item: %v", ErrScanRow, err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadItems - rows error: %v", ErrScanRow, err)
	}

	res.Items = items
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res       domain.Reservation
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.SpaceID,
		&res.StartsAt,
		&res.EndsAt,
		&res.Status,
		&res.RequiresPayment,
		&res.TotalPrice,
		&res.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time
	return &res, nil
}
