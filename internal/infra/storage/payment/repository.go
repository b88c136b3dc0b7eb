package payment

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

// Repository persists payments
type Repository struct {
	db DBExecutor
}

// NewRepository creates a payment repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var paymentColumns = []string{
	"id",
	"reservation_id",
	"amount",
	"method",
	"status",
	"reference_code",
	"qr_code_url",
	"paid_at",
	"created_at",
	"updated_at",
}

// Create inserts a payment
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"reservation_id",
			"amount",
			"method",
			"status",
			"reference_code",
			"qr_code_url",
		).
		Values(
			p.ReservationID,
			p.Amount,
			p.Method,
			p.Status,
			p.ReferenceCode,
			p.QRCodeURL,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByID returns a payment by id
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan payment: %v", ErrScanRow, err)
	}
	return p, nil
}

// ListByReservation returns a reservation's payments, newest first
func (r *Repository) ListByReservation(ctx context.Context, reservationID int64) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByReservation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByReservation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByReservation - scan payment: %v", ErrScanRow, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByReservation - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}

// GetLatestPendingByReservation returns the most recent pending payment of a
// reservation. Used by the webhook path, which only knows the reference code.
func (r *Repository) GetLatestPendingByReservation(ctx context.Context, reservationID int64) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{
			"reservation_id": reservationID,
			"status":         string(domain.PaymentPending),
		}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestPendingByReservation - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestPendingByReservation - scan payment: %v", ErrScanRow, err)
	}
	return p, nil
}

// HasConfirmedByReservation reports whether the reservation already has a
// confirmed payment.
func (r *Repository) HasConfirmedByReservation(ctx context.Context, reservationID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("payments").
		Where(squirrel.Eq{
			"reservation_id": reservationID,
			"status":         string(domain.PaymentConfirmed),
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasConfirmedByReservation - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasConfirmedByReservation - scan: %v", ErrScanRow, err)
	}
	return true, nil
}

// UpdateStatus sets a payment's status and, when provided, its paid-at
// timestamp.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus, paidAt *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("payments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if paidAt != nil {
		builder = builder.Set("paid_at", *paidAt)
	}

	query, args, err := builder.ToSql()
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
		return ErrPaymentNotFound
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var (
		p         domain.Payment
		paidAt    sql.NullTime
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&p.ID,
		&p.ReservationID,
		&p.Amount,
		&p.Method,
		&p.Status,
		&p.ReferenceCode,
		&p.QRCodeURL,
		&paidAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if paidAt.Valid {
		p.PaidAt = &paidAt.Time
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}
