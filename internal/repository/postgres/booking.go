package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/logger"
	"heavyrent-backend/internal/repository"
)

type bookingRepository struct {
	conn
}

func NewBookingRepository(db *sql.DB, queryTimeout time.Duration) repository.BookingRepository {
	return &bookingRepository{conn: newConn(db, queryTimeout)}
}

const bookingColumns = `b.id, b.user_id, b.equipment_id, b.start_date, b.end_date, b.daily_rate, b.total_amount,
	b.delivery_address, b.special_requirements, b.contact_phone, b.project_name,
	b.status, b.cancel_reason, b.payment_status, b.payment_method, b.payment_reference,
	b.payment_sender_name, b.payment_sender_bank, b.payment_proof_key, b.payment_rejection_reason,
	b.payment_due_at, b.payment_submitted_at, b.payment_confirmed_at, b.created_at, b.updated_at,
	e.name, e.brand, e.model, e.location, e.images`

const bookingFrom = ` FROM bookings b JOIN equipment e ON e.id = b.equipment_id`

func scanBooking(s scanner) (*domain.Booking, error) {
	var (
		b           domain.Booking
		e           domain.Equipment
		special     sql.NullString
		dueAt       sql.NullTime
		submittedAt sql.NullTime
		confirmedAt sql.NullTime
	)
	err := s.Scan(&b.ID, &b.UserID, &b.EquipmentID, &b.StartDate, &b.EndDate, &b.DailyRate, &b.TotalAmount,
		&b.DeliveryAddress, &special, &b.ContactPhone, &b.ProjectName,
		&b.Status, &b.CancelReason, &b.PaymentStatus, &b.PaymentMethod, &b.PaymentReference,
		&b.PaymentSenderName, &b.PaymentSenderBank, &b.PaymentProofKey, &b.PaymentRejection,
		&dueAt, &submittedAt, &confirmedAt, &b.CreatedAt, &b.UpdatedAt,
		&e.Name, &e.Brand, &e.Model, &e.Location, pq.Array(&e.Images))
	if err != nil {
		return nil, err
	}
	b.SpecialRequirements = stringPtr(special)
	b.PaymentDueAt = timePtr(dueAt)
	b.PaymentSubmittedAt = timePtr(submittedAt)
	b.PaymentConfirmedAt = timePtr(confirmedAt)
	e.ID = b.EquipmentID
	b.Equipment = &e
	return &b, nil
}

func (r *bookingRepository) queryBookings(ctx context.Context, op, query string, args ...interface{}) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(ctx, op, "booking", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, mapError(ctx, op, "booking", err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(ctx, op, "booking", err)
	}
	return bookings, nil
}

func (r *bookingRepository) CreateNoOverlap(ctx context.Context, b *domain.Booking) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	logger.DatabaseCall(ctx, "create booking", "bookings", "equipment_id", b.EquipmentID)
	err := r.createNoOverlap(ctx, b)
	logger.DatabaseResult(ctx, "create booking", 1, err, "booking_id", b.ID)
	return mapError(ctx, "create booking", "booking", err)
}

func (r *bookingRepository) createNoOverlap(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Serialises concurrent bookings of the same item.
	var availability domain.AvailabilityStatus
	err = tx.QueryRowContext(ctx, `SELECT availability_status FROM equipment WHERE id = $1 FOR UPDATE`, b.EquipmentID).Scan(&availability)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "equipment", Err: err}
	}
	if err != nil {
		return err
	}
	if availability != domain.AvailabilityAvailable {
		return domain.ConflictError{Resource: "equipment", Msg: domain.ErrEquipmentUnavailable.Error(), Err: domain.ErrEquipmentUnavailable}
	}

	// Both ranges are inclusive of their end day.
	var overlaps bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE equipment_id = $1 AND status IN ('pending', 'confirmed', 'active')
		  AND start_date <= $3 AND end_date >= $2)`,
		b.EquipmentID, b.StartDate, b.EndDate).Scan(&overlaps)
	if err != nil {
		return err
	}
	if overlaps {
		return domain.ConflictError{Resource: "booking", Msg: domain.ErrBookingOverlap.Error(), Err: domain.ErrBookingOverlap}
	}

	query := `INSERT INTO bookings (id, user_id, equipment_id, start_date, end_date, daily_rate, total_amount,
		delivery_address, special_requirements, contact_phone, project_name, status, payment_status, payment_due_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)`
	_, err = tx.ExecContext(ctx, query, b.ID, b.UserID, b.EquipmentID, b.StartDate, b.EndDate, b.DailyRate, b.TotalAmount,
		b.DeliveryAddress, nullString(b.SpecialRequirements), b.ContactPhone, b.ProjectName,
		b.Status, b.PaymentStatus, b.PaymentDueAt, b.CreatedAt)
	if err != nil {
		return err
	}
	b.UpdatedAt = b.CreatedAt
	return tx.Commit()
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	b, err := scanBooking(r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+bookingFrom+` WHERE b.id = $1`, id))
	if err != nil {
		return nil, mapError(ctx, "get booking", "booking", err)
	}
	return b, nil
}

func (r *bookingRepository) GetForUser(ctx context.Context, id, userID string) (*domain.Booking, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `SELECT ` + bookingColumns + bookingFrom + ` WHERE b.id = $1 AND b.user_id = $2`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, mapError(ctx, "get booking", "booking", err)
	}
	return b, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `SELECT ` + bookingColumns + bookingFrom + ` WHERE b.user_id = $1 ORDER BY b.created_at DESC`
	return r.queryBookings(ctx, "list bookings", query, userID)
}

func (r *bookingRepository) ListByStatus(ctx context.Context, status domain.BookingStatus, paymentStatus domain.PaymentStatus) ([]domain.Booking, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var conds []string
	var args []interface{}
	if status != "" {
		args = append(args, status)
		conds = append(conds, fmt.Sprintf("b.status = $%d", len(args)))
	}
	if paymentStatus != "" {
		args = append(args, paymentStatus)
		conds = append(conds, fmt.Sprintf("b.payment_status = $%d", len(args)))
	}

	query := `SELECT ` + bookingColumns + bookingFrom
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY b.created_at ASC`
	return r.queryBookings(ctx, "list bookings by status", query, args...)
}

func (r *bookingRepository) SubmitPayment(ctx context.Context, id, userID string, sub domain.PaymentSubmission) (bool, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `UPDATE bookings SET payment_status = 'pending_verification', payment_method = $3, payment_reference = $4,
		payment_sender_name = $5, payment_sender_bank = $6, payment_rejection_reason = '',
		payment_submitted_at = $7, updated_at = $7
		WHERE id = $1 AND user_id = $2 AND payment_status = 'unpaid' AND status = 'pending'`
	res, err := r.db.ExecContext(ctx, query, id, userID, sub.Method, sub.Reference, sub.SenderName, sub.SenderBank, sub.At)
	return affected(ctx, res, err, "submit payment")
}

func (r *bookingRepository) UpdatePaymentStatus(ctx context.Context, id string, from, to domain.PaymentStatus, upd domain.PaymentUpdate) (bool, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var (
		res sql.Result
		err error
	)
	switch to {
	case domain.PaymentStatusCompleted:
		// A verified transfer also confirms a still-pending booking.
		query := `UPDATE bookings SET payment_status = $3, payment_confirmed_at = $4, updated_at = $4,
			status = CASE WHEN status = 'pending' THEN 'confirmed' ELSE status END
			WHERE id = $1 AND payment_status = $2 AND status <> 'cancelled'`
		res, err = r.db.ExecContext(ctx, query, id, from, to, upd.At)
	case domain.PaymentStatusUnpaid:
		query := `UPDATE bookings SET payment_status = $3, payment_rejection_reason = $4, payment_submitted_at = NULL,
			payment_due_at = COALESCE($5, payment_due_at), updated_at = $6
			WHERE id = $1 AND payment_status = $2 AND status <> 'cancelled'`
		res, err = r.db.ExecContext(ctx, query, id, from, to, upd.Reason, upd.DueAt, upd.At)
	default:
		query := `UPDATE bookings SET payment_status = $3, updated_at = $4 WHERE id = $1 AND payment_status = $2`
		res, err = r.db.ExecContext(ctx, query, id, from, to, upd.At)
	}
	return affected(ctx, res, err, "update payment status")
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, reason string) (bool, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `UPDATE bookings SET status = $3, cancel_reason = COALESCE(NULLIF($4, ''), cancel_reason), updated_at = $5
		WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, query, id, from, to, reason, time.Now().UTC())
	return affected(ctx, res, err, "update booking status")
}

func (r *bookingRepository) SetPaymentProof(ctx context.Context, id, userID, key string) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `UPDATE bookings SET payment_proof_key = $3, updated_at = $4 WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID, key, time.Now().UTC())
	ok, err := affected(ctx, res, err, "set payment proof")
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

func (r *bookingRepository) ExpireUnpaid(ctx context.Context, now time.Time, reason string) ([]string, error) {
	query := `UPDATE bookings SET status = 'cancelled', cancel_reason = $2, updated_at = $1
		WHERE status = 'pending' AND payment_status = 'unpaid' AND payment_due_at < $1
		RETURNING id`
	return r.transitionBatch(ctx, "expire unpaid bookings", query, now, reason)
}

func (r *bookingRepository) ActivateStarted(ctx context.Context, today time.Time) ([]string, error) {
	query := `UPDATE bookings SET status = 'active', updated_at = NOW()
		WHERE status = 'confirmed' AND start_date <= $1
		RETURNING id`
	return r.transitionBatch(ctx, "activate started bookings", query, today)
}

func (r *bookingRepository) CompleteEnded(ctx context.Context, today time.Time) ([]string, error) {
	query := `UPDATE bookings SET status = 'completed', updated_at = NOW()
		WHERE status = 'active' AND end_date < $1
		RETURNING id`
	return r.transitionBatch(ctx, "complete ended bookings", query, today)
}

func (r *bookingRepository) transitionBatch(ctx context.Context, op, query string, args ...interface{}) ([]string, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(ctx, op, "booking", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, mapError(ctx, op, "booking", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(ctx, op, "booking", err)
	}
	return ids, nil
}

// affected turns an Exec result into "did the conditional update match".
func affected(ctx context.Context, res sql.Result, err error, op string) (bool, error) {
	if err != nil {
		return false, mapError(ctx, op, "booking", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, mapError(ctx, op, "booking", err)
	}
	return n > 0, nil
}
