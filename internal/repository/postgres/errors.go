package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"heavyrent-backend/internal/domain"
)

// Postgres SQLSTATE codes the store translates.
const (
	codeUniqueViolation    = "23505"
	codeExclusionViolation = "23P01"
	codeQueryCanceled      = "57014"
)

const defaultQueryTimeout = 5 * time.Second

// conn is shared by every repository: one pool, one per-call deadline.
type conn struct {
	db      *sql.DB
	timeout time.Duration
}

func newConn(db *sql.DB, timeout time.Duration) conn {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return conn{db: db, timeout: timeout}
}

func (c conn) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, c.timeout)
}

// mapError converts driver errors into domain errors at the store boundary.
// ctx is the per-call context; its deadline marks the failure as retryable.
func mapError(ctx context.Context, op, resource string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	// Already translated inside a transaction.
	if domain.IsNotFound(err) || domain.IsConflict(err) || domain.IsPersistence(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.PersistenceError{Op: op, Err: err, Retryable: true}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeExclusionViolation:
			return domain.ConflictError{Resource: resource, Msg: domain.ErrBookingOverlap.Error(), Err: domain.ErrBookingOverlap}
		case codeUniqueViolation:
			return domain.ConflictError{Resource: resource, Msg: "already exists", Err: err}
		case codeQueryCanceled:
			return domain.PersistenceError{Op: op, Err: err, Retryable: true}
		}
	}
	return domain.PersistenceError{Op: op, Err: err}
}

type scanner interface {
	Scan(dest ...any) error
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
