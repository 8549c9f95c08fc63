package postgres

import (
	"context"
	"database/sql"
	"time"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/repository"
)

type authUserRepository struct {
	conn
}

func NewAuthUserRepository(db *sql.DB, queryTimeout time.Duration) repository.AuthUserRepository {
	return &authUserRepository{conn: newConn(db, queryTimeout)}
}

func (r *authUserRepository) Create(ctx context.Context, u *domain.AuthUser) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `INSERT INTO auth_users (id, email, password_hash, role, email_confirmed_at, created_at)
		VALUES ($1, LOWER($2), $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Email, u.PasswordHash, u.Role, u.EmailConfirmedAt, u.CreatedAt)
	return mapError(ctx, "create user", "user", err)
}

func (r *authUserRepository) get(ctx context.Context, where string, arg string) (*domain.AuthUser, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	u := &domain.AuthUser{}
	var confirmedAt sql.NullTime
	query := `SELECT id, email, password_hash, role, email_confirmed_at, created_at FROM auth_users WHERE ` + where
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &confirmedAt, &u.CreatedAt)
	if err != nil {
		return nil, mapError(ctx, "get user", "user", err)
	}
	u.EmailConfirmedAt = timePtr(confirmedAt)
	return u, nil
}

func (r *authUserRepository) GetByEmail(ctx context.Context, email string) (*domain.AuthUser, error) {
	return r.get(ctx, "email = LOWER($1)", email)
}

func (r *authUserRepository) GetByID(ctx context.Context, id string) (*domain.AuthUser, error) {
	return r.get(ctx, "id = $1", id)
}

func (r *authUserRepository) MarkEmailConfirmed(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `UPDATE auth_users SET email_confirmed_at = COALESCE(email_confirmed_at, $2) WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		return mapError(ctx, "confirm email", "user", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

func (r *authUserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_users WHERE id = $1`, id)
	return mapError(ctx, "delete user", "user", err)
}

type authCodeRepository struct {
	conn
}

func NewAuthCodeRepository(db *sql.DB, queryTimeout time.Duration) repository.AuthCodeRepository {
	return &authCodeRepository{conn: newConn(db, queryTimeout)}
}

func (r *authCodeRepository) Create(ctx context.Context, c *domain.AuthCode) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `INSERT INTO auth_codes (code, user_id, expires_at) VALUES ($1, $2, $3)`,
		c.Code, c.UserID, c.ExpiresAt)
	return mapError(ctx, "create auth code", "auth code", err)
}

// Consume is a single conditional update, so a code can only be redeemed once.
func (r *authCodeRepository) Consume(ctx context.Context, code string, now time.Time) (*domain.AuthCode, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	c := &domain.AuthCode{}
	var usedAt sql.NullTime
	query := `UPDATE auth_codes SET used_at = $2
		WHERE code = $1 AND used_at IS NULL AND expires_at > $2
		RETURNING code, user_id, expires_at, used_at`
	err := r.db.QueryRowContext(ctx, query, code, now).Scan(&c.Code, &c.UserID, &c.ExpiresAt, &usedAt)
	if err != nil {
		return nil, mapError(ctx, "consume auth code", "auth code", err)
	}
	c.UsedAt = timePtr(usedAt)
	return c, nil
}
