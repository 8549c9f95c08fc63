package postgres

import (
	"context"
	"database/sql"
	"time"

	"heavyrent-backend/internal/domain"
	"heavyrent-backend/internal/repository"
)

type profileRepository struct {
	conn
}

func NewProfileRepository(db *sql.DB, queryTimeout time.Duration) repository.ProfileRepository {
	return &profileRepository{conn: newConn(db, queryTimeout)}
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	p := &domain.Profile{}
	query := `SELECT id, full_name, company_name, phone, address, account_type, verification_status, created_at, updated_at
		FROM profiles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.FullName, &p.CompanyName, &p.Phone, &p.Address,
		&p.AccountType, &p.VerificationStatus, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapError(ctx, "get profile", "profile", err)
	}
	return p, nil
}

// Upsert never touches verification_status on update; only operators change it.
func (r *profileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	if p.VerificationStatus == "" {
		p.VerificationStatus = domain.VerificationPending
	}
	query := `INSERT INTO profiles (id, full_name, company_name, phone, address, account_type, verification_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET full_name = EXCLUDED.full_name, company_name = EXCLUDED.company_name,
			phone = EXCLUDED.phone, address = EXCLUDED.address, account_type = EXCLUDED.account_type, updated_at = NOW()
		RETURNING verification_status, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, p.ID, p.FullName, p.CompanyName, p.Phone, p.Address, p.AccountType, p.VerificationStatus).
		Scan(&p.VerificationStatus, &p.CreatedAt, &p.UpdatedAt)
	return mapError(ctx, "upsert profile", "profile", err)
}
