package postgres

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"heavyrent-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.EquipmentRepository
	repository.BookingRepository
	repository.ProfileRepository
	repository.AuthUserRepository
	repository.AuthCodeRepository
}

func NewStore(db *sql.DB, queryTimeout time.Duration) *Store {
	return &Store{
		db:                  db,
		EquipmentRepository: NewEquipmentRepository(db, queryTimeout),
		BookingRepository:   NewBookingRepository(db, queryTimeout),
		ProfileRepository:   NewProfileRepository(db, queryTimeout),
		AuthUserRepository:  NewAuthUserRepository(db, queryTimeout),
		AuthCodeRepository:  NewAuthCodeRepository(db, queryTimeout),
	}
}

// DB exposes the pool for health checks.
func (s *Store) DB() *sql.DB {
	return s.db
}
