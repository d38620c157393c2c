package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories combines all repository instances
type Repositories struct {
	UserRepository   *UserRepository
	MeetupRepository *MeetupRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:   NewUserRepository(db),
		MeetupRepository: NewMeetupRepository(db),
	}
}
