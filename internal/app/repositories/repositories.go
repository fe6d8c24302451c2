package repositories

import (
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository      *UserRepository
	HostelRepository    *HostelRepository
	ComplaintRepository *ComplaintRepository
	TokenRepository     *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:      NewUserRepository(db),
		HostelRepository:    NewHostelRepository(db),
		ComplaintRepository: NewComplaintRepository(db),
		TokenRepository:     NewTokenRepository(db),
	}
}

// joinColumns renders a column list for RETURNING clauses.
func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
