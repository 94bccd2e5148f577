package repomanager

import (
	"context"
	"database/sql"

	"github.com/getcareer/portal/internal/dbx"
	"github.com/getcareer/portal/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves the same in-memory user repository
// regardless of the DBTX handle. Used by tests and database-free runs.
type InMemoryRepositoryManager struct {
	users *users.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewInMemoryRepository()}
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return m.users
}
