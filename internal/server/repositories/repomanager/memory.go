package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophid/internal/dbx"
	"github.com/dmitrijs2005/gophid/internal/server/repositories/users"
	"github.com/dmitrijs2005/gophid/internal/server/repositories/verifications"
)

// MemoryRepositoryManager hands out the same in-memory repositories for any
// DBTX, including nil. Pair it with dbx.NoTxRunner.
type MemoryRepositoryManager struct {
	users         *users.MemoryRepository
	verifications *verifications.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:         users.NewMemoryRepository(),
		verifications: verifications.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func (m *MemoryRepositoryManager) Verifications(dbx.DBTX) verifications.Repository {
	return m.verifications
}

// RunMigrations is a no-op; there is no schema.
func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}
