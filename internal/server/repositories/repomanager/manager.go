package repomanager

import (
	"context"
	"database/sql"

	"github.com/getcareer/portal/internal/dbx"
	"github.com/getcareer/portal/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
