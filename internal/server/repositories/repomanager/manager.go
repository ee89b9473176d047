package repomanager

import (
	"context"
	"database/sql"

	"github.com/avasiliev/taskkeeper/internal/dbx"
	"github.com/avasiliev/taskkeeper/internal/server/repositories/tasks"
	"github.com/avasiliev/taskkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repository instances bound to a DBTX, which lets
// services run several repositories inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}
