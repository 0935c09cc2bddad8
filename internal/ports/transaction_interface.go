package ports

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Tx : открытая транзакция. Rollback после Commit ничего не делает.
type Tx interface {
	sqlx.ExtContext
	Commit() error
	Rollback() error
}

type Transactor interface {
	Executor() sqlx.ExtContext
	BeginTx(ctx context.Context) (Tx, error)
}
