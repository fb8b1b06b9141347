package executor_factory

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/navikt/isdialogmote-sub002/repositories"
)

// ExecutorFactoryStub runs the repositories against a pgxmock pool.
type ExecutorFactoryStub struct {
	Mock pgxmock.PgxPoolIface
}

func NewExecutorFactoryStub() ExecutorFactoryStub {
	pool, _ := pgxmock.NewPool()

	return ExecutorFactoryStub{
		Mock: pool,
	}
}

type PgExecutorStub struct {
	pgxmock.PgxPoolIface
}

type PgTxStub struct {
	pgx.Tx
}

func (stub PgTxStub) RawTx() pgx.Tx {
	return stub.Tx
}

func (stub ExecutorFactoryStub) NewExecutor() repositories.Executor {
	return PgExecutorStub{
		stub.Mock,
	}
}

func (stub ExecutorFactoryStub) Transaction(ctx context.Context, fn func(tx repositories.Transaction) error) error {
	return pgx.BeginFunc(ctx, stub.Mock, func(tx pgx.Tx) error {
		return fn(PgTxStub{tx})
	})
}
