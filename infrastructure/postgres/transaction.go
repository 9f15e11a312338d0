package postgres

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"taskboard/domain/repositories"
)

type txKey struct{}

// TransactionManager stores the open transaction in the context so
// repositories pick it up without changing their signatures.
type TransactionManager struct {
	db *gorm.DB
	// snapshotOpts starts read-only REPEATABLE READ transactions; nil uses
	// the driver default.
	snapshotOpts *sql.TxOptions
}

func NewTransactionManager(db *gorm.DB) repositories.Transactor {
	return &TransactionManager{
		db:           db,
		snapshotOpts: &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true},
	}
}

func (m *TransactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (m *TransactionManager) WithinSnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	run := func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	}
	if m.snapshotOpts == nil {
		return m.db.WithContext(ctx).Transaction(run)
	}
	return m.db.WithContext(ctx).Transaction(run, m.snapshotOpts)
}

// conn returns the transaction carried by ctx, or the pool.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
