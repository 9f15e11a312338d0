package repositories

import "context"

// Transactor runs fn inside one database transaction. Repository calls made
// with the ctx passed to fn join that transaction; returning an error from
// fn rolls everything back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// WithinSnapshot runs fn in a read-only transaction where every query
	// sees the same snapshot of the database.
	WithinSnapshot(ctx context.Context, fn func(ctx context.Context) error) error
}
