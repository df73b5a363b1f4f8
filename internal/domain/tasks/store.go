package tasks

import "context"

// Store owns tasks and, through creation and deletion, their 1:1 report rows.
type Store interface {
	// Create inserts the task with status «Новая задача» and its empty report
	// row in one transaction.
	Create(ctx context.Context, d Draft) (int64, error)

	// Get fails with apperrors.ErrNotFound for an unknown id.
	Get(ctx context.Context, id int64) (*Task, error)

	// Update is the unconstrained admin edit: any valid status may be set
	// directly.
	Update(ctx context.Context, id int64, d Draft) error

	// Delete removes the task; the report and used-material rows cascade,
	// movements stay.
	Delete(ctx context.Context, id int64) error

	SetStatus(ctx context.Context, id int64, st Status) error

	// List filters by exact status, address substring and team, newest first.
	List(ctx context.Context, f Filter) ([]Task, error)
}
