package inventory

import "context"

// Ledger is the only mutation path for stock and holdings; every successful
// mutation appends exactly one movement, so stock rows always equal the net of
// the movements touching them.
type Ledger interface {
	// Quantity reads an absent (location, material) row as 0.
	Quantity(ctx context.Context, loc Location, materialID int64) (float64, error)

	// Move transfers qty between two locations. It fails with
	// *apperrors.InsufficientStockError before any mutation when the source
	// cannot cover qty. from == to is permitted and nets to zero.
	Move(ctx context.Context, materialID int64, from, to Location, qty float64, reason string) error

	// ConsumeForTask deducts every item from the team location and logs each
	// as a movement back to the warehouse, referencing the task. A single
	// insufficient item aborts the whole batch with the ledger unchanged.
	ConsumeForTask(ctx context.Context, taskID int64, team Location, items []ConsumeItem) error

	// AddInstrument creates the instrument with an initial holding at the
	// warehouse. Serial uniqueness is the caller's concern.
	AddInstrument(ctx context.Context, name, serial string) (int64, error)

	// MoveInstrument rehomes an instrument, recording the prior location as
	// the movement source. Fails with apperrors.ErrNotFound when no holding
	// exists.
	MoveInstrument(ctx context.Context, instrumentID int64, to Location, reason string) error

	// StockByLocation lists non-absent stock rows at loc.
	StockByLocation(ctx context.Context, loc Location) ([]StockEntry, error)

	// Holdings lists every instrument with its current location.
	Holdings(ctx context.Context) ([]Holding, error)
}
