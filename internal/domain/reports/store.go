package reports

import "context"

// Store persists report rows. Each setter also raises its completion flag;
// note the asymmetry fixed by the product: comment and materials replace,
// photos append.
type Store interface {
	// Get fails with apperrors.ErrNotFound when the task has no report row.
	Get(ctx context.Context, taskID int64) (*Report, error)

	SetComment(ctx context.Context, taskID int64, comment string) error

	SetMaterials(ctx context.Context, taskID int64, lines []MaterialLine) error

	// AppendPhotos concatenates refs onto the stored list in submission order.
	AppendPhotos(ctx context.Context, taskID int64, refs []string) error
}
