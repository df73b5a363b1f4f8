package reports

import (
	"context"
	"io"
	"log/slog"

	"github.com/awrteam/awr/internal/apperrors"
	"github.com/awrteam/awr/internal/domain/inventory"
	"github.com/awrteam/awr/internal/domain/tasks"
)

// MaxPhotosPerBatch caps one photo submission.
const MaxPhotosPerBatch = 10

// FileSaver stores an uploaded file durably and returns the reference to
// persist. The file must be on disk before the reference is written to the
// report row.
type FileSaver interface {
	Save(ctx context.Context, origName string, r io.Reader) (string, error)
}

type Photo struct {
	Name string
	Data io.Reader
}

// Service drives the three sub-report submissions and the status gating they
// trigger.
type Service struct {
	log     *slog.Logger
	tasks   tasks.Store
	reports Store
	ledger  inventory.Ledger
	files   FileSaver
}

func NewService(log *slog.Logger, taskStore tasks.Store, reportStore Store, ledger inventory.Ledger, files FileSaver) *Service {
	return &Service{log: log, tasks: taskStore, reports: reportStore, ledger: ledger, files: files}
}

func (s *Service) Get(ctx context.Context, taskID int64) (*Report, error) {
	if _, err := s.tasks.Get(ctx, taskID); err != nil {
		return nil, err
	}
	return s.reports.Get(ctx, taskID)
}

// SubmitComment replaces the stored comment.
func (s *Service) SubmitComment(ctx context.Context, taskID int64, comment string) error {
	if _, err := s.tasks.Get(ctx, taskID); err != nil {
		return err
	}
	if err := s.reports.SetComment(ctx, taskID, comment); err != nil {
		return err
	}
	return s.afterSubmit(ctx, taskID)
}

// SubmitMaterials consumes the batch from the task's team stock and replaces
// the stored list. If consumption fails the flag stays down and nothing is
// persisted.
func (s *Service) SubmitMaterials(ctx context.Context, taskID int64, lines []MaterialLine) error {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return err
	}
	if task.TeamID == nil {
		return apperrors.NewValidationError("задача не назначена бригаде")
	}

	items := make([]inventory.ConsumeItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, inventory.ConsumeItem{MaterialID: l.MaterialID, Qty: l.Qty})
	}
	if err := s.ledger.ConsumeForTask(ctx, taskID, inventory.Team(*task.TeamID), items); err != nil {
		return err
	}

	if err := s.reports.SetMaterials(ctx, taskID, lines); err != nil {
		return err
	}
	return s.afterSubmit(ctx, taskID)
}

// SubmitPhotos stores up to MaxPhotosPerBatch files and appends their
// references to the existing list. Returns the new references.
func (s *Service) SubmitPhotos(ctx context.Context, taskID int64, photos []Photo) ([]string, error) {
	if len(photos) == 0 {
		return nil, apperrors.NewValidationError("нет файлов")
	}
	if len(photos) > MaxPhotosPerBatch {
		return nil, apperrors.NewValidationError("не более %d файлов за раз", MaxPhotosPerBatch)
	}
	if _, err := s.tasks.Get(ctx, taskID); err != nil {
		return nil, err
	}

	refs := make([]string, 0, len(photos))
	for _, p := range photos {
		ref, err := s.files.Save(ctx, p.Name, p.Data)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	if err := s.reports.AppendPhotos(ctx, taskID, refs); err != nil {
		// files already written stay orphaned; the row never references a
		// file that was not durably written first
		return nil, err
	}
	if err := s.afterSubmit(ctx, taskID); err != nil {
		return nil, err
	}
	return refs, nil
}

// afterSubmit runs the two gating checks every submission triggers: a new
// task advances into work (one-way), and a report with all three flags up
// completes the task. Отложено and Проблемный дом are never produced here.
func (s *Service) afterSubmit(ctx context.Context, taskID int64) error {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return err
	}
	if task.Status == tasks.StatusNew {
		if err := s.tasks.SetStatus(ctx, taskID, tasks.StatusInProgress); err != nil {
			return err
		}
		s.log.Debug("task moved to in progress", "task_id", taskID)
	}

	rep, err := s.reports.Get(ctx, taskID)
	if err != nil {
		return err
	}
	if rep.Complete() {
		if err := s.tasks.SetStatus(ctx, taskID, tasks.StatusDone); err != nil {
			return err
		}
		s.log.Info("task completed", "task_id", taskID)
	}
	return nil
}
