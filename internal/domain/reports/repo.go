package reports

import (
	"context"
	"encoding/json"

	"github.com/awrteam/awr/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

var _ Store = (*Repo)(nil)

func (r *Repo) Get(ctx context.Context, taskID int64) (*Report, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT task_id, comment, materials_json, photos_json,
		       part_comment_done, part_photos_done, part_materials_done
		FROM task_reports WHERE task_id = $1
	`, taskID)

	var rep Report
	var materialsJSON, photosJSON []byte
	if err := row.Scan(&rep.TaskID, &rep.Comment, &materialsJSON, &photosJSON,
		&rep.CommentDone, &rep.PhotosDone, &rep.MaterialsDone); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(materialsJSON, &rep.Materials); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(photosJSON, &rep.Photos); err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *Repo) SetComment(ctx context.Context, taskID int64, comment string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE task_reports SET comment=$2, part_comment_done=TRUE WHERE task_id=$1
	`, taskID, comment)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *Repo) SetMaterials(ctx context.Context, taskID int64, lines []MaterialLine) error {
	if lines == nil {
		lines = []MaterialLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE task_reports SET materials_json=$2, part_materials_done=TRUE WHERE task_id=$1
	`, taskID, raw)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *Repo) AppendPhotos(ctx context.Context, taskID int64, refs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var photosJSON []byte
	err = tx.QueryRow(ctx, `
		SELECT photos_json FROM task_reports WHERE task_id = $1 FOR UPDATE
	`, taskID).Scan(&photosJSON)
	if err == pgx.ErrNoRows {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return err
	}

	var existing []string
	if err := json.Unmarshal(photosJSON, &existing); err != nil {
		return err
	}
	raw, err := json.Marshal(append(existing, refs...))
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE task_reports SET photos_json=$2, part_photos_done=TRUE WHERE task_id=$1
	`, taskID, raw); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
