package tasks

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/awrteam/awr/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

var _ Store = (*Repo)(nil)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *Repo) Create(ctx context.Context, d Draft) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO tasks (address, tz, access, note, team_id, status)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`, d.Address, d.TZ, d.Access, d.Note, d.TeamID, StatusNew).Scan(&id); err != nil {
		return 0, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO task_reports (task_id) VALUES ($1)
	`, id); err != nil {
		return 0, err
	}

	return id, tx.Commit(ctx)
}

func (r *Repo) Get(ctx context.Context, id int64) (*Task, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, address, tz, access, note, team_id, status, created_at
		FROM tasks WHERE id = $1
	`, id)

	var t Task
	if err := row.Scan(&t.ID, &t.Address, &t.TZ, &t.Access, &t.Note, &t.TeamID, &t.Status, &t.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *Repo) Update(ctx context.Context, id int64, d Draft) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tasks SET address=$2, tz=$3, access=$4, note=$5, team_id=$6, status=$7
		WHERE id=$1
	`, id, d.Address, d.TZ, d.Access, d.Note, d.TeamID, d.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *Repo) SetStatus(ctx context.Context, id int64, st Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE tasks SET status=$2 WHERE id=$1`, id, st)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *Repo) List(ctx context.Context, f Filter) ([]Task, error) {
	q := psql.Select("id", "address", "tz", "access", "note", "team_id", "status", "created_at").
		From("tasks").
		OrderBy("created_at DESC")

	if f.Status != nil {
		q = q.Where(sq.Eq{"status": *f.Status})
	}
	if f.Address != "" {
		q = q.Where(sq.ILike{"address": "%" + f.Address + "%"})
	}
	if f.TeamID != nil {
		q = q.Where(sq.Eq{"team_id": *f.TeamID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Address, &t.TZ, &t.Access, &t.Note, &t.TeamID, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
