package identity

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// GetByPhone returns nil, nil when no user carries the phone.
func (r *Repo) GetByPhone(ctx context.Context, phone string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, phone, name, role, team_id, created_at
		FROM users WHERE phone = $1
	`, phone)

	var u User
	if err := row.Scan(&u.ID, &u.Phone, &u.Name, &u.Role, &u.TeamID, &u.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Upsert creates or refreshes a user keyed by phone. Used by the seeder.
func (r *Repo) Upsert(ctx context.Context, phone, name string, role Role, teamID *int64) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (phone, name, role, team_id)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (phone)
		DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role, team_id = EXCLUDED.team_id
		RETURNING id, phone, name, role, team_id, created_at
	`, phone, name, role, teamID)

	var u User
	if err := row.Scan(&u.ID, &u.Phone, &u.Name, &u.Role, &u.TeamID, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
