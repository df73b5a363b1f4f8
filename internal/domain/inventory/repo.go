package inventory

import (
	"context"
	"fmt"

	"github.com/awrteam/awr/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo is the Postgres ledger. Read-check-then-write sequences run inside one
// transaction with the source row locked FOR UPDATE, so two concurrent
// consumers cannot both pass the sufficiency check against a stale quantity.
type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

var _ Ledger = (*Repo)(nil)

func locFrom(t string, id *int64) Location {
	if LocationType(t) == LocTeam && id != nil {
		return Team(*id)
	}
	return Warehouse()
}

func (r *Repo) Quantity(ctx context.Context, loc Location, materialID int64) (float64, error) {
	var qty float64
	err := r.pool.QueryRow(ctx, `
		SELECT qty FROM material_stock
		WHERE location_type = $1 AND location_id IS NOT DISTINCT FROM $2 AND material_id = $3
	`, loc.Type, loc.teamID(), materialID).Scan(&qty)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	return qty, err
}

// lockQty reads the source quantity under FOR UPDATE; an absent row reads as 0.
func lockQty(ctx context.Context, tx pgx.Tx, loc Location, materialID int64) (float64, error) {
	var qty float64
	err := tx.QueryRow(ctx, `
		SELECT qty FROM material_stock
		WHERE location_type = $1 AND location_id IS NOT DISTINCT FROM $2 AND material_id = $3
		FOR UPDATE
	`, loc.Type, loc.teamID(), materialID).Scan(&qty)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	return qty, err
}

func addQty(ctx context.Context, tx pgx.Tx, loc Location, materialID int64, delta float64) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO material_stock (location_type, location_id, material_id, qty)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (location_type, location_id, material_id)
		DO UPDATE SET qty = material_stock.qty + EXCLUDED.qty
	`, loc.Type, loc.teamID(), materialID, delta)
	return err
}

func logMovement(ctx context.Context, tx pgx.Tx, materialID int64, from, to Location, qty float64, reason string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO material_movements (material_id, from_type, from_id, to_type, to_id, qty, reason)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, materialID, from.Type, from.teamID(), to.Type, to.teamID(), qty, reason)
	return err
}

func (r *Repo) Move(ctx context.Context, materialID int64, from, to Location, qty float64, reason string) error {
	if qty <= 0 {
		return apperrors.NewValidationError("qty must be > 0")
	}
	if !from.Valid() || !to.Valid() {
		return apperrors.NewValidationError("некорректная локация")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	have, err := lockQty(ctx, tx, from, materialID)
	if err != nil {
		return err
	}
	if have < qty {
		return &apperrors.InsufficientStockError{MaterialID: materialID}
	}

	if err := addQty(ctx, tx, from, materialID, -qty); err != nil {
		return err
	}
	if err := addQty(ctx, tx, to, materialID, qty); err != nil {
		return err
	}
	if err := logMovement(ctx, tx, materialID, from, to, qty, reason); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	movementsTotal.WithLabelValues("material").Inc()
	return nil
}

func (r *Repo) ConsumeForTask(ctx context.Context, taskID int64, team Location, items []ConsumeItem) error {
	// A batch may list the same material more than once; sufficiency is
	// checked against the per-material total, not per line.
	totals := make(map[int64]float64, len(items))
	order := make([]int64, 0, len(items))
	for _, it := range items {
		if it.Qty <= 0 {
			return apperrors.NewValidationError("qty must be > 0")
		}
		if _, ok := totals[it.MaterialID]; !ok {
			order = append(order, it.MaterialID)
		}
		totals[it.MaterialID] += it.Qty
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Every material is checked (and its row locked) before anything mutates.
	for _, id := range order {
		have, err := lockQty(ctx, tx, team, id)
		if err != nil {
			return err
		}
		if have < totals[id] {
			return &apperrors.InsufficientStockError{MaterialID: id}
		}
	}

	reason := fmt.Sprintf("Списание на задачу %d", taskID)
	for _, it := range items {
		if err := addQty(ctx, tx, team, it.MaterialID, -it.Qty); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO task_materials_used (task_id, material_id, qty) VALUES ($1,$2,$3)
		`, taskID, it.MaterialID, it.Qty); err != nil {
			return err
		}
		if err := logMovement(ctx, tx, it.MaterialID, team, Warehouse(), it.Qty, reason); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	movementsTotal.WithLabelValues("material").Add(float64(len(items)))
	return nil
}

func (r *Repo) AddInstrument(ctx context.Context, name, serial string) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO instruments (name, serial) VALUES ($1,$2) RETURNING id
	`, name, serial).Scan(&id); err != nil {
		return 0, err
	}

	wh := Warehouse()
	if _, err := tx.Exec(ctx, `
		INSERT INTO instrument_holdings (instrument_id, location_type, location_id)
		VALUES ($1,$2,$3)
	`, id, wh.Type, wh.teamID()); err != nil {
		return 0, err
	}

	return id, tx.Commit(ctx)
}

func (r *Repo) MoveInstrument(ctx context.Context, instrumentID int64, to Location, reason string) error {
	if !to.Valid() {
		return apperrors.NewValidationError("некорректная локация")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var fromType string
	var fromID *int64
	err = tx.QueryRow(ctx, `
		SELECT location_type, location_id FROM instrument_holdings
		WHERE instrument_id = $1
		FOR UPDATE
	`, instrumentID).Scan(&fromType, &fromID)
	if err == pgx.ErrNoRows {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return err
	}
	from := locFrom(fromType, fromID)

	if _, err := tx.Exec(ctx, `
		UPDATE instrument_holdings SET location_type = $2, location_id = $3
		WHERE instrument_id = $1
	`, instrumentID, to.Type, to.teamID()); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO instrument_movements (instrument_id, from_type, from_id, to_type, to_id, reason)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, instrumentID, from.Type, from.teamID(), to.Type, to.teamID(), reason); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	movementsTotal.WithLabelValues("instrument").Inc()
	return nil
}

func (r *Repo) StockByLocation(ctx context.Context, loc Location) ([]StockEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT material_id, qty FROM material_stock
		WHERE location_type = $1 AND location_id IS NOT DISTINCT FROM $2
		ORDER BY material_id
	`, loc.Type, loc.teamID())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StockEntry
	for rows.Next() {
		e := StockEntry{Location: loc}
		if err := rows.Scan(&e.MaterialID, &e.Qty); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repo) Holdings(ctx context.Context) ([]Holding, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT i.id, i.name, i.serial, h.location_type, h.location_id
		FROM instruments i
		JOIN instrument_holdings h ON h.instrument_id = i.id
		ORDER BY i.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Holding
	for rows.Next() {
		var h Holding
		var locType string
		var locID *int64
		if err := rows.Scan(&h.Instrument.ID, &h.Instrument.Name, &h.Instrument.Serial, &locType, &locID); err != nil {
			return nil, err
		}
		h.Location = locFrom(locType, locID)
		out = append(out, h)
	}
	return out, rows.Err()
}
