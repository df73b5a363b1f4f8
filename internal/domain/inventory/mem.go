package inventory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/awrteam/awr/internal/apperrors"
)

type stockKey struct {
	locType LocationType
	teamID  int64
	matID   int64
}

// Mem is an in-memory Ledger with the same semantics as Repo, guarded by one
// mutex instead of row locks. It backs unit tests and keeps the audit trail so
// the stock-equals-net-of-movements invariant stays checkable without a
// database.
type Mem struct {
	mu sync.Mutex

	stock     map[stockKey]float64
	moves     []MaterialMovement
	nextInstr int64
	instrs    map[int64]Instrument
	holdings  map[int64]Location
	instMoves []InstrumentMovement
	used      map[int64][]ConsumeItem // taskID -> rows
}

func NewMem() *Mem {
	return &Mem{
		stock:     make(map[stockKey]float64),
		nextInstr: 1,
		instrs:    make(map[int64]Instrument),
		holdings:  make(map[int64]Location),
		used:      make(map[int64][]ConsumeItem),
	}
}

var _ Ledger = (*Mem)(nil)

func key(loc Location, materialID int64) stockKey {
	return stockKey{locType: loc.Type, teamID: loc.TeamID, matID: materialID}
}

func (m *Mem) Quantity(_ context.Context, loc Location, materialID int64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stock[key(loc, materialID)], nil
}

func (m *Mem) Move(_ context.Context, materialID int64, from, to Location, qty float64, reason string) error {
	if qty <= 0 {
		return apperrors.NewValidationError("qty must be > 0")
	}
	if !from.Valid() || !to.Valid() {
		return apperrors.NewValidationError("некорректная локация")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stock[key(from, materialID)] < qty {
		return &apperrors.InsufficientStockError{MaterialID: materialID}
	}
	m.stock[key(from, materialID)] -= qty
	m.stock[key(to, materialID)] += qty
	m.moves = append(m.moves, MaterialMovement{
		ID:         int64(len(m.moves) + 1),
		MaterialID: materialID,
		From:       from,
		To:         to,
		Qty:        qty,
		Reason:     reason,
		CreatedAt:  time.Now(),
	})
	return nil
}

func (m *Mem) ConsumeForTask(_ context.Context, taskID int64, team Location, items []ConsumeItem) error {
	// sufficiency is checked against the per-material total, so a batch
	// repeating a material cannot slip past line-by-line checks
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

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range order {
		if m.stock[key(team, id)] < totals[id] {
			return &apperrors.InsufficientStockError{MaterialID: id}
		}
	}

	reason := fmt.Sprintf("Списание на задачу %d", taskID)
	for _, it := range items {
		// the warehouse here is a consumed-sink: logged as destination, never
		// restocked
		m.stock[key(team, it.MaterialID)] -= it.Qty
		m.moves = append(m.moves, MaterialMovement{
			ID:         int64(len(m.moves) + 1),
			MaterialID: it.MaterialID,
			From:       team,
			To:         Warehouse(),
			Qty:        it.Qty,
			Reason:     reason,
			CreatedAt:  time.Now(),
		})
		m.used[taskID] = append(m.used[taskID], it)
	}
	return nil
}

func (m *Mem) AddInstrument(_ context.Context, name, serial string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextInstr
	m.nextInstr++
	m.instrs[id] = Instrument{ID: id, Name: name, Serial: serial}
	m.holdings[id] = Warehouse()
	return id, nil
}

func (m *Mem) MoveInstrument(_ context.Context, instrumentID int64, to Location, reason string) error {
	if !to.Valid() {
		return apperrors.NewValidationError("некорректная локация")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	from, ok := m.holdings[instrumentID]
	if !ok {
		return apperrors.ErrNotFound
	}
	m.holdings[instrumentID] = to
	m.instMoves = append(m.instMoves, InstrumentMovement{
		ID:           int64(len(m.instMoves) + 1),
		InstrumentID: instrumentID,
		From:         from,
		To:           to,
		Reason:       reason,
		CreatedAt:    time.Now(),
	})
	return nil
}

func (m *Mem) StockByLocation(_ context.Context, loc Location) ([]StockEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []StockEntry
	for k, qty := range m.stock {
		if k.locType == loc.Type && k.teamID == loc.TeamID {
			out = append(out, StockEntry{Location: loc, MaterialID: k.matID, Qty: qty})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MaterialID < out[j].MaterialID })
	return out, nil
}

func (m *Mem) Holdings(_ context.Context) ([]Holding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Holding
	for id, loc := range m.holdings {
		out = append(out, Holding{Instrument: m.instrs[id], Location: loc})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Instrument.ID < out[j].Instrument.ID })
	return out, nil
}

// Movements returns a copy of the material audit log.
func (m *Mem) Movements() []MaterialMovement {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MaterialMovement(nil), m.moves...)
}

// InstrumentMovements returns a copy of the instrument audit log.
func (m *Mem) InstrumentMovements() []InstrumentMovement {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]InstrumentMovement(nil), m.instMoves...)
}

// MaterialsUsed returns the consumption rows recorded for a task.
func (m *Mem) MaterialsUsed(taskID int64) []ConsumeItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ConsumeItem(nil), m.used[taskID]...)
}

// Seed sets a stock quantity directly, bypassing the movement log. Tests only.
func (m *Mem) Seed(loc Location, materialID int64, qty float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stock[key(loc, materialID)] = qty
}
