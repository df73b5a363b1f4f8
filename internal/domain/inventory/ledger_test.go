package inventory

import (
	"context"
	"testing"

	"github.com/awrteam/awr/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qty(t *testing.T, l Ledger, loc Location, materialID int64) float64 {
	t.Helper()
	q, err := l.Quantity(context.Background(), loc, materialID)
	require.NoError(t, err)
	return q
}

func TestMoveTransfersStockAndLogs(t *testing.T) {
	ctx := context.Background()
	m := NewMem()
	m.Seed(Warehouse(), 1, 10)

	require.NoError(t, m.Move(ctx, 1, Warehouse(), Team(2), 10, "выдача"))

	assert.Equal(t, 0.0, qty(t, m, Warehouse(), 1))
	assert.Equal(t, 10.0, qty(t, m, Team(2), 1))

	moves := m.Movements()
	require.Len(t, moves, 1)
	assert.Equal(t, Warehouse(), moves[0].From)
	assert.Equal(t, Team(2), moves[0].To)
	assert.Equal(t, 10.0, moves[0].Qty)
	assert.Equal(t, "выдача", moves[0].Reason)
}

func TestMoveInsufficientLeavesLedgerUnchanged(t *testing.T) {
	ctx := context.Background()
	m := NewMem()
	m.Seed(Warehouse(), 1, 10)

	require.NoError(t, m.Move(ctx, 1, Warehouse(), Team(2), 10, ""))

	err := m.Move(ctx, 1, Warehouse(), Team(2), 5, "")
	var insufficient *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(1), insufficient.MaterialID)

	assert.Equal(t, 0.0, qty(t, m, Warehouse(), 1))
	assert.Equal(t, 10.0, qty(t, m, Team(2), 1))
	assert.Len(t, m.Movements(), 1)
}

func TestMoveSameLocationIsNetNoop(t *testing.T) {
	ctx := context.Background()
	m := NewMem()
	m.Seed(Team(3), 5, 4)

	require.NoError(t, m.Move(ctx, 5, Team(3), Team(3), 4, "пересчёт"))

	assert.Equal(t, 4.0, qty(t, m, Team(3), 5))
	assert.Len(t, m.Movements(), 1)
}

func TestMoveRejectsNonPositiveQty(t *testing.T) {
	m := NewMem()
	m.Seed(Warehouse(), 1, 10)

	var invalid *apperrors.ValidationError
	require.ErrorAs(t, m.Move(context.Background(), 1, Warehouse(), Team(1), 0, ""), &invalid)
	require.ErrorAs(t, m.Move(context.Background(), 1, Warehouse(), Team(1), -3, ""), &invalid)
	assert.Empty(t, m.Movements())
}

func TestQuantityAbsentKeyReadsZero(t *testing.T) {
	m := NewMem()
	assert.Equal(t, 0.0, qty(t, m, Team(9), 42))
}

func TestConsumeForTaskDeductsLogsAndRecords(t *testing.T) {
	ctx := context.Background()
	m := NewMem()
	m.Seed(Team(3), 5, 2)
	m.Seed(Team(3), 6, 7)

	items := []ConsumeItem{{MaterialID: 5, Qty: 2}, {MaterialID: 6, Qty: 3}}
	require.NoError(t, m.ConsumeForTask(ctx, 11, Team(3), items))

	assert.Equal(t, 0.0, qty(t, m, Team(3), 5))
	assert.Equal(t, 4.0, qty(t, m, Team(3), 6))

	moves := m.Movements()
	require.Len(t, moves, 2)
	for _, mv := range moves {
		assert.Equal(t, Team(3), mv.From)
		assert.Equal(t, Warehouse(), mv.To)
		assert.Equal(t, "Списание на задачу 11", mv.Reason)
	}
	// consumption is a sink: warehouse stock does not grow
	assert.Equal(t, 0.0, qty(t, m, Warehouse(), 5))

	assert.Equal(t, items, m.MaterialsUsed(11))
}

func TestConsumeForTaskBatchIsAtomic(t *testing.T) {
	ctx := context.Background()
	m := NewMem()
	m.Seed(Team(3), 1, 10)
	m.Seed(Team(3), 2, 1)

	err := m.ConsumeForTask(ctx, 7, Team(3), []ConsumeItem{
		{MaterialID: 1, Qty: 5},
		{MaterialID: 2, Qty: 2}, // insufficient
	})
	var insufficient *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(2), insufficient.MaterialID)

	// item 1 must not be partially deducted
	assert.Equal(t, 10.0, qty(t, m, Team(3), 1))
	assert.Equal(t, 1.0, qty(t, m, Team(3), 2))
	assert.Empty(t, m.Movements())
	assert.Empty(t, m.MaterialsUsed(7))
}

func TestConsumeForTaskSumsDuplicateMaterials(t *testing.T) {
	ctx := context.Background()
	m := NewMem()
	m.Seed(Team(3), 5, 2)

	// each line alone fits the stock, the summed batch does not
	err := m.ConsumeForTask(ctx, 7, Team(3), []ConsumeItem{
		{MaterialID: 5, Qty: 2},
		{MaterialID: 5, Qty: 2},
	})
	var insufficient *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(5), insufficient.MaterialID)

	assert.Equal(t, 2.0, qty(t, m, Team(3), 5))
	assert.Empty(t, m.Movements())
	assert.Empty(t, m.MaterialsUsed(7))

	// a duplicate batch that fits in total is consumed in full
	require.NoError(t, m.ConsumeForTask(ctx, 7, Team(3), []ConsumeItem{
		{MaterialID: 5, Qty: 1},
		{MaterialID: 5, Qty: 1},
	}))
	assert.Equal(t, 0.0, qty(t, m, Team(3), 5))
	assert.Len(t, m.MaterialsUsed(7), 2)
}

func TestStockEqualsNetOfMovements(t *testing.T) {
	ctx := context.Background()
	m := NewMem()
	m.Seed(Warehouse(), 1, 100)

	require.NoError(t, m.Move(ctx, 1, Warehouse(), Team(1), 30, ""))
	require.NoError(t, m.Move(ctx, 1, Warehouse(), Team(2), 20, ""))
	require.NoError(t, m.Move(ctx, 1, Team(1), Team(2), 10, ""))
	require.NoError(t, m.ConsumeForTask(ctx, 1, Team(2), []ConsumeItem{{MaterialID: 1, Qty: 5}}))

	// replay the audit log over the seeded opening balance
	balance := map[Location]float64{Warehouse(): 100}
	for _, mv := range m.Movements() {
		balance[mv.From] -= mv.Qty
		if mv.Reason == "" { // consumption movements terminate in the sink
			balance[mv.To] += mv.Qty
		}
	}

	for loc, want := range balance {
		assert.Equal(t, want, qty(t, m, loc, 1), "location %+v", loc)
		assert.GreaterOrEqual(t, qty(t, m, loc, 1), 0.0)
	}
}

func TestAddInstrumentStartsAtWarehouse(t *testing.T) {
	ctx := context.Background()
	m := NewMem()

	id, err := m.AddInstrument(ctx, "Сварочный аппарат", "SN-001")
	require.NoError(t, err)

	holdings, err := m.Holdings(ctx)
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, id, holdings[0].Instrument.ID)
	assert.Equal(t, Warehouse(), holdings[0].Location)
}

func TestAddInstrumentAllowsDuplicateSerial(t *testing.T) {
	ctx := context.Background()
	m := NewMem()

	_, err := m.AddInstrument(ctx, "Рефлектометр", "SN-7")
	require.NoError(t, err)
	_, err = m.AddInstrument(ctx, "Рефлектометр", "SN-7")
	require.NoError(t, err)

	holdings, err := m.Holdings(ctx)
	require.NoError(t, err)
	assert.Len(t, holdings, 2)
}

func TestMoveInstrumentRecordsPriorLocation(t *testing.T) {
	ctx := context.Background()
	m := NewMem()
	id, err := m.AddInstrument(ctx, "Скалыватель", "SN-2")
	require.NoError(t, err)

	require.NoError(t, m.MoveInstrument(ctx, id, Team(4), "выдан бригаде"))
	require.NoError(t, m.MoveInstrument(ctx, id, Warehouse(), "возврат"))

	holdings, err := m.Holdings(ctx)
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, Warehouse(), holdings[0].Location)

	moves := m.InstrumentMovements()
	require.Len(t, moves, 2)
	assert.Equal(t, Warehouse(), moves[0].From)
	assert.Equal(t, Team(4), moves[0].To)
	assert.Equal(t, Team(4), moves[1].From)
	assert.Equal(t, Warehouse(), moves[1].To)
}

func TestMoveInstrumentUnknownFails(t *testing.T) {
	m := NewMem()
	err := m.MoveInstrument(context.Background(), 99, Team(1), "")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
