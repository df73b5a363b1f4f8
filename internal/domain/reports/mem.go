package reports

import (
	"context"
	"sync"
)

// Mem is an in-memory Store for tests. Rows spring into existence on first
// write, mirroring the report row created alongside each task.
type Mem struct {
	mu    sync.Mutex
	items map[int64]*Report
}

func NewMem() *Mem { return &Mem{items: make(map[int64]*Report)} }

var _ Store = (*Mem)(nil)

func (m *Mem) row(taskID int64) *Report {
	rep, ok := m.items[taskID]
	if !ok {
		rep = &Report{TaskID: taskID}
		m.items[taskID] = rep
	}
	return rep
}

func (m *Mem) Get(_ context.Context, taskID int64) (*Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *m.row(taskID)
	cp.Materials = append([]MaterialLine(nil), cp.Materials...)
	cp.Photos = append([]string(nil), cp.Photos...)
	return &cp, nil
}

func (m *Mem) SetComment(_ context.Context, taskID int64, comment string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rep := m.row(taskID)
	rep.Comment = comment
	rep.CommentDone = true
	return nil
}

func (m *Mem) SetMaterials(_ context.Context, taskID int64, lines []MaterialLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rep := m.row(taskID)
	rep.Materials = append([]MaterialLine(nil), lines...)
	rep.MaterialsDone = true
	return nil
}

func (m *Mem) AppendPhotos(_ context.Context, taskID int64, refs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rep := m.row(taskID)
	rep.Photos = append(rep.Photos, refs...)
	rep.PhotosDone = true
	return nil
}
