package tasks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/awrteam/awr/internal/apperrors"
)

// Mem is an in-memory Store for tests.
type Mem struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]Task
}

func NewMem() *Mem {
	return &Mem{nextID: 1, items: make(map[int64]Task)}
}

var _ Store = (*Mem)(nil)

func (m *Mem) Create(_ context.Context, d Draft) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.items[id] = Task{
		ID:        id,
		Address:   d.Address,
		TZ:        d.TZ,
		Access:    d.Access,
		Note:      d.Note,
		TeamID:    d.TeamID,
		Status:    StatusNew,
		CreatedAt: time.Now(),
	}
	return id, nil
}

func (m *Mem) Get(_ context.Context, id int64) (*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (m *Mem) Update(_ context.Context, id int64, d Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	t.Address, t.TZ, t.Access, t.Note, t.TeamID, t.Status = d.Address, d.TZ, d.Access, d.Note, d.TeamID, d.Status
	m.items[id] = t
	return nil
}

func (m *Mem) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *Mem) SetStatus(_ context.Context, id int64, st Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	t.Status = st
	m.items[id] = t
	return nil
}

func (m *Mem) List(_ context.Context, f Filter) ([]Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Task
	for _, t := range m.items {
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		if f.Address != "" && !strings.Contains(strings.ToLower(t.Address), strings.ToLower(f.Address)) {
			continue
		}
		if f.TeamID != nil && (t.TeamID == nil || *t.TeamID != *f.TeamID) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
