package tables

import (
	"context"
	"sync"
)

type memoryCollection struct {
	header []string
	ids    []int64
	rows   [][]string
}

// Memory keeps collections in process. Used for tests and local runs.
type Memory struct {
	mu          sync.Mutex
	nextID      int64
	collections map[string]*memoryCollection
}

func NewMemory() *Memory {
	return &Memory{collections: map[string]*memoryCollection{}}
}

func (m *Memory) EnsureCollection(_ context.Context, name string, header []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.collections[name]; ok {
		return nil
	}
	m.collections[name] = &memoryCollection{header: append([]string(nil), header...)}
	return nil
}

func (m *Memory) GetAllRows(_ context.Context, collection string) (Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[collection]
	if !ok {
		return Table{}, nil
	}
	return buildTable(c.header, c.rows), nil
}

func (m *Memory) AppendRow(_ context.Context, collection string, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[collection]
	if !ok {
		c = &memoryCollection{}
		m.collections[collection] = c
	}
	m.nextID++
	c.ids = append(c.ids, m.nextID)
	c.rows = append(c.rows, append([]string(nil), values...))
	return nil
}

func (m *Memory) FindRow(_ context.Context, collection, column, key string) (RowHandle, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[collection]
	if !ok {
		return RowHandle{}, false, nil
	}
	idx := columnIndex(c.header, column)
	for i, values := range c.rows {
		if cellMatches(values, idx, key) {
			return RowHandle{Collection: collection, Ref: c.ids[i]}, true, nil
		}
	}
	return RowHandle{}, false, nil
}

func (m *Memory) DeleteRow(_ context.Context, handle RowHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[handle.Collection]
	if !ok {
		return ErrRowNotFound
	}
	for i, id := range c.ids {
		if id == handle.Ref {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			c.rows = append(c.rows[:i], c.rows[i+1:]...)
			return nil
		}
	}
	return ErrRowNotFound
}

func (m *Memory) ReplaceRows(_ context.Context, collection string, header []string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &memoryCollection{header: append([]string(nil), header...)}
	for _, values := range rows {
		m.nextID++
		c.ids = append(c.ids, m.nextID)
		c.rows = append(c.rows, append([]string(nil), values...))
	}
	m.collections[collection] = c
	return nil
}

func (m *Memory) Ping(context.Context) error {
	return nil
}
