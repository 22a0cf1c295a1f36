package memory

import (
	"context"
	"sort"
	"sync"

	"gagyebu/internal/core"
	ports "gagyebu/internal/sheets"
)

var (
	_ ports.EntryMirror = (*Mirror)(nil)
	_ ports.EntryLister = (*Mirror)(nil)
)

// Mirror is an in-process EntryMirror used when no spreadsheet is configured.
type Mirror struct {
	mu   sync.Mutex
	rows map[int64]core.Entry
}

func New() *Mirror {
	return &Mirror{rows: make(map[int64]core.Entry)}
}

func (m *Mirror) AppendEntry(_ context.Context, e core.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[e.ID] = e
	return nil
}

func (m *Mirror) DeleteEntry(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

// ListEntries returns mirrored rows ordered by id.
func (m *Mirror) ListEntries(context.Context) ([]core.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.Entry, 0, len(m.rows))
	for _, e := range m.rows {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
