package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/LJTian/VnNewsHub/internal/news"
)

// MemoryStore 进程内存储，用于 --no-db 仅导出模式与测试
type MemoryStore struct {
	mu    sync.Mutex
	list  []News
	index map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{index: make(map[string]int)}
}

func (m *MemoryStore) Exists(_ context.Context, title string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.index[title]
	return ok, nil
}

func (m *MemoryStore) Insert(_ context.Context, a news.Article) (bool, error) {
	rec := newRecord(a)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.index[rec.Title]; ok {
		return false, nil
	}
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	m.index[rec.Title] = len(m.list)
	m.list = append(m.list, rec)
	return true, nil
}

func (m *MemoryStore) ListNews(_ context.Context, f ListFilter) ([]News, error) {
	f = f.normalized()
	m.mu.Lock()
	out := make([]News, 0, len(m.list))
	for i := len(m.list) - 1; i >= 0; i-- {
		n := m.list[i]
		if f.Source != "" && n.Source != f.Source {
			continue
		}
		if f.Category != "" && n.Category != f.Category {
			continue
		}
		out = append(out, n)
	}
	m.mu.Unlock()

	// 插入倒序的基础上按发布时间倒序，保持稳定
	sort.SliceStable(out, func(i, j int) bool { return out[i].PublishedAt > out[j].PublishedAt })
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }

// Len 返回已存条数
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.list)
}
