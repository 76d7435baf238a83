package storage

import (
	"context"
	"errors"
	"sync"
	"time"
)

// KV is a durable byte store addressed by slot key.
type KV interface {
	// Get returns the stored bytes and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Backuper is implemented by stores that can keep previous slot versions.
type Backuper interface {
	Backup(ctx context.Context, key string, reason string) (bool, error)
	// LatestBackup returns nil when key has no backups.
	LatestBackup(ctx context.Context, key string) (*Backup, error)
	RestoreBackup(ctx context.Context, key string, id int64) error
}

var (
	// ErrWriteFailed is returned by MemoryKV when writes are switched off.
	ErrWriteFailed = errors.New("storage: write failed")

	ErrBackupNotFound = errors.New("storage: backup not found")
)

// MemoryKV keeps slots in process memory.
type MemoryKV struct {
	mu   sync.RWMutex
	data    map[string][]byte
	backups []Backup
	lastID  int64

	failWrites bool
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWrites {
		return ErrWriteFailed
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

// FailWrites makes every subsequent Set fail (simulates a full or locked store).
func (m *MemoryKV) FailWrites(fail bool) {
	m.mu.Lock()
	m.failWrites = fail
	m.mu.Unlock()
}

func (m *MemoryKV) Backup(ctx context.Context, key string, reason string) (bool, error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	if !ok {
		return false, nil
	}
	if m.failWrites {
		return false, ErrWriteFailed
	}
	m.lastID++
	doc := make([]byte, len(v))
	copy(doc, v)
	m.backups = append(m.backups, Backup{ID: m.lastID, Key: key, Doc: doc, Reason: reason, CreatedAt: time.Now()})
	return true, nil
}

func (m *MemoryKV) LatestBackup(ctx context.Context, key string) (*Backup, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.backups) - 1; i >= 0; i-- {
		if m.backups[i].Key == key {
			b := m.backups[i]
			b.Doc = append([]byte(nil), b.Doc...)
			return &b, nil
		}
	}
	return nil, nil
}

func (m *MemoryKV) RestoreBackup(ctx context.Context, key string, id int64) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, b := range m.backups {
		if b.ID != id || b.Key != key {
			continue
		}
		if m.failWrites {
			return ErrWriteFailed
		}
		m.data[key] = b.Doc
		m.backups = append(m.backups[:i], m.backups[i+1:]...)
		return nil
	}
	return ErrBackupNotFound
}
