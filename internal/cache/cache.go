package cache

import (
	"sync"
	"time"

	"readlytics/internal/models"

	"github.com/patrickmn/go-cache"
)

// SnapshotKey is the single cache slot holding the loaded dataset.
const SnapshotKey = "dataset:snapshot"

type Manager struct {
	cache *cache.Cache
	mu    sync.RWMutex
}

func NewManager(defaultTTL time.Duration) *Manager {
	return &Manager{
		cache: cache.New(defaultTTL, 10*time.Minute),
	}
}

func (m *Manager) Get(key string) (interface{}, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cache.Get(key)
}

func (m *Manager) Set(key string, value interface{}, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Set(key, value, ttl)
}

func (m *Manager) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Delete(key)
}

func (m *Manager) Flush() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Flush()
}

// GetSnapshot returns the cached dataset, if any.
func (m *Manager) GetSnapshot() (*models.Dataset, bool) {
	if cached, found := m.Get(SnapshotKey); found {
		if ds, ok := cached.(*models.Dataset); ok {
			return ds, true
		}
	}
	return nil, false
}

// SetSnapshot stores the loaded dataset under the snapshot slot.
// A zero TTL uses the manager's default expiration.
func (m *Manager) SetSnapshot(ds *models.Dataset, ttl time.Duration) {
	m.Set(SnapshotKey, ds, ttl)
}

// DropSnapshot removes the cached dataset so the next read reloads.
func (m *Manager) DropSnapshot() {
	m.Delete(SnapshotKey)
}
