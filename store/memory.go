package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/adikate12/pricely/core"
)

// MemoryStore 是内存实现，用于测试、示例和单机跑批。
// 支持按秒的 TTL，进程退出后数据即丢失。
type MemoryStore struct {
	mu     sync.RWMutex
	kv     map[string]memEntry
	zsets  map[string]map[string]float64
	hashes map[string]map[string][]byte
}

type memEntry struct {
	value    []byte
	expireAt time.Time // 零值表示永不过期
}

func (e memEntry) expired(now time.Time) bool {
	return !e.expireAt.IsZero() && now.After(e.expireAt)
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		kv:     make(map[string]memEntry),
		zsets:  make(map[string]map[string]float64),
		hashes: make(map[string]map[string][]byte),
	}
}

var (
	_ core.Store         = (*MemoryStore)(nil)
	_ core.KeyValueStore = (*MemoryStore)(nil)
)

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.kv[key]
	if !ok || e.expired(time.Now()) {
		return nil, core.ErrStoreNotFound
	}
	return e.value, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl ...int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memEntry{value: value}
	if len(ttl) > 0 && ttl[0] > 0 {
		e.expireAt = time.Now().Add(time.Duration(ttl[0]) * time.Second)
	}
	m.kv[key] = e
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.kv, key)
	delete(m.zsets, key)
	delete(m.hashes, key)
	return nil
}

func (m *MemoryStore) BatchGet(_ context.Context, keys []string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := time.Now()
	result := make(map[string][]byte, len(keys))
	for _, k := range keys {
		e, ok := m.kv[k]
		if !ok || e.expired(now) {
			continue
		}
		result[k] = e.value
	}
	return result, nil
}

func (m *MemoryStore) BatchSet(_ context.Context, kvs map[string][]byte, ttl ...int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expireAt time.Time
	if len(ttl) > 0 && ttl[0] > 0 {
		expireAt = time.Now().Add(time.Duration(ttl[0]) * time.Second)
	}
	for k, v := range kvs {
		m.kv[k] = memEntry{value: v, expireAt: expireAt}
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) ZAdd(_ context.Context, key string, score float64, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.zsets[key] == nil {
		m.zsets[key] = make(map[string]float64)
	}
	m.zsets[key][member] = score
	return nil
}

// ZRange 按分数降序返回 [start, stop] 区间的成员，同分按成员名升序，
// 保证结果稳定。语义对齐 Redis 的 ZREVRANGE。
func (m *MemoryStore) ZRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	zset := m.zsets[key]
	if len(zset) == 0 {
		return nil, nil
	}

	members := make([]string, 0, len(zset))
	for member := range zset {
		members = append(members, member)
	}
	sort.SliceStable(members, func(i, j int) bool {
		if zset[members[i]] != zset[members[j]] {
			return zset[members[i]] > zset[members[j]]
		}
		return members[i] < members[j]
	})

	if start < 0 {
		start = 0
	}
	if stop < 0 || stop >= int64(len(members)) {
		stop = int64(len(members)) - 1
	}
	if start > stop {
		return nil, nil
	}
	return members[start : stop+1], nil
}

func (m *MemoryStore) ZScore(_ context.Context, key string, member string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	score, ok := m.zsets[key][member]
	if !ok {
		return 0, core.ErrStoreNotFound
	}
	return score, nil
}

func (m *MemoryStore) HGet(_ context.Context, key, field string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.hashes[key][field]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	return value, nil
}

func (m *MemoryStore) HSet(_ context.Context, key, field string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hashes[key] == nil {
		m.hashes[key] = make(map[string][]byte)
	}
	m.hashes[key][field] = value
	return nil
}

func (m *MemoryStore) HGetAll(_ context.Context, key string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fields := m.hashes[key]
	result := make(map[string][]byte, len(fields))
	for f, v := range fields {
		result[f] = v
	}
	return result, nil
}
