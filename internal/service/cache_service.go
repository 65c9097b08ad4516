package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"
)

const defaultCacheCleanupInterval = 5 * time.Minute

// CacheService хранит справочные данные в памяти с TTL.
// Заявки и статистика сюда не попадают: они читаются из базы на каждый запрос.
type CacheService struct {
	mu       sync.RWMutex
	cache    map[string]*cacheEntry
	interval time.Duration
	now      func() time.Time
}

type cacheEntry struct {
	data      interface{}
	expiresAt time.Time
}

// NewCacheService создаёт кэш. Очистку устаревших записей запускает Run.
func NewCacheService() *CacheService {
	return &CacheService{
		cache:    make(map[string]*cacheEntry),
		interval: defaultCacheCleanupInterval,
		now:      time.Now,
	}
}

// Get достаёт значение, если оно не устарело.
func (cs *CacheService) Get(key string) (interface{}, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	entry, exists := cs.cache[key]
	if !exists {
		return nil, false
	}

	// Устаревшие записи удаляет cleanup
	if cs.now().After(entry.expiresAt) {
		return nil, false
	}

	return entry.data, true
}

// Set сохраняет значение на ttl.
func (cs *CacheService) Set(key string, value interface{}, ttl time.Duration) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.cache[key] = &cacheEntry{
		data:      value,
		expiresAt: cs.now().Add(ttl),
	}
}

// InvalidateByPrefix удаляет все ключи с префиксом.
func (cs *CacheService) InvalidateByPrefix(prefix string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	for key := range cs.cache {
		if strings.HasPrefix(key, prefix) {
			delete(cs.cache, key)
		}
	}
}

// InvalidateProfessionals сбрасывает справочник мастеров.
func (cs *CacheService) InvalidateProfessionals() {
	cs.InvalidateByPrefix(professionalsCachePrefix)
}

// Run периодически чистит устаревшие записи до отмены ctx.
func (cs *CacheService) Run(ctx context.Context) {
	ticker := time.NewTicker(cs.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cs.cleanup()
		}
	}
}

func (cs *CacheService) cleanup() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	now := cs.now()
	for key, entry := range cs.cache {
		if now.After(entry.expiresAt) {
			delete(cs.cache, key)
		}
	}
}

// Генераторы ключей
const professionalsCachePrefix = "professionals:"

func ProfessionalsCacheKey() string {
	return professionalsCachePrefix + "all"
}

func ProfessionalCacheKey(id int64) string {
	return professionalsCachePrefix + strconv.FormatInt(id, 10)
}

// GetOrSet достаёт значение из кэша или вычисляет и сохраняет его.
// Ошибки fn не кэшируются.
func (cs *CacheService) GetOrSet(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fn func() (interface{}, error),
) (interface{}, error) {
	if value, found := cs.Get(key); found {
		return value, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, err := fn()
	if err != nil {
		return nil, err
	}

	cs.Set(key, value, ttl)

	return value, nil
}
