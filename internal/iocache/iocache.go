// Package iocache is for caching I/O calls and tracking report runs.
package iocache

import (
	"sync"

	"github.com/huangsam/gitstats/internal/contract"
)

// CacheStoreManager manages the activity cache and the stats store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	activity     *CacheStoreImpl
	stats        *StatsStoreImpl
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetActivityStore returns the activity CacheStore, or nil when caching is not configured.
func (mgr *CacheStoreManager) GetActivityStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	if mgr.activity == nil {
		return nil
	}
	return mgr.activity
}

// GetStatsStore returns the StatsStore, or nil when run tracking is not configured.
func (mgr *CacheStoreManager) GetStatsStore() contract.StatsStore {
	mgr.RLock()
	defer mgr.RUnlock()
	if mgr.stats == nil {
		return nil
	}
	return mgr.stats
}
