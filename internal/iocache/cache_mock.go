package iocache

import (
	"time"

	"github.com/huangsam/gitstats/core/stats"
	"github.com/huangsam/gitstats/internal/contract"
	"github.com/huangsam/gitstats/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetActivityStore implements the CacheManager interface.
func (m *MockCacheManager) GetActivityStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetStatsStore implements the CacheManager interface.
func (m *MockCacheManager) GetStatsStore() contract.StatsStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.StatsStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	data, _ := args.Get(0).([]byte)
	return data, args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// MockStatsStore is a mock implementation of StatsStore for testing.
type MockStatsStore struct {
	mock.Mock
}

var _ contract.StatsStore = &MockStatsStore{} // Compile-time check

// BeginRun implements the StatsStore interface.
func (m *MockStatsStore) BeginRun(repoPath string, startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(repoPath, startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the StatsStore interface.
func (m *MockStatsStore) EndRun(runID int64, endTime time.Time, totalCommits, totalAuthors int) error {
	args := m.Called(runID, endTime, totalCommits, totalAuthors)
	return args.Error(0)
}

// RecordAuthor implements the StatsStore interface.
func (m *MockStatsStore) RecordAuthor(runID int64, author *stats.AuthorSummary) error {
	args := m.Called(runID, author)
	return args.Error(0)
}

// GetStatus implements the StatsStore interface.
func (m *MockStatsStore) GetStatus() (schema.StatsStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StatsStatus), args.Error(1)
}

// GetAllRuns implements the StatsStore interface.
func (m *MockStatsStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.RunRecord)
	return runs, args.Error(1)
}

// GetAllAuthors implements the StatsStore interface.
func (m *MockStatsStore) GetAllAuthors() ([]schema.AuthorRecord, error) {
	args := m.Called()
	authors, _ := args.Get(0).([]schema.AuthorRecord)
	return authors, args.Error(1)
}

// Close implements the StatsStore interface.
func (m *MockStatsStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
