package agg

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/gitstats/internal/contract"
	"github.com/huangsam/gitstats/internal/logger"
	"github.com/huangsam/gitstats/schema"
)

// currentCacheVersion defines the version of the cached commit list format.
const currentCacheVersion = 1

// CachedCommits returns the parsed commit list for cfg, reading through the activity cache when one is configured.
func CachedCommits(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) ([]schema.CommitEntry, error) {
	var activity contract.CacheStore
	if mgr != nil {
		activity = mgr.GetActivityStore()
	}
	if activity == nil {
		return readCommits(ctx, cfg, client)
	}

	key := generateCacheKey(ctx, cfg, client)

	if result, ok := checkCacheHit(activity, key, cfg.CacheTTL); ok {
		logger.WithField("key", key[:12]).Debug("activity cache hit")
		return result, nil
	}
	logger.WithField("key", key[:12]).Debug("activity cache miss")

	return computeAndStore(ctx, cfg, client, activity, key)
}

// checkCacheHit attempts to retrieve and validate a cached result.
func checkCacheHit(activity contract.CacheStore, key string, ttl time.Duration) ([]schema.CommitEntry, bool) {
	data, version, ts, err := activity.Get(key)
	if err != nil || version != currentCacheVersion {
		return nil, false
	}
	if ttl <= 0 {
		ttl = contract.DefaultCacheTTL
	}
	if time.Since(time.Unix(ts, 0)) > ttl {
		return nil, false
	}
	var result []schema.CommitEntry
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}
	return result, true
}

// computeAndStore computes the result and stores it in cache.
func computeAndStore(ctx context.Context, cfg *contract.Config, client contract.GitClient, activity contract.CacheStore, key string) ([]schema.CommitEntry, error) {
	result, err := readCommits(ctx, cfg, client)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return result, nil
	}
	if err := activity.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
		contract.LogWarn("failed to write activity cache", err)
	}
	return result, nil
}

// generateCacheKey creates a unique key from the inputs that shape the commit list.
// HEAD is included so new commits invalidate the entry.
func generateCacheKey(ctx context.Context, cfg *contract.Config, client contract.GitClient) string {
	repoHash, err := client.GetRepoHash(ctx, cfg.RepoPath)
	if err != nil {
		repoHash = ""
	}

	aliases := make([]string, 0, len(cfg.Aliases))
	for from, to := range cfg.Aliases {
		aliases = append(aliases, from+"="+to)
	}
	slices.Sort(aliases)

	key := fmt.Sprintf("%s:%d:%d:%s:%s:%s",
		cfg.RepoPath,
		unixOrZero(cfg.StartTime),
		unixOrZero(cfg.EndTime),
		strings.Join(cfg.Excludes, ","),
		strings.Join(aliases, ","),
		repoHash,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}

// unixOrZero aligns window bounds to the hour so relative windows share cache entries.
func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Truncate(time.Hour).Unix()
}
