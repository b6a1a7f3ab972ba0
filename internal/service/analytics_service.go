package service

import (
	"context"
	"encoding/json"
	"fmt"
	"institute_backend/internal/model"
	"institute_backend/internal/repository"
	"institute_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	analyticsKeyPrefix  = "analytics:"
	analyticsVersionKey = analyticsKeyPrefix + "version"
)

// AnalyticsService 统计结果缓存在 Redis 中；Redis 为 nil 时直接查库。
// 作废缓存通过递增版本号实现，旧版本的 key 由 TTL 回收。
type AnalyticsService struct {
	Repo  *repository.AnalyticsRepository
	Redis *redis.Client
	TTL   time.Duration
}

func NewAnalyticsService(repo *repository.AnalyticsRepository, rdb *redis.Client, ttl time.Duration) *AnalyticsService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &AnalyticsService{Repo: repo, Redis: rdb, TTL: ttl}
}

func (s *AnalyticsService) BranchStats(ctx context.Context) ([]model.BranchStats, error) {
	return cached(ctx, s, "branches", func() ([]model.BranchStats, error) {
		return s.Repo.BranchStats(ctx)
	})
}

func (s *AnalyticsService) AttendanceStats(ctx context.Context, branchID *uint) ([]model.AttendanceStats, error) {
	return cached(ctx, s, "attendance:"+branchKey(branchID), func() ([]model.AttendanceStats, error) {
		return s.Repo.AttendanceStats(ctx, branchID)
	})
}

func (s *AnalyticsService) ProgressStats(ctx context.Context, branchID *uint) ([]model.ProgressStats, error) {
	return cached(ctx, s, "progress:"+branchKey(branchID), func() ([]model.ProgressStats, error) {
		return s.Repo.ProgressStats(ctx, branchID)
	})
}

func (s *AnalyticsService) Invalidate(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Incr(ctx, analyticsVersionKey).Err(); err != nil {
		logger.Log.Warn("Failed to invalidate analytics cache", zap.Error(err))
	}
}

func branchKey(branchID *uint) string {
	if branchID == nil {
		return "all"
	}
	return fmt.Sprintf("%d", *branchID)
}

func (s *AnalyticsService) versionedKey(ctx context.Context, name string) (string, error) {
	version, err := s.Redis.Get(ctx, analyticsVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("%sv%d:%s", analyticsKeyPrefix, version, name), nil
}

// cached 缓存读写失败只记日志，不影响结果
func cached[T any](ctx context.Context, s *AnalyticsService, name string, load func() (T, error)) (T, error) {
	if s.Redis == nil {
		return load()
	}

	key, err := s.versionedKey(ctx, name)
	if err != nil {
		logger.Log.Warn("Analytics cache unavailable", zap.Error(err))
		return load()
	}

	if data, err := s.Redis.Get(ctx, key).Bytes(); err == nil {
		var out T
		if err := json.Unmarshal(data, &out); err == nil {
			return out, nil
		}
	} else if err != redis.Nil {
		logger.Log.Warn("Analytics cache read failed", zap.String("key", key), zap.Error(err))
	}

	out, err := load()
	if err != nil {
		return out, err
	}

	if data, err := json.Marshal(out); err == nil {
		if err := s.Redis.Set(ctx, key, data, s.TTL).Err(); err != nil {
			logger.Log.Warn("Analytics cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return out, nil
}
