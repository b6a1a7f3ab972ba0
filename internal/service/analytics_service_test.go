package service

import (
	"context"
	"institute_backend/internal/model"
	"institute_backend/internal/repository"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsWithoutCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1)
	svc := NewAnalyticsService(repository.NewAnalyticsRepository(f.db), nil, 0)

	_, err := f.quiz.SubmitQuiz(ctx, QuizSubmission{UnitID: f.unit.ID, StudentEmail: "a@x.edu", Answers: f.answers(t, 1, 1)})
	require.NoError(t, err)

	stats, err := svc.ProgressStats(ctx, nil)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, int64(1), stats[0].CompletedUnits)
	assert.Equal(t, int64(1), stats[0].TotalUnits)

	branches, err := svc.BranchStats(ctx)
	require.NoError(t, err)
	assert.Len(t, branches, 1)

	// 无 Redis 时作废是空操作
	svc.Invalidate(ctx)
}

// 需要本地 Redis：REDIS_ADDR=localhost:6379
func TestAnalyticsRedisCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	require.NoError(t, rdb.FlushDB(ctx).Err())
	t.Cleanup(func() { rdb.FlushDB(ctx); rdb.Close() })

	f := newFixture(t, 1)
	svc := NewAnalyticsService(repository.NewAnalyticsRepository(f.db), rdb, time.Minute)

	first, err := svc.BranchStats(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	require.NoError(t, f.db.Create(&model.Branch{Name: "EE"}).Error)

	cached, err := svc.BranchStats(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	svc.Invalidate(ctx)
	fresh, err := svc.BranchStats(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}
