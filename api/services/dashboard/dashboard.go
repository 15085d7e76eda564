package dashboardservice

import (
	"context"
	"encoding/json"
	"time"

	"leaguedash/api/cache"
	boardsrepo "leaguedash/api/repositories/boards"
	leaderboardrepo "leaguedash/api/repositories/leaderboard"

	"gorm.io/gorm"
)

// DashboardRedisClient is the redis surface the service needs.
type DashboardRedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// DashboardService serves the leaderboards, the summary card and the small
// ranked boards, with a mem cache in front of redis in front of postgres.
type DashboardService struct {
	db       *gorm.DB
	memCache cache.MemCache
	redis    DashboardRedisClient

	memTTL   time.Duration
	redisTTL time.Duration

	LeaderboardRepository leaderboardrepo.LeaderboardRepository
	BoardsRepository      boardsrepo.BoardsRepository
}

// DashboardServiceDeps is the dependency list for the dashboard service.
type DashboardServiceDeps struct {
	DB       *gorm.DB
	MemCache cache.MemCache
	Redis    DashboardRedisClient
	MemTTL   time.Duration
	RedisTTL time.Duration
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(deps *DashboardServiceDeps) *DashboardService {
	return &DashboardService{
		db:                    deps.DB,
		memCache:              deps.MemCache,
		redis:                 deps.Redis,
		memTTL:                deps.MemTTL,
		redisTTL:              deps.RedisTTL,
		LeaderboardRepository: leaderboardrepo.NewLeaderboardRepository(deps.DB),
		BoardsRepository:      boardsrepo.NewBoardsRepository(deps.DB),
	}
}

// fromMemCache retrieves a typed value from the memory cache.
func fromMemCache[T any](mc cache.MemCache, key string) (T, bool) {
	var zero T
	cached := mc.Get(key)
	if cached == nil {
		return zero, false
	}

	typed, ok := cached.(T)
	if !ok {
		return zero, false
	}

	return typed, true
}

// fromRedis retrieves and unmarshals a value from redis with a short timeout,
// so a slow redis never stalls a request.
func fromRedis[T any](redis DashboardRedisClient, key string) (T, bool) {
	var zero T

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	cached, err := redis.Get(ctx, key)
	if err != nil || cached == "" {
		return zero, false
	}

	var value T
	if err := json.Unmarshal([]byte(cached), &value); err != nil {
		return zero, false
	}

	return value, true
}

// populateCaches sets both cache layers.
func (ds *DashboardService) populateCaches(key string, data any) {
	ds.memCache.Set(key, data, ds.memTTL)

	if j, err := json.Marshal(data); err == nil {
		ds.redis.Set(context.Background(), key, string(j), ds.redisTTL)
	}
}
