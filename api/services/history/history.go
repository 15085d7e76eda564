package historyservice

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"leaguedash/api/cache"
	"leaguedash/api/dto"
	"leaguedash/api/filters"
	historyrepo "leaguedash/api/repositories/history"
	"leaguedash/pkg/messages"

	"gorm.io/gorm"
)

// HistoryRedisClient is the redis surface the service needs.
type HistoryRedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// HistoryService serves the per-team and per-player daily series.
type HistoryService struct {
	db       *gorm.DB
	memCache cache.MemCache
	redis    HistoryRedisClient

	memTTL   time.Duration
	redisTTL time.Duration

	HistoryRepository historyrepo.HistoryRepository
}

// HistoryServiceDeps is the dependency list for the history service.
type HistoryServiceDeps struct {
	DB       *gorm.DB
	MemCache cache.MemCache
	Redis    HistoryRedisClient
	MemTTL   time.Duration
	RedisTTL time.Duration
}

// NewHistoryService creates a history service.
func NewHistoryService(deps *HistoryServiceDeps) *HistoryService {
	return &HistoryService{
		db:                deps.DB,
		memCache:          deps.MemCache,
		redis:             deps.Redis,
		memTTL:            deps.MemTTL,
		redisTTL:          deps.RedisTTL,
		HistoryRepository: historyrepo.NewHistoryRepository(deps.DB),
	}
}

// TeamHistory returns the daily series of a team.
func (hs *HistoryService) TeamHistory(ctx context.Context, f *filters.HistoryFilter) ([]*dto.HistoryPoint, error) {
	return hs.history(ctx, f, "team_history", hs.HistoryRepository.TeamHistory)
}

// PlayerHistory returns the daily series of a player.
func (hs *HistoryService) PlayerHistory(ctx context.Context, f *filters.HistoryFilter) ([]*dto.HistoryPoint, error) {
	return hs.history(ctx, f, "player_history", hs.HistoryRepository.PlayerHistory)
}

// history runs the cache fallthrough shared by both series.
func (hs *HistoryService) history(ctx context.Context, f *filters.HistoryFilter, name string, fetch func(context.Context, *filters.HistoryFilter) ([]*historyrepo.RawHistoryPoint, error)) ([]*dto.HistoryPoint, error) {
	if f == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	key := historyKey(name, f)

	if mem := hs.memCache.Get(key); mem != nil {
		if points, ok := mem.([]*dto.HistoryPoint); ok {
			return points, nil
		}
	}

	if points := hs.getFromRedis(key); points != nil {
		hs.memCache.Set(key, points, hs.memTTL)
		return points, nil
	}

	raw, err := fetch(ctx, f)
	if err != nil {
		return nil, err
	}

	points := make([]*dto.HistoryPoint, 0, len(raw))
	for _, p := range raw {
		points = append(points, &dto.HistoryPoint{
			Date:    p.Date,
			Games:   p.Games,
			Wins:    p.Wins,
			Winrate: p.Winrate,
			TotalLp: p.TotalLp,
		})
	}

	hs.memCache.Set(key, points, hs.memTTL)
	if j, err := json.Marshal(points); err == nil {
		hs.redis.Set(context.Background(), key, string(j), hs.redisTTL)
	}

	return points, nil
}

// getFromRedis retrieves a cached series with a short timeout.
func (hs *HistoryService) getFromRedis(key string) []*dto.HistoryPoint {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	cached, err := hs.redis.Get(ctx, key)
	if err != nil || cached == "" {
		return nil
	}

	var points []*dto.HistoryPoint
	if err := json.Unmarshal([]byte(cached), &points); err != nil {
		return nil
	}

	return points
}

// historyKey generates the cache key for one series.
func historyKey(name string, f *filters.HistoryFilter) string {
	return name + ":" + strconv.FormatUint(uint64(f.EntityId), 10) +
		":" + f.Range.StartString() + ":" + f.Range.EndString()
}
