package testutil

import (
	"context"
	"testing"
	"time"

	"leaguedash/api/filters"
	boardsrepo "leaguedash/api/repositories/boards"
	historyrepo "leaguedash/api/repositories/history"
	leaderboardrepo "leaguedash/api/repositories/leaderboard"
	"leaguedash/pkg/database/models"

	"github.com/stretchr/testify/mock"
)

// DefaultTimerCtx is the concrete type of the short-timeout contexts the
// services use when talking to redis.
const DefaultTimerCtx = "*context.timerCtx"

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(*testing.T) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// ============================================================================
// Shared cache mocks.
// ============================================================================

// MemCache mock implementation.
type MockMemCache struct {
	mock.Mock
}

func (m *MockMemCache) Get(key string) any {
	args := m.Called(key)
	return args.Get(0)
}

func (m *MockMemCache) Set(key string, value any, ttl time.Duration) {
	m.Called(key, value, ttl)
}

func (m *MockMemCache) Close() {
	m.Called()
}

// Redis client mock implementation.
type MockRedisClient struct {
	mock.Mock
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(string), args.Error(1)
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// ============================================================================
// Mock Implementations used on the Dashboard service tests.
// ============================================================================

// Leaderboard repo mock implementation.
type MockLeaderboardRepository struct {
	mock.Mock
}

func (m *MockLeaderboardRepository) TeamLeaderboard(ctx context.Context, f *filters.LeaderboardFilter) ([]*leaderboardrepo.RawTeamRow, int, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]*leaderboardrepo.RawTeamRow), args.Int(1), args.Error(2)
}

func (m *MockLeaderboardRepository) PlayerLeaderboard(ctx context.Context, f *filters.LeaderboardFilter) ([]*leaderboardrepo.RawPlayerRow, int, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]*leaderboardrepo.RawPlayerRow), args.Int(1), args.Error(2)
}

func (m *MockLeaderboardRepository) TeamRosters(ctx context.Context, f *filters.LeaderboardFilter, teamIds []uint) ([]*leaderboardrepo.RawRosterEntry, error) {
	args := m.Called(ctx, f, teamIds)
	return args.Get(0).([]*leaderboardrepo.RawRosterEntry), args.Error(1)
}

func (m *MockLeaderboardRepository) PlayerAccounts(ctx context.Context, f *filters.LeaderboardFilter, playerIds []uint) ([]*leaderboardrepo.RawAccountRow, error) {
	args := m.Called(ctx, f, playerIds)
	return args.Get(0).([]*leaderboardrepo.RawAccountRow), args.Error(1)
}

// Boards repo mock implementation.
type MockBoardsRepository struct {
	mock.Mock
}

func (m *MockBoardsRepository) Summary(ctx context.Context, f *filters.SummaryFilter) (*boardsrepo.RawSummary, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(*boardsrepo.RawSummary), args.Error(1)
}

func (m *MockBoardsRepository) TopGrinders(ctx context.Context, f *filters.BoardFilter) ([]*boardsrepo.RawBoardRow, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]*boardsrepo.RawBoardRow), args.Error(1)
}

func (m *MockBoardsRepository) Streaks(ctx context.Context, f *filters.BoardFilter, losses bool) ([]*boardsrepo.RawBoardRow, error) {
	args := m.Called(ctx, f, losses)
	return args.Get(0).([]*boardsrepo.RawBoardRow), args.Error(1)
}

func (m *MockBoardsRepository) LpMovers(ctx context.Context, f *filters.BoardFilter, losers bool) ([]*boardsrepo.RawBoardRow, error) {
	args := m.Called(ctx, f, losers)
	return args.Get(0).([]*boardsrepo.RawBoardRow), args.Error(1)
}

// ============================================================================
// Mock Implementations used on the History service tests.
// ============================================================================

// History repo mock implementation.
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) TeamHistory(ctx context.Context, f *filters.HistoryFilter) ([]*historyrepo.RawHistoryPoint, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]*historyrepo.RawHistoryPoint), args.Error(1)
}

func (m *MockHistoryRepository) PlayerHistory(ctx context.Context, f *filters.HistoryFilter) ([]*historyrepo.RawHistoryPoint, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]*historyrepo.RawHistoryPoint), args.Error(1)
}

// ============================================================================
// Mock Implementations used on the Reference service tests.
// ============================================================================

// Reference repo mock implementation.
type MockReferenceRepository struct {
	mock.Mock
}

func (m *MockReferenceRepository) ActiveLeagues(ctx context.Context) ([]*models.League, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.League), args.Error(1)
}

func (m *MockReferenceRepository) Splits(ctx context.Context) ([]*models.Split, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Split), args.Error(1)
}
