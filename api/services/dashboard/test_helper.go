package dashboardservice

import (
	"encoding/json"
	"time"

	"leaguedash/api/dto"
	"leaguedash/api/filters"
	boardsrepo "leaguedash/api/repositories/boards"
	leaderboardrepo "leaguedash/api/repositories/leaderboard"
	servicetestutil "leaguedash/api/services/testutil"
	"leaguedash/internal/testutil"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

const (
	testMemTTL   = time.Minute
	testRedisTTL = 5 * time.Minute
)

// Mock setup struct
type mockSetup struct {
	key      string
	strategy string

	memCache *servicetestutil.MockMemCache
	redis    *servicetestutil.MockRedisClient

	fetchMock func()

	expectedResult any
	stored         any
}

// Helper to initialize the mocks.
func setupTestService() (*DashboardService, *servicetestutil.MockLeaderboardRepository, *servicetestutil.MockBoardsRepository, *servicetestutil.MockMemCache, *servicetestutil.MockRedisClient) {
	mockLeaderboardRepository := new(servicetestutil.MockLeaderboardRepository)
	mockBoardsRepository := new(servicetestutil.MockBoardsRepository)
	mockMemCache := new(servicetestutil.MockMemCache)
	mockRedisClient := new(servicetestutil.MockRedisClient)

	service := &DashboardService{
		db:                    new(gorm.DB),
		memCache:              mockMemCache,
		redis:                 mockRedisClient,
		memTTL:                testMemTTL,
		redisTTL:              testRedisTTL,
		LeaderboardRepository: mockLeaderboardRepository,
		BoardsRepository:      mockBoardsRepository,
	}

	return service, mockLeaderboardRepository, mockBoardsRepository, mockMemCache, mockRedisClient
}

// Create a board raw return with a rank snapshot on the first row only.
func createRawBoardRows() []*boardsrepo.RawBoardRow {
	return []*boardsrepo.RawBoardRow{
		{
			EntityId: 1,
			Name:     "Faker",
			Team:     "T1",
			Value:    42,
			Tier:     "CHALLENGER",
			Rank:     "I",
			Lp:       1250,
		},
		{
			EntityId: 2,
			Name:     "Chovy",
			Team:     "GEN",
			Value:    38,
		},
	}
}

// Create the board result matching createRawBoardRows.
func createExpectedBoardRows() []*dto.BoardRow {
	return []*dto.BoardRow{
		{
			Rank:     1,
			EntityId: 1,
			Name:     "Faker",
			Team:     "T1",
			Value:    42,
			Best:     &dto.RankSnapshot{Tier: "CHALLENGER", Rank: "I", Lp: 1250},
		},
		{
			Rank:     2,
			EntityId: 2,
			Name:     "Chovy",
			Team:     "GEN",
			Value:    38,
		},
	}
}

// Create a team leaderboard raw return.
func createRawTeamRows() []*leaderboardrepo.RawTeamRow {
	return []*leaderboardrepo.RawTeamRow{
		{
			TeamId:   10,
			Name:     "T1",
			Slug:     "t1",
			League:   "LCK",
			Games:    50,
			Wins:     30,
			Winrate:  60.0,
			LpChange: 250,
		},
		{
			TeamId:   20,
			Name:     "Gen.G",
			Slug:     "geng",
			League:   "LCK",
			Games:    30,
			Wins:     18,
			Winrate:  60.0,
			LpChange: 120,
		},
	}
}

// Create the rosters matching createRawTeamRows, the second team has none.
func createRawRosters() []*leaderboardrepo.RawRosterEntry {
	return []*leaderboardrepo.RawRosterEntry{
		{
			TeamId:   10,
			PlayerId: 1,
			Pseudo:   "Faker",
			Slug:     "faker",
			Role:     "MID",
			Games:    50,
			Winrate:  60.0,
			Tier:     "CHALLENGER",
			Rank:     "I",
			Lp:       1250,
		},
	}
}

// Setup the mocks based on the cache strategy.
func setupMocks(setup mockSetup) {
	switch setup.strategy {
	case "memcache":
		setup.memCache.On("Get", setup.key).Return(setup.stored)
	case "redis":
		setup.memCache.On("Get", setup.key).Return(nil)

		data, _ := json.Marshal(setup.expectedResult)
		setup.redis.On("Get", mock.AnythingOfType(servicetestutil.DefaultTimerCtx), setup.key).Return(string(data), nil)
		setup.memCache.On("Set", setup.key, setup.expectedResult, testMemTTL).Return(nil)
	case "nocache":
		setup.memCache.On("Get", setup.key).Return(nil)
		setup.redis.On("Get", mock.AnythingOfType(servicetestutil.DefaultTimerCtx), setup.key).Return("", nil)

		setup.fetchMock()

		if setup.expectedResult != nil {
			setup.memCache.On("Set", setup.key, setup.expectedResult, testMemTTL).Return(nil)

			data, _ := json.Marshal(setup.expectedResult)
			setup.redis.On("Set", mock.Anything, setup.key, string(data), testRedisTTL).Return(nil)
		}
	}
}

// Wrap a repo error for the board fetch mocks.
func boardRepoError() *testutil.OperationResult[[]*boardsrepo.RawBoardRow] {
	return testutil.GetMockRepoError[[]*boardsrepo.RawBoardRow]()
}

// Small helper for building the default board filter of the tests.
func testBoardFilter() *filters.BoardFilter {
	params := &filters.BoardQueryParams{}
	params.Period = "day"
	params.Limit = 5
	params.Sort = "desc"
	params.ViewMode = filters.ViewPlayers

	f, _ := filters.NewBoardFilter(params, 0, time.Time{}, time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	return f
}
