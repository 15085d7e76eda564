package dashboardservice

import (
	"context"
	"testing"
	"time"

	"leaguedash/api/dto"
	"leaguedash/api/filters"
	boardsrepo "leaguedash/api/repositories/boards"
	servicetestutil "leaguedash/api/services/testutil"
	"leaguedash/internal/testutil"
	"leaguedash/pkg/daterange"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Simple test for asserting that everything is fine with the service creation.
func TestNewDashboardService(t *testing.T) {
	_, _, _, mockMemCache, mockRedis := setupTestService()
	deps := &DashboardServiceDeps{
		DB:       new(gorm.DB),
		MemCache: mockMemCache,
		Redis:    mockRedis,
		MemTTL:   testMemTTL,
		RedisTTL: testRedisTTL,
	}

	service := NewDashboardService(deps)
	assert.NotNil(t, service)
	assert.Equal(t, new(gorm.DB), service.db)
	assert.NotNil(t, service.LeaderboardRepository)
	assert.NotNil(t, service.BoardsRepository)
}

// Run tests on the possible outcomes of the board fallthrough.
func TestTopGrinders(t *testing.T) {
	tests := []struct {
		name          string
		returnData    []*dto.BoardRow
		testStrategy  string
		repoData      *testutil.OperationResult[[]*boardsrepo.RawBoardRow]
		expectedError error
	}{
		{
			name:         "fromMemCache",
			returnData:   createExpectedBoardRows(),
			testStrategy: "memcache",
		},
		{
			name:         "fromRedis",
			returnData:   createExpectedBoardRows(),
			testStrategy: "redis",
		},
		{
			name:         "fromRepo",
			returnData:   createExpectedBoardRows(),
			testStrategy: "nocache",
			repoData:     testutil.NewSuccessResult(createRawBoardRows()),
		},
		{
			name:         "fromRepoEmpty",
			returnData:   []*dto.BoardRow{},
			testStrategy: "nocache",
			repoData:     testutil.NewSuccessResult([]*boardsrepo.RawBoardRow{}),
		},
		{
			name:          "fromRepoErr",
			testStrategy:  "nocache",
			repoData:      boardRepoError(),
			expectedError: boardRepoError().Err,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, mockBoardsRepository, mockMemCache, mockRedis := setupTestService()

			f := testBoardFilter()
			key := boardKey("grinders", f)

			var expected any
			if tt.expectedError == nil {
				expected = tt.returnData
			}

			setupMocks(mockSetup{
				key:      key,
				strategy: tt.testStrategy,
				memCache: mockMemCache,
				redis:    mockRedis,
				fetchMock: func() {
					if tt.repoData != nil {
						mockBoardsRepository.On("TopGrinders", mock.Anything, f).Return(tt.repoData.Data, tt.repoData.Err)
					}
				},
				expectedResult: expected,
				stored:         tt.returnData,
			})

			result, err := service.TopGrinders(context.Background(), f)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.returnData, result)
			}

			servicetestutil.VerifyAllMocks(t, mockMemCache, mockRedis, mockBoardsRepository)
		})
	}
}

// The streaks and LP boards must not share cache entries with the grinders.
func TestBoardKeyPerBoard(t *testing.T) {
	f := testBoardFilter()

	keys := map[string]bool{
		boardKey("grinders", f):     true,
		boardKey("streaks", f):      true,
		boardKey("loss_streaks", f): true,
		boardKey("lp_gainers", f):   true,
		boardKey("lp_losers", f):    true,
	}

	assert.Len(t, keys, 5)
}

func TestBoardKeyFilters(t *testing.T) {
	base := testBoardFilter()

	teams := *base
	teams.Teams = true

	asc := *base
	asc.Ascending = true

	leagues := *base
	leagues.Leagues = []uint{1, 2}

	keys := map[string]bool{
		boardKey("grinders", base):     true,
		boardKey("grinders", &teams):   true,
		boardKey("grinders", &asc):     true,
		boardKey("grinders", &leagues): true,
	}

	assert.Len(t, keys, 4)
}

// The summary must compute the deltas against the preceding window.
func TestSummary(t *testing.T) {
	service, _, mockBoardsRepository, mockMemCache, mockRedis := setupTestService()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	rng, err := daterange.Resolve(daterange.PeriodDay, now)
	assert.NoError(t, err)

	f := &filters.SummaryFilter{Range: rng}
	key := summaryKey(f)

	current := &boardsrepo.RawSummary{
		Games:         100,
		Wins:          60,
		Winrate:       60.0,
		ActivePlayers: 12,
		LpChange:      300,
	}
	previous := &boardsrepo.RawSummary{
		Games:         80,
		Wins:          40,
		Winrate:       50.0,
		ActivePlayers: 10,
		LpChange:      -50,
	}

	mockMemCache.On("Get", key).Return(nil)
	mockRedis.On("Get", mock.AnythingOfType(servicetestutil.DefaultTimerCtx), key).Return("", nil)
	mockBoardsRepository.On("Summary", mock.Anything, f).Return(current, nil)
	mockBoardsRepository.On("Summary", mock.Anything, &filters.SummaryFilter{Range: rng.Previous()}).Return(previous, nil)
	mockMemCache.On("Set", key, mock.Anything, testMemTTL).Return(nil)
	mockRedis.On("Set", mock.Anything, key, mock.Anything, testRedisTTL).Return(nil)

	summary, err := service.Summary(context.Background(), f)
	assert.NoError(t, err)

	assert.Equal(t, rng.Label, summary.Label)
	assert.Equal(t, 100, summary.Current.Games)
	assert.Equal(t, 80, summary.Previous.Games)
	assert.Equal(t, 20, summary.Deltas.Games)
	assert.Equal(t, 20, summary.Deltas.Wins)
	assert.Equal(t, 10.0, summary.Deltas.Winrate)
	assert.Equal(t, 2, summary.Deltas.ActivePlayers)
	assert.Equal(t, 350, summary.Deltas.LpChange)

	servicetestutil.VerifyAllMocks(t, mockMemCache, mockRedis, mockBoardsRepository)
}

// The team board must merge the rosters and number the page from the offset.
func TestTeamBoard(t *testing.T) {
	service, mockLeaderboardRepository, _, mockMemCache, mockRedis := setupTestService()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	params := &filters.LeaderboardQueryParams{}
	params.Period = "day"
	params.Sort = "games"
	params.Page = 2
	params.PerPage = 20

	f, err := filters.NewLeaderboardFilter(params, 20, 100, time.Time{}, now)
	assert.NoError(t, err)

	key := leaderboardKey("teams", f)

	rawRows := createRawTeamRows()
	rosters := createRawRosters()

	mockMemCache.On("Get", key).Return(nil)
	mockRedis.On("Get", mock.AnythingOfType(servicetestutil.DefaultTimerCtx), key).Return("", nil)
	mockLeaderboardRepository.On("TeamLeaderboard", mock.Anything, f).Return(rawRows, 45, nil)
	mockLeaderboardRepository.On("TeamRosters", mock.Anything, f, []uint{10, 20}).Return(rosters, nil)
	mockMemCache.On("Set", key, mock.Anything, testMemTTL).Return(nil)
	mockRedis.On("Set", mock.Anything, key, mock.Anything, testRedisTTL).Return(nil)

	board, err := service.TeamBoard(context.Background(), f)
	assert.NoError(t, err)

	assert.Len(t, board.Rows, 2)
	assert.Equal(t, 21, board.Rows[0].Rank)
	assert.Equal(t, 22, board.Rows[1].Rank)
	assert.Len(t, board.Rows[0].Roster, 1)
	assert.Equal(t, "Faker", board.Rows[0].Roster[0].Pseudo)
	assert.Empty(t, board.Rows[1].Roster)

	assert.Equal(t, 45, board.Meta.Total)
	assert.Equal(t, 3, board.Meta.LastPage)
	assert.Equal(t, 2, board.Meta.CurrentPage)

	servicetestutil.VerifyAllMocks(t, mockMemCache, mockRedis, mockLeaderboardRepository)
}

// Nil filters are rejected before touching any layer.
func TestNilFilters(t *testing.T) {
	service, _, _, _, _ := setupTestService()

	_, err := service.TeamBoard(context.Background(), nil)
	assert.Error(t, err)

	_, err = service.PlayerBoard(context.Background(), nil)
	assert.Error(t, err)

	_, err = service.Summary(context.Background(), nil)
	assert.Error(t, err)

	_, err = service.TopGrinders(context.Background(), nil)
	assert.Error(t, err)
}

// Simple test to verify behavior when invalid json is returned from redis.
func TestInvalidRedisPayload(t *testing.T) {
	service, _, mockBoardsRepository, mockMemCache, mockRedis := setupTestService()

	f := testBoardFilter()
	key := boardKey("grinders", f)

	mockMemCache.On("Get", key).Return(nil)
	mockRedis.On("Get", mock.AnythingOfType(servicetestutil.DefaultTimerCtx), key).Return("invalid json", nil)
	mockBoardsRepository.On("TopGrinders", mock.Anything, f).Return(createRawBoardRows(), nil)
	mockMemCache.On("Set", key, mock.Anything, testMemTTL).Return(nil)
	mockRedis.On("Set", mock.Anything, key, mock.Anything, testRedisTTL).Return(nil)

	result, err := service.TopGrinders(context.Background(), f)
	assert.NoError(t, err)
	assert.Equal(t, createExpectedBoardRows(), result)

	servicetestutil.VerifyAllMocks(t, mockMemCache, mockRedis, mockBoardsRepository)
}
