package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"leaguedash/api/filters"
	"leaguedash/api/repositories/testutil"
	"leaguedash/pkg/database/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNewHistoryRepository(t *testing.T) {
	repository := NewHistoryRepository(&gorm.DB{})
	assert.NotNil(t, repository)
}

// historyFilter builds a custom-window history filter for the given entity.
func historyFilter(t *testing.T, entityId uint, mutate func(*filters.HistoryQueryParams)) *filters.HistoryFilter {
	t.Helper()

	params := &filters.HistoryQueryParams{}
	params.Period = "custom"
	params.StartDate = "2025-06-09"
	params.EndDate = "2025-06-15"

	if mutate != nil {
		mutate(params)
	}

	f, err := filters.NewHistoryFilter(params, entityId, time.Time{}, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	return f
}

// seedHistoryData creates one player on one team with two accounts, a master
// main and a diamond smurf carrying an LP figure that must never be summed.
// Expected per-day aggregates across both accounts:
//
//	2025-06-09 games 34 wins 22 winrate 64.7 lp 200
//	2025-06-14 games 26 wins 13 winrate 50.0 lp 450
func seedHistoryData(t *testing.T, db *gorm.DB) (models.Team, models.Player) {
	t.Helper()

	org := models.Organization{Name: "Fixture Esports", ShortName: "FE"}
	assert.NoError(t, db.Create(&org).Error)

	league := models.League{Name: "League of Legends Champions Korea", ShortName: "LCK", Region: "KR", IsActive: true}
	assert.NoError(t, db.Create(&league).Error)

	team := models.Team{
		OrganizationID: org.ID,
		LeagueID:       league.ID,
		Name:           "T1",
		ShortName:      "T1",
		Slug:           "t1",
		IsActive:       true,
	}
	assert.NoError(t, db.Create(&team).Error)

	player := models.Player{Slug: "faker", Pseudo: "Faker", Country: "KR"}
	assert.NoError(t, db.Create(&player).Error)

	contract := models.Contract{
		PlayerID:  player.ID,
		TeamID:    team.ID,
		Role:      "MID",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, db.Create(&contract).Error)

	type accountFixture struct {
		puuid string
		name  string
		tier  string
		games [2]int
		wins  [2]int
		lp    [2]int
	}

	accounts := []accountFixture{
		{puuid: fmt.Sprintf("%078d", 1), name: "Hide on bush", tier: "MASTER", games: [2]int{30, 20}, wins: [2]int{20, 10}, lp: [2]int{200, 450}},
		{puuid: fmt.Sprintf("%078d", 2), name: "SKT T1 Faker", tier: "DIAMOND", games: [2]int{4, 6}, wins: [2]int{2, 3}, lp: [2]int{4000, 4000}},
	}

	days := [2]time.Time{
		time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
	}

	for _, fx := range accounts {
		account := models.Account{
			PlayerID: player.ID,
			Puuid:    fx.puuid,
			GameName: fx.name,
			TagLine:  "KR1",
			Region:   "KR",
		}
		assert.NoError(t, db.Create(&account).Error)

		for d := 0; d < 2; d++ {
			stat := models.DailyStat{
				AccountID:   account.ID,
				Date:        days[d],
				GamesPlayed: fx.games[d],
				Wins:        fx.wins[d],
				Tier:        fx.tier,
				Rank:        "I",
				Lp:          fx.lp[d],
			}
			assert.NoError(t, db.Create(&stat).Error)
		}
	}

	return team, player
}

func assertHistoryPoints(t *testing.T, points []*RawHistoryPoint) {
	t.Helper()

	assert.Len(t, points, 2)

	assert.Equal(t, "2025-06-09", points[0].Date)
	assert.Equal(t, 34, points[0].Games)
	assert.Equal(t, 22, points[0].Wins)
	assert.Equal(t, 64.7, points[0].Winrate)

	// Only the master account's LP counts, the diamond 4000 is ignored.
	assert.Equal(t, 200, points[0].TotalLp)

	assert.Equal(t, "2025-06-14", points[1].Date)
	assert.Equal(t, 26, points[1].Games)
	assert.Equal(t, 13, points[1].Wins)
	assert.Equal(t, 50.0, points[1].Winrate)
	assert.Equal(t, 450, points[1].TotalLp)
}

func TestTeamHistory(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewHistoryRepository(db)
	team, _ := seedHistoryData(t, db)

	t.Run("fullWindow", func(t *testing.T) {
		points, err := repository.TeamHistory(context.Background(), historyFilter(t, team.ID, nil))
		assert.NoError(t, err)
		assertHistoryPoints(t, points)
	})

	t.Run("emptyWindow", func(t *testing.T) {
		points, err := repository.TeamHistory(context.Background(), historyFilter(t, team.ID, func(p *filters.HistoryQueryParams) {
			p.StartDate = "2024-01-01"
			p.EndDate = "2024-01-07"
		}))
		assert.NoError(t, err)
		assert.Empty(t, points)
	})

	t.Run("unknownTeam", func(t *testing.T) {
		points, err := repository.TeamHistory(context.Background(), historyFilter(t, 9999, nil))
		assert.NoError(t, err)
		assert.Empty(t, points)
	})
}

func TestPlayerHistory(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewHistoryRepository(db)
	_, player := seedHistoryData(t, db)

	points, err := repository.PlayerHistory(context.Background(), historyFilter(t, player.ID, nil))
	assert.NoError(t, err)
	assertHistoryPoints(t, points)
}
