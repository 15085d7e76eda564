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

func TestNewBoardsRepository(t *testing.T) {
	repository := NewBoardsRepository(&gorm.DB{})
	assert.NotNil(t, repository)
}

var boardsTestNow = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

// boardFilter builds a custom-window board filter over the seeded fixture.
func boardFilter(t *testing.T, mutate func(*filters.BoardQueryParams)) *filters.BoardFilter {
	t.Helper()

	params := &filters.BoardQueryParams{
		Limit:    5,
		Sort:     "desc",
		ViewMode: filters.ViewPlayers,
	}
	params.Period = "custom"
	params.StartDate = "2025-06-09"
	params.EndDate = "2025-06-15"

	if mutate != nil {
		mutate(params)
	}

	f, err := filters.NewBoardFilter(params, 0, time.Time{}, boardsTestNow)
	assert.NoError(t, err)
	return f
}

// summaryFilter builds a custom-window summary filter over the seeded fixture.
func summaryFilter(t *testing.T, mutate func(*filters.SummaryQueryParams)) *filters.SummaryFilter {
	t.Helper()

	params := &filters.SummaryQueryParams{}
	params.Period = "custom"
	params.StartDate = "2025-06-09"
	params.EndDate = "2025-06-15"

	if mutate != nil {
		mutate(params)
	}

	f, err := filters.NewSummaryFilter(params, time.Time{}, boardsTestNow)
	assert.NoError(t, err)
	return f
}

// seedBoardsData creates three one-player teams with two stat days each
// inside the window, plus a current streak per account. Chovy sits in diamond
// with a huge LP figure that must never reach any LP aggregate:
//
//	T1    Faker     MASTER  games 50 wins 30 lp 200 -> 450  streak +5
//	Gen.G Chovy     DIAMOND games 30 wins 20 lp 4000        streak -3
//	DK    ShowMaker MASTER  games 10 wins  3 lp 500 -> 480  streak +2
func seedBoardsData(t *testing.T, db *gorm.DB) models.League {
	t.Helper()

	org := models.Organization{Name: "Fixture Esports", ShortName: "FE"}
	assert.NoError(t, db.Create(&org).Error)

	league := models.League{Name: "League of Legends Champions Korea", ShortName: "LCK", Region: "KR", IsActive: true}
	assert.NoError(t, db.Create(&league).Error)

	type fixture struct {
		team   string
		short  string
		slug   string
		player string
		tier   string
		streak int
		games  [2]int
		wins   [2]int
		lp     [2]int
	}

	fixtures := []fixture{
		{team: "T1", short: "T1", slug: "t1", player: "Faker", tier: "MASTER", streak: 5, games: [2]int{30, 20}, wins: [2]int{20, 10}, lp: [2]int{200, 450}},
		{team: "Gen.G", short: "GEN", slug: "geng", player: "Chovy", tier: "DIAMOND", streak: -3, games: [2]int{15, 15}, wins: [2]int{10, 10}, lp: [2]int{4000, 4000}},
		{team: "DK", short: "DK", slug: "dk", player: "ShowMaker", tier: "MASTER", streak: 2, games: [2]int{5, 5}, wins: [2]int{2, 1}, lp: [2]int{500, 480}},
	}

	windowStart := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	lastDay := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	contractStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, fx := range fixtures {
		team := models.Team{
			OrganizationID: org.ID,
			LeagueID:       league.ID,
			Name:           fx.team,
			ShortName:      fx.short,
			Slug:           fx.slug,
			IsActive:       true,
		}
		assert.NoError(t, db.Create(&team).Error)

		player := models.Player{Slug: fx.slug + "-player", Pseudo: fx.player, Country: "KR"}
		assert.NoError(t, db.Create(&player).Error)

		account := models.Account{
			PlayerID: player.ID,
			Puuid:    fmt.Sprintf("%078d", i+1),
			GameName: fx.player,
			TagLine:  "KR1",
			Region:   "KR",
		}
		assert.NoError(t, db.Create(&account).Error)

		contract := models.Contract{
			PlayerID:  player.ID,
			TeamID:    team.ID,
			Role:      "MID",
			StartDate: contractStart,
		}
		assert.NoError(t, db.Create(&contract).Error)

		streak := models.Streak{AccountID: account.ID, Current: fx.streak}
		assert.NoError(t, db.Create(&streak).Error)

		days := [2]time.Time{windowStart, lastDay}
		for d := 0; d < 2; d++ {
			stat := models.DailyStat{
				AccountID:         account.ID,
				Date:              days[d],
				GamesPlayed:       fx.games[d],
				Wins:              fx.wins[d],
				TotalGameDuration: fx.games[d] * 1800,
				Tier:              fx.tier,
				Rank:              "I",
				Lp:                fx.lp[d],
			}
			assert.NoError(t, db.Create(&stat).Error)
		}
	}

	return league
}

func TestSummary(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewBoardsRepository(db)
	league := seedBoardsData(t, db)

	t.Run("fullWindow", func(t *testing.T) {
		summary, err := repository.Summary(context.Background(), summaryFilter(t, nil))
		assert.NoError(t, err)

		assert.Equal(t, 90, summary.Games)
		assert.Equal(t, 53, summary.Wins)
		assert.Equal(t, 58.9, summary.Winrate)
		assert.Equal(t, 90*1800, summary.TotalGameDuration)
		assert.Equal(t, 3, summary.ActivePlayers)

		// Faker +250 and ShowMaker -20. Chovy's diamond 4000 contributes 0.
		assert.Equal(t, 230, summary.LpChange)
	})

	t.Run("leagueFiltered", func(t *testing.T) {
		summary, err := repository.Summary(context.Background(), summaryFilter(t, func(p *filters.SummaryQueryParams) {
			p.Leagues = []uint{league.ID}
		}))
		assert.NoError(t, err)
		assert.Equal(t, 90, summary.Games)
		assert.Equal(t, 230, summary.LpChange)
	})

	t.Run("unknownLeague", func(t *testing.T) {
		summary, err := repository.Summary(context.Background(), summaryFilter(t, func(p *filters.SummaryQueryParams) {
			p.Leagues = []uint{9999}
		}))
		assert.NoError(t, err)
		assert.Equal(t, 0, summary.Games)
		assert.Equal(t, 0, summary.ActivePlayers)
		assert.Equal(t, 0, summary.LpChange)
	})

	t.Run("emptyWindow", func(t *testing.T) {
		summary, err := repository.Summary(context.Background(), summaryFilter(t, func(p *filters.SummaryQueryParams) {
			p.StartDate = "2024-01-01"
			p.EndDate = "2024-01-07"
		}))
		assert.NoError(t, err)
		assert.Equal(t, 0, summary.Games)
		assert.Equal(t, 0.0, summary.Winrate)
	})
}

func TestTopGrinders(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewBoardsRepository(db)
	seedBoardsData(t, db)

	t.Run("players", func(t *testing.T) {
		rows, err := repository.TopGrinders(context.Background(), boardFilter(t, nil))
		assert.NoError(t, err)
		assert.Len(t, rows, 3)

		assert.Equal(t, "Faker", rows[0].Name)
		assert.Equal(t, 50, rows[0].Value)
		assert.Equal(t, "T1", rows[0].Team)
		assert.Equal(t, "Chovy", rows[1].Name)
		assert.Equal(t, "ShowMaker", rows[2].Name)
	})

	t.Run("limited", func(t *testing.T) {
		rows, err := repository.TopGrinders(context.Background(), boardFilter(t, func(p *filters.BoardQueryParams) {
			p.Limit = 2
		}))
		assert.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("teams", func(t *testing.T) {
		rows, err := repository.TopGrinders(context.Background(), boardFilter(t, func(p *filters.BoardQueryParams) {
			p.ViewMode = filters.ViewTeams
		}))
		assert.NoError(t, err)
		assert.Len(t, rows, 3)
		assert.Equal(t, "T1", rows[0].Name)
		assert.Equal(t, 50, rows[0].Value)
		assert.Equal(t, "DK", rows[2].Name)
	})
}

func TestStreaksBoard(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewBoardsRepository(db)
	seedBoardsData(t, db)

	t.Run("playerWins", func(t *testing.T) {
		rows, err := repository.Streaks(context.Background(), boardFilter(t, nil), false)
		assert.NoError(t, err)
		assert.Len(t, rows, 2)

		assert.Equal(t, "Faker", rows[0].Name)
		assert.Equal(t, 5, rows[0].Value)
		assert.Equal(t, "ShowMaker", rows[1].Name)
		assert.Equal(t, 2, rows[1].Value)
	})

	t.Run("playerLosses", func(t *testing.T) {
		rows, err := repository.Streaks(context.Background(), boardFilter(t, nil), true)
		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, "Chovy", rows[0].Name)
		assert.Equal(t, -3, rows[0].Value)
	})

	t.Run("teamWins", func(t *testing.T) {
		rows, err := repository.Streaks(context.Background(), boardFilter(t, func(p *filters.BoardQueryParams) {
			p.ViewMode = filters.ViewTeams
		}), false)
		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, "T1", rows[0].Name)
		assert.Equal(t, 5, rows[0].Value)
	})

	t.Run("teamLosses", func(t *testing.T) {
		rows, err := repository.Streaks(context.Background(), boardFilter(t, func(p *filters.BoardQueryParams) {
			p.ViewMode = filters.ViewTeams
		}), true)
		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, "Gen.G", rows[0].Name)
		assert.Equal(t, -3, rows[0].Value)
	})
}

func TestLpMovers(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewBoardsRepository(db)
	seedBoardsData(t, db)

	t.Run("playerGainers", func(t *testing.T) {
		rows, err := repository.LpMovers(context.Background(), boardFilter(t, nil), false)
		assert.NoError(t, err)

		// Chovy's diamond account never shows up, whatever its raw LP.
		assert.Len(t, rows, 1)
		assert.Equal(t, "Faker", rows[0].Name)
		assert.Equal(t, 250, rows[0].Value)
		assert.Equal(t, "MASTER", rows[0].Tier)
		assert.Equal(t, "I", rows[0].Rank)
		assert.Equal(t, 450, rows[0].Lp)
	})

	t.Run("playerLosers", func(t *testing.T) {
		rows, err := repository.LpMovers(context.Background(), boardFilter(t, nil), true)
		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, "ShowMaker", rows[0].Name)
		assert.Equal(t, -20, rows[0].Value)
	})

	t.Run("teamGainers", func(t *testing.T) {
		rows, err := repository.LpMovers(context.Background(), boardFilter(t, func(p *filters.BoardQueryParams) {
			p.ViewMode = filters.ViewTeams
		}), false)
		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, "T1", rows[0].Name)
		assert.Equal(t, 250, rows[0].Value)
	})
}
