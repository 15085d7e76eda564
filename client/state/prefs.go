package state

import (
	"encoding/json"

	"leaguedash/pkg/daterange"
)

// PrefsVersion is the current preference schema version. Bump it whenever
// a field changes meaning, LoadPrefs migrates or resets older payloads.
const PrefsVersion = 2

// Prefs are the persisted dashboard preferences.
type Prefs struct {
	Version  int    `json:"version"`
	Period   string `json:"period"`
	ViewMode string `json:"viewMode"`
	Sort     string `json:"sort"`
	MinGames int    `json:"minGames"`
	PerPage  int    `json:"perPage"`
}

// DefaultPrefs returns the preferences used on a first visit.
func DefaultPrefs() Prefs {
	return Prefs{
		Version:  PrefsVersion,
		Period:   string(daterange.PeriodDay),
		ViewMode: "players",
		Sort:     "games",
		MinGames: 0,
		PerPage:  20,
	}
}

// LoadPrefs parses a persisted payload. Any unparsable, unmigratable or
// invalid payload falls back to the defaults instead of erroring, stale
// preferences are never worth breaking the dashboard over.
func LoadPrefs(raw []byte) Prefs {
	defaults := DefaultPrefs()
	if len(raw) == 0 {
		return defaults
	}

	var prefs Prefs
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return defaults
	}

	prefs = migratePrefs(prefs)
	if prefs.Version != PrefsVersion {
		return defaults
	}

	if !validPeriod(prefs.Period) {
		prefs.Period = defaults.Period
	}
	if prefs.ViewMode != "players" && prefs.ViewMode != "teams" {
		prefs.ViewMode = defaults.ViewMode
	}
	if prefs.Sort != "games" && prefs.Sort != "winrate" && prefs.Sort != "lp" {
		prefs.Sort = defaults.Sort
	}
	if prefs.MinGames < 0 {
		prefs.MinGames = defaults.MinGames
	}
	if prefs.PerPage < 1 {
		prefs.PerPage = defaults.PerPage
	}

	return prefs
}

// Save serializes the preferences for persistence.
func (p Prefs) Save() ([]byte, error) {
	p.Version = PrefsVersion
	return json.Marshal(p)
}

// migratePrefs upgrades older schema versions in place.
func migratePrefs(prefs Prefs) Prefs {
	// Version 1 called the rolling window "week".
	if prefs.Version == 1 {
		if prefs.Period == "week" {
			prefs.Period = string(daterange.PeriodDay)
		}
		prefs.Version = 2
	}

	return prefs
}

func validPeriod(period string) bool {
	switch daterange.Period(period) {
	case daterange.PeriodDay, daterange.PeriodMonth, daterange.PeriodYear, daterange.PeriodCustom:
		return true
	}
	return false
}
