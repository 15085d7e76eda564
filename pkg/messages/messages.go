package messages

const (
	BadStatusCodeMsg = "API returned status code %d on URL %s"
	FailedToParseMsg = "failed to parse API response"
	FiltersNotNil    = "filters can't be nil"
	InvalidDate      = "invalid date, expected YYYY-MM-DD"
	InvalidPeriod    = "invalid period, expected day, month, year or custom"
	InvalidSort      = "invalid sort, expected games, winrate or lp"
	MissingPlayerId  = "playerId is required"
	MissingTeamId    = "teamId is required"
	RequestFailedMsg = "API request failed on URL %s"
)
