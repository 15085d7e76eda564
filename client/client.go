// Package client is a typed Go client for the dashboard API. Identical
// in-flight GET requests are collapsed into a single underlying call.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"leaguedash/api/dto"
	"leaguedash/pkg/messages"

	"golang.org/x/sync/singleflight"
)

const defaultTimeout = 15 * time.Second

// Client calls the dashboard API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	group      singleflight.Group
}

// NewClient creates a client for the API served at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// envelope is the shared response wrapper of every endpoint.
type envelope[T any] struct {
	Data T               `json:"data"`
	Meta *dto.Pagination `json:"meta,omitempty"`
}

// Summary returns the aggregate summary card.
func (c *Client) Summary(ctx context.Context, query url.Values) (*dto.Summary, error) {
	return getData[*dto.Summary](ctx, c, "/summary", query)
}

// Teams returns a page of the team leaderboard.
func (c *Client) Teams(ctx context.Context, query url.Values) ([]*dto.TeamRow, *dto.Pagination, error) {
	return getPage[[]*dto.TeamRow](ctx, c, "/teams", query)
}

// Players returns a page of the player leaderboard.
func (c *Client) Players(ctx context.Context, query url.Values) ([]*dto.PlayerRow, *dto.Pagination, error) {
	return getPage[[]*dto.PlayerRow](ctx, c, "/players", query)
}

// TopGrinders returns the most active entities of the window.
func (c *Client) TopGrinders(ctx context.Context, query url.Values) ([]*dto.BoardRow, error) {
	return getData[[]*dto.BoardRow](ctx, c, "/top-grinders", query)
}

// Streaks returns the current win streak board.
func (c *Client) Streaks(ctx context.Context, query url.Values) ([]*dto.BoardRow, error) {
	return getData[[]*dto.BoardRow](ctx, c, "/streaks", query)
}

// LossStreaks returns the current loss streak board.
func (c *Client) LossStreaks(ctx context.Context, query url.Values) ([]*dto.BoardRow, error) {
	return getData[[]*dto.BoardRow](ctx, c, "/loss-streaks", query)
}

// TopLpGainers returns the biggest LP gains of the window.
func (c *Client) TopLpGainers(ctx context.Context, query url.Values) ([]*dto.BoardRow, error) {
	return getData[[]*dto.BoardRow](ctx, c, "/top-lp-gainers", query)
}

// TopLpLosers returns the biggest LP losses of the window.
func (c *Client) TopLpLosers(ctx context.Context, query url.Values) ([]*dto.BoardRow, error) {
	return getData[[]*dto.BoardRow](ctx, c, "/top-lp-losers", query)
}

// TeamHistory returns the daily series of a team.
func (c *Client) TeamHistory(ctx context.Context, teamId uint, query url.Values) ([]*dto.HistoryPoint, error) {
	query = cloneValues(query)
	query.Set("teamId", strconv.FormatUint(uint64(teamId), 10))
	return getData[[]*dto.HistoryPoint](ctx, c, "/team-history", query)
}

// PlayerHistory returns the daily series of a player.
func (c *Client) PlayerHistory(ctx context.Context, playerId uint, query url.Values) ([]*dto.HistoryPoint, error) {
	query = cloneValues(query)
	query.Set("playerId", strconv.FormatUint(uint64(playerId), 10))
	return getData[[]*dto.HistoryPoint](ctx, c, "/player-history", query)
}

// Leagues returns the active leagues.
func (c *Client) Leagues(ctx context.Context) ([]*dto.LeagueEntry, error) {
	return getData[[]*dto.LeagueEntry](ctx, c, "/leagues", nil)
}

// Splits returns the known splits.
func (c *Client) Splits(ctx context.Context) ([]*dto.SplitEntry, error) {
	return getData[[]*dto.SplitEntry](ctx, c, "/splits", nil)
}

// getData fetches an endpoint and returns its data field.
func getData[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var zero T

	body, err := c.get(ctx, path, query)
	if err != nil {
		return zero, err
	}

	var parsed envelope[T]
	if err := json.Unmarshal(body, &parsed); err != nil {
		return zero, fmt.Errorf(messages.FailedToParseMsg+": %v", err)
	}

	return parsed.Data, nil
}

// getPage fetches a paginated endpoint and returns its data and meta fields.
func getPage[T any](ctx context.Context, c *Client, path string, query url.Values) (T, *dto.Pagination, error) {
	var zero T

	body, err := c.get(ctx, path, query)
	if err != nil {
		return zero, nil, err
	}

	var parsed envelope[T]
	if err := json.Unmarshal(body, &parsed); err != nil {
		return zero, nil, fmt.Errorf(messages.FailedToParseMsg+": %v", err)
	}

	return parsed.Data, parsed.Meta, nil
}

// get runs a deduplicated GET. Concurrent calls for the same URL share a
// single underlying request. The caller's context only controls delivery,
// aborting one caller must not cancel the request for the others.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	key := http.MethodGet + " " + fullURL
	resultChan := c.group.DoChan(key, func() (any, error) {
		return c.fetch(fullURL)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-resultChan:
		if result.Err != nil {
			return nil, result.Err
		}
		return result.Val.([]byte), nil
	}
}

// fetch runs the actual request and reads the body.
func (c *Client) fetch(fullURL string) ([]byte, error) {
	resp, err := c.httpClient.Get(fullURL)
	if err != nil {
		return nil, fmt.Errorf(messages.RequestFailedMsg+": %v", fullURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(messages.BadStatusCodeMsg, resp.StatusCode, fullURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf(messages.RequestFailedMsg+": %v", fullURL, err)
	}

	return body, nil
}

func cloneValues(query url.Values) url.Values {
	cloned := make(url.Values, len(query)+1)
	for k, v := range query {
		cloned[k] = append([]string(nil), v...)
	}
	return cloned
}
