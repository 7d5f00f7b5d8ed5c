package nhle

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ASchaffer8770/nhl-tracker/internal/domain/playoff"
	"github.com/ASchaffer8770/nhl-tracker/internal/domain/team"
	"github.com/ASchaffer8770/nhl-tracker/internal/usecase"
)

const dateLayout = "2006-01-02"

func (c *Client) FetchStandings(ctx context.Context) ([]team.Team, error) {
	var envelope standingsEnvelope
	if err := c.doJSON(ctx, "/standings/now", &envelope); err != nil {
		return nil, fmt.Errorf("fetch standings: %w", err)
	}
	return toTeams(envelope), nil
}

// FetchPlayoffSeries returns found=false when the letter is not published yet.
func (c *Client) FetchPlayoffSeries(ctx context.Context, season, letter string) (playoff.RawSeries, bool, error) {
	season = strings.TrimSpace(season)
	letter = strings.ToLower(strings.TrimSpace(letter))
	if season == "" || letter == "" {
		return playoff.RawSeries{}, false, fmt.Errorf("%w: season and series letter are required", usecase.ErrInvalidInput)
	}

	path := fmt.Sprintf("/schedule/playoff-series/%s/%s", url.PathEscape(season), url.PathEscape(letter))
	var envelope seriesEnvelope
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		if isNotFound(err) {
			return playoff.RawSeries{}, false, nil
		}
		return playoff.RawSeries{}, false, fmt.Errorf("fetch playoff series season=%s letter=%s: %w", season, letter, err)
	}
	return toRawSeries(envelope, letter), true, nil
}

func (c *Client) FetchSchedule(ctx context.Context, date time.Time) (playoff.ScheduleDay, error) {
	day := date.UTC().Format(dateLayout)
	var envelope scheduleEnvelope
	if err := c.doJSON(ctx, "/schedule/"+day, &envelope); err != nil {
		if isNotFound(err) {
			return playoff.ScheduleDay{Date: day}, nil
		}
		return playoff.ScheduleDay{}, fmt.Errorf("fetch schedule date=%s: %w", day, err)
	}
	return toScheduleDay(envelope, day), nil
}

func (c *Client) FetchBoxscore(ctx context.Context, gameID int64) (playoff.Boxscore, error) {
	if gameID <= 0 {
		return playoff.Boxscore{}, fmt.Errorf("%w: game id must be greater than zero", usecase.ErrInvalidInput)
	}

	var envelope boxscoreEnvelope
	if err := c.doJSON(ctx, "/gamecenter/"+formatGameID(gameID)+"/boxscore", &envelope); err != nil {
		if isNotFound(err) {
			return playoff.Boxscore{}, fmt.Errorf("%w: game %d", usecase.ErrNotFound, gameID)
		}
		return playoff.Boxscore{}, fmt.Errorf("fetch boxscore game_id=%d: %w", gameID, err)
	}
	return toBoxscore(envelope, gameID), nil
}
