package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ASchaffer8770/nhl-tracker/internal/domain/playoff"
	"github.com/ASchaffer8770/nhl-tracker/internal/domain/team"
)

var errUpstreamTimeout = errors.New("upstream timeout")

type fakeStandingsSource struct {
	teams []team.Team
	err   error
	calls atomic.Int32
}

func (f *fakeStandingsSource) FetchStandings(context.Context) ([]team.Team, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.teams, nil
}

type fakeSeriesSource struct {
	series map[string]playoff.RawSeries
	errs   map[string]error
	calls  atomic.Int32
}

func (f *fakeSeriesSource) FetchPlayoffSeries(_ context.Context, _ string, letter string) (playoff.RawSeries, bool, error) {
	f.calls.Add(1)
	if err := f.errs[letter]; err != nil {
		return playoff.RawSeries{}, false, err
	}
	raw, ok := f.series[letter]
	return raw, ok, nil
}

type fakeGameSource struct {
	days        map[string]playoff.ScheduleDay
	scheduleErr map[string]error
	boxscores   map[int64]playoff.Boxscore
	boxErr      error

	mu       sync.Mutex
	boxCalls []int64
}

func (f *fakeGameSource) FetchSchedule(_ context.Context, date time.Time) (playoff.ScheduleDay, error) {
	key := date.UTC().Format("2006-01-02")
	if err := f.scheduleErr[key]; err != nil {
		return playoff.ScheduleDay{}, err
	}
	day, ok := f.days[key]
	if !ok {
		return playoff.ScheduleDay{Date: key}, nil
	}
	return day, nil
}

func (f *fakeGameSource) FetchBoxscore(_ context.Context, gameID int64) (playoff.Boxscore, error) {
	f.mu.Lock()
	f.boxCalls = append(f.boxCalls, gameID)
	f.mu.Unlock()

	if f.boxErr != nil {
		return playoff.Boxscore{}, f.boxErr
	}
	box, ok := f.boxscores[gameID]
	if !ok {
		return playoff.Boxscore{}, ErrNotFound
	}
	return box, nil
}

func rawSeries(letter, round, top string, topWins int, bottom string, bottomWins int) playoff.RawSeries {
	return playoff.RawSeries{
		Letter: letter,
		Round:  round,
		Top:    playoff.RawCompetitor{Abbrev: top, Wins: topWins},
		Bottom: playoff.RawCompetitor{Abbrev: bottom, Wins: bottomWins},
	}
}

func standingsFixture() []team.Team {
	return []team.Team{
		{Abbrev: "COL", Name: "Colorado Avalanche", Conference: team.ConferenceWestern},
		{Abbrev: "DAL", Name: "Dallas Stars", Conference: team.ConferenceWestern},
		{Abbrev: "TBL", Name: "Tampa Bay Lightning", Conference: team.ConferenceEastern},
		{Abbrev: "FLA", Name: "Florida Panthers", Conference: team.ConferenceEastern},
		{Abbrev: "TOR", Name: "Toronto Maple Leafs", Conference: team.ConferenceEastern},
	}
}
