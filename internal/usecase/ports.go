package usecase

import (
	"context"
	"time"

	"github.com/ASchaffer8770/nhl-tracker/internal/domain/playoff"
	"github.com/ASchaffer8770/nhl-tracker/internal/domain/team"
)

// StandingsSource returns the current league standings.
type StandingsSource interface {
	FetchStandings(ctx context.Context) ([]team.Team, error)
}

// SeriesSource returns one playoff series. found is false for a letter that is
// not published yet.
type SeriesSource interface {
	FetchPlayoffSeries(ctx context.Context, season, letter string) (raw playoff.RawSeries, found bool, err error)
}

// GameSource returns schedules by date and per-game box scores.
type GameSource interface {
	FetchSchedule(ctx context.Context, date time.Time) (playoff.ScheduleDay, error)
	FetchBoxscore(ctx context.Context, gameID int64) (playoff.Boxscore, error)
}

// SnapshotCache reads short-lived upstream snapshots through loader. keep
// decides whether a loaded snapshot may be stored.
type SnapshotCache[T any] interface {
	GetOrLoad(ctx context.Context, key string, loader func(context.Context) (T, error), keep func(T) bool) (T, error)
}

func loadSnapshot[T any](ctx context.Context, cache SnapshotCache[T], key string, loader func(context.Context) (T, error), keep func(T) bool) (T, error) {
	if cache == nil {
		return loader(ctx)
	}
	return cache.GetOrLoad(ctx, key, loader, keep)
}
