package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ASchaffer8770/nhl-tracker/internal/domain/playoff"
	"github.com/ASchaffer8770/nhl-tracker/internal/platform/logging"
)

const liveScanDays = 2

// LiveGameService finds in-progress games for tracked entries.
type LiveGameService struct {
	source GameSource
	logger *logging.Logger
}

func NewLiveGameService(source GameSource, logger *logging.Logger) *LiveGameService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LiveGameService{
		source: source,
		logger: logger,
	}
}

// FindLive scans the schedules of anchor and the following day and returns, per
// upper-cased entry code, the first in-progress game involving that entry or nil.
// The returned error is set only when every schedule request failed; the map is
// always usable.
func (s *LiveGameService) FindLive(ctx context.Context, entries []string, anchor time.Time) (map[string]*playoff.LiveGame, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveGameService.FindLive", attribute.Int("nhl.entries", len(entries)))
	defer span.End()

	codes := make([]string, 0, len(entries))
	out := make(map[string]*playoff.LiveGame, len(entries))
	for _, entry := range entries {
		code := playoff.NormalizeCode(entry)
		if _, seen := out[code]; seen {
			continue
		}
		out[code] = nil
		if code != "" {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return out, nil
	}

	days, scheduleErr := s.fetchSchedules(ctx, anchor)

	found := make([]*playoff.LiveGame, len(codes))
	workers := pool.New().WithMaxGoroutines(len(codes))
	for i, code := range codes {
		workers.Go(func() {
			found[i] = s.locate(ctx, code, days)
		})
	}
	workers.Wait()

	for i, code := range codes {
		out[code] = found[i]
	}
	return out, scheduleErr
}

func (s *LiveGameService) fetchSchedules(ctx context.Context, anchor time.Time) ([]playoff.ScheduleDay, error) {
	days := make([]playoff.ScheduleDay, liveScanDays)
	errs := make([]error, liveScanDays)

	var wg conc.WaitGroup
	for offset := 0; offset < liveScanDays; offset++ {
		date := anchor.UTC().AddDate(0, 0, offset)
		wg.Go(func() {
			day, err := s.source.FetchSchedule(ctx, date)
			if err != nil {
				s.logger.ErrorContext(ctx, "fetch schedule failed", "date", date.Format("2006-01-02"), "error", err)
				errs[offset] = err
				return
			}
			days[offset] = day
		})
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if failed == liveScanDays {
		return days, fmt.Errorf("%w: fetch schedules: %w", ErrDependencyUnavailable, errors.Join(errs...))
	}
	return days, nil
}

// locate returns the first live game for code. Dates are scanned in order and
// games in feed order; the first match wins.
func (s *LiveGameService) locate(ctx context.Context, code string, days []playoff.ScheduleDay) *playoff.LiveGame {
	for _, day := range days {
		for _, game := range day.Games {
			if !playoff.IsLiveStatus(game.StatusCode) || !game.Involves(code) {
				continue
			}

			var detail *playoff.Boxscore
			box, err := s.source.FetchBoxscore(ctx, game.ID)
			if err != nil {
				s.logger.WarnContext(ctx, "fetch live boxscore failed", "entry", code, "game_id", game.ID, "error", err)
			} else {
				detail = &box
			}

			live := playoff.NewLiveGame(day.Date, game, detail)
			return &live
		}
	}
	return nil
}
