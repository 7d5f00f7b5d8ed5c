package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ASchaffer8770/nhl-tracker/internal/domain/playoff"
	"github.com/ASchaffer8770/nhl-tracker/internal/platform/logging"
)

const defaultSeriesWorkers = 4

// DefaultSeriesLetters is the fixed sixteen-series bracket alphabet.
var DefaultSeriesLetters = strings.Split("abcdefghijklmnop", "")

type BracketConfig struct {
	Season  string
	Letters []string
	Workers int
}

// BracketSnapshot is every published series of one season in letter order.
type BracketSnapshot struct {
	Season    string
	Series    []playoff.Series
	Failed    []string
	Discarded int
	FetchedAt time.Time
}

// Degraded reports whether some series could not be fetched.
func (s BracketSnapshot) Degraded() bool {
	return len(s.Failed) > 0
}

type BracketService struct {
	source  SeriesSource
	cache   SnapshotCache[BracketSnapshot]
	season  string
	letters []string
	workers int
	logger  *logging.Logger
	now     func() time.Time
}

func NewBracketService(source SeriesSource, cache SnapshotCache[BracketSnapshot], cfg BracketConfig, logger *logging.Logger) *BracketService {
	if logger == nil {
		logger = logging.Default()
	}

	letters := make([]string, 0, len(cfg.Letters))
	for _, letter := range cfg.Letters {
		if letter = strings.ToLower(strings.TrimSpace(letter)); letter != "" {
			letters = append(letters, letter)
		}
	}
	if len(letters) == 0 {
		letters = append(letters, DefaultSeriesLetters...)
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = defaultSeriesWorkers
	}

	return &BracketService{
		source:  source,
		cache:   cache,
		season:  strings.TrimSpace(cfg.Season),
		letters: letters,
		workers: workers,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *BracketService) Season() string {
	return s.season
}

// Snapshot returns the normalized series of the configured season. Only fully
// fetched snapshots are cached. It fails only when every series request failed.
func (s *BracketService) Snapshot(ctx context.Context) (BracketSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BracketService.Snapshot", attribute.String("nhl.season", s.season))
	defer span.End()

	snapshot, err := loadSnapshot(ctx, s.cache, "bracket:"+s.season, s.load, func(snapshot BracketSnapshot) bool {
		return !snapshot.Degraded()
	})
	if err != nil {
		return BracketSnapshot{Season: s.season}, err
	}
	return snapshot, nil
}

type seriesFetchResult struct {
	letter string
	raw    playoff.RawSeries
	found  bool
	err    error
}

func (s *BracketService) load(ctx context.Context) (BracketSnapshot, error) {
	if s.season == "" {
		return BracketSnapshot{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	results := make([]seriesFetchResult, len(s.letters))
	pool, err := ants.NewPool(min(s.workers, len(s.letters)))
	if err != nil {
		return BracketSnapshot{}, fmt.Errorf("create series worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, letter := range s.letters {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			raw, found, fetchErr := s.source.FetchPlayoffSeries(ctx, s.season, letter)
			results[i] = seriesFetchResult{letter: letter, raw: raw, found: found, err: fetchErr}
		}); err != nil {
			workers.Done()
			results[i] = seriesFetchResult{letter: letter, err: fmt.Errorf("submit series fetch: %w", err)}
		}
	}
	workers.Wait()

	if err := ctx.Err(); err != nil {
		return BracketSnapshot{}, err
	}

	snapshot := BracketSnapshot{
		Season:    s.season,
		Series:    make([]playoff.Series, 0, len(results)),
		FetchedAt: s.now().UTC(),
	}
	var failures []error
	for _, item := range results {
		if item.err != nil {
			s.logger.ErrorContext(ctx, "fetch playoff series failed", "season", s.season, "letter", item.letter, "error", item.err)
			snapshot.Failed = append(snapshot.Failed, item.letter)
			failures = append(failures, item.err)
			continue
		}
		if !item.found {
			continue
		}

		series, normErr := playoff.Normalize(item.raw)
		if normErr != nil {
			s.logger.WarnContext(ctx, "discard malformed playoff series", "season", s.season, "letter", item.letter, "error", normErr)
			snapshot.Discarded++
			continue
		}
		snapshot.Series = append(snapshot.Series, series)
	}

	if len(results) > 0 && len(failures) == len(results) {
		return BracketSnapshot{}, fmt.Errorf("%w: fetch playoff series: %w", ErrDependencyUnavailable, errors.Join(failures...))
	}
	return snapshot, nil
}

// FindGame locates a game by id across the season's series.
func (s BracketSnapshot) FindGame(gameID int64) (playoff.Series, playoff.Game, bool) {
	for _, series := range s.Series {
		if game, ok := series.FindGame(gameID); ok {
			return series, game, true
		}
	}
	return playoff.Series{}, playoff.Game{}, false
}
