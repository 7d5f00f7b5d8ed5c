package usecase

import (
	"context"
	"fmt"

	"github.com/ASchaffer8770/nhl-tracker/internal/domain/team"
	"github.com/ASchaffer8770/nhl-tracker/internal/platform/logging"
)

const standingsCacheKey = "standings:now"

type TeamService struct {
	source StandingsSource
	cache  SnapshotCache[[]team.Team]
	logger *logging.Logger
}

func NewTeamService(source StandingsSource, cache SnapshotCache[[]team.Team], logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamService{
		source: source,
		cache:  cache,
		logger: logger,
	}
}

// Catalog returns the current standings indexed by code and conference.
func (s *TeamService) Catalog(ctx context.Context) (team.Catalog, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Catalog")
	defer span.End()

	teams, err := loadSnapshot(ctx, s.cache, standingsCacheKey, s.source.FetchStandings, func(teams []team.Team) bool {
		return len(teams) > 0
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "fetch standings failed", "error", err)
		return team.Catalog{}, fmt.Errorf("%w: fetch standings: %v", ErrDependencyUnavailable, err)
	}

	return team.NewCatalog(teams), nil
}

// ListByConference returns at most team.MaxPerConference teams per conference.
func (s *TeamService) ListByConference(ctx context.Context) ([]team.Team, []team.Team, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, nil, err
	}
	return catalog.Western(), catalog.Eastern(), nil
}
