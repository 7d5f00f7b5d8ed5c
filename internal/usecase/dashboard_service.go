package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/ASchaffer8770/nhl-tracker/internal/domain/playoff"
	"github.com/ASchaffer8770/nhl-tracker/internal/domain/preference"
	"github.com/ASchaffer8770/nhl-tracker/internal/domain/team"
	"github.com/ASchaffer8770/nhl-tracker/internal/platform/logging"
)

const (
	defaultLogoBaseURL = "https://assets.nhle.com/logos/nhl/svg"
	placeholderLogo    = "NHL"

	sourceStandings = "standings"
	sourceBracket   = "playoff series"
	sourceSchedule  = "live schedule"
)

// DashboardEntry is one favorite team with its bracket status.
type DashboardEntry struct {
	Team       team.Team
	Conference team.Conference
	LogoURL    string
	Status     playoff.Status
	Series     *playoff.Series
	LiveGame   *playoff.LiveGame
}

type Dashboard struct {
	UserID      string
	Season      string
	CurrentDate string
	West        DashboardEntry
	East        DashboardEntry
	// Series lists the active series of both favorites without duplicates.
	Series []playoff.Series
	// Warnings names data sources that degraded to empty during this render.
	Warnings []string
	// Error is set when nothing could be loaded and the view is a placeholder.
	Error string
}

type DashboardConfig struct {
	LogoBaseURL string
}

type dashboardTeamProvider interface {
	Catalog(ctx context.Context) (team.Catalog, error)
}

type dashboardBracketProvider interface {
	Season() string
	Snapshot(ctx context.Context) (BracketSnapshot, error)
}

type dashboardLiveLocator interface {
	FindLive(ctx context.Context, entries []string, anchor time.Time) (map[string]*playoff.LiveGame, error)
}

type DashboardService struct {
	prefRepo    preference.Repository
	teams       dashboardTeamProvider
	bracket     dashboardBracketProvider
	live        dashboardLiveLocator
	logoBaseURL string
	logger      *logging.Logger
	now         func() time.Time
}

func NewDashboardService(
	prefRepo preference.Repository,
	teams dashboardTeamProvider,
	bracket dashboardBracketProvider,
	live dashboardLiveLocator,
	cfg DashboardConfig,
	logger *logging.Logger,
) *DashboardService {
	if logger == nil {
		logger = logging.Default()
	}
	logoBaseURL := strings.TrimRight(strings.TrimSpace(cfg.LogoBaseURL), "/")
	if logoBaseURL == "" {
		logoBaseURL = defaultLogoBaseURL
	}

	return &DashboardService{
		prefRepo:    prefRepo,
		teams:       teams,
		bracket:     bracket,
		live:        live,
		logoBaseURL: logoBaseURL,
		logger:      logger,
		now:         time.Now,
	}
}

// Get assembles the dashboard of userID. A missing user yields ErrNotFound and a
// user without both favorites yields ErrPreferencesRequired. Any other failure
// renders a placeholder dashboard with the error attached instead of failing.
func (s *DashboardService) Get(ctx context.Context, userID string) (out Dashboard, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Dashboard{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	now := s.now().UTC()
	defer func() {
		if recovered := recover(); recovered != nil {
			s.logger.ErrorContext(ctx, "assemble dashboard panicked", "user_id", userID, "panic", fmt.Sprint(recovered))
			out = s.placeholder(userID, now, fmt.Errorf("assemble dashboard: %v", recovered))
			err = nil
		}
	}()

	pref, exists, err := s.prefRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "load preferences for dashboard failed", "user_id", userID, "error", err)
		return s.placeholder(userID, now, fmt.Errorf("load preferences: %w", err)), nil
	}
	if !exists {
		return Dashboard{}, fmt.Errorf("%w: user %s has no profile", ErrNotFound, userID)
	}
	if !pref.Complete() {
		return Dashboard{}, fmt.Errorf("%w: user %s", ErrPreferencesRequired, userID)
	}

	entries := []string{playoff.NormalizeCode(pref.WestTeam), playoff.NormalizeCode(pref.EastTeam)}

	var (
		catalog    team.Catalog
		catalogErr error
		snapshot   BracketSnapshot
		bracketErr error
		liveGames  map[string]*playoff.LiveGame
		liveErr    error
	)

	var wg conc.WaitGroup
	wg.Go(func() { catalog, catalogErr = s.teams.Catalog(ctx) })
	wg.Go(func() { snapshot, bracketErr = s.bracket.Snapshot(ctx) })
	wg.Go(func() { liveGames, liveErr = s.live.FindLive(ctx, entries, now) })
	if recovered := wg.WaitAndRecover(); recovered != nil {
		s.logger.ErrorContext(ctx, "dashboard collaborator panicked", "user_id", userID, "panic", fmt.Sprint(recovered.Value))
		return s.placeholder(userID, now, fmt.Errorf("load dashboard data: %v", recovered.Value)), nil
	}

	out = Dashboard{
		UserID:      userID,
		Season:      s.bracket.Season(),
		CurrentDate: now.Format("2006-01-02"),
	}
	if snapshot.Season != "" {
		out.Season = snapshot.Season
	}

	failed := 0
	if catalogErr != nil {
		failed++
		out.Warnings = append(out.Warnings, sourceStandings+" unavailable")
		s.logger.ErrorContext(ctx, "dashboard standings degraded", "user_id", userID, "error", catalogErr)
	}
	if bracketErr != nil {
		failed++
		out.Warnings = append(out.Warnings, sourceBracket+" unavailable")
		s.logger.ErrorContext(ctx, "dashboard playoff series degraded", "user_id", userID, "error", bracketErr)
	} else if snapshot.Degraded() {
		out.Warnings = append(out.Warnings, fmt.Sprintf("%s partially unavailable (%s)", sourceBracket, strings.Join(snapshot.Failed, ",")))
	}
	if liveErr != nil {
		failed++
		out.Warnings = append(out.Warnings, sourceSchedule+" unavailable")
		s.logger.ErrorContext(ctx, "dashboard live schedule degraded", "user_id", userID, "error", liveErr)
	}
	if failed == 3 {
		out.Error = "live NHL data is currently unavailable"
	}

	resolved := playoff.Resolve(snapshot.Series, entries)
	out.West = s.buildEntry(catalog, entries[0], team.ConferenceWestern, resolved[entries[0]], liveGames[entries[0]])
	out.East = s.buildEntry(catalog, entries[1], team.ConferenceEastern, resolved[entries[1]], liveGames[entries[1]])
	out.Series = collectActiveSeries(out.West, out.East)

	return out, nil
}

func (s *DashboardService) buildEntry(
	catalog team.Catalog,
	code string,
	conference team.Conference,
	resolution playoff.Resolution,
	live *playoff.LiveGame,
) DashboardEntry {
	item, _ := catalog.LookupInConference(code, conference)
	return DashboardEntry{
		Team:       item,
		Conference: conference,
		LogoURL:    s.logoURL(code),
		Status:     resolution.Status,
		Series:     resolution.Series,
		LiveGame:   live,
	}
}

func (s *DashboardService) placeholder(userID string, now time.Time, cause error) Dashboard {
	unknown := team.Placeholder()
	entry := func(conference team.Conference) DashboardEntry {
		return DashboardEntry{
			Team:       unknown,
			Conference: conference,
			LogoURL:    s.logoURL(""),
			Status:     playoff.Status{CurrentRound: team.UnknownName},
		}
	}

	out := Dashboard{
		UserID:      userID,
		Season:      s.bracket.Season(),
		CurrentDate: now.Format("2006-01-02"),
		West:        entry(team.ConferenceWestern),
		East:        entry(team.ConferenceEastern),
	}
	if cause != nil {
		out.Error = cause.Error()
	}
	return out
}

// logoURL builds the logo from the stored favorite code even when standings
// do not list it. An empty code gets the league logo.
func (s *DashboardService) logoURL(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = placeholderLogo
	}
	return s.logoBaseURL + "/" + code + "_light.svg"
}

func collectActiveSeries(entries ...DashboardEntry) []playoff.Series {
	out := make([]playoff.Series, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry.Series == nil {
			continue
		}
		key := entry.Series.Letter
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, *entry.Series)
	}
	return out
}
