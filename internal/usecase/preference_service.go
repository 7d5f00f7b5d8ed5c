package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ASchaffer8770/nhl-tracker/internal/domain/preference"
	"github.com/ASchaffer8770/nhl-tracker/internal/domain/team"
	"github.com/ASchaffer8770/nhl-tracker/internal/domain/user"
	"github.com/ASchaffer8770/nhl-tracker/internal/platform/logging"
)

type SavePreferenceInput struct {
	UserID   string
	WestTeam string
	EastTeam string
}

// Profile is the preference screen: current picks and the teams to pick from.
type Profile struct {
	Preference   preference.Preference
	WesternTeams []team.Team
	EasternTeams []team.Team
	Warnings     []string
}

type preferenceTeamProvider interface {
	Catalog(ctx context.Context) (team.Catalog, error)
}

type PreferenceService struct {
	repo   preference.Repository
	teams  preferenceTeamProvider
	logger *logging.Logger
	now    func() time.Time
}

func NewPreferenceService(repo preference.Repository, teams preferenceTeamProvider, logger *logging.Logger) *PreferenceService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PreferenceService{
		repo:   repo,
		teams:  teams,
		logger: logger,
		now:    time.Now,
	}
}

// EnsureUser creates an empty preference record on first login. created reports
// whether the record is new.
func (s *PreferenceService) EnsureUser(ctx context.Context, principal user.Principal) (preference.Preference, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PreferenceService.EnsureUser")
	defer span.End()

	userID := strings.TrimSpace(principal.UserID)
	if userID == "" {
		return preference.Preference{}, false, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	existing, exists, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return preference.Preference{}, false, fmt.Errorf("get preference: %w", err)
	}
	if exists {
		return existing, false, nil
	}

	now := s.now().UTC()
	pref := preference.Preference{
		UserID:    userID,
		Email:     strings.TrimSpace(principal.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.repo.Create(ctx, pref)
	if err != nil {
		return preference.Preference{}, false, fmt.Errorf("create preference: %w", err)
	}
	if !created {
		// Lost a race with a concurrent first login.
		existing, exists, err = s.repo.GetByUserID(ctx, userID)
		if err != nil {
			return preference.Preference{}, false, fmt.Errorf("get preference: %w", err)
		}
		if exists {
			return existing, false, nil
		}
	}

	s.logger.InfoContext(ctx, "created user preference record", "user_id", userID)
	return pref, true, nil
}

func (s *PreferenceService) Get(ctx context.Context, userID string) (preference.Preference, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PreferenceService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return preference.Preference{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	pref, exists, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return preference.Preference{}, fmt.Errorf("get preference: %w", err)
	}
	if !exists {
		return preference.Preference{}, fmt.Errorf("%w: user %s has no profile", ErrNotFound, userID)
	}
	return pref, nil
}

// GetProfile returns the stored picks and both conference lists. A standings
// failure leaves the lists empty and adds a warning.
func (s *PreferenceService) GetProfile(ctx context.Context, userID string) (Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PreferenceService.GetProfile")
	defer span.End()

	pref, err := s.Get(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	out := Profile{Preference: pref}
	catalog, err := s.teams.Catalog(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "profile team lists unavailable", "user_id", pref.UserID, "error", err)
		out.Warnings = append(out.Warnings, sourceStandings+" unavailable")
		return out, nil
	}
	out.WesternTeams = catalog.Western()
	out.EasternTeams = catalog.Eastern()
	return out, nil
}

// Save validates and stores the favorite pair. Conference membership is checked
// only when standings can be loaded.
func (s *PreferenceService) Save(ctx context.Context, input SavePreferenceInput) (preference.Preference, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PreferenceService.Save")
	defer span.End()

	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return preference.Preference{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	west, east, err := preference.ValidatePair(input.WestTeam, input.EastTeam)
	if err != nil {
		return preference.Preference{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.validateConferences(ctx, west, east); err != nil {
		return preference.Preference{}, err
	}

	pref, err := s.Get(ctx, userID)
	if err != nil {
		return preference.Preference{}, err
	}

	if err := s.repo.UpdateTeams(ctx, userID, west, east); err != nil {
		if errors.Is(err, ErrNotFound) {
			return preference.Preference{}, err
		}
		return preference.Preference{}, fmt.Errorf("update preference: %w", err)
	}

	pref.WestTeam = west
	pref.EastTeam = east
	pref.UpdatedAt = s.now().UTC()
	return pref, nil
}

func (s *PreferenceService) validateConferences(ctx context.Context, west, east string) error {
	if s.teams == nil {
		return nil
	}
	catalog, err := s.teams.Catalog(ctx)
	if err != nil || catalog.Empty() {
		s.logger.WarnContext(ctx, "skip conference check: standings unavailable", "error", err)
		return nil
	}
	if !catalog.InConference(west, team.ConferenceWestern) {
		return fmt.Errorf("%w: %s is not a Western conference team", ErrInvalidInput, west)
	}
	if !catalog.InConference(east, team.ConferenceEastern) {
		return fmt.Errorf("%w: %s is not an Eastern conference team", ErrInvalidInput, east)
	}
	return nil
}
