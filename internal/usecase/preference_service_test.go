package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ASchaffer8770/nhl-tracker/internal/domain/preference"
	"github.com/ASchaffer8770/nhl-tracker/internal/domain/user"
	"github.com/ASchaffer8770/nhl-tracker/internal/platform/logging"
	preferencemock "github.com/ASchaffer8770/nhl-tracker/internal/mocks/domain/preference"
)

var preferenceNow = time.Date(2025, time.April, 19, 16, 0, 0, 0, time.UTC)

func newPreferenceService(repo preference.Repository, standings *fakeStandingsSource) *PreferenceService {
	logger := logging.NewNop()
	service := NewPreferenceService(repo, NewTeamService(standings, nil, logger), logger)
	service.now = func() time.Time { return preferenceNow }
	return service
}

func TestPreferenceService_EnsureUser_CreatesOnFirstLoginUsingMockery(t *testing.T) {
	t.Parallel()

	repo := preferencemock.NewRepository(t)
	repo.On("GetByUserID", mock.Anything, "user-1").Return(preference.Preference{}, false, nil).Once()
	repo.
		On("Create", mock.Anything, mock.MatchedBy(func(p preference.Preference) bool {
			return p.UserID == "user-1" && p.Email == "fan@example.test" && p.CreatedAt.Equal(preferenceNow)
		})).
		Return(true, nil).
		Once()

	service := newPreferenceService(repo, &fakeStandingsSource{teams: standingsFixture()})
	got, created, err := service.EnsureUser(context.Background(), user.Principal{UserID: " user-1 ", Email: "fan@example.test"})
	if err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	if !created || got.UserID != "user-1" || got.Complete() {
		t.Fatalf("unexpected result created=%v pref=%+v", created, got)
	}
}

func TestPreferenceService_EnsureUser_ReturnsExistingUsingMockery(t *testing.T) {
	t.Parallel()

	repo := preferencemock.NewRepository(t)
	repo.On("GetByUserID", mock.Anything, "user-1").Return(completePreference("user-1", "COL", "TBL"), true, nil).Once()

	service := newPreferenceService(repo, &fakeStandingsSource{})
	got, created, err := service.EnsureUser(context.Background(), user.Principal{UserID: "user-1"})
	if err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	if created || got.WestTeam != "COL" {
		t.Fatalf("unexpected result created=%v pref=%+v", created, got)
	}
}

func TestPreferenceService_EnsureUser_LostCreateRaceUsingMockery(t *testing.T) {
	t.Parallel()

	repo := preferencemock.NewRepository(t)
	repo.On("GetByUserID", mock.Anything, "user-1").Return(preference.Preference{}, false, nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(false, nil).Once()
	repo.On("GetByUserID", mock.Anything, "user-1").Return(completePreference("user-1", "", ""), true, nil).Once()

	service := newPreferenceService(repo, &fakeStandingsSource{})
	_, created, err := service.EnsureUser(context.Background(), user.Principal{UserID: "user-1"})
	if err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	if created {
		t.Fatalf("record created by a concurrent login must not be reported as new")
	}
}

func TestPreferenceService_Save(t *testing.T) {
	t.Parallel()

	t.Run("stores normalized pair", func(t *testing.T) {
		repo := preferencemock.NewRepository(t)
		repo.On("GetByUserID", mock.Anything, "user-1").Return(completePreference("user-1", "", ""), true, nil).Once()
		repo.On("UpdateTeams", mock.Anything, "user-1", "COL", "TBL").Return(nil).Once()

		service := newPreferenceService(repo, &fakeStandingsSource{teams: standingsFixture()})
		got, err := service.Save(context.Background(), SavePreferenceInput{UserID: "user-1", WestTeam: " col", EastTeam: "tbl "})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		if got.WestTeam != "COL" || got.EastTeam != "TBL" || !got.UpdatedAt.Equal(preferenceNow) {
			t.Fatalf("unexpected preference %+v", got)
		}
	})

	t.Run("rejects missing team without touching storage", func(t *testing.T) {
		repo := preferencemock.NewRepository(t)

		service := newPreferenceService(repo, &fakeStandingsSource{teams: standingsFixture()})
		_, err := service.Save(context.Background(), SavePreferenceInput{UserID: "user-1", WestTeam: "COL"})
		if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, preference.ErrMissingTeam) {
			t.Fatalf("expected missing team validation error, got %v", err)
		}
	})

	t.Run("rejects identical teams", func(t *testing.T) {
		repo := preferencemock.NewRepository(t)

		service := newPreferenceService(repo, &fakeStandingsSource{teams: standingsFixture()})
		_, err := service.Save(context.Background(), SavePreferenceInput{UserID: "user-1", WestTeam: "COL", EastTeam: "col"})
		if !errors.Is(err, preference.ErrSameTeam) {
			t.Fatalf("expected ErrSameTeam, got %v", err)
		}
	})

	t.Run("rejects team from the wrong conference", func(t *testing.T) {
		repo := preferencemock.NewRepository(t)

		service := newPreferenceService(repo, &fakeStandingsSource{teams: standingsFixture()})
		_, err := service.Save(context.Background(), SavePreferenceInput{UserID: "user-1", WestTeam: "TOR", EastTeam: "TBL"})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("skips conference check when standings are down", func(t *testing.T) {
		repo := preferencemock.NewRepository(t)
		repo.On("GetByUserID", mock.Anything, "user-1").Return(completePreference("user-1", "", ""), true, nil).Once()
		repo.On("UpdateTeams", mock.Anything, "user-1", "TOR", "TBL").Return(nil).Once()

		service := newPreferenceService(repo, &fakeStandingsSource{err: errUpstreamTimeout})
		if _, err := service.Save(context.Background(), SavePreferenceInput{UserID: "user-1", WestTeam: "TOR", EastTeam: "TBL"}); err != nil {
			t.Fatalf("save: %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := preferencemock.NewRepository(t)
		repo.On("GetByUserID", mock.Anything, "ghost").Return(preference.Preference{}, false, nil).Once()

		service := newPreferenceService(repo, &fakeStandingsSource{teams: standingsFixture()})
		_, err := service.Save(context.Background(), SavePreferenceInput{UserID: "ghost", WestTeam: "COL", EastTeam: "TBL"})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestPreferenceService_GetProfile(t *testing.T) {
	t.Parallel()

	t.Run("lists teams by conference", func(t *testing.T) {
		repo := preferencemock.NewRepository(t)
		repo.On("GetByUserID", mock.Anything, "user-1").Return(completePreference("user-1", "COL", "TBL"), true, nil).Once()

		service := newPreferenceService(repo, &fakeStandingsSource{teams: standingsFixture()})
		got, err := service.GetProfile(context.Background(), "user-1")
		if err != nil {
			t.Fatalf("get profile: %v", err)
		}
		if len(got.WesternTeams) != 2 || len(got.EasternTeams) != 3 || len(got.Warnings) != 0 {
			t.Fatalf("unexpected profile %+v", got)
		}
	})

	t.Run("standings failure leaves lists empty with warning", func(t *testing.T) {
		repo := preferencemock.NewRepository(t)
		repo.On("GetByUserID", mock.Anything, "user-1").Return(completePreference("user-1", "COL", "TBL"), true, nil).Once()

		service := newPreferenceService(repo, &fakeStandingsSource{err: errUpstreamTimeout})
		got, err := service.GetProfile(context.Background(), "user-1")
		if err != nil {
			t.Fatalf("get profile: %v", err)
		}
		if len(got.WesternTeams) != 0 || len(got.Warnings) != 1 {
			t.Fatalf("unexpected profile %+v", got)
		}
	})
}
