package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/ASchaffer8770/nhl-tracker/internal/domain/playoff"
	"github.com/ASchaffer8770/nhl-tracker/internal/domain/preference"
	"github.com/ASchaffer8770/nhl-tracker/internal/domain/team"
	"github.com/ASchaffer8770/nhl-tracker/internal/domain/user"
	"github.com/ASchaffer8770/nhl-tracker/internal/infrastructure/repository/memory"
	"github.com/ASchaffer8770/nhl-tracker/internal/platform/logging"
	"github.com/ASchaffer8770/nhl-tracker/internal/usecase"
)

const testLoginURL = "https://auth.example.test/login"

type stubVerifier map[string]user.Principal

func (s stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	principal, ok := s[token]
	if !ok {
		return user.Principal{}, usecase.ErrUnauthorized
	}
	return principal, nil
}

type stubNHL struct {
	standingsErr error
}

func (s stubNHL) FetchStandings(context.Context) ([]team.Team, error) {
	if s.standingsErr != nil {
		return nil, s.standingsErr
	}
	return []team.Team{
		{Abbrev: "COL", Name: "Colorado Avalanche", Conference: team.ConferenceWestern},
		{Abbrev: "DAL", Name: "Dallas Stars", Conference: team.ConferenceWestern},
		{Abbrev: "TBL", Name: "Tampa Bay Lightning", Conference: team.ConferenceEastern},
		{Abbrev: "TOR", Name: "Toronto Maple Leafs", Conference: team.ConferenceEastern},
	}, nil
}

func (stubNHL) FetchPlayoffSeries(_ context.Context, _ string, letter string) (playoff.RawSeries, bool, error) {
	switch letter {
	case "a":
		return playoff.RawSeries{
			Letter: "A",
			Round:  "1",
			Top:    playoff.RawCompetitor{Abbrev: "DAL", Wins: 4},
			Bottom: playoff.RawCompetitor{Abbrev: "COL", Wins: 3},
		}, true, nil
	case "b":
		start := time.Date(2025, time.May, 12, 23, 0, 0, 0, time.UTC)
		return playoff.RawSeries{
			Letter: "B",
			Round:  "2",
			Top:    playoff.RawCompetitor{Abbrev: "TOR", Wins: 1},
			Bottom: playoff.RawCompetitor{Abbrev: "TBL", Wins: 2},
			Games: []playoff.RawGame{
				{ID: 2024030224, GameNumber: 4, StartTimeUTC: &start, HomeAbbrev: "TOR", AwayAbbrev: "TBL", StatusCode: "FUT"},
			},
		}, true, nil
	default:
		return playoff.RawSeries{}, false, nil
	}
}

func (stubNHL) FetchSchedule(_ context.Context, date time.Time) (playoff.ScheduleDay, error) {
	return playoff.ScheduleDay{Date: date.Format("2006-01-02")}, nil
}

func (stubNHL) FetchBoxscore(context.Context, int64) (playoff.Boxscore, error) {
	return playoff.Boxscore{}, usecase.ErrNotFound
}

func newTestRouter(t *testing.T, source stubNHL, seed ...preference.Preference) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	repo := memory.NewPreferenceRepository(seed...)
	teams := usecase.NewTeamService(source, nil, logger)
	bracket := usecase.NewBracketService(source, nil, usecase.BracketConfig{Season: "20242025", Letters: []string{"a", "b"}}, logger)
	live := usecase.NewLiveGameService(source, logger)

	handler := NewHandler(
		teams,
		usecase.NewPreferenceService(repo, teams, logger),
		usecase.NewDashboardService(repo, teams, bracket, live, usecase.DashboardConfig{}, logger),
		usecase.NewGameService(source, bracket, logger),
		testLoginURL,
		logger,
	)
	verifier := stubVerifier{
		"token-1": {UserID: "user-1", Email: "fan@example.test"},
		"token-2": {UserID: "user-2"},
	}
	return NewRouter(handler, verifier, logger, RouterConfig{LoginURL: testLoginURL})
}

func doRequest(router http.Handler, method, path, token, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v body=%s", err, rec.Body.String())
	}
	data, _ := body["data"].(map[string]any)
	return data
}

func TestRouter_HealthzAndRequestID(t *testing.T) {
	router := newTestRouter(t, stubNHL{})

	rec := doRequest(router, http.MethodGet, "/healthz", "", "", map[string]string{"X-Request-ID": "req-123"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-Request-ID"); got != "req-123" {
		t.Fatalf("expected propagated request id, got %q", got)
	}

	rec = doRequest(router, http.MethodGet, "/healthz", "", "", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected generated request id")
	}
}

func TestRouter_ListTeamsIsPublic(t *testing.T) {
	router := newTestRouter(t, stubNHL{})

	rec := doRequest(router, http.MethodGet, "/v1/teams", "", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec)
	western, _ := data["western"].([]any)
	eastern, _ := data["eastern"].([]any)
	if len(western) != 2 || len(eastern) != 2 {
		t.Fatalf("unexpected team lists: %v", data)
	}
}

func TestRouter_UnauthenticatedDashboard(t *testing.T) {
	router := newTestRouter(t, stubNHL{})

	rec := doRequest(router, http.MethodGet, "/v1/dashboard", "", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}

	rec = doRequest(router, http.MethodGet, "/v1/dashboard", "", "", map[string]string{"Accept": "text/html"})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != testLoginURL {
		t.Fatalf("expected redirect to login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = doRequest(router, http.MethodGet, "/v1/dashboard", "bogus", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for unknown token, got %d", rec.Code)
	}
}

func TestRouter_FirstLoginFlow(t *testing.T) {
	router := newTestRouter(t, stubNHL{})

	rec := doRequest(router, http.MethodPost, "/v1/session", "token-1", "", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if next, _ := decodeData(t, rec)["next"].(string); next != profilePath {
		t.Fatalf("new user must be sent to profile, got %q", next)
	}

	rec = doRequest(router, http.MethodPost, "/v1/session", "token-1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for returning user, got %d", rec.Code)
	}

	rec = doRequest(router, http.MethodGet, "/v1/dashboard", "token-1", "", nil)
	if rec.Code != http.StatusConflict || rec.Header().Get("Location") != profilePath {
		t.Fatalf("expected 409 with profile location, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = doRequest(router, http.MethodPut, "/v1/profile", "token-1", `{"westTeam":"COL","eastTeam":"COL"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for identical teams, got %d", rec.Code)
	}

	rec = doRequest(router, http.MethodPut, "/v1/profile", "token-1", `{"westTeam":"col","eastTeam":"tbl"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doRequest(router, http.MethodGet, "/v1/profile", "token-1", "", nil)
	profile := decodeData(t, rec)
	if profile["westTeam"] != "COL" || profile["eastTeam"] != "TBL" || profile["complete"] != true {
		t.Fatalf("unexpected profile %v", profile)
	}

	rec = doRequest(router, http.MethodGet, "/v1/dashboard", "token-1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	dashboard := decodeData(t, rec)
	west, _ := dashboard["west"].(map[string]any)
	east, _ := dashboard["east"].(map[string]any)
	if west["eliminated"] != true || west["currentRound"] != "Round 1" {
		t.Fatalf("unexpected west entry %v", west)
	}
	if east["eliminated"] != false || east["currentRound"] != "Round 2" {
		t.Fatalf("unexpected east entry %v", east)
	}
	if _, ok := east["liveGame"]; ok {
		t.Fatalf("no live game expected, got %v", east["liveGame"])
	}
}

func TestRouter_DashboardUnknownUserRedirectsToLogin(t *testing.T) {
	router := newTestRouter(t, stubNHL{})

	rec := doRequest(router, http.MethodGet, "/v1/dashboard", "token-2", "", map[string]string{"Accept": "text/html"})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != testLoginURL {
		t.Fatalf("expected redirect to login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestRouter_DashboardSurvivesStandingsOutage(t *testing.T) {
	router := newTestRouter(t, stubNHL{standingsErr: usecase.ErrDependencyUnavailable},
		preference.Preference{UserID: "user-1", WestTeam: "COL", EastTeam: "TBL"},
	)

	rec := doRequest(router, http.MethodGet, "/v1/dashboard", "token-1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	dashboard := decodeData(t, rec)
	warnings, _ := dashboard["warnings"].([]any)
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", dashboard["warnings"])
	}
	west, _ := dashboard["west"].(map[string]any)
	westTeam, _ := west["team"].(map[string]any)
	if westTeam["name"] != team.UnknownName {
		t.Fatalf("expected placeholder team, got %v", westTeam)
	}
}

func TestRouter_GameDetails(t *testing.T) {
	router := newTestRouter(t, stubNHL{})

	rec := doRequest(router, http.MethodGet, "/v1/games/abc", "token-1", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	rec = doRequest(router, http.MethodGet, "/v1/games/2024030224", "token-1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	preview, _ := decodeData(t, rec)["preview"].(map[string]any)
	if preview["teams"] != "TBL vs TOR" || preview["network"] != playoff.NetworkUnavailable {
		t.Fatalf("unexpected preview %v", preview)
	}

	rec = doRequest(router, http.MethodGet, "/v1/games/1", "token-1", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}
