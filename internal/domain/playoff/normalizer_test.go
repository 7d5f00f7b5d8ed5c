package playoff

import (
	"errors"
	"testing"
	"time"
)

func TestNormalize_DerivesGameStateAndWinner(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 4, 19, 23, 0, 0, 0, time.UTC)
	raw := RawSeries{
		Letter: "a",
		Round:  "1",
		Top:    RawCompetitor{Abbrev: "wpg", Wins: 3},
		Bottom: RawCompetitor{Abbrev: "STL", Wins: 1},
		Games: []RawGame{
			{ID: 2024030111, GameNumber: 1, StartTimeUTC: &start, HomeAbbrev: "WPG", AwayAbbrev: "STL", HomeScore: 3, AwayScore: 1, StatusCode: "OFF", Network: "ESPN"},
			{ID: 2024030112, GameNumber: 2, HomeAbbrev: "WPG", AwayAbbrev: "STL", StatusCode: "FUT"},
			{ID: 2024030113, GameNumber: 3, HomeAbbrev: "STL", AwayAbbrev: "WPG", HomeScore: 2, AwayScore: 2, StatusCode: "LIVE"},
		},
	}

	got, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}

	if got.Letter != "A" || got.Round != 1 {
		t.Fatalf("unexpected series identity letter=%s round=%d", got.Letter, got.Round)
	}
	if got.Top.Abbrev != "WPG" || got.Status != "3-1" {
		t.Fatalf("unexpected competitors top=%s status=%s", got.Top.Abbrev, got.Status)
	}
	if len(got.Games) != 3 {
		t.Fatalf("expected 3 games, got=%d", len(got.Games))
	}

	final := got.Games[0]
	if final.State != GameStateCompleted || final.Winner != "WPG" {
		t.Fatalf("expected completed game won by WPG, got state=%s winner=%s", final.State, final.Winner)
	}
	if final.Date != "04-19-2025" || final.Time != "23:00 UTC" {
		t.Fatalf("unexpected date/time %s %s", final.Date, final.Time)
	}

	upcoming := got.Games[1]
	if upcoming.State != GameStateUpcoming || upcoming.Winner != "" {
		t.Fatalf("expected upcoming game without winner, got state=%s winner=%s", upcoming.State, upcoming.Winner)
	}
	if upcoming.Date != DateTBD || upcoming.Network != NetworkUnavailable {
		t.Fatalf("expected TBD date and N/A network, got %s %s", upcoming.Date, upcoming.Network)
	}

	live := got.Games[2]
	if live.State != GameState("LIVE") || live.Winner != "" {
		t.Fatalf("expected pass-through live state and no winner on tie, got state=%s winner=%s", live.State, live.Winner)
	}
}

func TestNormalize_UnknownRoundUsesSentinel(t *testing.T) {
	t.Parallel()

	for _, round := range []string{"", "final", "-2"} {
		got, err := Normalize(RawSeries{Letter: "O", Round: round, Top: RawCompetitor{Abbrev: "FLA"}, Bottom: RawCompetitor{Abbrev: "EDM"}})
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", round, err)
		}
		if got.Round != RoundUnknown || got.RoundKnown() {
			t.Fatalf("round %q: expected unknown sentinel, got=%d", round, got.Round)
		}
		if got.RoundLabel() != "Round unknown" {
			t.Fatalf("round %q: unexpected label %q", round, got.RoundLabel())
		}
	}
}

func TestNormalize_RejectsSeriesWithoutCompetitors(t *testing.T) {
	t.Parallel()

	_, err := Normalize(RawSeries{Letter: "P", Round: "4"})
	if !errors.Is(err, ErrMalformedSeries) {
		t.Fatalf("expected ErrMalformedSeries, got %v", err)
	}

	series, discarded := NormalizeAll([]RawSeries{
		{Letter: "P", Round: "4"},
		{Letter: "A", Round: "1", Top: RawCompetitor{Abbrev: "WPG"}, Bottom: RawCompetitor{Abbrev: "STL"}},
	})
	if len(series) != 1 || series[0].Letter != "A" {
		t.Fatalf("expected only series A to survive, got=%+v", series)
	}
	if len(discarded) != 1 {
		t.Fatalf("expected one discarded record, got=%d", len(discarded))
	}
}

func TestNormalize_ClampsNegativeCounts(t *testing.T) {
	t.Parallel()

	got, err := Normalize(RawSeries{
		Letter: "B",
		Round:  "1",
		Top:    RawCompetitor{Abbrev: "DAL", Wins: -1},
		Bottom: RawCompetitor{Abbrev: "COL", Wins: 2},
		Games:  []RawGame{{ID: 1, HomeAbbrev: "DAL", AwayAbbrev: "COL", HomeScore: -3, AwayScore: 1, StatusCode: "FINAL"}},
	})
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if got.Top.Wins != 0 {
		t.Fatalf("expected clamped wins, got=%d", got.Top.Wins)
	}
	if got.Games[0].HomeScore != 0 || got.Games[0].Winner != "COL" {
		t.Fatalf("unexpected game %+v", got.Games[0])
	}
}

func TestDeriveState(t *testing.T) {
	t.Parallel()

	cases := map[string]GameState{
		"OFF":   GameStateCompleted,
		"final": GameStateCompleted,
		"FUT":   GameStateUpcoming,
		"PRE":   GameStateUpcoming,
		"CRIT":  GameState("CRIT"),
		"PPD":   GameState("PPD"),
	}
	for code, want := range cases {
		if got := DeriveState(code); got != want {
			t.Fatalf("DeriveState(%q)=%q, want %q", code, got, want)
		}
	}

	if !IsLiveStatus("crit") || !IsLiveStatus("LIVE") || IsLiveStatus("OFF") {
		t.Fatalf("unexpected live status classification")
	}
}
