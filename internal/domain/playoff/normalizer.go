package playoff

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrMalformedSeries = errors.New("malformed series record")

// Normalize converts one raw series into its normalized view. A record without
// any competitor code is rejected with ErrMalformedSeries.
func Normalize(raw RawSeries) (Series, error) {
	top := NormalizeCode(raw.Top.Abbrev)
	bottom := NormalizeCode(raw.Bottom.Abbrev)
	if top == "" && bottom == "" {
		return Series{}, fmt.Errorf("%w: series %q has no competitor codes", ErrMalformedSeries, raw.Letter)
	}

	out := Series{
		Letter: strings.ToUpper(strings.TrimSpace(raw.Letter)),
		Round:  parseRound(raw.Round),
		Top:    Competitor{Abbrev: top, Wins: nonNegative(raw.Top.Wins)},
		Bottom: Competitor{Abbrev: bottom, Wins: nonNegative(raw.Bottom.Wins)},
		Games:  make([]Game, 0, len(raw.Games)),
	}
	out.Status = fmt.Sprintf("%d-%d", out.Top.Wins, out.Bottom.Wins)

	for _, item := range raw.Games {
		out.Games = append(out.Games, normalizeGame(item))
	}

	return out, nil
}

// NormalizeAll normalizes every record, collecting the ones that were discarded.
func NormalizeAll(raws []RawSeries) ([]Series, []error) {
	out := make([]Series, 0, len(raws))
	var discarded []error
	for _, raw := range raws {
		series, err := Normalize(raw)
		if err != nil {
			discarded = append(discarded, err)
			continue
		}
		out = append(out, series)
	}
	return out, discarded
}

func normalizeGame(raw RawGame) Game {
	game := Game{
		ID:        raw.ID,
		Number:    raw.GameNumber,
		Home:      NormalizeCode(raw.HomeAbbrev),
		Away:      NormalizeCode(raw.AwayAbbrev),
		HomeScore: nonNegative(raw.HomeScore),
		AwayScore: nonNegative(raw.AwayScore),
		Status:    strings.TrimSpace(raw.StatusCode),
		Network:   strings.TrimSpace(raw.Network),
		Date:      DateTBD,
		Time:      DateTBD,
	}
	if game.Network == "" {
		game.Network = NetworkUnavailable
	}
	if raw.StartTimeUTC != nil && !raw.StartTimeUTC.IsZero() {
		start := raw.StartTimeUTC.UTC()
		game.StartTime = &start
		game.Date = FormatGameDate(start)
		game.Time = start.Format("15:04") + " UTC"
	}

	game.State = DeriveState(game.Status)
	game.Winner = deriveWinner(game)
	return game
}

// DeriveState maps an upstream status code to a display state. Codes outside the
// completed and upcoming families pass through verbatim.
func DeriveState(statusCode string) GameState {
	code := strings.TrimSpace(statusCode)
	switch strings.ToUpper(code) {
	case "OFF", "FINAL":
		return GameStateCompleted
	case "FUT", "PRE":
		return GameStateUpcoming
	default:
		return GameState(code)
	}
}

// IsLiveStatus reports whether an upstream status code means the game is in progress.
func IsLiveStatus(statusCode string) bool {
	switch strings.ToUpper(strings.TrimSpace(statusCode)) {
	case "LIVE", "CRIT":
		return true
	default:
		return false
	}
}

func IsFinalStatus(statusCode string) bool {
	return DeriveState(statusCode) == GameStateCompleted
}

// FormatGameDate renders a start instant as MM-DD-YYYY.
func FormatGameDate(start time.Time) string {
	return start.UTC().Format("01-02-2006")
}

// deriveWinner returns the side with the strictly higher score. Level scores,
// including 0-0 before puck drop, have no winner.
func deriveWinner(game Game) string {
	switch {
	case game.HomeScore > game.AwayScore:
		return game.Home
	case game.AwayScore > game.HomeScore:
		return game.Away
	default:
		return ""
	}
}

func parseRound(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return RoundUnknown
	}
	return value
}

func nonNegative(value int) int {
	if value < 0 {
		return 0
	}
	return value
}
