package playoff

import (
	"strconv"
	"strings"
	"time"
)

const (
	// WinsToClinch is the series win count that ends a best-of-seven matchup.
	WinsToClinch = 4
	// RoundUnknown ranks a series whose round is absent or non-numeric. It only
	// takes part in max comparisons and is never rendered as a number.
	RoundUnknown = 999

	NetworkUnavailable = "N/A"
	DateTBD            = "TBD"
)

type GameState string

const (
	GameStateCompleted GameState = "Completed"
	GameStateUpcoming  GameState = "Upcoming"
)

// RawCompetitor is one seeded side of a series as published upstream.
type RawCompetitor struct {
	Abbrev string
	Wins   int
}

// RawGame is a typed upstream game record. Defaults are already applied by the
// decoder that produced it.
type RawGame struct {
	ID           int64
	GameNumber   int
	StartTimeUTC *time.Time
	HomeAbbrev   string
	AwayAbbrev   string
	HomeScore    int
	AwayScore    int
	StatusCode   string
	Network      string
}

// RawSeries is a typed upstream series record. Round is kept as published so the
// normalizer owns the unknown-round policy.
type RawSeries struct {
	Letter string
	Round  string
	Top    RawCompetitor
	Bottom RawCompetitor
	Games  []RawGame
}

type Competitor struct {
	Abbrev string
	Wins   int
}

type Game struct {
	ID        int64
	Number    int
	StartTime *time.Time
	Date      string
	Time      string
	Home      string
	Away      string
	HomeScore int
	AwayScore int
	Status    string
	State     GameState
	Winner    string
	Network   string
}

// Series is the normalized view of one elimination matchup.
type Series struct {
	Letter string
	Round  int
	Top    Competitor
	Bottom Competitor
	Status string
	Games  []Game
}

func (s Series) RoundKnown() bool {
	return s.Round != RoundUnknown
}

func (s Series) RoundLabel() string {
	return RoundLabel(s.Round)
}

// Active reports whether neither side has clinched.
func (s Series) Active() bool {
	return s.Top.Wins < WinsToClinch && s.Bottom.Wins < WinsToClinch
}

func (s Series) Complete() bool {
	return s.Top.Abbrev != "" && s.Bottom.Abbrev != ""
}

// Involves reports whether code plays in s. Code must already be upper-cased.
func (s Series) Involves(code string) bool {
	if code == "" {
		return false
	}
	return s.Top.Abbrev == code || s.Bottom.Abbrev == code
}

// Wins returns the series wins of code and of its opponent.
func (s Series) Wins(code string) (own, opponent int, ok bool) {
	switch {
	case code == "":
		return 0, 0, false
	case s.Top.Abbrev == code:
		return s.Top.Wins, s.Bottom.Wins, true
	case s.Bottom.Abbrev == code:
		return s.Bottom.Wins, s.Top.Wins, true
	default:
		return 0, 0, false
	}
}

// FindGame returns the game with the given identifier, if s contains it.
func (s Series) FindGame(gameID int64) (Game, bool) {
	for _, game := range s.Games {
		if game.ID == gameID {
			return game, true
		}
	}
	return Game{}, false
}

func RoundLabel(round int) string {
	if round == RoundUnknown || round <= 0 {
		return "Round " + LabelUnknown
	}
	return "Round " + strconv.Itoa(round)
}

// NormalizeCode upper-cases and trims a team code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
