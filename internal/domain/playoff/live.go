package playoff

import "time"

// ScheduledGame is one game from the by-date schedule feed.
type ScheduledGame struct {
	ID           int64
	StatusCode   string
	StartTimeUTC *time.Time
	HomeAbbrev   string
	AwayAbbrev   string
	HomeScore    int
	AwayScore    int
	Network      string
}

func (g ScheduledGame) Involves(code string) bool {
	if code == "" {
		return false
	}
	return NormalizeCode(g.HomeAbbrev) == code || NormalizeCode(g.AwayAbbrev) == code
}

// ScheduleDay is the schedule for a single calendar date, in feed order.
type ScheduleDay struct {
	Date  string
	Games []ScheduledGame
}

type BoxscoreTeam struct {
	Abbrev string
	Name   string
	Score  int
	Shots  int
}

// Boxscore is the live or final detail for one game.
type Boxscore struct {
	GameID         int64
	StatusCode     string
	StartTimeUTC   *time.Time
	Period         int
	PeriodType     string
	Clock          string
	InIntermission bool
	Venue          string
	Home           BoxscoreTeam
	Away           BoxscoreTeam
}

func (b Boxscore) Final() bool {
	return IsFinalStatus(b.StatusCode)
}

// LiveGame is the dashboard view of an in-progress game.
type LiveGame struct {
	GameID         int64
	Date           string
	Home           BoxscoreTeam
	Away           BoxscoreTeam
	Period         int
	PeriodType     string
	Clock          string
	InIntermission bool
	StatusCode     string
	DetailLoaded   bool
}

// NewLiveGame builds a live view from the schedule record, enriched by box score
// detail when it was fetched.
func NewLiveGame(date string, game ScheduledGame, detail *Boxscore) LiveGame {
	out := LiveGame{
		GameID:     game.ID,
		Date:       date,
		StatusCode: game.StatusCode,
		Home:       BoxscoreTeam{Abbrev: NormalizeCode(game.HomeAbbrev), Score: game.HomeScore},
		Away:       BoxscoreTeam{Abbrev: NormalizeCode(game.AwayAbbrev), Score: game.AwayScore},
	}
	if detail == nil {
		return out
	}

	out.DetailLoaded = true
	out.Period = detail.Period
	out.PeriodType = detail.PeriodType
	out.Clock = detail.Clock
	out.InIntermission = detail.InIntermission
	if detail.StatusCode != "" {
		out.StatusCode = detail.StatusCode
	}
	out.Home = mergeBoxscoreTeam(out.Home, detail.Home)
	out.Away = mergeBoxscoreTeam(out.Away, detail.Away)
	return out
}

func mergeBoxscoreTeam(base, detail BoxscoreTeam) BoxscoreTeam {
	if code := NormalizeCode(detail.Abbrev); code != "" {
		base.Abbrev = code
	}
	if detail.Name != "" {
		base.Name = detail.Name
	}
	if detail.Score > base.Score {
		base.Score = detail.Score
	}
	base.Shots = detail.Shots
	return base
}
