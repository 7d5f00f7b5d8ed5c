package nhle

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/ASchaffer8770/nhl-tracker/internal/domain/playoff"
	"github.com/ASchaffer8770/nhl-tracker/internal/domain/team"
)

// localized is the {"default": "..."} shape used for names across the API.
type localized struct {
	Default string `json:"default"`
}

// flexString accepts a JSON string or number and keeps its text.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = ""
		return nil
	}
	if trimmed[0] == '"' {
		var text string
		if err := sonic.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(text))
		return nil
	}
	*f = flexString(trimmed)
	return nil
}

type standingsEnvelope struct {
	Standings []standingRow `json:"standings"`
}

type standingRow struct {
	TeamAbbrev     localized `json:"teamAbbrev"`
	TeamName       localized `json:"teamName"`
	TeamCommonName localized `json:"teamCommonName"`
	ConferenceName string    `json:"conferenceName"`
}

type seriesEnvelope struct {
	SeriesLetter   string      `json:"seriesLetter"`
	Round          flexString  `json:"round"`
	TopSeedTeam    *seriesTeam `json:"topSeedTeam"`
	BottomSeedTeam *seriesTeam `json:"bottomSeedTeam"`
	Games          []gameRow   `json:"games"`
}

type seriesTeam struct {
	Abbrev     string `json:"abbrev"`
	SeriesWins int    `json:"seriesWins"`
}

type gameRow struct {
	ID           int64         `json:"id"`
	GameNumber   int           `json:"gameNumber"`
	StartTimeUTC string        `json:"startTimeUTC"`
	GameState    string        `json:"gameState"`
	HomeTeam     *gameTeam     `json:"homeTeam"`
	AwayTeam     *gameTeam     `json:"awayTeam"`
	TVBroadcasts []tvBroadcast `json:"tvBroadcasts"`
}

type gameTeam struct {
	Abbrev     string    `json:"abbrev"`
	CommonName localized `json:"commonName"`
	Score      int       `json:"score"`
	SOG        int       `json:"sog"`
}

type tvBroadcast struct {
	Network string `json:"network"`
}

type scheduleEnvelope struct {
	GameWeek []scheduleDay `json:"gameWeek"`
}

type scheduleDay struct {
	Date  string    `json:"date"`
	Games []gameRow `json:"games"`
}

type boxscoreEnvelope struct {
	ID               int64            `json:"id"`
	GameState        string           `json:"gameState"`
	StartTimeUTC     string           `json:"startTimeUTC"`
	Venue            localized        `json:"venue"`
	PeriodDescriptor periodDescriptor `json:"periodDescriptor"`
	Clock            gameClock        `json:"clock"`
	HomeTeam         *gameTeam        `json:"homeTeam"`
	AwayTeam         *gameTeam        `json:"awayTeam"`
}

type periodDescriptor struct {
	Number     int    `json:"number"`
	PeriodType string `json:"periodType"`
}

type gameClock struct {
	TimeRemaining  string `json:"timeRemaining"`
	InIntermission bool   `json:"inIntermission"`
}

// The to* mappers are the only place upstream defaults are applied.

func toTeams(envelope standingsEnvelope) []team.Team {
	out := make([]team.Team, 0, len(envelope.Standings))
	for _, row := range envelope.Standings {
		abbrev := playoff.NormalizeCode(row.TeamAbbrev.Default)
		if abbrev == "" {
			continue
		}
		conference, _ := team.ParseConference(row.ConferenceName)
		out = append(out, team.Team{
			Abbrev:     abbrev,
			Name:       firstNonEmpty(row.TeamName.Default, row.TeamCommonName.Default, abbrev),
			Conference: conference,
		})
	}
	return out
}

func toRawSeries(envelope seriesEnvelope, letter string) playoff.RawSeries {
	out := playoff.RawSeries{
		Letter: firstNonEmpty(envelope.SeriesLetter, strings.ToUpper(letter)),
		Round:  string(envelope.Round),
		Top:    toRawCompetitor(envelope.TopSeedTeam),
		Bottom: toRawCompetitor(envelope.BottomSeedTeam),
		Games:  make([]playoff.RawGame, 0, len(envelope.Games)),
	}
	for _, item := range envelope.Games {
		out.Games = append(out.Games, toRawGame(item))
	}
	return out
}

func toRawCompetitor(source *seriesTeam) playoff.RawCompetitor {
	if source == nil {
		return playoff.RawCompetitor{}
	}
	return playoff.RawCompetitor{
		Abbrev: strings.TrimSpace(source.Abbrev),
		Wins:   source.SeriesWins,
	}
}

func toRawGame(item gameRow) playoff.RawGame {
	home := teamOrZero(item.HomeTeam)
	away := teamOrZero(item.AwayTeam)
	return playoff.RawGame{
		ID:           item.ID,
		GameNumber:   item.GameNumber,
		StartTimeUTC: parseStartTime(item.StartTimeUTC),
		HomeAbbrev:   strings.TrimSpace(home.Abbrev),
		AwayAbbrev:   strings.TrimSpace(away.Abbrev),
		HomeScore:    home.Score,
		AwayScore:    away.Score,
		StatusCode:   strings.TrimSpace(item.GameState),
		Network:      firstNetwork(item.TVBroadcasts),
	}
}

func toScheduleDay(envelope scheduleEnvelope, date string) playoff.ScheduleDay {
	out := playoff.ScheduleDay{Date: date}
	for _, day := range envelope.GameWeek {
		if strings.TrimSpace(day.Date) != date {
			continue
		}
		out.Games = make([]playoff.ScheduledGame, 0, len(day.Games))
		for _, item := range day.Games {
			home := teamOrZero(item.HomeTeam)
			away := teamOrZero(item.AwayTeam)
			out.Games = append(out.Games, playoff.ScheduledGame{
				ID:           item.ID,
				StatusCode:   strings.TrimSpace(item.GameState),
				StartTimeUTC: parseStartTime(item.StartTimeUTC),
				HomeAbbrev:   playoff.NormalizeCode(home.Abbrev),
				AwayAbbrev:   playoff.NormalizeCode(away.Abbrev),
				HomeScore:    home.Score,
				AwayScore:    away.Score,
				Network:      firstNetwork(item.TVBroadcasts),
			})
		}
		break
	}
	return out
}

func toBoxscore(envelope boxscoreEnvelope, requestedID int64) playoff.Boxscore {
	home := teamOrZero(envelope.HomeTeam)
	away := teamOrZero(envelope.AwayTeam)
	gameID := envelope.ID
	if gameID <= 0 {
		gameID = requestedID
	}
	return playoff.Boxscore{
		GameID:         gameID,
		StatusCode:     strings.TrimSpace(envelope.GameState),
		StartTimeUTC:   parseStartTime(envelope.StartTimeUTC),
		Period:         envelope.PeriodDescriptor.Number,
		PeriodType:     strings.TrimSpace(envelope.PeriodDescriptor.PeriodType),
		Clock:          strings.TrimSpace(envelope.Clock.TimeRemaining),
		InIntermission: envelope.Clock.InIntermission,
		Venue:          strings.TrimSpace(envelope.Venue.Default),
		Home:           toBoxscoreTeam(home),
		Away:           toBoxscoreTeam(away),
	}
}

func toBoxscoreTeam(source gameTeam) playoff.BoxscoreTeam {
	return playoff.BoxscoreTeam{
		Abbrev: playoff.NormalizeCode(source.Abbrev),
		Name:   strings.TrimSpace(source.CommonName.Default),
		Score:  source.Score,
		Shots:  source.SOG,
	}
}

func teamOrZero(source *gameTeam) gameTeam {
	if source == nil {
		return gameTeam{}
	}
	return *source
}

func firstNetwork(items []tvBroadcast) string {
	for _, item := range items {
		if network := strings.TrimSpace(item.Network); network != "" {
			return network
		}
	}
	return playoff.NetworkUnavailable
}

func parseStartTime(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	layouts := []string{time.RFC3339, "2006-01-02T15:04:05"}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			value := parsed.UTC()
			return &value
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func formatGameID(gameID int64) string {
	return strconv.FormatInt(gameID, 10)
}
