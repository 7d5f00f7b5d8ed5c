package httpapi

import (
	"time"

	"github.com/ASchaffer8770/nhl-tracker/internal/domain/playoff"
	"github.com/ASchaffer8770/nhl-tracker/internal/domain/preference"
	"github.com/ASchaffer8770/nhl-tracker/internal/domain/team"
	"github.com/ASchaffer8770/nhl-tracker/internal/usecase"
)

// Missing teams are left to preference validation so the form gets its message.
type saveProfileRequest struct {
	WestTeam string `json:"westTeam" validate:"omitempty,max=8"`
	EastTeam string `json:"eastTeam" validate:"omitempty,max=8"`
}

type sessionDTO struct {
	UserID  string `json:"userId"`
	Email   string `json:"email,omitempty"`
	Created bool   `json:"created"`
	Next    string `json:"next"`
}

type teamDTO struct {
	Abbr       string `json:"abbr"`
	Name       string `json:"name"`
	Conference string `json:"conference,omitempty"`
}

type conferenceTeamsDTO struct {
	Western []teamDTO `json:"western"`
	Eastern []teamDTO `json:"eastern"`
}

type preferenceDTO struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email,omitempty"`
	WestTeam  string    `json:"westTeam,omitempty"`
	EastTeam  string    `json:"eastTeam,omitempty"`
	Complete  bool      `json:"complete"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type profileDTO struct {
	preferenceDTO
	WesternTeams []teamDTO `json:"westernTeams"`
	EasternTeams []teamDTO `json:"easternTeams"`
	Warnings     []string  `json:"warnings,omitempty"`
}

type competitorDTO struct {
	Abbr string `json:"abbr"`
	Wins int    `json:"wins"`
}

type gameDTO struct {
	ID        int64  `json:"id"`
	Number    int    `json:"number"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Home      string `json:"home"`
	Away      string `json:"away"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	State     string `json:"state"`
	Winner    string `json:"winner,omitempty"`
	Network   string `json:"network"`
}

type seriesDTO struct {
	Letter     string        `json:"letter"`
	Round      int           `json:"round,omitempty"`
	RoundLabel string        `json:"roundLabel"`
	TopSeed    competitorDTO `json:"topSeed"`
	BottomSeed competitorDTO `json:"bottomSeed"`
	Status     string        `json:"status"`
	Games      []gameDTO     `json:"games"`
}

type liveTeamDTO struct {
	Abbr  string `json:"abbr"`
	Name  string `json:"name,omitempty"`
	Score int    `json:"score"`
	Shots int    `json:"shots"`
}

type liveGameDTO struct {
	GameID         int64       `json:"gameId"`
	Date           string      `json:"date"`
	StatusCode     string      `json:"statusCode"`
	Period         int         `json:"period,omitempty"`
	PeriodType     string      `json:"periodType,omitempty"`
	Clock          string      `json:"clock,omitempty"`
	InIntermission bool        `json:"inIntermission"`
	DetailLoaded   bool        `json:"detailLoaded"`
	Home           liveTeamDTO `json:"home"`
	Away           liveTeamDTO `json:"away"`
}

type dashboardEntryDTO struct {
	Team         teamDTO      `json:"team"`
	Conference   string       `json:"conference"`
	LogoURL      string       `json:"logoUrl"`
	Eliminated   bool         `json:"eliminated"`
	CurrentRound string       `json:"currentRound"`
	Series       *seriesDTO   `json:"series,omitempty"`
	LiveGame     *liveGameDTO `json:"liveGame,omitempty"`
}

type dashboardDTO struct {
	UserID      string            `json:"userId"`
	Season      string            `json:"season"`
	CurrentDate string            `json:"currentDate"`
	West        dashboardEntryDTO `json:"west"`
	East        dashboardEntryDTO `json:"east"`
	Series      []seriesDTO       `json:"series"`
	Warnings    []string          `json:"warnings,omitempty"`
	Error       string            `json:"error,omitempty"`
}

type boxscoreDTO struct {
	GameID         int64       `json:"gameId"`
	StatusCode     string      `json:"statusCode"`
	StartTimeUTC   *time.Time  `json:"startTimeUtc,omitempty"`
	Period         int         `json:"period,omitempty"`
	PeriodType     string      `json:"periodType,omitempty"`
	Clock          string      `json:"clock,omitempty"`
	InIntermission bool        `json:"inIntermission"`
	Venue          string      `json:"venue,omitempty"`
	Home           liveTeamDTO `json:"home"`
	Away           liveTeamDTO `json:"away"`
}

type gamePreviewDTO struct {
	SeriesLetter string `json:"seriesLetter"`
	Round        string `json:"round"`
	Teams        string `json:"teams"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Network      string `json:"network"`
	State        string `json:"state"`
}

type gameDetailsDTO struct {
	GameID   int64           `json:"gameId"`
	Final    bool            `json:"final"`
	Boxscore *boxscoreDTO    `json:"boxscore,omitempty"`
	Preview  *gamePreviewDTO `json:"preview,omitempty"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{Abbr: v.Abbrev, Name: v.Name, Conference: string(v.Conference)}
}

func teamsToDTO(items []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	return out
}

func preferenceToDTO(v preference.Preference) preferenceDTO {
	return preferenceDTO{
		UserID:    v.UserID,
		Email:     v.Email,
		WestTeam:  v.WestTeam,
		EastTeam:  v.EastTeam,
		Complete:  v.Complete(),
		UpdatedAt: v.UpdatedAt,
	}
}

func profileToDTO(v usecase.Profile) profileDTO {
	return profileDTO{
		preferenceDTO: preferenceToDTO(v.Preference),
		WesternTeams:  teamsToDTO(v.WesternTeams),
		EasternTeams:  teamsToDTO(v.EasternTeams),
		Warnings:      v.Warnings,
	}
}

func seriesToDTO(v playoff.Series) seriesDTO {
	games := make([]gameDTO, 0, len(v.Games))
	for _, game := range v.Games {
		games = append(games, gameDTO{
			ID:        game.ID,
			Number:    game.Number,
			Date:      game.Date,
			Time:      game.Time,
			Home:      game.Home,
			Away:      game.Away,
			HomeScore: game.HomeScore,
			AwayScore: game.AwayScore,
			State:     string(game.State),
			Winner:    game.Winner,
			Network:   game.Network,
		})
	}

	// The unknown-round rank only orders series; clients get the label.
	round := v.Round
	if !v.RoundKnown() {
		round = 0
	}

	return seriesDTO{
		Letter:     v.Letter,
		Round:      round,
		RoundLabel: v.RoundLabel(),
		TopSeed:    competitorDTO{Abbr: v.Top.Abbrev, Wins: v.Top.Wins},
		BottomSeed: competitorDTO{Abbr: v.Bottom.Abbrev, Wins: v.Bottom.Wins},
		Status:     v.Status,
		Games:      games,
	}
}

func liveTeamToDTO(v playoff.BoxscoreTeam) liveTeamDTO {
	return liveTeamDTO{Abbr: v.Abbrev, Name: v.Name, Score: v.Score, Shots: v.Shots}
}

func liveGameToDTO(v *playoff.LiveGame) *liveGameDTO {
	if v == nil {
		return nil
	}
	return &liveGameDTO{
		GameID:         v.GameID,
		Date:           v.Date,
		StatusCode:     v.StatusCode,
		Period:         v.Period,
		PeriodType:     v.PeriodType,
		Clock:          v.Clock,
		InIntermission: v.InIntermission,
		DetailLoaded:   v.DetailLoaded,
		Home:           liveTeamToDTO(v.Home),
		Away:           liveTeamToDTO(v.Away),
	}
}

func dashboardEntryToDTO(v usecase.DashboardEntry) dashboardEntryDTO {
	out := dashboardEntryDTO{
		Team:         teamToDTO(v.Team),
		Conference:   string(v.Conference),
		LogoURL:      v.LogoURL,
		Eliminated:   v.Status.Eliminated,
		CurrentRound: v.Status.CurrentRound,
		LiveGame:     liveGameToDTO(v.LiveGame),
	}
	if v.Series != nil {
		series := seriesToDTO(*v.Series)
		out.Series = &series
	}
	return out
}

func dashboardToDTO(v usecase.Dashboard) dashboardDTO {
	series := make([]seriesDTO, 0, len(v.Series))
	for _, item := range v.Series {
		series = append(series, seriesToDTO(item))
	}

	return dashboardDTO{
		UserID:      v.UserID,
		Season:      v.Season,
		CurrentDate: v.CurrentDate,
		West:        dashboardEntryToDTO(v.West),
		East:        dashboardEntryToDTO(v.East),
		Series:      series,
		Warnings:    v.Warnings,
		Error:       v.Error,
	}
}

func gameDetailsToDTO(v usecase.GameDetails) gameDetailsDTO {
	out := gameDetailsDTO{GameID: v.GameID, Final: v.Final}
	if box := v.Boxscore; box != nil {
		out.Boxscore = &boxscoreDTO{
			GameID:         box.GameID,
			StatusCode:     box.StatusCode,
			StartTimeUTC:   box.StartTimeUTC,
			Period:         box.Period,
			PeriodType:     box.PeriodType,
			Clock:          box.Clock,
			InIntermission: box.InIntermission,
			Venue:          box.Venue,
			Home:           liveTeamToDTO(box.Home),
			Away:           liveTeamToDTO(box.Away),
		}
	}
	if preview := v.Preview; preview != nil {
		out.Preview = &gamePreviewDTO{
			SeriesLetter: preview.SeriesLetter,
			Round:        preview.Round,
			Teams:        preview.Teams,
			Date:         preview.Date,
			Time:         preview.Time,
			Network:      preview.Network,
			State:        string(preview.State),
		}
	}
	return out
}
