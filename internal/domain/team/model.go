package team

import (
	"fmt"
	"strings"
)

type Conference string

const (
	ConferenceWestern Conference = "Western"
	ConferenceEastern Conference = "Eastern"

	// MaxPerConference caps each conference list as published in standings order.
	MaxPerConference = 16

	UnknownName = "Unknown"
)

// Team is a club as listed in the current standings.
type Team struct {
	Abbrev     string
	Name       string
	Conference Conference
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.Abbrev) == "" {
		return fmt.Errorf("team abbrev is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// Placeholder stands in for a code that is absent from the standings snapshot.
func Placeholder() Team {
	return Team{Abbrev: UnknownName, Name: UnknownName}
}

func (t Team) IsPlaceholder() bool {
	return t.Abbrev == UnknownName
}

// ParseConference maps upstream conference names such as "Western" or "East".
func ParseConference(raw string) (Conference, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(value, "west"):
		return ConferenceWestern, true
	case strings.HasPrefix(value, "east"):
		return ConferenceEastern, true
	default:
		return "", false
	}
}
