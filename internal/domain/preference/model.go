package preference

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrMissingTeam = errors.New("please select one team from each conference")
	ErrSameTeam    = errors.New("please select different teams from each conference")
)

// Preference holds the two favorite teams of a user, one per conference.
type Preference struct {
	UserID    string
	Email     string
	WestTeam  string
	EastTeam  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Complete reports whether both favorites are selected.
func (p Preference) Complete() bool {
	return strings.TrimSpace(p.WestTeam) != "" && strings.TrimSpace(p.EastTeam) != ""
}

func (p Preference) Entries() []string {
	return []string{p.WestTeam, p.EastTeam}
}

// ValidatePair normalizes and checks a favorite pair before it is stored.
func ValidatePair(west, east string) (string, string, error) {
	west = strings.ToUpper(strings.TrimSpace(west))
	east = strings.ToUpper(strings.TrimSpace(east))
	if west == "" || east == "" {
		return "", "", ErrMissingTeam
	}
	if west == east {
		return "", "", fmt.Errorf("%w: %s", ErrSameTeam, west)
	}
	return west, east, nil
}
