package team

import "strings"

// Catalog indexes one standings snapshot by code and conference.
type Catalog struct {
	byAbbrev map[string]Team
	western  []Team
	eastern  []Team
}

func NewCatalog(teams []Team) Catalog {
	catalog := Catalog{byAbbrev: make(map[string]Team, len(teams))}
	for _, item := range teams {
		code := strings.ToUpper(strings.TrimSpace(item.Abbrev))
		if code == "" {
			continue
		}
		if _, exists := catalog.byAbbrev[code]; exists {
			continue
		}
		item.Abbrev = code
		catalog.byAbbrev[code] = item

		switch item.Conference {
		case ConferenceWestern:
			if len(catalog.western) < MaxPerConference {
				catalog.western = append(catalog.western, item)
			}
		case ConferenceEastern:
			if len(catalog.eastern) < MaxPerConference {
				catalog.eastern = append(catalog.eastern, item)
			}
		}
	}
	return catalog
}

func (c Catalog) Empty() bool {
	return len(c.byAbbrev) == 0
}

// Lookup returns the team for code, or the placeholder when it is unknown.
func (c Catalog) Lookup(code string) (Team, bool) {
	item, ok := c.byAbbrev[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Placeholder(), false
	}
	return item, true
}

func (c Catalog) Western() []Team {
	return append([]Team(nil), c.western...)
}

func (c Catalog) Eastern() []Team {
	return append([]Team(nil), c.eastern...)
}

func (c Catalog) ByConference(conference Conference) []Team {
	switch conference {
	case ConferenceWestern:
		return c.Western()
	case ConferenceEastern:
		return c.Eastern()
	default:
		return nil
	}
}

// LookupInConference searches only the conference list, so a code listed
// under the other conference resolves to the placeholder.
func (c Catalog) LookupInConference(code string, conference Conference) (Team, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, item := range c.ByConference(conference) {
		if item.Abbrev == code {
			return item, true
		}
	}
	return Placeholder(), false
}

// InConference reports whether code is listed under the given conference.
func (c Catalog) InConference(code string, conference Conference) bool {
	_, ok := c.LookupInConference(code, conference)
	return ok
}
