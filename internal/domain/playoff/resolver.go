package playoff

import "fmt"

const (
	LabelNotParticipating = "not participating"
	LabelUnknown          = "unknown"
)

// Status is the tournament status of one tracked entry.
type Status struct {
	Eliminated   bool
	CurrentRound string
}

// Resolution pairs an entry status with the series to display, when one is active.
type Resolution struct {
	Status Status
	Series *Series
}

// Resolve computes the current bracket status for every tracked entry. Result keys
// are upper-cased entry codes.
func Resolve(series []Series, entries []string) map[string]Resolution {
	out := make(map[string]Resolution, len(entries))
	for _, entry := range entries {
		code := NormalizeCode(entry)
		out[code] = ResolveEntry(series, code)
	}
	return out
}

// ResolveEntry selects the single series that represents entry's current status.
// Lost series mark the entry eliminated and are never display candidates. Among
// active series the highest round wins; on equal rank the later series in input
// order replaces the earlier one.
func ResolveEntry(series []Series, entry string) Resolution {
	code := NormalizeCode(entry)

	var (
		best         *Series
		bestRank     int
		eliminated   bool
		eliminatedIn int
		advancedPast int
		appearsInAny bool
	)

	for i := range series {
		item := series[i]
		if !item.Complete() {
			continue
		}
		own, opponent, ok := item.Wins(code)
		if !ok {
			continue
		}
		appearsInAny = true

		switch {
		case opponent >= WinsToClinch:
			eliminated = true
			eliminatedIn = max(eliminatedIn, item.Round)
		case own >= WinsToClinch:
			advancedPast = max(advancedPast, item.Round)
		default:
			if best == nil || item.Round >= bestRank {
				selected := item
				best = &selected
				bestRank = item.Round
			}
		}
	}

	switch {
	case best != nil:
		return Resolution{
			Status: Status{Eliminated: false, CurrentRound: best.RoundLabel()},
			Series: best,
		}
	case eliminated:
		label := LabelUnknown
		if eliminatedIn != RoundUnknown && eliminatedIn > 0 {
			label = RoundLabel(eliminatedIn)
		}
		return Resolution{Status: Status{Eliminated: true, CurrentRound: label}}
	case appearsInAny:
		return Resolution{Status: Status{CurrentRound: advancedLabel(advancedPast)}}
	default:
		return Resolution{Status: Status{CurrentRound: LabelNotParticipating}}
	}
}

func advancedLabel(round int) string {
	if round == RoundUnknown || round <= 0 {
		return "Advanced"
	}
	return fmt.Sprintf("Advanced past Round %d", round)
}
