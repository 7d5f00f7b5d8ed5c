package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ASchaffer8770/nhl-tracker/internal/domain/playoff"
	"github.com/ASchaffer8770/nhl-tracker/internal/platform/logging"
)

// GamePreview describes a game that has not finished.
type GamePreview struct {
	SeriesLetter string
	Round        string
	Teams        string
	Date         string
	Time         string
	Network      string
	State        playoff.GameState
}

type GameDetails struct {
	GameID   int64
	Final    bool
	Boxscore *playoff.Boxscore
	Preview  *GamePreview
}

type gameBracketProvider interface {
	Snapshot(ctx context.Context) (BracketSnapshot, error)
}

type GameService struct {
	source  GameSource
	bracket gameBracketProvider
	logger  *logging.Logger
}

func NewGameService(source GameSource, bracket gameBracketProvider, logger *logging.Logger) *GameService {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameService{
		source:  source,
		bracket: bracket,
		logger:  logger,
	}
}

// Details returns the final box score of a finished game, or a preview built
// from the season's series for any other game.
func (s *GameService) Details(ctx context.Context, gameID int64) (GameDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Details", attribute.Int64("nhl.game_id", gameID))
	defer span.End()

	if gameID <= 0 {
		return GameDetails{}, fmt.Errorf("%w: game id must be greater than zero", ErrInvalidInput)
	}

	out := GameDetails{GameID: gameID}
	box, err := s.source.FetchBoxscore(ctx, gameID)
	switch {
	case err == nil:
		if box.Final() {
			out.Final = true
			out.Boxscore = &box
			return out, nil
		}
		out.Boxscore = &box
	case errors.Is(err, ErrNotFound):
		s.logger.DebugContext(ctx, "boxscore not published yet", "game_id", gameID)
	default:
		s.logger.ErrorContext(ctx, "fetch game boxscore failed", "game_id", gameID, "error", err)
		return GameDetails{}, fmt.Errorf("%w: fetch game details: %v", ErrDependencyUnavailable, err)
	}

	snapshot, err := s.bracket.Snapshot(ctx)
	if err != nil {
		return GameDetails{}, fmt.Errorf("load playoff series: %w", err)
	}
	series, game, ok := snapshot.FindGame(gameID)
	if !ok {
		return GameDetails{}, fmt.Errorf("%w: game preview unavailable", ErrNotFound)
	}

	out.Preview = &GamePreview{
		SeriesLetter: series.Letter,
		Round:        series.RoundLabel(),
		Teams:        fmt.Sprintf("%s vs %s", game.Away, game.Home),
		Date:         game.Date,
		Time:         game.Time,
		Network:      game.Network,
		State:        game.State,
	}
	return out, nil
}
