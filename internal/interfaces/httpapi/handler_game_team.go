package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ASchaffer8770/nhl-tracker/internal/usecase"
)

func (h *Handler) GetGameDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameDetails")
	defer span.End()

	rawID := strings.TrimSpace(r.PathValue("gameID"))
	gameID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid game id %q", usecase.ErrInvalidInput, rawID))
		return
	}

	details, err := h.gameService.Details(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game details failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameDetailsToDTO(details))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	western, eastern, err := h.teamService.ListByConference(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, conferenceTeamsDTO{
		Western: teamsToDTO(western),
		Eastern: teamsToDTO(eastern),
	})
}
