package httpapi

import (
	"errors"
	"net/http"

	"github.com/ASchaffer8770/nhl-tracker/internal/usecase"
)

// GetDashboard renders the favorite-team dashboard. Users without a record are
// sent to login and users without both favorites to the profile screen.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dashboard, err := h.dashboardService.Get(ctx, principal.UserID)
	switch {
	case errors.Is(err, usecase.ErrPreferencesRequired):
		redirectOrError(ctx, w, r, profilePath, err)
		return
	case errors.Is(err, usecase.ErrNotFound):
		redirectOrError(ctx, w, r, h.loginURL, err)
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "get dashboard failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	if dashboard.Error != "" {
		h.logger.WarnContext(ctx, "dashboard rendered as placeholder", "user_id", principal.UserID, "error", dashboard.Error)
	}
	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(dashboard))
}
