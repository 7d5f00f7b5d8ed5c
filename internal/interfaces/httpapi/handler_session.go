package httpapi

import (
	"net/http"
)

// CreateSession records a first login and tells the client where to go next.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSession")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	pref, created, err := h.preferenceService.EnsureUser(ctx, principal)
	if err != nil {
		h.logger.ErrorContext(ctx, "ensure user failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	next := dashboardPath
	if !pref.Complete() {
		next = profilePath
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeSuccess(ctx, w, status, sessionDTO{
		UserID:  pref.UserID,
		Email:   pref.Email,
		Created: created,
		Next:    next,
	})
}
