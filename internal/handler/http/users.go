package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/forecastflow/forecastflow/internal/app"
	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/internal/store"
	"github.com/forecastflow/forecastflow/internal/utils"
	"github.com/forecastflow/forecastflow/models"
)

// listUsers handles GET /api/users.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	users, err := h.services.UserService.GetAllUsers(ctx)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during user listing")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

// getUser handles GET /api/users/{userID}.
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := parseIDParam(r, "userID")
	if err != nil {
		http.Error(w, app.MsgUserNotFound, http.StatusNotFound)
		return
	}

	user, err := h.services.UserService.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserFound) {
			http.Error(w, app.MsgUserNotFound, http.StatusNotFound)
			return
		}
		log.Err(err).Msg("unexpected error occurred during user lookup")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// updateUser handles PUT /api/users/{userID}. A caller may only modify their
// own account; any other ID is answered as if the account did not exist.
func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.ownUserID(w, r)
	if !ok {
		return
	}

	var req models.UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Err(err).Msg("user update request failed validation")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	updated, err := h.services.UserService.UpdateUser(ctx, userID, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoUserFound):
			http.Error(w, app.MsgUserNotFound, http.StatusNotFound)
			return
		case errors.Is(err, store.ErrUsernameTaken):
			http.Error(w, app.MsgUsernameTaken, http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user update")
			http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

// deleteUser handles DELETE /api/users/{userID}. Same self-only rule as
// updateUser; deleting the account cascades to its tasks.
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.ownUserID(w, r)
	if !ok {
		return
	}

	if err := h.services.UserService.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNoUserFound) {
			http.Error(w, app.MsgUserNotFound, http.StatusNotFound)
			return
		}
		log.Err(err).Msg("unexpected error occurred during user deletion")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownUserID parses the {userID} route parameter and verifies it matches the
// authenticated caller. A mismatch is reported as 404, not 403, so the
// response does not confirm the existence of other accounts.
func (h *Handler) ownUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	callerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return 0, false
	}

	userID, err := parseIDParam(r, "userID")
	if err != nil || userID != callerID {
		http.Error(w, app.MsgUserNotFound, http.StatusNotFound)
		return 0, false
	}

	return userID, true
}
