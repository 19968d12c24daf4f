package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/forecastflow/forecastflow/internal/app"
	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/internal/service"
	"github.com/forecastflow/forecastflow/internal/store"
	"github.com/forecastflow/forecastflow/internal/utils"
	"github.com/forecastflow/forecastflow/models"
)

// register handles POST /api/auth/register and its anonymous account-creation
// alias POST /api/users.
//
// A taken username answers 400 with [app.MsgUsernameTaken]; the service layer
// guarantees no account is written in that case. Registration does not issue
// tokens.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Err(err).Msg("registration request failed validation")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	_, err := h.services.AuthService.RegisterUser(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameTaken):
			log.Info().Str("username", req.Username).Msg("registration rejected: username taken")
			http.Error(w, app.MsgUsernameTaken, http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgRegistered}, http.StatusOK)
}

// login handles POST /api/auth/login.
//
// An unknown username and a wrong password answer with the same 401 body,
// [app.MsgInvalidUsernamePassword].
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Err(err).Msg("login request failed validation")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Info().Str("username", req.Username).Msg("login rejected")
			http.Error(w, app.MsgInvalidUsernamePassword, http.StatusUnauthorized)
			return
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
			return
		}
	}

	h.writeTokenPair(w, r, foundUser)
}

// refresh handles POST /api/auth/refresh. A valid refresh token yields a
// fresh rotated pair; anything else answers 401.
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Err(err).Msg("refresh request failed validation")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	accessToken, refreshToken, err := h.services.AuthService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		log.Info().Msg("refresh rejected")
		http.Error(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, models.TokenResponse{
		Token:        accessToken.SignedString,
		RefreshToken: refreshToken.SignedString,
	}, http.StatusOK)
}

// logout handles POST /api/auth/logout. Tokens are stateless, so there is no
// server-side session to destroy; the endpoint exists so that clients have a
// uniform logout call and answers 200 for any authenticated caller.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		log.Info().Int64("user_id", userID).Msg("user logged out")
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgLoggedOut}, http.StatusOK)
}

func (h *Handler) writeTokenPair(w http.ResponseWriter, r *http.Request, user models.User) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accessToken, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	refreshToken, err := h.services.AuthService.CreateRefreshToken(ctx, user)
	if err != nil {
		log.Err(err).Msg("creation of refresh token failed")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	log.Debug().Int64("id", user.ID).Msg("user successfully logged in")

	utils.WriteJSON(w, models.TokenResponse{
		Token:        accessToken.SignedString,
		RefreshToken: refreshToken.SignedString,
	}, http.StatusOK)
}
