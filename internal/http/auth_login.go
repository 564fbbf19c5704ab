package http

import (
	"encoding/json"
	"net/http"

	"github.com/eventlane/eventlane/internal/service"
	"github.com/eventlane/eventlane/pkg/api"
	"github.com/eventlane/eventlane/pkg/httpx"
	"github.com/eventlane/eventlane/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Exchange email and password for a bearer token
//	@Description	After five consecutive failures the account locks for thirty minutes
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.LoginRequest	true	"Login payload"
//	@Success		200		{object}	api.AuthResponse	"message, token, user"
//	@Failure		400		{object}	api.ErrorResponse	"message, errors"
//	@Failure		401		{object}	api.ErrorResponse	"message"
//	@Failure		403		{object}	api.ErrorResponse	"message - account locked"
//	@Failure		500		{object}	api.ErrorResponse	"message"
//	@Router			/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	account, token, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, api.AuthResponse{
		Message: "login successful",
		Token:   token,
		User:    toUserResponse(account),
	})
}
