package http

import (
	"encoding/json"
	"net/http"

	"github.com/eventlane/eventlane/internal/service"
	"github.com/eventlane/eventlane/pkg/api"
	"github.com/eventlane/eventlane/pkg/httpx"
	"github.com/eventlane/eventlane/pkg/slogx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Register Endpoint
//	@Description	Create a new account and receive a bearer token for it
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.RegisterRequest	true	"Registration payload"
//	@Success		201		{object}	api.AuthResponse	"message, token, user"
//	@Failure		400		{object}	api.ErrorResponse	"message, errors"
//	@Failure		500		{object}	api.ErrorResponse	"message"
//	@Router			/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	account, token, err := h.AuthService.Register(ctx, service.RegisterParams{
		Name:       req.Name,
		LastName:   req.LastName,
		MiddleName: req.MiddleName,
		Gender:     req.Gender,
		BirthDate:  req.BirthDate,
		Email:      req.Email,
		Username:   req.Username,
		Password:   req.Password,
	})
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, api.AuthResponse{
		Message: "registration successful",
		Token:   token,
		User:    toUserResponse(account),
	})
}
