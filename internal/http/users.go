package http

import (
	"encoding/json"
	"net/http"

	"github.com/eventlane/eventlane/internal/service"
	"github.com/eventlane/eventlane/pkg/api"
	"github.com/eventlane/eventlane/pkg/httpx"
	"github.com/eventlane/eventlane/pkg/slogx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleMe godoc
//
//	@Summary		Current User Endpoint
//	@Description	Return the authenticated account's own profile
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	api.UserResponse
//	@Failure		401	{object}	api.ErrorResponse	"message"
//	@Security		BearerAuth
//	@Router			/users/me [get].
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	account, err := h.UserService.GetAccountByID(ctx, httpx.AccountIDFromContext(ctx))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(account))
}

// HandleList godoc
//
//	@Summary		List Users Endpoint
//	@Description	Return every registered account
//	@Tags			Users
//	@Produce		json
//	@Success		200	{array}		api.UserResponse
//	@Failure		401	{object}	api.ErrorResponse	"message"
//	@Security		BearerAuth
//	@Router			/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accounts, err := h.UserService.ListAccounts(ctx)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	out := make([]api.UserResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toUserResponse(a))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdate godoc
//
//	@Summary		Update User Endpoint
//	@Description	Apply a partial profile update to the caller's own account
//	@Description	Updating another account's profile is rejected
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Account ID"
//	@Param			request	body		api.UpdateUserRequest	true	"Fields to change"
//	@Success		200		{object}	api.UserResponse
//	@Failure		400		{object}	api.ErrorResponse	"message, errors"
//	@Failure		401		{object}	api.ErrorResponse	"message"
//	@Failure		403		{object}	api.ErrorResponse	"message - not your account"
//	@Failure		404		{object}	api.ErrorResponse	"message"
//	@Security		BearerAuth
//	@Router			/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req api.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	account, err := h.UserService.UpdateProfile(ctx,
		httpx.AccountIDFromContext(ctx),
		r.PathValue("id"),
		service.UpdateProfileParams{
			Name:       req.Name,
			LastName:   req.LastName,
			MiddleName: req.MiddleName,
			Gender:     req.Gender,
			BirthDate:  req.BirthDate,
			Email:      req.Email,
			Username:   req.Username,
		},
	)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(account))
}
