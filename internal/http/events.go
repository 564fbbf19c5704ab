package http

import (
	"encoding/json"
	"net/http"

	"github.com/eventlane/eventlane/internal/service"
	"github.com/eventlane/eventlane/pkg/api"
	"github.com/eventlane/eventlane/pkg/httpx"
	"github.com/eventlane/eventlane/pkg/slogx"
)

type EventsHandler struct {
	EventService *service.EventService
}

// HandleList godoc
//
//	@Summary		List Events Endpoint
//	@Description	Return all events with their creators, newest first
//	@Tags			Events
//	@Produce		json
//	@Param			category	query		string	false	"Narrow to one category"
//	@Success		200			{array}		api.EventResponse
//	@Failure		401			{object}	api.ErrorResponse	"message"
//	@Security		BearerAuth
//	@Router			/events [get].
func (h *EventsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	events, err := h.EventService.ListEvents(ctx, r.URL.Query().Get("category"))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toEventResponses(events))
}

// HandlePublicList godoc
//
//	@Summary		Public Events Endpoint
//	@Description	Return all events without requiring authentication
//	@Tags			Events
//	@Produce		json
//	@Param			category	query	string	false	"Narrow to one category"
//	@Success		200			{array}	api.EventResponse
//	@Router			/public/events [get].
func (h *EventsHandler) HandlePublicList(w http.ResponseWriter, r *http.Request) {
	h.HandleList(w, r)
}

// HandleGet godoc
//
//	@Summary		Get Event Endpoint
//	@Description	Return one event with its creator
//	@Tags			Events
//	@Produce		json
//	@Param			id	path		string	true	"Event ID"
//	@Success		200	{object}	api.EventResponse
//	@Failure		401	{object}	api.ErrorResponse	"message"
//	@Failure		404	{object}	api.ErrorResponse	"message"
//	@Security		BearerAuth
//	@Router			/events/{id} [get].
func (h *EventsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	event, err := h.EventService.GetEventByID(ctx, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toEventResponse(event))
}

// HandleCreate godoc
//
//	@Summary		Create Event Endpoint
//	@Description	Create an event owned by the authenticated account
//	@Tags			Events
//	@Accept			json
//	@Produce		json
//	@Param			request	body		api.EventRequest	true	"Event payload"
//	@Success		201		{object}	api.EventResponse
//	@Failure		400		{object}	api.ErrorResponse	"message, errors"
//	@Failure		401		{object}	api.ErrorResponse	"message"
//	@Security		BearerAuth
//	@Router			/events [post].
func (h *EventsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req api.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	event, err := h.EventService.CreateEvent(ctx, httpx.AccountIDFromContext(ctx), service.EventParams{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Category:    req.Category,
	})
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toEventResponse(event))
}

// HandleUpdate godoc
//
//	@Summary		Update Event Endpoint
//	@Description	Replace the mutable fields of an event
//	@Tags			Events
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Event ID"
//	@Param			request	body		api.EventRequest	true	"Event payload"
//	@Success		200		{object}	api.EventResponse
//	@Failure		400		{object}	api.ErrorResponse	"message, errors"
//	@Failure		401		{object}	api.ErrorResponse	"message"
//	@Failure		404		{object}	api.ErrorResponse	"message"
//	@Security		BearerAuth
//	@Router			/events/{id} [put].
func (h *EventsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req api.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	event, err := h.EventService.UpdateEvent(ctx, r.PathValue("id"), service.EventParams{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Category:    req.Category,
	})
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toEventResponse(event))
}

// HandleDelete godoc
//
//	@Summary		Delete Event Endpoint
//	@Description	Remove an event
//	@Tags			Events
//	@Produce		json
//	@Param			id	path		string	true	"Event ID"
//	@Success		200	{object}	api.MessageResponse	"message"
//	@Failure		401	{object}	api.ErrorResponse	"message"
//	@Failure		404	{object}	api.ErrorResponse	"message"
//	@Security		BearerAuth
//	@Router			/events/{id} [delete].
func (h *EventsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.EventService.DeleteEvent(ctx, r.PathValue("id")); err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "event deleted"})
}
