package http

import (
	"github.com/eventlane/eventlane/internal/domain"
	"github.com/eventlane/eventlane/pkg/api"
)

// toUserResponse projects an account into its public shape. The
// password hash and the lockout bookkeeping never leave the service.
func toUserResponse(a domain.Account) api.UserResponse {
	return api.UserResponse{
		ID:         a.ID,
		Name:       a.Name,
		LastName:   a.LastName,
		MiddleName: a.MiddleName,
		Gender:     a.Gender,
		BirthDate:  a.BirthDate,
		Email:      a.Email,
		Username:   a.Username,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func toEventResponse(e domain.EventWithCreator) api.EventResponse {
	return api.EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Category:    e.Category,
		Creator: api.CreatorResponse{
			ID:    e.Creator.ID,
			Name:  e.Creator.Name,
			Email: e.Creator.Email,
		},
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toEventResponses(events []domain.EventWithCreator) []api.EventResponse {
	out := make([]api.EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	return out
}
