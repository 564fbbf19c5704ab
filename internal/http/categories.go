package http

import (
	"net/http"

	"github.com/eventlane/eventlane/internal/service"
	"github.com/eventlane/eventlane/pkg/api"
	"github.com/eventlane/eventlane/pkg/httpx"
	"github.com/eventlane/eventlane/pkg/slogx"
)

type CategoriesHandler struct {
	CategoryService *service.CategoryService
}

// ServeHTTP godoc
//
//	@Summary		List Categories Endpoint
//	@Description	Return the fixed category catalogue
//	@Tags			Categories
//	@Produce		json
//	@Success		200	{array}		api.CategoryResponse
//	@Failure		500	{object}	api.ErrorResponse	"message"
//	@Router			/categories [get].
func (h *CategoriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	categories, err := h.CategoryService.ListCategories(ctx)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	out := make([]api.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, api.CategoryResponse{ID: c.ID, Name: c.Name})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
