// Copyright (c) 2026 Undervalued Books. All rights reserved.

package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/undervaluedbooks/api/internal/platform/request"
	"github.com/undervaluedbooks/api/internal/platform/respond"
)

// Handler exposes the funnel aggregation endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the funnel HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the chi router for the funnel endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{id}/summary", handler.summary)
	router.Get("/{id}/heard-not-rated-count", handler.heardNotRatedCount)

	return router
}

// summary handles GET /{id}/summary — the full funnel for one book.
func (handler *Handler) summary(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	s, err := handler.service.FunnelSummary(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, s)
}

// heardNotRatedCount handles GET /{id}/heard-not-rated-count.
func (handler *Handler) heardNotRatedCount(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	count, err := handler.service.HeardButNotRatedCount(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int64{"count": count})
}
