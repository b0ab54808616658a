// Copyright (c) 2026 Undervalued Books. All rights reserved.

package clicks

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/undervaluedbooks/api/internal/platform/request"
	"github.com/undervaluedbooks/api/internal/platform/respond"
)

// Handler exposes the click tracking endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the clicks HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the chi router for the click endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/read-book", handler.recordClick)
	router.Get("/book/{id}/count", handler.count)

	return router
}

type recordClickRequest struct {
	BookID int64 `json:"book_id"`
}

// recordClick handles POST /read-book.
func (handler *Handler) recordClick(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload recordClickRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	c, err := handler.service.RecordClick(request.Context(), userID, payload.BookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, c)
}

// count handles GET /book/{id}/count.
func (handler *Handler) count(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	n, err := handler.service.ClickCount(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int64{"count": n})
}
