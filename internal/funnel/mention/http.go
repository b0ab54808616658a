// Copyright (c) 2026 Undervalued Books. All rights reserved.

package mention

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/undervaluedbooks/api/internal/platform/request"
	"github.com/undervaluedbooks/api/internal/platform/respond"
)

// Handler exposes the mention ledger endpoints. All routes require an
// authenticated caller; the user ID always comes from the token, never the
// request body.
type Handler struct {
	service *Service
}

// NewHandler creates the mention HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the chi router for the mention endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.recordMention)
	router.Get("/stance", handler.getStance)
	router.Get("/mine", handler.listMine)
	router.Get("/not-mentioned", handler.notMentioned)
	router.Get("/not-heard-before", handler.notHeardBefore)
	router.Get("/not-heard-before-count", handler.notHeardBeforeCount)

	return router
}

type recordMentionRequest struct {
	BookID    int64 `json:"book_id"`
	Mentioned bool  `json:"mentioned"`
}

// recordMention handles POST / — record or replace the caller's stance.
func (handler *Handler) recordMention(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload recordMentionRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	stored, err := handler.service.RecordMention(request.Context(), userID, payload.BookID, payload.Mentioned)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stored)
}

// getStance handles GET /stance?book_id= — the caller's three-valued stance.
func (handler *Handler) getStance(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookID, err := requestutil.Int64Query(request, FieldBookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stance, err := handler.service.GetStance(request.Context(), userID, bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]Stance{"stance": stance})
}

// listMine handles GET /mine — every stance the caller has recorded.
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mentions, err := handler.service.ListForUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, mentions)
}

// notMentioned handles GET /not-mentioned — books the caller has never
// responded about.
func (handler *Handler) notMentioned(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, err := handler.service.NotMentionedBooks(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, books)
}

// notHeardBefore handles GET /not-heard-before — books the caller explicitly
// had not heard of.
func (handler *Handler) notHeardBefore(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, err := handler.service.NotHeardBeforeBooks(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, books)
}

// notHeardBeforeCount handles GET /not-heard-before-count?book_id=.
func (handler *Handler) notHeardBeforeCount(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.Int64Query(request, FieldBookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	count, err := handler.service.NotHeardBeforeCount(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int64{"count": count})
}
