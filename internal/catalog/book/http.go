// Copyright (c) 2026 Undervalued Books. All rights reserved.

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/undervaluedbooks/api/internal/platform/request"
	"github.com/undervaluedbooks/api/internal/platform/respond"
	"github.com/undervaluedbooks/api/internal/platform/validate"
)

// Handler exposes the catalog read endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the catalog HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the chi router for the catalog endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listBooks)
	router.Get("/check", handler.checkBook)
	router.Get("/details", handler.bookDetails)
	router.Get("/{id}", handler.getBook)

	return router
}

// listBooks handles GET / — the full catalog.
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.ListBooks(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, books)
}

// getBook handles GET /{id}.
func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	b, err := handler.service.GetBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, b)
}

// bookDetails handles GET /details?title= — lookup by exact title.
func (handler *Handler) bookDetails(writer http.ResponseWriter, request *http.Request) {
	title := request.URL.Query().Get(FieldTitle)

	b, err := handler.service.GetBookByTitle(request.Context(), title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, b)
}

// checkBook handles GET /check?title=&author= — the submission pre-check.
func (handler *Handler) checkBook(writer http.ResponseWriter, request *http.Request) {
	title := request.URL.Query().Get(FieldTitle)
	author := request.URL.Query().Get(FieldAuthor)
	if title == "" || author == "" {
		respond.Error(writer, request, validate.RequiredError(FieldTitle, "Both title and author are required"))
		return
	}

	exists, err := handler.service.BookExists(request.Context(), title, author)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]bool{"exists": exists})
}
