// Copyright (c) 2026 Undervalued Books. All rights reserved.

package rating

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/undervaluedbooks/api/internal/platform/request"
	"github.com/undervaluedbooks/api/internal/platform/respond"
)

// Handler exposes the rating ledger endpoints. All routes require an
// authenticated caller; the user ID always comes from the token.
type Handler struct {
	service *Service
}

// NewHandler creates the rating HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the chi router for the rating endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.rate)
	router.Put("/", handler.rerate)
	router.Get("/mine", handler.listMine)
	router.Get("/find", handler.findRating)
	router.Get("/not-rated", handler.notRated)
	router.Get("/book/{id}", handler.listForBook)
	router.Get("/book/{id}/count", handler.count)
	router.Get("/book/{id}/sum", handler.sum)

	return router
}

type writeRatingRequest struct {
	BookID int64 `json:"book_id"`
	Rating int   `json:"rating"`
}

// rate handles POST / — a first rating, refused when one already exists.
func (handler *Handler) rate(writer http.ResponseWriter, request *http.Request) {
	userID, payload, err := handler.decodeWrite(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stored, err := handler.service.Rate(request.Context(), userID, payload.BookID, payload.Rating)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, stored)
}

// rerate handles PUT / — overwrite the caller's rating.
func (handler *Handler) rerate(writer http.ResponseWriter, request *http.Request) {
	userID, payload, err := handler.decodeWrite(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stored, err := handler.service.Rerate(request.Context(), userID, payload.BookID, payload.Rating)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stored)
}

func (handler *Handler) decodeWrite(request *http.Request) (int64, *writeRatingRequest, error) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		return 0, nil, err
	}

	var payload writeRatingRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		return 0, nil, err
	}

	return userID, &payload, nil
}

// listMine handles GET /mine.
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ratings, err := handler.service.ListForUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, ratings)
}

// findRating handles GET /find?book_id= — the caller's rating for one book.
// A null body means the book is unrated by them.
func (handler *Handler) findRating(writer http.ResponseWriter, request *http.Request) {
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

	r, err := handler.service.FindRating(request.Context(), userID, bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, r)
}

// notRated handles GET /not-rated — books the caller has not rated yet.
func (handler *Handler) notRated(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, err := handler.service.NotRatedBooks(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, books)
}

// listForBook handles GET /book/{id}.
func (handler *Handler) listForBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ratings, err := handler.service.RatingsForBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, ratings)
}

// count handles GET /book/{id}/count.
func (handler *Handler) count(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	n, err := handler.service.RatingCount(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int64{"count": n})
}

// sum handles GET /book/{id}/sum.
func (handler *Handler) sum(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	total, err := handler.service.RatingSum(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int64{"sum": total})
}
