// Copyright (c) 2026 Undervalued Books. All rights reserved.

package moderation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/undervaluedbooks/api/internal/platform/middleware"
	requestutil "github.com/undervaluedbooks/api/internal/platform/request"
	"github.com/undervaluedbooks/api/internal/platform/respond"
	"github.com/undervaluedbooks/api/internal/platform/sec"
	"github.com/undervaluedbooks/api/internal/platform/validate"
)

// Handler exposes the submission workflow endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the moderation HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the chi router for the moderation endpoints. Submitting
// needs any authenticated member; verdicts need the master role.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.submit)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleMaster))
		r.Post("/approve", handler.approve)
		r.Post("/reject", handler.reject)
	})

	return router
}

// # Request Payloads

type submitRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

type approveRequest struct {
	Title        string `json:"title"`
	Author       string `json:"author"`
	Description  string `json:"description"`
	ReadBookLink string `json:"read_book_link"`
	SubmitterID  int64  `json:"submitter_id"`
}

type rejectRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	SubmitterID int64  `json:"submitter_id"`
}

// submit handles POST / — mail a proposed book to the moderator.
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input submitRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	err = handler.service.Submit(request.Context(), userID, Submission{
		Title:       input.Title,
		Author:      input.Author,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{"message": "Book details sent for review"})
}

// approve handles POST /approve — master only.
func (handler *Handler) approve(writer http.ResponseWriter, request *http.Request) {
	var input approveRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	created, err := handler.service.Approve(request.Context(), input.SubmitterID, Submission{
		Title:       input.Title,
		Author:      input.Author,
		Description: input.Description,
	}, input.ReadBookLink)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

// reject handles POST /reject — master only.
func (handler *Handler) reject(writer http.ResponseWriter, request *http.Request) {
	var input rejectRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.service.Reject(request.Context(), input.SubmitterID, input.Title, input.Author); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Submission rejected"})
}
