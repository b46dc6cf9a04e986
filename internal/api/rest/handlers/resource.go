package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/CameronXie/ecommerce-backend/commerce/page"
	"github.com/CameronXie/ecommerce-backend/internal/api/rest/response"
)

// ResourceService defines the record lifecycle a ResourceHandler exposes
type ResourceService[T any] interface {
	Create(ctx context.Context, rec *T) (*T, error)
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, p page.Pageable) (page.Page[T], error)
	ListBy(ctx context.Context, field, value string, p page.Pageable) (page.Page[T], error)
	FindBy(ctx context.Context, field, value string) (*T, error)
	Update(ctx context.Context, id string, rec *T) (*T, error)
	Patch(ctx context.Context, id string, updates map[string]any) (*T, error)
	Delete(ctx context.Context, id string) error
}

// ResourceHandler serves the CRUD routes of one record type under /{path}
type ResourceHandler[T any] struct {
	path    string
	svc     ResourceService[T]
	listing Listing
	logger  *slog.Logger
}

// NewResourceHandler creates a new ResourceHandler instance
func NewResourceHandler[T any](path string, svc ResourceService[T], listing Listing, logger *slog.Logger) *ResourceHandler[T] {
	return &ResourceHandler[T]{
		path:    path,
		svc:     svc,
		listing: listing,
		logger:  logger,
	}
}

// Register adds the CRUD routes of the resource to mux.
func (h *ResourceHandler[T]) Register(mux *http.ServeMux, prefix string) {
	base := prefix + "/" + h.path

	mux.HandleFunc("GET "+base, h.List)
	mux.HandleFunc("POST "+base, h.Create)
	mux.HandleFunc("GET "+base+"/{id}", h.Get)
	mux.HandleFunc("PUT "+base+"/{id}", h.Update)
	mux.HandleFunc("PATCH "+base+"/{id}", h.Patch)
	mux.HandleFunc("DELETE "+base+"/{id}", h.Delete)
}

// List handles GET /{path} - returns one page of records
func (h *ResourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	p, err := pageable(r, h.listing)
	if err != nil {
		response.JSONErrorResponse(w, http.StatusBadRequest, invalidRequestMessage, err.Error())
		return
	}

	result, err := h.svc.List(r.Context(), p)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.JSONResponse(w, http.StatusOK, result)
}

// Get handles GET /{path}/{id} - retrieves a record by id
func (h *ResourceHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.JSONResponse(w, http.StatusOK, rec)
}

// Create handles POST /{path} - stores a new record
func (h *ResourceHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	rec := new(T)
	if err := decodeRecord(w, r, rec); err != nil {
		response.JSONErrorResponse(w, http.StatusBadRequest, invalidRequestBodyMessage, err.Error())
		return
	}

	created, err := h.svc.Create(r.Context(), rec)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.JSONResponse(w, http.StatusCreated, created)
}

// Update handles PUT /{path}/{id} - replaces a record
func (h *ResourceHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	rec := new(T)
	if err := decodeRecord(w, r, rec); err != nil {
		response.JSONErrorResponse(w, http.StatusBadRequest, invalidRequestBodyMessage, err.Error())
		return
	}

	updated, err := h.svc.Update(r.Context(), r.PathValue("id"), rec)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.JSONResponse(w, http.StatusOK, updated)
}

// Patch handles PATCH /{path}/{id} - applies a partial update
func (h *ResourceHandler[T]) Patch(w http.ResponseWriter, r *http.Request) {
	updates, err := decodeUpdates(w, r)
	if err != nil {
		response.JSONErrorResponse(w, http.StatusBadRequest, invalidRequestBodyMessage, err.Error())
		return
	}

	patched, err := h.svc.Patch(r.Context(), r.PathValue("id"), updates)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.JSONResponse(w, http.StatusOK, patched)
}

// Delete handles DELETE /{path}/{id} - removes a record
func (h *ResourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListBy returns a handler listing the records whose field equals the path value named param.
func (h *ResourceHandler[T]) ListBy(field, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := pageable(r, h.listing)
		if err != nil {
			response.JSONErrorResponse(w, http.StatusBadRequest, invalidRequestMessage, err.Error())
			return
		}

		result, err := h.svc.ListBy(r.Context(), field, r.PathValue(param), p)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}

		response.JSONResponse(w, http.StatusOK, result)
	}
}

// FindBy returns a handler serving the first record whose field equals the query parameter named param.
func (h *ResourceHandler[T]) FindBy(field, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := h.svc.FindBy(r.Context(), field, r.URL.Query().Get(param))
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}

		response.JSONResponse(w, http.StatusOK, rec)
	}
}

// Route is a single extra route served under the API prefix
type Route struct {
	Method  string
	Path    string
	Handler http.Handler
}

// Register adds the route to mux.
func (rt Route) Register(mux *http.ServeMux, prefix string) {
	mux.Handle(rt.Method+" "+prefix+rt.Path, rt.Handler)
}
