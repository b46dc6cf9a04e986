package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/CameronXie/ecommerce-backend/commerce/orderaggregator"
	"github.com/CameronXie/ecommerce-backend/commerce/page"
	"github.com/CameronXie/ecommerce-backend/commerce/patch"
	"github.com/CameronXie/ecommerce-backend/internal/api/rest/response"
	"github.com/CameronXie/ecommerce-backend/internal/repository"
	"github.com/CameronXie/ecommerce-backend/internal/service"
)

const (
	invalidRequestBodyMessage  = "invalid request body"
	invalidRequestMessage      = "invalid request"
	notFoundMessage            = "not found"
	alreadyExistsMessage       = "already exists"
	internalServerErrorMessage = "internal server error"
)

// writeError translates err into an HTTP error response. Client errors carry the error text as message,
// server errors are logged and answered without detail.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, title := classify(err)

	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request_failed", "method", r.Method, "path", r.URL.Path, "error", err)
		response.JSONErrorResponse(w, status, title, "")
		return
	}

	logger.WarnContext(r.Context(), "request_rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	response.JSONErrorResponse(w, status, title, err.Error())
}

func classify(err error) (int, string) {
	var (
		notFoundErr      *repository.NotFoundError
		alreadyExistsErr *repository.AlreadyExistsError
		unknownFieldErr  *patch.UnknownFieldError
		coercionErr      *patch.TypeCoercionError
		constraintErr    *patch.ConstraintError
		sortErr          *page.SortError
		validationErr    *service.ValidationError
	)

	switch {
	case errors.As(err, &notFoundErr), errors.Is(err, orderaggregator.ErrNoOrders):
		return http.StatusNotFound, notFoundMessage
	case errors.As(err, &alreadyExistsErr):
		return http.StatusConflict, alreadyExistsMessage
	case errors.As(err, &unknownFieldErr),
		errors.As(err, &coercionErr),
		errors.As(err, &constraintErr),
		errors.As(err, &sortErr),
		errors.As(err, &validationErr),
		errors.Is(err, orderaggregator.ErrInvalidUserID):
		return http.StatusBadRequest, invalidRequestMessage
	default:
		return http.StatusInternalServerError, internalServerErrorMessage
	}
}
