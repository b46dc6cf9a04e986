package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/CameronXie/ecommerce-backend/commerce/page"
	"github.com/CameronXie/ecommerce-backend/internal/api/rest/response"
	"github.com/CameronXie/ecommerce-backend/internal/domain"
)

// WishlistService lists the wishlist entries of a user
type WishlistService interface {
	ListByUser(ctx context.Context, userID string, p page.Pageable) (page.Page[domain.Wishlist], error)
}

// WishlistHandler serves the wishlist of a user
type WishlistHandler struct {
	wishlists WishlistService
	logger    *slog.Logger
}

// NewWishlistHandler creates a new WishlistHandler instance
func NewWishlistHandler(wishlists WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlists: wishlists,
		logger:    logger,
	}
}

// Register adds the wishlist route to mux.
func (h *WishlistHandler) Register(mux *http.ServeMux, prefix string) {
	mux.HandleFunc("GET "+prefix+"/wishlists/user/{userId}", h.ListByUser)
}

// ListByUser handles GET /wishlists/user/{userId}
func (h *WishlistHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	p, err := pageable(r, Listing{Sort: domain.WishlistDefaultSort, Direction: page.Desc})
	if err != nil {
		response.JSONErrorResponse(w, http.StatusBadRequest, invalidRequestMessage, err.Error())
		return
	}

	result, err := h.wishlists.ListByUser(r.Context(), r.PathValue("userId"), p)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.JSONResponse(w, http.StatusOK, result)
}
