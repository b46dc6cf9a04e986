package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/CameronXie/ecommerce-backend/commerce/orderaggregator"
	"github.com/CameronXie/ecommerce-backend/commerce/page"
	"github.com/CameronXie/ecommerce-backend/internal/api/rest/response"
	"github.com/CameronXie/ecommerce-backend/internal/domain"
	"github.com/CameronXie/ecommerce-backend/internal/service"
)

// UserService defines the user queries served beside the CRUD routes
type UserService interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	OrderedProducts(ctx context.Context, userID string, p page.Pageable) (page.Page[service.OrderedProduct], error)
}

// UserOrders resolves every order of a user together with its line items
type UserOrders interface {
	OrdersForUser(ctx context.Context, userID string) ([]orderaggregator.OrderData, error)
}

// UserHandler serves lookups by username and the purchase history of a user
type UserHandler struct {
	users  UserService
	orders UserOrders
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(users UserService, orders UserOrders, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		orders: orders,
		logger: logger,
	}
}

// Register adds the user query routes to mux.
func (h *UserHandler) Register(mux *http.ServeMux, prefix string) {
	mux.HandleFunc("GET "+prefix+"/users/username", h.GetByUsername)
	mux.HandleFunc("GET "+prefix+"/users/{id}/orderedProducts", h.OrderedProducts)
	mux.HandleFunc("GET "+prefix+"/users/{id}/orders", h.Orders)
}

// GetByUsername handles GET /users/username?username= - retrieves a user by username
func (h *UserHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByUsername(r.Context(), r.URL.Query().Get("username"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.JSONResponse(w, http.StatusOK, user)
}

// OrderedProducts handles GET /users/{id}/orderedProducts - one page of the products the user ordered
func (h *UserHandler) OrderedProducts(w http.ResponseWriter, r *http.Request) {
	p, err := pageable(r, Listing{Direction: page.Desc})
	if err != nil {
		response.JSONErrorResponse(w, http.StatusBadRequest, invalidRequestMessage, err.Error())
		return
	}

	result, err := h.users.OrderedProducts(r.Context(), r.PathValue("id"), p)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.JSONResponse(w, http.StatusOK, result)
}

// Orders handles GET /users/{id}/orders - every order of the user with its line items
func (h *UserHandler) Orders(w http.ResponseWriter, r *http.Request) {
	result, err := h.orders.OrdersForUser(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.JSONResponse(w, http.StatusOK, result)
}
