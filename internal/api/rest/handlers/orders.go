package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/CameronXie/ecommerce-backend/commerce/page"
	"github.com/CameronXie/ecommerce-backend/internal/api/rest/response"
	"github.com/CameronXie/ecommerce-backend/internal/domain"
)

// OrderItemsService lists the line items of an order
type OrderItemsService interface {
	OrderItems(ctx context.Context, orderID string, p page.Pageable) (page.Page[domain.OrderItem], error)
}

// OrderHandler serves the line items of an order
type OrderHandler struct {
	orders OrderItemsService
	logger *slog.Logger
}

// NewOrderHandler creates a new OrderHandler instance
func NewOrderHandler(orders OrderItemsService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger,
	}
}

// Register adds the order item route to mux.
func (h *OrderHandler) Register(mux *http.ServeMux, prefix string) {
	mux.HandleFunc("GET "+prefix+"/orders/{id}/orderItems", h.OrderItems)
}

// OrderItems handles GET /orders/{id}/orderItems - one page of the order's line items
func (h *OrderHandler) OrderItems(w http.ResponseWriter, r *http.Request) {
	p, err := pageable(r, Listing{Sort: domain.OrderItemDefaultSort, Direction: page.Desc})
	if err != nil {
		response.JSONErrorResponse(w, http.StatusBadRequest, invalidRequestMessage, err.Error())
		return
	}

	result, err := h.orders.OrderItems(r.Context(), r.PathValue("id"), p)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.JSONResponse(w, http.StatusOK, result)
}
