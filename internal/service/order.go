package service

import (
	"context"

	"github.com/CameronXie/ecommerce-backend/commerce/orderaggregator"
	"github.com/CameronXie/ecommerce-backend/commerce/page"
	"github.com/CameronXie/ecommerce-backend/internal/domain"
)

// OrderService manages orders and exposes their line items
type OrderService struct {
	*ResourceService[domain.Order]
	items      Store[domain.OrderItem]
	aggregator *orderaggregator.Aggregator
}

// NewOrderService creates a new OrderService instance
func NewOrderService(
	orders Store[domain.Order],
	items Store[domain.OrderItem],
	aggregator *orderaggregator.Aggregator,
) *OrderService {
	return &OrderService{
		ResourceService: NewResourceService(orders, domain.OrderSchema),
		items:           items,
		aggregator:      aggregator,
	}
}

// OrderItems returns one page of the order's line items
func (s *OrderService) OrderItems(ctx context.Context, orderID string, p page.Pageable) (page.Page[domain.OrderItem], error) {
	if err := s.mustExist(ctx, orderID); err != nil {
		return page.Page[domain.OrderItem]{}, err
	}

	return s.items.ListBy(ctx, "orderId", orderID, p)
}

// OrdersForUser returns every order of the user with its line items
func (s *OrderService) OrdersForUser(ctx context.Context, userID string) ([]orderaggregator.OrderData, error) {
	return s.aggregator.OrdersForUser(ctx, userID)
}
