package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CameronXie/ecommerce-backend/commerce/orderaggregator"
	"github.com/CameronXie/ecommerce-backend/commerce/page"
	"github.com/CameronXie/ecommerce-backend/internal/domain"
)

// OrderViews serves the order side of the aggregation from the orders table
type OrderViews struct {
	db *gorm.DB
}

// NewOrderViews creates a new OrderViews instance
func NewOrderViews(db *gorm.DB) *OrderViews {
	return &OrderViews{db: db}
}

// ListOrderIDsByUser returns the ids of the user's orders, oldest first
func (v *OrderViews) ListOrderIDsByUser(ctx context.Context, userID string) ([]string, error) {
	ids := make([]string, 0)
	err := v.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where(clause.Eq{Column: clause.Column{Name: "user_id"}, Value: userID}).
		Order("order_date").
		Order("order_id").
		Pluck("order_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders of user %s: %w", userID, err)
	}

	return ids, nil
}

// ListOrdersByIDs returns the orders with the given ids
func (v *OrderViews) ListOrdersByIDs(ctx context.Context, ids []string) ([]orderaggregator.Order, error) {
	orders := make([]domain.Order, 0, len(ids))
	if len(ids) > 0 {
		err := v.db.WithContext(ctx).
			Where(clause.IN{Column: clause.Column{Name: "order_id"}, Values: toValues(ids)}).
			Order("order_date").
			Order("order_id").
			Find(&orders).Error
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve orders: %w", err)
		}
	}

	views := make([]orderaggregator.Order, len(orders))
	for i := range orders {
		views[i] = orders[i].View()
	}

	return views, nil
}

// LineItemViews serves order line items from the order_items table. It supports batched retrieval.
type LineItemViews struct {
	db *gorm.DB
}

// NewLineItemViews creates a new LineItemViews instance
func NewLineItemViews(db *gorm.DB) *LineItemViews {
	return &LineItemViews{db: db}
}

// ListLineItemsByOrder returns one page of the order's line items in id order
func (v *LineItemViews) ListLineItemsByOrder(
	ctx context.Context,
	orderID string,
	p page.Pageable,
) (page.Page[orderaggregator.LineItem], error) {
	query := v.db.WithContext(ctx).
		Model(&domain.OrderItem{}).
		Where(clause.Eq{Column: clause.Column{Name: "order_id"}, Value: orderID})

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return page.Page[orderaggregator.LineItem]{}, fmt.Errorf("failed to count items of order %s: %w", orderID, err)
	}

	items := make([]domain.OrderItem, 0, p.Size)
	err := query.Session(&gorm.Session{}).
		Order("order_item_id").
		Offset(p.Offset()).
		Limit(p.Size).
		Find(&items).Error
	if err != nil {
		return page.Page[orderaggregator.LineItem]{}, fmt.Errorf("failed to list items of order %s: %w", orderID, err)
	}

	return page.New(lineItemViews(items), p, total), nil
}

// ListLineItemsByOrders returns the line items of all given orders in one query
func (v *LineItemViews) ListLineItemsByOrders(ctx context.Context, orderIDs []string) ([]orderaggregator.LineItem, error) {
	items := make([]domain.OrderItem, 0)
	if len(orderIDs) > 0 {
		err := v.db.WithContext(ctx).
			Where(clause.IN{Column: clause.Column{Name: "order_id"}, Values: toValues(orderIDs)}).
			Order("order_id").
			Order("order_item_id").
			Find(&items).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list order items: %w", err)
		}
	}

	return lineItemViews(items), nil
}

func lineItemViews(items []domain.OrderItem) []orderaggregator.LineItem {
	views := make([]orderaggregator.LineItem, len(items))
	for i := range items {
		views[i] = items[i].View()
	}
	return views
}
