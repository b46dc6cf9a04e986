// Package postgres reads orders and their line items with pgx for postgres deployments.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CameronXie/ecommerce-backend/commerce/orderaggregator"
	"github.com/CameronXie/ecommerce-backend/commerce/page"
)

// OrderRepository provides read access to orders and order items. It serves every collaborator of the
// order aggregator, including batched line item retrieval.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository creates a new OrderRepository instance
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{
		pool: pool,
	}
}

// ListOrderIDsByUser returns the ids of the user's orders, oldest first
func (r *OrderRepository) ListOrderIDsByUser(ctx context.Context, userID string) ([]string, error) {
	query := "SELECT order_id FROM orders WHERE user_id = $1 ORDER BY order_date, order_id"

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders of user %s: %w", userID, err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to read orders of user %s: %w", userID, err)
	}

	return ids, nil
}

// ListOrdersByIDs returns the orders with the given ids
func (r *OrderRepository) ListOrdersByIDs(ctx context.Context, ids []string) ([]orderaggregator.Order, error) {
	if len(ids) == 0 {
		return []orderaggregator.Order{}, nil
	}

	query := `SELECT order_id, user_id, order_date, total_amount, status
		FROM orders WHERE order_id = ANY($1) ORDER BY order_date, order_id`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (orderaggregator.Order, error) {
		var o orderaggregator.Order
		err := row.Scan(&o.ID, &o.UserID, &o.OrderDate, &o.TotalAmount, &o.Status)
		return o, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	return orders, nil
}

// ListLineItemsByOrder returns one page of the order's line items in id order
func (r *OrderRepository) ListLineItemsByOrder(
	ctx context.Context,
	orderID string,
	p page.Pageable,
) (page.Page[orderaggregator.LineItem], error) {
	var total int64
	err := r.pool.QueryRow(ctx, "SELECT count(*) FROM order_items WHERE order_id = $1", orderID).Scan(&total)
	if err != nil {
		return page.Page[orderaggregator.LineItem]{}, fmt.Errorf("failed to count items of order %s: %w", orderID, err)
	}

	query := `SELECT order_item_id, order_id, product_id, quantity, price
		FROM order_items WHERE order_id = $1 ORDER BY order_item_id LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, orderID, p.Size, p.Offset())
	if err != nil {
		return page.Page[orderaggregator.LineItem]{}, fmt.Errorf("failed to query items of order %s: %w", orderID, err)
	}

	items, err := pgx.CollectRows(rows, scanLineItem)
	if err != nil {
		return page.Page[orderaggregator.LineItem]{}, fmt.Errorf("failed to read items of order %s: %w", orderID, err)
	}

	return page.New(items, p, total), nil
}

// ListLineItemsByOrders returns the line items of all given orders in one query
func (r *OrderRepository) ListLineItemsByOrders(ctx context.Context, orderIDs []string) ([]orderaggregator.LineItem, error) {
	if len(orderIDs) == 0 {
		return []orderaggregator.LineItem{}, nil
	}

	query := `SELECT order_item_id, order_id, product_id, quantity, price
		FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, order_item_id`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}

	items, err := pgx.CollectRows(rows, scanLineItem)
	if err != nil {
		return nil, fmt.Errorf("failed to read order items: %w", err)
	}

	return items, nil
}

func scanLineItem(row pgx.CollectableRow) (orderaggregator.LineItem, error) {
	var item orderaggregator.LineItem
	err := row.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price)
	return item, err
}
