// Package orderaggregator assembles a user's orders and their line items into read views.
package orderaggregator

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/CameronXie/ecommerce-backend/commerce/page"
)

const (
	// DefaultFetchSize is the page size used when line items are fetched order by order.
	DefaultFetchSize = 100

	SortProductID  = "productId"
	SortQuantity   = "quantity"
	SortPrice      = "price"
	SortTotalPrice = "totalPrice"
)

var (
	// ErrInvalidUserID is returned when the user identifier is empty.
	ErrInvalidUserID = errors.New("user id cannot be empty")

	// ErrNoOrders is wrapped in an AggregationError for users without orders when the aggregator
	// is built WithEmptyResultError.
	ErrNoOrders = errors.New("user has no orders")
)

// Order is the part of an order record needed by the read views
type Order struct {
	ID          string          `json:"orderId"`
	UserID      string          `json:"userId"`
	OrderDate   time.Time       `json:"orderDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
}

// LineItem is one product line of an order. Price is the unit price captured when the line was created.
type LineItem struct {
	ID        string          `json:"orderItemId"`
	OrderID   string          `json:"orderId"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderData pairs an order with its line items
type OrderData struct {
	Order Order      `json:"order"`
	Items []LineItem `json:"orderItems"`
}

// ProductSummary is one purchased product line with its computed total
type ProductSummary struct {
	OrderID    string          `json:"orderId"`
	ProductID  string          `json:"productId"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// OrderStore resolves the orders owned by a user.
type OrderStore interface {
	// ListOrderIDsByUser returns the identifiers of every order owned by the user.
	ListOrderIDsByUser(ctx context.Context, userID string) ([]string, error)

	// ListOrdersByIDs returns the orders with the given identifiers. Unknown identifiers are skipped.
	ListOrdersByIDs(ctx context.Context, ids []string) ([]Order, error)
}

// LineItemStore fetches the line items of one order, a page at a time.
type LineItemStore interface {
	ListLineItemsByOrder(ctx context.Context, orderID string, p page.Pageable) (page.Page[LineItem], error)
}

// BatchLineItemStore is implemented by line item stores that can fetch the items of many orders in one call.
// When the LineItemStore given to New also implements it, the aggregator issues a single line item query.
type BatchLineItemStore interface {
	ListLineItemsByOrders(ctx context.Context, orderIDs []string) ([]LineItem, error)
}

// AggregationError wraps a failure to assemble the orders of a user
type AggregationError struct {
	UserID string
	Err    error
}

// Error implements the error interface
func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregate orders for user %s: %v", e.UserID, e.Err)
}

// Unwrap returns the underlying error
func (e *AggregationError) Unwrap() error {
	return e.Err
}

// Aggregator builds order read views from an order store and a line item store.
// It holds no state between calls.
type Aggregator struct {
	orders       OrderStore
	items        LineItemStore
	fetchSize    int
	emptyAsError bool
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithFetchSize sets the page size used when line items are fetched order by order.
// Values below 1 are ignored.
func WithFetchSize(size int) Option {
	return func(a *Aggregator) {
		if size > 0 {
			a.fetchSize = size
		}
	}
}

// WithEmptyResultError makes users without orders an error (ErrNoOrders) instead of an empty result.
func WithEmptyResultError() Option {
	return func(a *Aggregator) {
		a.emptyAsError = true
	}
}

// New creates an Aggregator.
func New(orders OrderStore, items LineItemStore, options ...Option) *Aggregator {
	a := &Aggregator{
		orders:    orders,
		items:     items,
		fetchSize: DefaultFetchSize,
	}

	for _, option := range options {
		option(a)
	}

	return a
}

// AggregateOrdersForUser returns a page of the products the user purchased, one summary per line item.
// Pagination and sorting apply to the flattened list, so pages are stable no matter how items are spread
// across orders. Without a sort key, summaries follow the order of the stores.
func (a *Aggregator) AggregateOrdersForUser(
	ctx context.Context,
	userID string,
	p page.Pageable,
) (page.Page[ProductSummary], error) {
	if strings.TrimSpace(userID) == "" {
		return page.Page[ProductSummary]{}, ErrInvalidUserID
	}

	compare, err := summaryComparator(p)
	if err != nil {
		return page.Page[ProductSummary]{}, err
	}

	ids, err := a.orderIDs(ctx, userID)
	if err != nil {
		return page.Page[ProductSummary]{}, err
	}

	if len(ids) == 0 {
		return page.New[ProductSummary](nil, p, 0), nil
	}

	grouped, err := a.lineItems(ctx, userID, ids)
	if err != nil {
		return page.Page[ProductSummary]{}, err
	}

	summaries := make([]ProductSummary, 0)
	for _, id := range ids {
		for _, item := range grouped[id] {
			summaries = append(summaries, Summarize(item))
		}
	}

	if compare != nil {
		slices.SortStableFunc(summaries, compare)
	}

	return page.Slice(summaries, p), nil
}

// OrdersForUser returns every order of the user paired with its line items, in the order the
// order store returns them.
func (a *Aggregator) OrdersForUser(ctx context.Context, userID string) ([]OrderData, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidUserID
	}

	ids, err := a.orderIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []OrderData{}, nil
	}

	orders, err := a.orders.ListOrdersByIDs(ctx, ids)
	if err != nil {
		return nil, &AggregationError{UserID: userID, Err: fmt.Errorf("list orders: %w", err)}
	}

	grouped, err := a.lineItems(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	result := make([]OrderData, 0, len(orders))
	for _, order := range orders {
		items := grouped[order.ID]
		if items == nil {
			items = []LineItem{}
		}
		result = append(result, OrderData{Order: order, Items: items})
	}

	return result, nil
}

// Summarize maps a line item to its product summary.
func Summarize(item LineItem) ProductSummary {
	return ProductSummary{
		OrderID:    item.OrderID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		Price:      item.Price,
		TotalPrice: item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
	}
}

// Total sums the line totals of the summaries.
func Total(summaries []ProductSummary) decimal.Decimal {
	total := decimal.Zero
	for _, s := range summaries {
		total = total.Add(s.TotalPrice)
	}
	return total
}

// orderIDs resolves the user's order identifiers in one store call.
func (a *Aggregator) orderIDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := a.orders.ListOrderIDsByUser(ctx, userID)
	if err != nil {
		return nil, &AggregationError{UserID: userID, Err: fmt.Errorf("list order ids: %w", err)}
	}

	if len(ids) == 0 && a.emptyAsError {
		return nil, &AggregationError{UserID: userID, Err: ErrNoOrders}
	}

	return ids, nil
}

// lineItems fetches the items of the given orders grouped by order identifier, in one call when the
// store supports batching and one paged walk per order otherwise.
func (a *Aggregator) lineItems(ctx context.Context, userID string, orderIDs []string) (map[string][]LineItem, error) {
	grouped := make(map[string][]LineItem, len(orderIDs))

	if batch, ok := a.items.(BatchLineItemStore); ok {
		items, err := batch.ListLineItemsByOrders(ctx, orderIDs)
		if err != nil {
			return nil, &AggregationError{UserID: userID, Err: fmt.Errorf("list line items: %w", err)}
		}

		for _, item := range items {
			grouped[item.OrderID] = append(grouped[item.OrderID], item)
		}
		return grouped, nil
	}

	for _, orderID := range orderIDs {
		items, err := a.orderLineItems(ctx, orderID)
		if err != nil {
			return nil, &AggregationError{UserID: userID, Err: fmt.Errorf("list line items of order %s: %w", orderID, err)}
		}
		grouped[orderID] = items
	}

	return grouped, nil
}

// orderLineItems walks every page of one order's line items.
func (a *Aggregator) orderLineItems(ctx context.Context, orderID string) ([]LineItem, error) {
	var items []LineItem

	for pageIndex := 0; ; pageIndex++ {
		result, err := a.items.ListLineItemsByOrder(ctx, orderID, page.Pageable{
			Page:      pageIndex,
			Size:      a.fetchSize,
			Direction: page.Asc,
		})
		if err != nil {
			return nil, err
		}

		items = append(items, result.Content...)

		if len(result.Content) < a.fetchSize || pageIndex+1 >= result.TotalPages {
			return items, nil
		}
	}
}

// summaryComparator returns the ordering requested by p, or nil to keep store order.
func summaryComparator(p page.Pageable) (func(a, b ProductSummary) int, error) {
	var compare func(a, b ProductSummary) int

	switch p.Sort {
	case "":
		return nil, nil
	case SortProductID:
		compare = func(a, b ProductSummary) int { return strings.Compare(a.ProductID, b.ProductID) }
	case SortQuantity:
		compare = func(a, b ProductSummary) int { return cmp.Compare(a.Quantity, b.Quantity) }
	case SortPrice:
		compare = func(a, b ProductSummary) int { return a.Price.Cmp(b.Price) }
	case SortTotalPrice:
		compare = func(a, b ProductSummary) int { return a.TotalPrice.Cmp(b.TotalPrice) }
	default:
		return nil, &page.SortError{Resource: "product summary", Key: p.Sort}
	}

	if p.Descending() {
		return func(a, b ProductSummary) int { return compare(b, a) }, nil
	}

	return compare, nil
}
