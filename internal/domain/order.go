package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/CameronXie/ecommerce-backend/commerce/orderaggregator"
	"github.com/CameronXie/ecommerce-backend/commerce/patch"
)

const (
	OrderDefaultSort     = "orderDate"
	OrderItemDefaultSort = "price"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// Order is placed by a user; its products are OrderItem records
type Order struct {
	OrderID     string          `json:"orderId" gorm:"primaryKey;type:varchar(50)"`
	UserID      string          `json:"userId" gorm:"type:varchar(50);not null;index"`
	OrderDate   time.Time       `json:"orderDate" gorm:"<-:create;autoCreateTime"`
	TotalAmount decimal.Decimal `json:"totalAmount" gorm:"type:decimal(12,2);not null"`
	Status      OrderStatus     `json:"status" gorm:"type:varchar(20);not null"`
}

// OrderItem is one product line of an order. Price is the unit price at the time the order was placed.
type OrderItem struct {
	OrderItemID string          `json:"orderItemId" gorm:"primaryKey;type:varchar(50)"`
	OrderID     string          `json:"orderId" gorm:"type:varchar(50);not null;index"`
	ProductID   string          `json:"productId" gorm:"type:varchar(50);not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
}

var OrderSchema = patch.MustSchema(
	"order",
	patch.ID("orderId", func(o *Order) *string { return &o.OrderID }),
	patch.String("userId", func(o *Order) *string { return &o.UserID }),
	patch.Decimal("totalAmount", func(o *Order) *decimal.Decimal { return &o.TotalAmount }, patch.Positive(), patch.Precision(12, 2)),
	patch.String("status", func(o *Order) *string { return (*string)(&o.Status) }),
)

var OrderItemSchema = patch.MustSchema(
	"order item",
	patch.ID("orderItemId", func(i *OrderItem) *string { return &i.OrderItemID }),
	patch.String("orderId", func(i *OrderItem) *string { return &i.OrderID }),
	patch.String("productId", func(i *OrderItem) *string { return &i.ProductID }),
	patch.Integer("quantity", func(i *OrderItem) *int { return &i.Quantity }, patch.AtLeast(1)),
	patch.Decimal("price", func(i *OrderItem) *decimal.Decimal { return &i.Price }, patch.Positive(), patch.Precision(12, 2)),
)

// View converts the order to its aggregation view.
func (o *Order) View() orderaggregator.Order {
	return orderaggregator.Order{
		ID:          o.OrderID,
		UserID:      o.UserID,
		OrderDate:   o.OrderDate,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
	}
}

// View converts the order item to its aggregation view.
func (i *OrderItem) View() orderaggregator.LineItem {
	return orderaggregator.LineItem{
		ID:        i.OrderItemID,
		OrderID:   i.OrderID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
		Price:     i.Price,
	}
}
