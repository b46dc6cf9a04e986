package domain

import (
	"time"

	"github.com/CameronXie/ecommerce-backend/commerce/patch"
)

const CartDefaultSort = "createdAt"

// Cart is one product line in a user's shopping cart
type Cart struct {
	CartID    string    `json:"cartId" gorm:"primaryKey;type:varchar(50)"`
	UserID    string    `json:"userId" gorm:"type:varchar(50);not null;index"`
	ProductID string    `json:"productId" gorm:"type:varchar(50);not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"<-:create;autoCreateTime"`
}

var CartSchema = patch.MustSchema(
	"cart",
	patch.ID("cartId", func(c *Cart) *string { return &c.CartID }),
	patch.String("userId", func(c *Cart) *string { return &c.UserID }),
	patch.String("productId", func(c *Cart) *string { return &c.ProductID }),
	patch.Integer("quantity", func(c *Cart) *int { return &c.Quantity }, patch.AtLeast(1)),
)
