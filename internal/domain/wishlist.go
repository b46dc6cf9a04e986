package domain

import (
	"time"

	"github.com/CameronXie/ecommerce-backend/commerce/patch"
)

const WishlistDefaultSort = "createdAt"

// Wishlist marks a product a user wants to buy later
type Wishlist struct {
	WishlistID string    `json:"wishlistId" gorm:"primaryKey;type:varchar(50)"`
	UserID     string    `json:"userId" gorm:"type:varchar(50);not null;index"`
	ProductID  string    `json:"productId" gorm:"type:varchar(50);not null"`
	CreatedAt  time.Time `json:"createdAt" gorm:"<-:create;autoCreateTime"`
}

// TableName overrides the pluralized default.
func (Wishlist) TableName() string {
	return "wishlist"
}

var WishlistSchema = patch.MustSchema(
	"wishlist",
	patch.ID("wishlistId", func(w *Wishlist) *string { return &w.WishlistID }),
	patch.String("userId", func(w *Wishlist) *string { return &w.UserID }),
	patch.String("productId", func(w *Wishlist) *string { return &w.ProductID }),
)
