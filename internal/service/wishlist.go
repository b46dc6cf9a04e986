package service

import (
	"context"

	"github.com/CameronXie/ecommerce-backend/commerce/page"
	"github.com/CameronXie/ecommerce-backend/internal/domain"
)

// WishlistService manages wishlist entries
type WishlistService struct {
	*ResourceService[domain.Wishlist]
}

// NewWishlistService creates a new WishlistService instance
func NewWishlistService(wishlists Store[domain.Wishlist]) *WishlistService {
	return &WishlistService{ResourceService: NewResourceService(wishlists, domain.WishlistSchema)}
}

// ListByUser returns one page of the user's wishlist entries
func (s *WishlistService) ListByUser(ctx context.Context, userID string, p page.Pageable) (page.Page[domain.Wishlist], error) {
	return s.ListBy(ctx, "userId", userID, p)
}
