package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/CameronXie/ecommerce-backend/commerce/orderaggregator"
	"github.com/CameronXie/ecommerce-backend/commerce/page"
	"github.com/CameronXie/ecommerce-backend/internal/domain"
)

// ProductLookup resolves products by identifier
type ProductLookup interface {
	GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}

// OrderedProduct is one line a user has ordered, with the catalogue details of the product
type OrderedProduct struct {
	OrderID            string          `json:"orderId"`
	ProductID          string          `json:"productId"`
	ProductName        string          `json:"productName"`
	ProductDescription string          `json:"productDescription"`
	RetailPrice        decimal.Decimal `json:"retailPrice"`
	DiscountedPrice    decimal.Decimal `json:"discountedPrice"`
	Brand              string          `json:"brand"`
	ProductRating      string          `json:"productRating"`
	OverallRating      string          `json:"overallRating"`
	ImageURLs          string          `json:"imageUrls"`
	CreatedAt          *time.Time      `json:"createdAt,omitempty"`
	Quantity           int             `json:"quantity"`
	Price              decimal.Decimal `json:"price"`
	TotalPrice         decimal.Decimal `json:"totalPrice"`
}

// UserService manages users and the products they have ordered
type UserService struct {
	*ResourceService[domain.User]
	users      Store[domain.User]
	aggregator *orderaggregator.Aggregator
	products   ProductLookup
}

// NewUserService creates a new UserService instance
func NewUserService(
	users Store[domain.User],
	aggregator *orderaggregator.Aggregator,
	products ProductLookup,
) *UserService {
	return &UserService{
		ResourceService: NewResourceService(users, domain.UserSchema),
		users:           users,
		aggregator:      aggregator,
		products:        products,
	}
}

// GetByUsername returns the user with the username
func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, &ValidationError{Field: "username", Message: "cannot be empty"}
	}

	return s.users.FindBy(ctx, "username", username)
}

// OrderedProducts returns one page of the products the user has ordered. Products that are no longer
// in the catalogue are listed with their order line data only.
func (s *UserService) OrderedProducts(
	ctx context.Context,
	userID string,
	p page.Pageable,
) (page.Page[OrderedProduct], error) {
	if err := s.mustExist(ctx, userID); err != nil {
		return page.Page[OrderedProduct]{}, err
	}

	summaries, err := s.aggregator.AggregateOrdersForUser(ctx, userID, p)
	if err != nil {
		return page.Page[OrderedProduct]{}, err
	}

	catalogue, err := s.lookupProducts(ctx, summaries.Content)
	if err != nil {
		return page.Page[OrderedProduct]{}, err
	}

	return page.Map(summaries, func(summary orderaggregator.ProductSummary) OrderedProduct {
		ordered := OrderedProduct{
			OrderID:    summary.OrderID,
			ProductID:  summary.ProductID,
			Quantity:   summary.Quantity,
			Price:      summary.Price,
			TotalPrice: summary.TotalPrice,
		}

		if product, ok := catalogue[summary.ProductID]; ok {
			ordered.ProductName = product.ProductName
			ordered.ProductDescription = product.ProductDescription
			ordered.RetailPrice = product.RetailPrice
			ordered.DiscountedPrice = product.DiscountedPrice
			ordered.Brand = product.Brand
			ordered.ProductRating = product.ProductRating
			ordered.OverallRating = product.OverallRating
			ordered.ImageURLs = product.ImageURLs
			createdAt := product.CreatedAt
			ordered.CreatedAt = &createdAt
		}

		return ordered
	}), nil
}

func (s *UserService) lookupProducts(
	ctx context.Context,
	summaries []orderaggregator.ProductSummary,
) (map[string]domain.Product, error) {
	seen := make(map[string]struct{}, len(summaries))
	ids := make([]string, 0, len(summaries))
	for _, summary := range summaries {
		if _, ok := seen[summary.ProductID]; ok {
			continue
		}
		seen[summary.ProductID] = struct{}{}
		ids = append(ids, summary.ProductID)
	}

	catalogue := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return catalogue, nil
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, product := range products {
		catalogue[product.ProductID] = product
	}

	return catalogue, nil
}
