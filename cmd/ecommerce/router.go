package main

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/CameronXie/ecommerce-backend/commerce/orderaggregator"
	"github.com/CameronXie/ecommerce-backend/commerce/page"
	"github.com/CameronXie/ecommerce-backend/internal/api/rest"
	"github.com/CameronXie/ecommerce-backend/internal/api/rest/handlers"
	"github.com/CameronXie/ecommerce-backend/internal/api/rest/middlewares"
	"github.com/CameronXie/ecommerce-backend/internal/domain"
	"github.com/CameronXie/ecommerce-backend/internal/repository/gormstore"
	"github.com/CameronXie/ecommerce-backend/internal/service"
)

// newRouter wires a store, service and handler for every record type.
func newRouter(
	db *gorm.DB,
	sqlDB *sql.DB,
	aggregator *orderaggregator.Aggregator,
	reg *prometheus.Registry,
	logger *slog.Logger,
) (http.Handler, error) {
	products := gormstore.MustNew[domain.Product](db, domain.ProductSchema.Resource())
	orderItems := gormstore.MustNew[domain.OrderItem](db, domain.OrderItemSchema.Resource())

	addressSvc := service.NewResourceService(gormstore.MustNew[domain.Address](db, domain.AddressSchema.Resource()), domain.AddressSchema)
	citySvc := service.NewResourceService(gormstore.MustNew[domain.City](db, domain.CitySchema.Resource()), domain.CitySchema)
	countrySvc := service.NewResourceService(gormstore.MustNew[domain.Country](db, domain.CountrySchema.Resource()), domain.CountrySchema)
	cardSvc := service.NewResourceService(gormstore.MustNew[domain.Card](db, domain.CardSchema.Resource()), domain.CardSchema)
	cartSvc := service.NewResourceService(gormstore.MustNew[domain.Cart](db, domain.CartSchema.Resource()), domain.CartSchema)
	invoiceSvc := service.NewResourceService(gormstore.MustNew[domain.Invoice](db, domain.InvoiceSchema.Resource()), domain.InvoiceSchema)
	orderItemSvc := service.NewResourceService(orderItems, domain.OrderItemSchema)
	ratingSvc := service.NewResourceService(gormstore.MustNew[domain.Rating](db, domain.RatingSchema.Resource()), domain.RatingSchema)
	transactionSvc := service.NewResourceService(gormstore.MustNew[domain.Transaction](db, domain.TransactionSchema.Resource()), domain.TransactionSchema)
	orderSvc := service.NewOrderService(gormstore.MustNew[domain.Order](db, domain.OrderSchema.Resource()), orderItems, aggregator)
	productSvc := service.NewProductService(products)
	userSvc := service.NewUserService(gormstore.MustNew[domain.User](db, domain.UserSchema.Resource()), aggregator, products)
	wishlistSvc := service.NewWishlistService(gormstore.MustNew[domain.Wishlist](db, domain.WishlistSchema.Resource()))

	addresses := handlers.NewResourceHandler[domain.Address]("addresses", addressSvc, handlers.Listing{Sort: domain.AddressDefaultSort, Direction: page.Asc}, logger)
	cities := handlers.NewResourceHandler[domain.City]("cities", citySvc, listing(domain.CityDefaultSort), logger)
	countries := handlers.NewResourceHandler[domain.Country]("countries", countrySvc, listing(domain.CountryDefaultSort), logger)
	cards := handlers.NewResourceHandler[domain.Card]("cards", cardSvc, listing(domain.CardDefaultSort), logger)
	carts := handlers.NewResourceHandler[domain.Cart]("carts", cartSvc, listing(domain.CartDefaultSort), logger)
	transactions := handlers.NewResourceHandler[domain.Transaction]("transactions", transactionSvc, listing(domain.TransactionDefaultSort), logger)

	routes := []rest.Routes{
		addresses,
		cities,
		countries,
		cards,
		carts,
		transactions,
		handlers.NewResourceHandler[domain.Invoice]("invoices", invoiceSvc, listing(domain.InvoiceDefaultSort), logger),
		handlers.NewResourceHandler[domain.Order]("orders", orderSvc, listing(domain.OrderDefaultSort), logger),
		handlers.NewResourceHandler[domain.OrderItem]("order-items", orderItemSvc, listing(domain.OrderItemDefaultSort), logger),
		handlers.NewResourceHandler[domain.Product]("products", productSvc, listing(domain.ProductDefaultSort), logger),
		handlers.NewResourceHandler[domain.Rating]("ratings", ratingSvc, listing(domain.RatingDefaultSort), logger),
		handlers.NewResourceHandler[domain.User]("users", userSvc, handlers.Listing{Sort: domain.UserDefaultSort, Direction: page.Asc}, logger),
		handlers.NewResourceHandler[domain.Wishlist]("wishlists", wishlistSvc, listing(domain.WishlistDefaultSort), logger),
		handlers.NewOrderHandler(orderSvc, logger),
		handlers.NewUserHandler(userSvc, orderSvc, logger),
		handlers.NewProductHandler(productSvc, logger),
		handlers.NewWishlistHandler(wishlistSvc, logger),
		handlers.Route{Method: http.MethodGet, Path: "/carts/user/{userId}", Handler: carts.ListBy("userId", "userId")},
		handlers.Route{Method: http.MethodGet, Path: "/transactions/order/{orderId}", Handler: transactions.ListBy("orderId", "orderId")},
		handlers.Route{Method: http.MethodGet, Path: "/countries/{id}/cities", Handler: cities.ListBy("countryId", "id")},
		handlers.Route{Method: http.MethodGet, Path: "/cities/{id}/addresses", Handler: addresses.ListBy("cityId", "id")},
		handlers.Route{Method: http.MethodGet, Path: "/cards/cardNumber", Handler: cards.FindBy("cardNumber", "cardNumber")},
	}

	metrics, err := middlewares.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	return rest.NewMuxWithHandlers(&rest.RouterConfig{
		Prefix:         rest.DefaultPrefix,
		Routes:         routes,
		HealthHandler:  handlers.NewHealthHandler(sqlDB, logger),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		Middlewares: []middlewares.Middleware{
			middlewares.NewRequestLogger(logger),
			metrics,
		},
	}), nil
}

func listing(sort string) handlers.Listing {
	return handlers.Listing{Sort: sort, Direction: page.Desc}
}
