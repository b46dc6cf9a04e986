package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/CameronXie/ecommerce-backend/commerce/patch"
)

const ProductDefaultSort = "retailPrice"

// Product is a catalogue entry crawled from a storefront
type Product struct {
	ProductID             string          `json:"productId" gorm:"primaryKey;type:varchar(50)"`
	CrawlTimestamp        time.Time       `json:"crawlTimestamp"`
	ProductURL            string          `json:"productUrl" gorm:"column:product_url;type:text"`
	ProductName           string          `json:"productName" gorm:"type:text"`
	Categories            string          `json:"categories" gorm:"type:text"`
	PID                   string          `json:"pid" gorm:"column:pid"`
	RetailPrice           decimal.Decimal `json:"retailPrice" gorm:"type:decimal(12,2)"`
	DiscountedPrice       decimal.Decimal `json:"discountedPrice" gorm:"type:decimal(12,2)"`
	ImageURLs             string          `json:"imageUrls" gorm:"column:image_urls;type:text"`
	IsFkAdvantageProduct  bool            `json:"isFkAdvantageProduct" gorm:"column:is_fk_advantage_product"`
	ProductDescription    string          `json:"productDescription" gorm:"type:text"`
	ProductRating         string          `json:"productRating"`
	OverallRating         string          `json:"overallRating"`
	Brand                 string          `json:"brand"`
	ProductSpecifications string          `json:"productSpecifications" gorm:"type:text"`
	StockQuantity         int             `json:"stockQuantity"`
	QuantityUnit          string          `json:"quantityUnit"`
	CreatedAt             time.Time       `json:"createdAt" gorm:"<-:create;autoCreateTime"`
}

// TableName overrides the pluralized default.
func (Product) TableName() string {
	return "product"
}

var ProductSchema = patch.MustSchema(
	"product",
	patch.ID("productId", func(p *Product) *string { return &p.ProductID }),
	patch.Timestamp("crawlTimestamp", func(p *Product) *time.Time { return &p.CrawlTimestamp }).Nullable(),
	patch.String("productUrl", func(p *Product) *string { return &p.ProductURL }).Nullable(),
	patch.String("productName", func(p *Product) *string { return &p.ProductName }),
	patch.String("categories", func(p *Product) *string { return &p.Categories }).Nullable(),
	patch.String("pid", func(p *Product) *string { return &p.PID }).Nullable(),
	patch.Decimal("retailPrice", func(p *Product) *decimal.Decimal { return &p.RetailPrice }, patch.Precision(12, 2)),
	patch.Decimal("discountedPrice", func(p *Product) *decimal.Decimal { return &p.DiscountedPrice }, patch.Precision(12, 2)),
	patch.String("imageUrls", func(p *Product) *string { return &p.ImageURLs }).Nullable(),
	patch.Boolean("isFkAdvantageProduct", func(p *Product) *bool { return &p.IsFkAdvantageProduct }),
	patch.String("productDescription", func(p *Product) *string { return &p.ProductDescription }).Nullable(),
	patch.String("productRating", func(p *Product) *string { return &p.ProductRating }).Nullable(),
	patch.String("overallRating", func(p *Product) *string { return &p.OverallRating }).Nullable(),
	patch.String("brand", func(p *Product) *string { return &p.Brand }).Nullable(),
	patch.String("productSpecifications", func(p *Product) *string { return &p.ProductSpecifications }).Nullable(),
	patch.Integer("stockQuantity", func(p *Product) *int { return &p.StockQuantity }, patch.AtLeast(0)),
	patch.String("quantityUnit", func(p *Product) *string { return &p.QuantityUnit }).Nullable(),
)
