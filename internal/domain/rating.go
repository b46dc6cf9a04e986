package domain

import (
	"time"

	"github.com/CameronXie/ecommerce-backend/commerce/patch"
)

const RatingDefaultSort = "createdAt"

// Rating is a user's score for a product, from 1 to 5, with an optional review
type Rating struct {
	RatingID  string    `json:"ratingId" gorm:"primaryKey;type:varchar(50)"`
	UserID    string    `json:"userId" gorm:"type:varchar(50);index"`
	ProductID string    `json:"productId" gorm:"type:varchar(50);index"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"<-:create;autoCreateTime"`
}

// TableName overrides the pluralized default.
func (Rating) TableName() string {
	return "rating"
}

var RatingSchema = patch.MustSchema(
	"rating",
	patch.ID("ratingId", func(r *Rating) *string { return &r.RatingID }),
	patch.String("userId", func(r *Rating) *string { return &r.UserID }),
	patch.String("productId", func(r *Rating) *string { return &r.ProductID }),
	patch.Integer("rating", func(r *Rating) *int { return &r.Rating }, patch.AtLeast(1), patch.AtMost(5)),
	patch.String("review", func(r *Rating) *string { return &r.Review }).Nullable(),
)
