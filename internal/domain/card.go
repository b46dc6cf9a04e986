package domain

import (
	"time"

	"github.com/CameronXie/ecommerce-backend/commerce/patch"
)

const CardDefaultSort = "cardHolderName"

// Card is a payment card owned by a user
type Card struct {
	CardID         string    `json:"cardId" gorm:"primaryKey;type:varchar(50)"`
	CardNumber     string    `json:"cardNumber" gorm:"type:varchar(50);not null"`
	CardHolderName string    `json:"cardHolderName" gorm:"type:varchar(255);not null"`
	CardType       string    `json:"cardType" gorm:"type:varchar(50);not null"`
	ExpirationDate time.Time `json:"expirationDate" gorm:"type:date;not null"`
	CVV            int       `json:"cvv" gorm:"column:cvv;not null"`
	UserID         string    `json:"userId" gorm:"type:varchar(50);not null;index"`
	CreatedAt      time.Time `json:"createdAt" gorm:"<-:create;autoCreateTime"`
}

var CardSchema = patch.MustSchema(
	"card",
	patch.ID("cardId", func(c *Card) *string { return &c.CardID }),
	patch.String("cardNumber", func(c *Card) *string { return &c.CardNumber }),
	patch.String("cardHolderName", func(c *Card) *string { return &c.CardHolderName }),
	patch.String("cardType", func(c *Card) *string { return &c.CardType }),
	patch.Date("expirationDate", func(c *Card) *time.Time { return &c.ExpirationDate }),
	patch.Integer("cvv", func(c *Card) *int { return &c.CVV }, patch.AtLeast(0), patch.AtMost(9999)),
	patch.String("userId", func(c *Card) *string { return &c.UserID }),
)
