package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/CameronXie/ecommerce-backend/commerce/patch"
)

const TransactionDefaultSort = "transactionDate"

// Transaction is the charge of an order against a card
type Transaction struct {
	TransactionID   string          `json:"transactionId" gorm:"primaryKey;type:varchar(50)"`
	OrderID         string          `json:"orderId" gorm:"type:varchar(50);index"`
	CardID          string          `json:"cardId" gorm:"type:varchar(50)"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:decimal(12,2)"`
	TransactionDate time.Time       `json:"transactionDate" gorm:"<-:create;autoCreateTime"`
}

var TransactionSchema = patch.MustSchema(
	"transaction",
	patch.ID("transactionId", func(t *Transaction) *string { return &t.TransactionID }),
	patch.String("orderId", func(t *Transaction) *string { return &t.OrderID }),
	patch.String("cardId", func(t *Transaction) *string { return &t.CardID }),
	patch.Decimal("amount", func(t *Transaction) *decimal.Decimal { return &t.Amount }, patch.Positive(), patch.Precision(12, 2)),
)
