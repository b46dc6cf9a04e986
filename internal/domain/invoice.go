package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/CameronXie/ecommerce-backend/commerce/patch"
)

const InvoiceDefaultSort = "paymentDate"

// Invoice records the payment of a transaction
type Invoice struct {
	InvoiceID     string          `json:"invoiceId" gorm:"primaryKey;type:varchar(50)"`
	TransactionID string          `json:"transactionId" gorm:"type:varchar(50);index"`
	PaymentAmount decimal.Decimal `json:"paymentAmount" gorm:"type:decimal(12,2)"`
	PaymentDate   time.Time       `json:"paymentDate"`
}

var InvoiceSchema = patch.MustSchema(
	"invoice",
	patch.ID("invoiceId", func(i *Invoice) *string { return &i.InvoiceID }),
	patch.String("transactionId", func(i *Invoice) *string { return &i.TransactionID }),
	patch.Decimal("paymentAmount", func(i *Invoice) *decimal.Decimal { return &i.PaymentAmount }, patch.Positive(), patch.Precision(12, 2)),
	patch.Timestamp("paymentDate", func(i *Invoice) *time.Time { return &i.PaymentDate }),
)
