// Package domain holds the persisted records of the e-commerce services and their patch schemas.
//
// Records reference each other by copied identifier (an order carries its user's id, a line item its
// order's id) and never by object graph. Creation timestamps are assigned by the store and are not patchable.
package domain

import "github.com/shopspring/decimal"

// Amounts are written as JSON numbers, the same form patch updates accept.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Models returns every record type, for schema migration.
func Models() []any {
	return []any{
		&Country{},
		&City{},
		&Address{},
		&Card{},
		&Cart{},
		&Invoice{},
		&Order{},
		&OrderItem{},
		&Product{},
		&Rating{},
		&Transaction{},
		&User{},
		&Wishlist{},
	}
}
