package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a single record of the "Stores/Orders" collection.
//
// Only the fields needed to aggregate sales are modelled. Totals.Total is
// nullable because orders created before payment capture carry no amount;
// such orders count as a purchase but contribute nothing to revenue.
type Order struct {
	ID          string
	DateCreated time.Time
	Totals      OrderTotals
	Currency    string
}

// OrderTotals groups the monetary fields of an order.
type OrderTotals struct {
	Total decimal.NullDecimal
}

// OrderPage is what the order store returns for a range query.
//
// TotalCount is the number of records matching the whole interval. Items may
// be shorter than TotalCount when the store caps the page size.
type OrderPage struct {
	TotalCount int64
	Items      []Order
}
