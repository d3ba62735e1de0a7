package models

import "time"

// Interval is a closed [Start, End] range of creation timestamps.
// End is normally the last millisecond of its calendar day.
type Interval struct {
	Start time.Time
	End   time.Time
}

// SalesSummary is the aggregate computed over every order of an Interval.
// Revenue is already rounded to two decimals.
type SalesSummary struct {
	Purchases int64
	Revenue   float64
}
