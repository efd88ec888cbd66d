package domain

import "github.com/shopspring/decimal"

// Quote is a real-time snapshot for one listed stock.
type Quote struct {
	Code      string
	Name      string
	Open      decimal.Decimal
	Last      decimal.Decimal
	PrevClose decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
}

// Change returns the difference between the latest price and yesterday's close.
func (q Quote) Change() decimal.Decimal {
	return q.Last.Sub(q.PrevClose)
}
