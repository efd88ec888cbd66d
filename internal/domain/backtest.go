package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BacktestResult is the outcome of a monthly dollar-cost-averaging simulation.
type BacktestResult struct {
	Ticker     string
	Months     int
	Monthly    decimal.Decimal
	Invested   decimal.Decimal
	Shares     decimal.Decimal
	FinalValue decimal.Decimal
	ReturnRate decimal.Decimal // percent
}

// Text renders the result as a chat reply.
func (r BacktestResult) Text() string {
	return fmt.Sprintf(
		"%s 定期定額回測結果\n期間：%d 個月\n每月投入：%s 元\n總投入：%s 元\n累積股數：%s 股\n期末市值：%s 元\n報酬率：%s%%",
		r.Ticker,
		r.Months,
		r.Monthly.StringFixed(0),
		r.Invested.StringFixed(0),
		r.Shares.StringFixed(2),
		r.FinalValue.StringFixed(0),
		r.ReturnRate.StringFixed(2),
	)
}
