package domain

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestQuote_Change(t *testing.T) {
	q := Quote{
		Last:      decimal.NewFromFloat(605),
		PrevClose: decimal.NewFromFloat(598),
	}
	assert.Equal(t, "7", q.Change().String())

	q.Last = decimal.NewFromFloat(590)
	assert.Equal(t, "-8", q.Change().String())
}

func TestBacktestResult_Text(t *testing.T) {
	r := BacktestResult{
		Ticker:     "2330",
		Months:     120,
		Monthly:    decimal.NewFromInt(3000),
		Invested:   decimal.NewFromInt(360000),
		Shares:     decimal.NewFromFloat(512.3456),
		FinalValue: decimal.NewFromInt(540000),
		ReturnRate: decimal.NewFromInt(50),
	}

	text := r.Text()
	assert.True(t, strings.HasPrefix(text, "2330 定期定額回測結果"))
	assert.Contains(t, text, "期間：120 個月")
	assert.Contains(t, text, "每月投入：3000 元")
	assert.Contains(t, text, "總投入：360000 元")
	assert.Contains(t, text, "累積股數：512.35 股")
	assert.Contains(t, text, "期末市值：540000 元")
	assert.Contains(t, text, "報酬率：50.00%")
}
