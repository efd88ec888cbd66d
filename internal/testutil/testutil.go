package testutil

import (
	"stockbot/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestBacktestResult creates a backtest result with round numbers
func NewTestBacktestResult(ticker string) *domain.BacktestResult {
	return &domain.BacktestResult{
		Ticker:     ticker,
		Months:     12,
		Monthly:    decimal.NewFromInt(3000),
		Invested:   decimal.NewFromInt(36000),
		Shares:     decimal.NewFromInt(60),
		FinalValue: decimal.NewFromInt(39600),
		ReturnRate: decimal.NewFromInt(10),
	}
}
