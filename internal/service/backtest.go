package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"stockbot/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxBacktestYears = 40

// HistoryProvider supplies monthly average closing prices, oldest first.
type HistoryProvider interface {
	MonthlyAverages(ctx context.Context, code string, months int) ([]decimal.Decimal, error)
}

// InvalidParamsError describes backtest input the user needs to correct.
// It is a validation outcome, not a collaborator failure.
type InvalidParamsError struct {
	Reason string
}

func (e *InvalidParamsError) Error() string {
	return e.Reason
}

// BacktestService simulates monthly dollar-cost averaging over historical
// average prices.
type BacktestService struct {
	history HistoryProvider
	logger  *zap.Logger
}

// NewBacktestService creates a new backtest service
func NewBacktestService(history HistoryProvider, logger *zap.Logger) *BacktestService {
	return &BacktestService{
		history: history,
		logger:  logger,
	}
}

// Run parses "ticker,monthly amount,years" and simulates buying
// amount/price shares at each month's average price.
func (s *BacktestService) Run(ctx context.Context, paramsText string) (*domain.BacktestResult, error) {
	ticker, monthly, years, err := parseParams(paramsText)
	if err != nil {
		return nil, err
	}

	months := years * 12
	prices, err := s.history.MonthlyAverages(ctx, ticker, months)
	if err != nil {
		return nil, fmt.Errorf("failed to load price history for %s: %w", ticker, err)
	}
	if len(prices) == 0 {
		return nil, &InvalidParamsError{Reason: fmt.Sprintf("查無「%s」的歷史股價", ticker)}
	}

	shares := decimal.Zero
	for _, price := range prices {
		shares = shares.Add(monthly.DivRound(price, 8))
	}

	invested := monthly.Mul(decimal.NewFromInt(int64(len(prices))))
	finalValue := shares.Mul(prices[len(prices)-1])
	returnRate := finalValue.Sub(invested).
		Div(invested).
		Mul(decimal.NewFromInt(100))

	s.logger.Info("backtest completed",
		zap.String("ticker", ticker),
		zap.Int("months", len(prices)),
		zap.String("return_rate", returnRate.StringFixed(2)),
	)

	return &domain.BacktestResult{
		Ticker:     ticker,
		Months:     len(prices),
		Monthly:    monthly,
		Invested:   invested,
		Shares:     shares,
		FinalValue: finalValue,
		ReturnRate: returnRate,
	}, nil
}

// parseParams expects "ticker,monthly amount,years" with half-width commas.
func parseParams(text string) (string, decimal.Decimal, int, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 3 {
		return "", decimal.Zero, 0, &InvalidParamsError{
			Reason: "請輸入「股票代號,每月金額,年數」，用半形逗號隔開",
		}
	}

	ticker := strings.TrimSpace(parts[0])
	if ticker == "" {
		return "", decimal.Zero, 0, &InvalidParamsError{Reason: "股票代號不可空白"}
	}

	monthly, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil || monthly.Sign() <= 0 {
		return "", decimal.Zero, 0, &InvalidParamsError{Reason: "每月金額須為正數"}
	}

	years, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil || years <= 0 || years > maxBacktestYears {
		return "", decimal.Zero, 0, &InvalidParamsError{
			Reason: fmt.Sprintf("年數須為 1 到 %d 的整數", maxBacktestYears),
		}
	}

	return ticker, monthly, years, nil
}
