package testutil

import (
	"context"

	"stockbot/internal/domain"

	"github.com/line/line-bot-sdk-go/v7/linebot"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockLineAPI is a mock for handler.LineAPI
type MockLineAPI struct {
	mock.Mock
}

func (m *MockLineAPI) Reply(ctx context.Context, replyToken string, messages ...linebot.SendingMessage) error {
	args := m.Called(ctx, replyToken, messages)
	return args.Error(0)
}

func (m *MockLineAPI) DisplayName(ctx context.Context, groupID, userID string) (string, error) {
	args := m.Called(ctx, groupID, userID)
	return args.String(0), args.Error(1)
}

// MockNewsProvider is a mock for handler.NewsProvider
type MockNewsProvider struct {
	mock.Mock
}

func (m *MockNewsProvider) FetchAndFilter(ctx context.Context, keywords []string, limit int) (string, error) {
	args := m.Called(ctx, keywords, limit)
	return args.String(0), args.Error(1)
}

// MockStockQuoter is a mock for handler.StockQuoter
type MockStockQuoter struct {
	mock.Mock
}

func (m *MockStockQuoter) QuoteMessage(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

// MockBacktester is a mock for handler.Backtester
type MockBacktester struct {
	mock.Mock
}

func (m *MockBacktester) Run(ctx context.Context, paramsText string) (*domain.BacktestResult, error) {
	args := m.Called(ctx, paramsText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BacktestResult), args.Error(1)
}

// MockRecorder is a mock for handler.Recorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(userID, message, kind string) {
	m.Called(userID, message, kind)
}

// MockHistoryProvider is a mock for service.HistoryProvider
type MockHistoryProvider struct {
	mock.Mock
}

func (m *MockHistoryProvider) MonthlyAverages(ctx context.Context, code string, months int) ([]decimal.Decimal, error) {
	args := m.Called(ctx, code, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]decimal.Decimal), args.Error(1)
}

// MockInteractionRepository is a mock for repository.InteractionRepository
type MockInteractionRepository struct {
	mock.Mock
}

func (m *MockInteractionRepository) Record(userID, message, kind string) error {
	args := m.Called(userID, message, kind)
	return args.Error(0)
}

func (m *MockInteractionRepository) CleanOldInteractions(days int) error {
	args := m.Called(days)
	return args.Error(0)
}
