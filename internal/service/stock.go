package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stockbot/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StockService queries the exchange's real-time quote API and the
// after-trading monthly average endpoint.
type StockService struct {
	client     *http.Client
	quoteURL   string
	historyURL string
	logger     *zap.Logger
}

// NewStockService creates a new stock service
func NewStockService(quoteURL, historyURL string, timeout time.Duration, logger *zap.Logger) *StockService {
	return &StockService{
		client:     &http.Client{Timeout: timeout},
		quoteURL:   quoteURL,
		historyURL: historyURL,
		logger:     logger,
	}
}

type quoteResponse struct {
	MsgArray []struct {
		Code      string `json:"c"`
		Name      string `json:"n"`
		Open      string `json:"o"`
		Last      string `json:"z"`
		PrevClose string `json:"y"`
		High      string `json:"h"`
		Low       string `json:"l"`
	} `json:"msgArray"`
}

// Quote returns the real-time snapshot for a stock code, or nil when the
// exchange does not know the code.
func (s *StockService) Quote(ctx context.Context, code string) (*domain.Quote, error) {
	// Listed and OTC channels are queried together; the exchange answers
	// for whichever knows the code.
	params := url.Values{}
	params.Set("ex_ch", fmt.Sprintf("tse_%s.tw|otc_%s.tw", code, code))
	params.Set("json", "1")
	params.Set("delay", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.quoteURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build quote request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote API returned status %d", resp.StatusCode)
	}

	var qr quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}

	for _, m := range qr.MsgArray {
		if m.Code == "" {
			continue
		}
		q := &domain.Quote{
			Code:      m.Code,
			Name:      m.Name,
			Open:      parsePrice(m.Open),
			Last:      parsePrice(m.Last),
			PrevClose: parsePrice(m.PrevClose),
			High:      parsePrice(m.High),
			Low:       parsePrice(m.Low),
		}
		// Before the first trade of the day the latest price is "-"
		if q.Last.IsZero() {
			q.Last = q.PrevClose
		}
		return q, nil
	}

	return nil, nil
}

// QuoteMessage renders the quote for a chat reply. An unknown code is a
// user-level miss, not an error.
func (s *StockService) QuoteMessage(ctx context.Context, code string) (string, error) {
	code = strings.TrimSpace(code)

	q, err := s.Quote(ctx, code)
	if err != nil {
		return "", err
	}
	if q == nil {
		s.logger.Info("stock code not found", zap.String("code", code))
		return fmt.Sprintf("查無股票代號「%s」，請確認後再試一次。", code), nil
	}

	change := q.Change()
	sign := ""
	if change.Sign() > 0 {
		sign = "+"
	}

	return fmt.Sprintf(
		"%s（%s）\n開盤價：%s\n最新成交價：%s\n昨日收盤價：%s\n漲跌：%s%s",
		q.Name, q.Code,
		q.Open.StringFixed(2),
		q.Last.StringFixed(2),
		q.PrevClose.StringFixed(2),
		sign, change.StringFixed(2),
	), nil
}

type historyResponse struct {
	Stat string     `json:"stat"`
	Data [][]string `json:"data"`
}

// MonthlyAverages returns the monthly average closing price for the last
// months calendar months, oldest first.
func (s *StockService) MonthlyAverages(ctx context.Context, code string, months int) ([]decimal.Decimal, error) {
	// Walk from the first of the month so AddDate cannot skip short months
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	averages := make([]decimal.Decimal, 0, months)

	for i := months - 1; i >= 0; i-- {
		avg, err := s.monthlyAverage(ctx, code, first.AddDate(0, -i, 0))
		if err != nil {
			return nil, err
		}
		if avg.IsZero() {
			// Not listed yet (or no trading data) for this month
			continue
		}
		averages = append(averages, avg)
	}

	return averages, nil
}

func (s *StockService) monthlyAverage(ctx context.Context, code string, month time.Time) (decimal.Decimal, error) {
	params := url.Values{}
	params.Set("date", month.Format("20060102"))
	params.Set("stockNo", code)
	params.Set("response", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.historyURL+"?"+params.Encode(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build history request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch history: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("history API returned status %d", resp.StatusCode)
	}

	var hr historyResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode history response: %w", err)
	}

	if hr.Stat != "OK" {
		return decimal.Zero, nil
	}

	// The last row carries the monthly average; daily close rows precede it.
	for i := len(hr.Data) - 1; i >= 0; i-- {
		row := hr.Data[i]
		if len(row) >= 2 && strings.Contains(row[0], "月平均") {
			return parsePrice(row[1]), nil
		}
	}

	return decimal.Zero, nil
}

// parsePrice reads an exchange price field. Placeholder values like "-" and
// thousand separators both occur in the wild.
func parsePrice(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || s == "-" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
