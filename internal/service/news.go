package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// NewsService fetches headlines from the news index page and filters them
// by user keywords.
type NewsService struct {
	client  *http.Client
	newsURL string
	logger  *zap.Logger
}

// NewNewsService creates a new news service
func NewNewsService(newsURL string, timeout time.Duration, logger *zap.Logger) *NewsService {
	return &NewsService{
		client:  &http.Client{Timeout: timeout},
		newsURL: newsURL,
		logger:  logger,
	}
}

// FetchAndFilter returns up to limit headlines whose title contains any of
// the keywords, one item per paragraph.
func (s *NewsService) FetchAndFilter(ctx context.Context, keywords []string, limit int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.newsURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build news request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("news page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse news page: %w", err)
	}

	items := s.collectHeadlines(doc, keywords, limit)

	s.logger.Info("news fetched",
		zap.Strings("keywords", keywords),
		zap.Int("matched", len(items)),
	)

	if len(items) == 0 {
		return "找不到符合關鍵字的新聞，請換個關鍵字再試一次。", nil
	}

	var b strings.Builder
	b.WriteString("為您找到的新聞：")
	for i, item := range items {
		b.WriteString(fmt.Sprintf("\n%d. %s", i+1, item.title))
		if item.link != "" {
			b.WriteString("\n" + item.link)
		}
	}
	return b.String(), nil
}

type headline struct {
	title string
	link  string
}

// collectHeadlines walks anchor headlines in document order, keeping the
// first limit matches. Duplicate titles are dropped.
func (s *NewsService) collectHeadlines(doc *goquery.Document, keywords []string, limit int) []headline {
	base, _ := url.Parse(s.newsURL)

	seen := make(map[string]bool)
	var items []headline

	doc.Find("h3 a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Text())
		if title == "" || seen[title] || !titleMatches(title, keywords) {
			return true
		}
		seen[title] = true

		link, _ := sel.Attr("href")
		if link != "" && base != nil {
			if ref, err := url.Parse(link); err == nil {
				link = base.ResolveReference(ref).String()
			}
		}

		items = append(items, headline{title: title, link: link})
		return len(items) < limit
	})

	return items
}

func titleMatches(title string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}
