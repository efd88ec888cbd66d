package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stockbot/internal/domain"
	"stockbot/internal/service"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

const (
	replyInvalidKeywords = "請輸入有效的關鍵字，用逗號分隔:"
	newsLimit            = 10
)

// resolvePending consumes the message as flow input. The pending tag was
// already taken from the store, so by default the user drops back to idle
// whatever happens here.
func (h *Handler) resolvePending(ctx context.Context, in domain.InboundMessage, tag domain.PendingState) error {
	switch tag {
	case domain.StateAwaitingKeywords:
		return h.resolveKeywords(ctx, in)
	case domain.StateAwaitingStock:
		return h.resolveStock(ctx, in)
	case domain.StateAwaitingBacktest:
		return h.resolveBacktest(ctx, in)
	default:
		// Unknown tag, fall back to command routing
		return h.routeCommand(ctx, in)
	}
}

func (h *Handler) resolveKeywords(ctx context.Context, in domain.InboundMessage) error {
	keywords := splitKeywords(in.Text)
	if len(keywords) == 0 {
		// Recoverable input: re-prompt and keep waiting for keywords
		h.states.Set(in.UserID, domain.StateAwaitingKeywords)
		return h.api.Reply(ctx, in.ReplyToken, linebot.NewTextMessage(replyInvalidKeywords))
	}

	h.recorder.Record(in.UserID, in.Text, domain.KindNews)

	text, err := h.news.FetchAndFilter(ctx, keywords, newsLimit)
	if err != nil {
		return fmt.Errorf("failed to fetch news: %w", err)
	}
	return h.api.Reply(ctx, in.ReplyToken, linebot.NewTextMessage(text))
}

func (h *Handler) resolveStock(ctx context.Context, in domain.InboundMessage) error {
	h.recorder.Record(in.UserID, in.Text, domain.KindStock)

	text, err := h.stocks.QuoteMessage(ctx, in.Text)
	if err != nil {
		return fmt.Errorf("failed to query stock %q: %w", in.Text, err)
	}
	return h.api.Reply(ctx, in.ReplyToken, linebot.NewTextMessage(text))
}

func (h *Handler) resolveBacktest(ctx context.Context, in domain.InboundMessage) error {
	h.recorder.Record(in.UserID, in.Text, domain.KindBacktest)

	result, err := h.backtest.Run(ctx, in.Text)
	if err != nil {
		var invalid *service.InvalidParamsError
		if errors.As(err, &invalid) {
			text := fmt.Sprintf("輸入格式有誤：%s\n請輸入「回測」重新開始。", invalid.Reason)
			return h.api.Reply(ctx, in.ReplyToken, linebot.NewTextMessage(text))
		}
		return fmt.Errorf("failed to run backtest %q: %w", in.Text, err)
	}

	return h.api.Reply(ctx, in.ReplyToken, linebot.NewTextMessage(UnescapeNewlines(result.Text())))
}

// splitKeywords splits on half-width commas, trims tokens and drops empties.
func splitKeywords(text string) []string {
	var keywords []string
	for _, part := range strings.Split(text, ",") {
		if kw := strings.TrimSpace(part); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}
