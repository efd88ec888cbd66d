package handler

import (
	"context"
	"strings"

	"stockbot/internal/domain"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// Flow prompts and the default hint
const (
	promptKeywords = "請輸入關鍵字，用半形逗號分隔:"
	promptStock    = "請輸入股票代號:"
	promptBacktest = "請問要回測哪一支,定期定額多少,幾年(請用半形逗號隔開):"
	replyMenuHint  = "請輸入「目錄」查看可用功能。"
)

// command pairs a trigger substring with its action. The slice below is
// matched in declaration order and the first hit wins, so overlapping
// triggers resolve deterministically.
type command struct {
	trigger string
	handle  func(ctx context.Context, h *Handler, in domain.InboundMessage) error
}

var commands = []command{
	{trigger: "財報", handle: sendMenu1},
	{trigger: "基本股票功能", handle: sendMenu1},
	{trigger: "換股", handle: sendMenu2},
	{trigger: "目錄", handle: sendCatalog},
	{trigger: "新聞", handle: startNewsFlow},
	{trigger: "查詢即時開盤價跟收盤價", handle: startStockFlow},
	{trigger: "回測", handle: startBacktestFlow},
}

// routeCommand matches the message against the command table. Unmatched
// messages always get the menu hint, never silence.
func (h *Handler) routeCommand(ctx context.Context, in domain.InboundMessage) error {
	for _, cmd := range commands {
		if strings.Contains(in.Text, cmd.trigger) {
			h.recorder.Record(in.UserID, in.Text, domain.KindCommand)
			return cmd.handle(ctx, h, in)
		}
	}
	return h.api.Reply(ctx, in.ReplyToken, linebot.NewTextMessage(replyMenuHint))
}

func sendMenu1(ctx context.Context, h *Handler, in domain.InboundMessage) error {
	return h.api.Reply(ctx, in.ReplyToken, buttonsMenu1())
}

func sendMenu2(ctx context.Context, h *Handler, in domain.InboundMessage) error {
	return h.api.Reply(ctx, in.ReplyToken, buttonsMenu2())
}

func sendCatalog(ctx context.Context, h *Handler, in domain.InboundMessage) error {
	return h.api.Reply(ctx, in.ReplyToken, catalogCarousel())
}

func startNewsFlow(ctx context.Context, h *Handler, in domain.InboundMessage) error {
	if err := h.api.Reply(ctx, in.ReplyToken, linebot.NewTextMessage(promptKeywords)); err != nil {
		return err
	}
	h.states.Set(in.UserID, domain.StateAwaitingKeywords)
	return nil
}

func startStockFlow(ctx context.Context, h *Handler, in domain.InboundMessage) error {
	if err := h.api.Reply(ctx, in.ReplyToken, linebot.NewTextMessage(promptStock)); err != nil {
		return err
	}
	h.states.Set(in.UserID, domain.StateAwaitingStock)
	return nil
}

func startBacktestFlow(ctx context.Context, h *Handler, in domain.InboundMessage) error {
	if err := h.api.Reply(ctx, in.ReplyToken, linebot.NewTextMessage(promptBacktest)); err != nil {
		return err
	}
	h.states.Set(in.UserID, domain.StateAwaitingBacktest)
	return nil
}
