package handler

import (
	"context"
	"net/http"
	"strings"

	"stockbot/internal/domain"
	"stockbot/internal/state"

	"github.com/line/line-bot-sdk-go/v7/linebot"
	"go.uber.org/zap"
)

// User-facing texts shared across handlers
const (
	replyError   = "發生錯誤，請稍後再試。"
	replyWelcome = "歡迎加入"
	livenessText = "Webhook Running!!!"
)

// NewsProvider fetches and filters news for a keyword set
type NewsProvider interface {
	FetchAndFilter(ctx context.Context, keywords []string, limit int) (string, error)
}

// StockQuoter renders a real-time quote reply for a stock code
type StockQuoter interface {
	QuoteMessage(ctx context.Context, code string) (string, error)
}

// Backtester runs a dollar-cost-averaging simulation from raw parameter text
type Backtester interface {
	Run(ctx context.Context, paramsText string) (*domain.BacktestResult, error)
}

// LineAPI is the slice of the messaging SDK needed for outbound calls
type LineAPI interface {
	Reply(ctx context.Context, replyToken string, messages ...linebot.SendingMessage) error
	DisplayName(ctx context.Context, groupID, userID string) (string, error)
}

// Recorder stores handled messages in the interaction log
type Recorder interface {
	Record(userID, message, kind string)
}

// Handler manages all bot interactions
type Handler struct {
	bot      *linebot.Client
	api      LineAPI
	states   state.Store
	news     NewsProvider
	stocks   StockQuoter
	backtest Backtester
	recorder Recorder
	logger   *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *linebot.Client,
	api LineAPI,
	states state.Store,
	news NewsProvider,
	stocks StockQuoter,
	backtest Backtester,
	recorder Recorder,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:      bot,
		api:      api,
		states:   states,
		news:     news,
		stocks:   stocks,
		backtest: backtest,
		recorder: recorder,
		logger:   logger,
	}
}

// Register registers the webhook routes
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", h.handleRoot)
	mux.HandleFunc("/callback", h.handleCallback)
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Write([]byte(livenessText))
}

// handleCallback verifies the webhook signature, then dispatches every event.
// The platform gets 200 as soon as dispatch finished; replies already went
// out through the reply tokens.
func (h *Handler) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	events, err := h.bot.ParseRequest(r)
	if err != nil {
		if err == linebot.ErrInvalidSignature {
			h.logger.Error("invalid webhook signature")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to parse webhook request", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	for _, event := range events {
		h.handleEvent(r.Context(), event)
	}

	w.Write([]byte("OK"))
}

func (h *Handler) handleEvent(ctx context.Context, event *linebot.Event) {
	switch event.Type {
	case linebot.EventTypeMessage:
		msg, ok := event.Message.(*linebot.TextMessage)
		if !ok {
			return
		}
		userID := ""
		if event.Source != nil {
			userID = event.Source.UserID
		}
		h.HandleText(ctx, domain.InboundMessage{
			UserID:     userID,
			Text:       strings.TrimSpace(msg.Text),
			ReplyToken: event.ReplyToken,
		})

	case linebot.EventTypeMemberJoined:
		h.handleMemberJoined(ctx, event)
	}
}

// HandleText is the single dispatch point for inbound text. A user with a
// pending flow gets the resolver; everyone else gets the command router.
// Nothing a collaborator throws escapes this method.
func (h *Handler) HandleText(ctx context.Context, in domain.InboundMessage) {
	h.logger.Info("received message",
		zap.String("user_id", in.UserID),
		zap.String("text", in.Text),
	)

	var err error
	if tag, ok := h.states.Take(in.UserID); ok {
		err = h.resolvePending(ctx, in, tag)
	} else {
		err = h.routeCommand(ctx, in)
	}
	if err == nil {
		return
	}

	h.logger.Error("failed to handle message",
		zap.Error(err),
		zap.String("user_id", in.UserID),
		zap.String("text", in.Text),
	)
	h.states.Clear(in.UserID)

	if rerr := h.api.Reply(ctx, in.ReplyToken, linebot.NewTextMessage(replyError)); rerr != nil {
		h.logger.Error("failed to send failure reply",
			zap.Error(rerr),
			zap.String("user_id", in.UserID),
		)
	}
}

// handleMemberJoined greets new group members by display name.
func (h *Handler) handleMemberJoined(ctx context.Context, event *linebot.Event) {
	if len(event.Members) == 0 {
		return
	}
	member := event.Members[0]

	name := ""
	if event.Source != nil && event.Source.GroupID != "" {
		var err error
		name, err = h.api.DisplayName(ctx, event.Source.GroupID, member.UserID)
		if err != nil {
			h.logger.Warn("failed to fetch member profile",
				zap.Error(err),
				zap.String("group_id", event.Source.GroupID),
			)
			name = ""
		}
	}

	if err := h.api.Reply(ctx, event.ReplyToken, linebot.NewTextMessage(name+replyWelcome)); err != nil {
		h.logger.Error("failed to send welcome reply", zap.Error(err))
	}
}
