package domain

// InboundMessage is a text message received from the messaging platform.
// ReplyToken is an opaque handle, usable exactly once to answer this message.
type InboundMessage struct {
	UserID     string
	Text       string
	ReplyToken string
}

// Interaction log kinds recorded by the handler.
const (
	KindCommand  = "command"
	KindNews     = "news"
	KindStock    = "stock"
	KindBacktest = "backtest"
)
