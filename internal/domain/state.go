package domain

// PendingState marks a user as mid-way through a multi-message flow.
// The next message from that user is interpreted as flow input, not a command.
type PendingState string

const (
	StateIdle             PendingState = "idle"
	StateAwaitingKeywords PendingState = "awaiting_keywords"
	StateAwaitingStock    PendingState = "awaiting_stock"
	StateAwaitingBacktest PendingState = "awaiting_backtest"
)
