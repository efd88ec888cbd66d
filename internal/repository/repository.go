package repository

// InteractionRepository defines interaction log operations
type InteractionRepository interface {
	Record(userID, message, kind string) error
	CleanOldInteractions(days int) error
}
