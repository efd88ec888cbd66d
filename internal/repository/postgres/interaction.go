package postgres

import (
	"database/sql"
)

// InteractionRepo implements repository.InteractionRepository
type InteractionRepo struct {
	db *sql.DB
}

// NewInteractionRepo creates a new interaction repository
func NewInteractionRepo(db *sql.DB) *InteractionRepo {
	return &InteractionRepo{db: db}
}

// Record stores one handled inbound message
func (r *InteractionRepo) Record(userID, message, kind string) error {
	query := `
		INSERT INTO interactions (user_id, message, kind)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(query, userID, message, kind)
	return err
}

// CleanOldInteractions deletes log rows older than specified days
func (r *InteractionRepo) CleanOldInteractions(days int) error {
	query := `
		DELETE FROM interactions
		WHERE created_at < NOW() - INTERVAL '1 day' * $1
	`
	_, err := r.db.Exec(query, days)
	return err
}
