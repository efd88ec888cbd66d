package service

import (
	"stockbot/internal/repository"

	"go.uber.org/zap"
)

// HistoryService writes the interaction log and prunes old entries
type HistoryService struct {
	repo   repository.InteractionRepository
	logger *zap.Logger
}

// NewHistoryService creates a new history service
func NewHistoryService(repo repository.InteractionRepository, logger *zap.Logger) *HistoryService {
	return &HistoryService{
		repo:   repo,
		logger: logger,
	}
}

// Record stores one handled message. Logging must never fail message
// dispatch, so errors are swallowed here.
func (s *HistoryService) Record(userID, message, kind string) {
	if err := s.repo.Record(userID, message, kind); err != nil {
		s.logger.Warn("failed to record interaction",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("kind", kind),
		)
	}
}

// CleanupOldData removes interactions older than 60 days
func (s *HistoryService) CleanupOldData() error {
	const retentionDays = 60

	s.logger.Info("starting cleanup of old interactions", zap.Int("retention_days", retentionDays))

	if err := s.repo.CleanOldInteractions(retentionDays); err != nil {
		s.logger.Error("failed to cleanup old interactions", zap.Error(err))
		return err
	}

	s.logger.Info("cleanup completed successfully")
	return nil
}

// NopRecorder discards interactions. Used when no database is configured.
type NopRecorder struct{}

// Record implements the handler's Recorder without side effects.
func (NopRecorder) Record(userID, message, kind string) {}
