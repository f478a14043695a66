package activity

import (
	"context"
	"time"

	"go-recruit/internal/apperr"
	common_models "go-recruit/internal/common/models"

	"go.uber.org/zap"
)

type ActivityService interface {
	// Log records an admin action. Failures are swallowed: logging must
	// never block or fail the primary operation.
	Log(ctx context.Context, userID, action, description, ip string)
	List(ctx context.Context, page, limit int64) ([]ActivityLog, common_models.Pagination, error)
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

type ActivityServiceImpl struct {
	Repo   ActivityRepository
	Hub    *Hub
	Logger *zap.Logger
}

func NewActivityService(repo ActivityRepository, hub *Hub, logger *zap.Logger) ActivityService {
	return &ActivityServiceImpl{
		Repo:   repo,
		Hub:    hub,
		Logger: logger,
	}
}

func (s *ActivityServiceImpl) Log(ctx context.Context, userID, action, description, ip string) {
	entry := &ActivityLog{
		UserID:      userID,
		Action:      action,
		Description: description,
		IpAddress:   ip,
		CreatedAt:   time.Now(),
	}

	if err := s.Repo.Create(ctx, entry); err != nil {
		s.Logger.Warn("activity log write failed", zap.String("action", action), zap.Error(err))
		return
	}

	s.Hub.Broadcast(entry)
}

func (s *ActivityServiceImpl) List(ctx context.Context, page, limit int64) ([]ActivityLog, common_models.Pagination, error) {
	entries, total, err := s.Repo.List(ctx, page, limit)
	if err != nil {
		return nil, common_models.Pagination{}, apperr.Storage(err)
	}
	return entries, common_models.NewPagination(page, limit, total), nil
}

func (s *ActivityServiceImpl) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	return s.Repo.DeleteOlderThan(ctx, time.Now().Add(-retention))
}
