package service

import (
	"context"

	"taskboard/internal/domain"
	"taskboard/internal/logger"
)

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 200
)

// AuditService records activity. Recording never fails the caller.
type AuditService struct {
	repo AuditStore
}

func NewAuditService(repo AuditStore) *AuditService {
	return &AuditService{repo: repo}
}

// Log creates a new audit log entry with request info
func (s *AuditService) Log(ctx context.Context, actor Actor, action, taskID string, details map[string]interface{}) {
	if s == nil || s.repo == nil {
		return
	}
	entry := &domain.AuditLog{
		PersonID:  actor.personRef(),
		Action:    action,
		Details:   details,
		IP:        actor.IP,
		UserAgent: actor.UserAgent,
	}
	if taskID != "" {
		entry.TaskID = &taskID
	}

	// the mutation already committed; a cancelled request must not drop the entry
	if err := s.repo.Create(context.WithoutCancel(ctx), entry); err != nil {
		logger.WithContext(ctx).Error("failed to create audit log", "error", err, "action", action, "task_id", taskID)
	}
}

// Recent clamps limit to [1, MaxActivityLimit], using the default for 0.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]*domain.AuditLog, error) {
	switch {
	case limit < 0:
		return nil, invalidf("limit must be positive")
	case limit == 0:
		limit = DefaultActivityLimit
	case limit > MaxActivityLimit:
		limit = MaxActivityLimit
	}
	return s.repo.Recent(ctx, limit)
}
