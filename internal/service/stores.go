package service

import (
	"context"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

// TaskStore is implemented by repository.TaskRepository and memrepo.
type TaskStore interface {
	List(ctx context.Context, filter repository.TaskFilter) ([]*domain.Task, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, t *domain.Task, assigneeIDs []string, initial *domain.Feedback) error
	Update(ctx context.Context, t *domain.Task, assigneeIDs *[]string) error
	Delete(ctx context.Context, id string) error
}

type FeedbackStore interface {
	Add(ctx context.Context, fb *domain.Feedback) error
}

type PersonStore interface {
	List(ctx context.Context) ([]*domain.Person, error)
	Create(ctx context.Context, p *domain.Person, passwordHash string) error
	GetByID(ctx context.Context, id string) (*domain.Person, error)
	GetByEmail(ctx context.Context, email string) (*domain.Person, string, error)
}

type AuditStore interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	Recent(ctx context.Context, limit int) ([]*domain.AuditLog, error)
}

// Notifier is told about every committed change; ws.Hub implements it.
type Notifier interface {
	Publish(eventType, taskID string)
}

type nopNotifier struct{}

func (nopNotifier) Publish(string, string) {}

// Actor describes who issued a request. PersonID is empty for anonymous calls.
type Actor struct {
	PersonID  string
	IP        string
	UserAgent string
}

func (a Actor) personRef() *string {
	if a.PersonID == "" {
		return nil
	}
	id := a.PersonID
	return &id
}
