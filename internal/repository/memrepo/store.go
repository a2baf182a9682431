// Package memrepo keeps the whole board in process memory. It mirrors the
// PostgreSQL repositories closely enough to back STORE=memory and tests.
package memrepo

import (
	"context"
	"sync"
	"time"

	"taskboard/internal/domain"
)

type personRecord struct {
	person domain.Person
	hash   string
}

// Store is the shared state behind the repository views.
type Store struct {
	mu sync.RWMutex

	tasks     map[string]domain.Task
	assignees map[string][]string
	people    map[string]personRecord
	feedback  []domain.Feedback
	audit     []domain.AuditLog

	nextAuditID int64
	lastStamp   time.Time
	now         func() time.Time
}

func New() *Store {
	return &Store{
		tasks:     make(map[string]domain.Task),
		assignees: make(map[string][]string),
		people:    make(map[string]personRecord),
		now:       time.Now,
	}
}

// Ping always succeeds; it lets the store stand in for the database in
// readiness checks.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Tasks() *TaskRepository { return &TaskRepository{s: s} }
func (s *Store) Feedback() *FeedbackRepository { return &FeedbackRepository{s: s} }
func (s *Store) People() *PersonRepository { return &PersonRepository{s: s} }
func (s *Store) AuditLogs() *AuditRepository { return &AuditRepository{s: s} }

// stamp returns a strictly increasing timestamp so feedback ordering is total.
// Callers hold the write lock.
func (s *Store) stamp() time.Time {
	t := s.now().UTC()
	if !t.After(s.lastStamp) {
		t = s.lastStamp.Add(time.Microsecond)
	}
	s.lastStamp = t
	return t
}

func (s *Store) personExists(id string) bool {
	_, ok := s.people[id]
	return ok
}
