package memrepo

import (
	"context"
	"slices"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

type FeedbackRepository struct {
	s *Store
}

func (r *FeedbackRepository) Add(ctx context.Context, fb *domain.Feedback) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[fb.TaskID]; !ok {
		return repository.ErrTaskNotFound
	}
	if fb.UserID != nil && !r.s.personExists(*fb.UserID) {
		return repository.ErrPersonNotFound
	}
	r.s.appendFeedback(fb)
	return nil
}

func (r *FeedbackRepository) ListByTask(ctx context.Context, taskID string) ([]domain.Feedback, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.feedbackFor(taskID), nil
}

// Callers hold the write lock.
func (s *Store) appendFeedback(fb *domain.Feedback) {
	fb.CreatedAt = s.stamp()
	fb.UserName, fb.UserAvatar = "", ""
	s.feedback = append(s.feedback, *fb)
	s.resolveAuthor(fb)
}

func (s *Store) resolveAuthor(fb *domain.Feedback) {
	if fb.UserID == nil {
		return
	}
	if rec, ok := s.people[*fb.UserID]; ok {
		fb.UserName = rec.person.Name
		fb.UserAvatar = rec.person.AvatarURL
	}
}

// feedbackFor returns copies newest first. Callers hold at least the read lock.
func (s *Store) feedbackFor(taskID string) []domain.Feedback {
	out := []domain.Feedback{}
	for _, fb := range s.feedback {
		if fb.TaskID == taskID {
			s.resolveAuthor(&fb)
			out = append(out, fb)
		}
	}
	slices.SortFunc(out, func(a, b domain.Feedback) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return out
}
